package progression

import "github.com/randocore/randocore/pkg/term"

// Item is the consumed collaborator contract (§6): applying its effects
// against a ProgressionManager and reporting which terms it can affect,
// so MU watch-lists and incremental recomputation can be wired up
// without inspecting the item's internals.
type Item interface {
	Name() string
	AddTo(pm *ProgressionManager)
	GetAffectedTerms() []term.ID
}

// ConditionalItem additionally supports a check against current
// progression before firing (e.g. FirstOfItem's nested options).
type ConditionalItem interface {
	Item
	CheckForEffect(pm *ProgressionManager) bool
}

// IncrItem grants a fixed delta to one or more terms. The simplest
// concrete Item: most worked-example items (keys, counters) are one of
// these.
type IncrItem struct {
	ItemName string
	Effects  map[term.ID]int
}

func (it *IncrItem) Name() string { return it.ItemName }

func (it *IncrItem) AddTo(pm *ProgressionManager) {
	for id, n := range it.Effects {
		pm.Incr(id, n)
	}
}

func (it *IncrItem) GetAffectedTerms() []term.ID {
	out := make([]term.ID, 0, len(it.Effects))
	for id := range it.Effects {
		out = append(out, id)
	}
	return out
}

// FirstOfItem fires the first nested ConditionalItem whose
// CheckForEffect reports true against the current PM.
type FirstOfItem struct {
	ItemName string
	Options  []ConditionalItem
}

func (f *FirstOfItem) Name() string { return f.ItemName }

func (f *FirstOfItem) AddTo(pm *ProgressionManager) {
	for _, opt := range f.Options {
		if opt.CheckForEffect(pm) {
			opt.AddTo(pm)
			return
		}
	}
}

func (f *FirstOfItem) GetAffectedTerms() []term.ID {
	var out []term.ID
	for _, opt := range f.Options {
		out = append(out, opt.GetAffectedTerms()...)
	}
	return out
}
