package logic

import (
	"github.com/randocore/randocore/pkg/state"
	"github.com/randocore/randocore/pkg/term"
)

// DNFLogicDef is an ordered disjunction of Clauses: the formula
// succeeds iff at least one Clause succeeds. termClauseLookup is built
// lazily on first use, scanning every clause's GetTerms().
type DNFLogicDef struct {
	lm      *LogicManager
	clauses []*Clause

	termClauseLookup map[term.ID][]*Clause
	lookupBuilt      bool
}

// NewDNFLogicDef binds clauses to lm, in declaration order.
func NewDNFLogicDef(lm *LogicManager, clauses []*Clause) *DNFLogicDef {
	d := &DNFLogicDef{lm: lm}
	for _, c := range clauses {
		c.parent = d
		d.clauses = append(d.clauses, c)
	}
	return d
}

// Clauses returns the disjunction's clauses in declaration order.
func (d *DNFLogicDef) Clauses() []*Clause {
	return d.clauses
}

// EvaluateLogic reports whether any clause's logic evaluates true.
func (d *DNFLogicDef) EvaluateLogic(pm PM) bool {
	_, ok := d.GetFirstSuccessfulConjunction(pm)
	return ok
}

// GetFirstSuccessfulConjunction returns the lowest-indexed clause whose
// EvaluateLogic succeeds.
func (d *DNFLogicDef) GetFirstSuccessfulConjunction(pm PM) (*Clause, bool) {
	for _, c := range d.clauses {
		if c.EvaluateLogic(pm) {
			return c, true
		}
	}
	return nil, false
}

// EvaluateStateDiscard reports whether any clause succeeds on at least
// one (input x state-logic) path.
func (d *DNFLogicDef) EvaluateStateDiscard(pm PM) bool {
	for _, c := range d.clauses {
		if c.EvaluateStateDiscard(pm) {
			return true
		}
	}
	return false
}

// EvaluateState runs every clause's EvaluateStateChange, unions their
// outputs, and reports whether any clause also succeeded on the empty
// branch.
func (d *DNFLogicDef) EvaluateState(pm PM) (state.StateUnion, bool) {
	var all []state.State
	succeedsOnEmpty := false
	for _, c := range d.clauses {
		var res []state.State
		if c.EvaluateStateChange(pm, &res) {
			succeedsOnEmpty = true
		}
		all = append(all, res...)
	}
	return state.NewStateUnion(all), succeedsOnEmpty
}

func (d *DNFLogicDef) ensureTermClauseLookup() {
	if d.lookupBuilt {
		return
	}
	d.termClauseLookup = make(map[term.ID][]*Clause)
	for _, c := range d.clauses {
		for _, t := range c.GetTerms() {
			d.termClauseLookup[t] = append(d.termClauseLookup[t], c)
		}
	}
	d.lookupBuilt = true
}

// CheckForUpdatedState re-evaluates only the clauses touching
// modifiedTerm and merges their output with current via state.TryUnion.
//
// Return convention: (nil, false) means "no state at all" (current was
// nil and nothing new happened); (union, true) means a (possibly
// trivially-empty/indeterminate) new union — current was nil and the
// re-evaluated clauses produced output or succeeded on empty, or
// current was non-nil and the merge is reported.
func (d *DNFLogicDef) CheckForUpdatedState(pm PM, current *state.StateUnion, modifiedTerm term.ID) (*state.StateUnion, bool) {
	d.ensureTermClauseLookup()

	var newStates []state.State
	succeedsOnEmpty := false
	for _, c := range d.termClauseLookup[modifiedTerm] {
		var res []state.State
		if c.EvaluateStateChange(pm, &res) {
			succeedsOnEmpty = true
		}
		newStates = append(newStates, res...)
	}
	newUnion := state.NewStateUnion(newStates)
	if succeedsOnEmpty {
		newUnion = state.Union(newUnion, state.Empty(d.lm.StateManager()))
	}

	if current == nil {
		if newUnion.IsEmpty() {
			return nil, false
		}
		return &newUnion, true
	}
	merged, ok := state.TryUnion(*current, newUnion)
	if !ok {
		return nil, false
	}
	return &merged, true
}

// ReferencedTerms returns every term id any clause in the disjunction
// touches (directly or via a variable's own GetTerms), deduplicated.
// Useful for callers that need to build a watch-list for this
// DNFLogicDef without reaching into its private termClauseLookup (e.g.
// pkg/progression's ManagedStateEntry construction).
func (d *DNFLogicDef) ReferencedTerms() []term.ID {
	seen := make(map[term.ID]bool)
	var out []term.ID
	for _, c := range d.clauses {
		for _, t := range c.GetTerms() {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// ToTokenSequence returns each clause's logic sequence verbatim, for
// diagnostic round-tripping against a compiler (see pkg/logicparse).
func (d *DNFLogicDef) ToTokenSequence() [][]term.ID {
	out := make([][]term.ID, len(d.clauses))
	for i, c := range d.clauses {
		out[i] = append([]term.ID(nil), c.logic...)
	}
	return out
}
