package progression

import (
	"fmt"

	"github.com/randocore/randocore/pkg/logic"
	"github.com/randocore/randocore/pkg/term"
)

// Entry is one MainUpdater watcher: it observes a set of terms and
// fires when any of them change.
type Entry interface {
	Name() string
	WatchedTerms() []term.ID
	Fire(pm *ProgressionManager, changedTerm term.ID)
}

// resettableEntry is an optional capability: entries carrying one-shot
// internal state (e.g. "already granted") implement it so MainUpdater
// can return them to their pre-Hook state on Reset.
type resettableEntry interface {
	resetEntry()
}

// PlacementEntry watches a location term and grants an item the first
// time the location becomes reachable. Used both for vanilla/pre-placed
// items (NewPrePlacedItemUpdateEntry) and ordinary waypoint placements
// — §4.6 describes these as "equivalent shape".
type PlacementEntry struct {
	item     Item
	location term.ID
	obtained bool
}

// NewPlacementEntry builds a placement watcher for item at location.
func NewPlacementEntry(item Item, location term.ID) *PlacementEntry {
	return &PlacementEntry{item: item, location: location}
}

// NewPrePlacedItemUpdateEntry is the constructor used for items fixed
// ahead of a randomization run; it shares PlacementEntry's shape.
func NewPrePlacedItemUpdateEntry(item Item, location term.ID) *PlacementEntry {
	return NewPlacementEntry(item, location)
}

func (e *PlacementEntry) Name() string {
	return fmt.Sprintf("placement(%s@%s)", e.item.Name(), e.location)
}

func (e *PlacementEntry) WatchedTerms() []term.ID { return []term.ID{e.location} }

func (e *PlacementEntry) Fire(pm *ProgressionManager, _ term.ID) {
	if e.obtained || !pm.Has(e.location) {
		return
	}
	e.item.AddTo(pm)
	e.obtained = true
}

func (e *PlacementEntry) resetEntry() { e.obtained = false }

// ManagedStateEntry re-runs a DNFLogicDef's incremental
// CheckForUpdatedState path whenever one of its referenced terms
// changes, writing the result back into the target term's state union.
type ManagedStateEntry struct {
	target  term.ID
	def     *logic.DNFLogicDef
	watched []term.ID
}

// NewManagedStateEntry watches def's referenced terms and writes
// results back to target's state union.
func NewManagedStateEntry(target term.ID, def *logic.DNFLogicDef) *ManagedStateEntry {
	return &ManagedStateEntry{target: target, def: def, watched: def.ReferencedTerms()}
}

func (e *ManagedStateEntry) Name() string {
	return fmt.Sprintf("managed-state(%s)", e.target)
}

func (e *ManagedStateEntry) WatchedTerms() []term.ID {
	return append([]term.ID(nil), e.watched...)
}

func (e *ManagedStateEntry) Fire(pm *ProgressionManager, changedTerm term.ID) {
	cur := pm.GetState(e.target)
	newUnion, ok := e.def.CheckForUpdatedState(pm, cur, changedTerm)
	if !ok {
		return
	}
	pm.setStateDirect(e.target, newUnion)
}

// LogicGateEntry grants a single target term, one time, the first
// moment a plain (non-state) DNFLogicDef over other terms evaluates
// true — the general form PlacementEntry's "single location term"
// special case is built from.
type LogicGateEntry struct {
	target   term.ID
	def      *logic.DNFLogicDef
	watched  []term.ID
	obtained bool
}

// NewLogicGateEntry watches def's referenced terms and grants target
// the first time def.EvaluateLogic(pm) succeeds.
func NewLogicGateEntry(target term.ID, def *logic.DNFLogicDef) *LogicGateEntry {
	return &LogicGateEntry{target: target, def: def, watched: def.ReferencedTerms()}
}

func (e *LogicGateEntry) Name() string {
	return fmt.Sprintf("logic-gate(%s)", e.target)
}

func (e *LogicGateEntry) WatchedTerms() []term.ID {
	return append([]term.ID(nil), e.watched...)
}

func (e *LogicGateEntry) Fire(pm *ProgressionManager, _ term.ID) {
	if e.obtained || !e.def.EvaluateLogic(pm) {
		return
	}
	pm.Incr(e.target, 1)
	e.obtained = true
}

func (e *LogicGateEntry) resetEntry() { e.obtained = false }
