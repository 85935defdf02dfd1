package progression

import (
	"github.com/randocore/randocore/pkg/logic"
	"github.com/randocore/randocore/pkg/state"
	"github.com/randocore/randocore/pkg/term"
)

// ProgressionManager is the mutable fixed-point store of term values
// and state unions the logic evaluator reads through the logic.PM
// port. It is constructed per run, mutated monotonically within a run,
// and returned to the start state between stages via Reset.
type ProgressionManager struct {
	lm *logic.LogicManager

	stateValued map[term.ID]bool
	obtained    map[term.ID]int
	stateUnions map[term.ID]*state.StateUnion

	mu      *MainUpdater
	pending []term.ID
}

// NewProgressionManager constructs a PM bound to lm. stateValued lists
// the terms this PM treats as state-valued: Get on these returns 0/1
// based on whether a state union has been recorded, rather than a plain
// obtained count.
func NewProgressionManager(lm *logic.LogicManager, stateValued ...term.ID) *ProgressionManager {
	sv := make(map[term.ID]bool, len(stateValued))
	for _, id := range stateValued {
		sv[id] = true
	}
	return &ProgressionManager{
		lm:          lm,
		stateValued: sv,
		obtained:    make(map[term.ID]int),
		stateUnions: make(map[term.ID]*state.StateUnion),
	}
}

// LogicManager returns the registry this PM was built against.
func (pm *ProgressionManager) LogicManager() *logic.LogicManager {
	return pm.lm
}

// Get returns obtained[id] for a plain term, or 0/1 for a state-valued
// term depending on whether its state union has been recorded.
func (pm *ProgressionManager) Get(id term.ID) int {
	if pm.stateValued[id] {
		if pm.stateUnions[id] != nil {
			return 1
		}
		return 0
	}
	return pm.obtained[id]
}

// Has reports Get(id) > 0.
func (pm *ProgressionManager) Has(id term.ID) bool {
	return pm.Get(id) > 0
}

// GetState returns id's current state union, or nil if not yet
// reachable or not state-valued.
func (pm *ProgressionManager) GetState(id term.ID) *state.StateUnion {
	return pm.stateUnions[id]
}

// Incr increases id's obtained count by n (n may be negative only if
// the result stays callers' responsibility not to violate monotonicity
// within a stage; the core does not itself clamp this), enqueuing id
// for propagation.
func (pm *ProgressionManager) Incr(id term.ID, n int) {
	pm.obtained[id] += n
	pm.enqueue(id)
}

// GiveState merges su into id's recorded state union, replacing it only
// if the result is a strict improvement (per the monotonicity
// invariant), and enqueues id for propagation when it changes.
func (pm *ProgressionManager) GiveState(id term.ID, su state.StateUnion) {
	cur := pm.stateUnions[id]
	base := state.None()
	if cur != nil {
		base = *cur
	}
	merged, ok := state.TryUnion(base, su)
	if !ok {
		return
	}
	if cur != nil && state.SameAntichain(merged, *cur) {
		return
	}
	pm.stateUnions[id] = &merged
	pm.enqueue(id)
}

// setStateDirect writes back a union computed elsewhere (the
// incremental CheckForUpdatedState path already merged it), enqueuing
// only if the result differs from what was there before. Used by
// ManagedStateEntry, which must not re-run TryUnion against its own
// already-merged result.
func (pm *ProgressionManager) setStateDirect(id term.ID, su *state.StateUnion) {
	cur := pm.stateUnions[id]
	if su == nil {
		return
	}
	if cur != nil && state.SameAntichain(*su, *cur) {
		return
	}
	pm.stateUnions[id] = su
	pm.enqueue(id)
}

// Add applies each item's effects in turn, then drains to a fixed
// point.
func (pm *ProgressionManager) Add(items ...Item) {
	for _, it := range items {
		it.AddTo(pm)
	}
	pm.Drain()
}

// AddAt applies item's effects exactly as Add does; location is
// accepted for parity with the consumed "Add(item, location)" call
// shape from §4.5 (both ultimately invoke item.AddTo(pm)). Callers that
// need location-triggered granting — i.e. the item should fire only
// once location becomes reachable, not immediately — register a
// PlacementEntry with the MainUpdater before Hook instead.
func (pm *ProgressionManager) AddAt(item Item, location term.ID) {
	_ = location
	pm.Add(item)
}

// Drain processes the pending change queue through the hooked
// MainUpdater until a full pass produces no further change (a fixed
// point). A no-op if pm is not hooked.
func (pm *ProgressionManager) Drain() {
	if pm.mu != nil {
		pm.mu.drainToFixedPoint()
	}
}

// Reset zeros all obtained counts and state unions, resets any
// one-shot entry state on the hooked MainUpdater, and (if hooked)
// replays the initial sweep so PM returns to exactly the state Hook
// originally produced.
func (pm *ProgressionManager) Reset() {
	pm.obtained = make(map[term.ID]int)
	pm.stateUnions = make(map[term.ID]*state.StateUnion)
	pm.pending = nil
	if pm.mu != nil {
		pm.mu.resetAndResweep(pm)
	}
}

func (pm *ProgressionManager) enqueue(id term.ID) {
	pm.pending = append(pm.pending, id)
}

// Snapshot captures obtained counts and state unions for later Restore.
// SphereBuilder uses this to speculatively propose a layer of items,
// observe whether reachability improved, and roll back cleanly when it
// did not — something Incr's monotonic-within-a-stage contract cannot
// undo on its own. It does not capture hooked entries' own one-shot
// internal state (e.g. PlacementEntry.obtained); callers that restore
// across an entry firing are responsible for that, same as Reset.
type Snapshot struct {
	obtained    map[term.ID]int
	stateUnions map[term.ID]*state.StateUnion
}

// Snapshot captures pm's current obtained counts and state unions.
func (pm *ProgressionManager) Snapshot() Snapshot {
	obtained := make(map[term.ID]int, len(pm.obtained))
	for k, v := range pm.obtained {
		obtained[k] = v
	}
	stateUnions := make(map[term.ID]*state.StateUnion, len(pm.stateUnions))
	for k, v := range pm.stateUnions {
		stateUnions[k] = v
	}
	return Snapshot{obtained: obtained, stateUnions: stateUnions}
}

// Restore replaces pm's obtained counts and state unions with snap's,
// discarding anything mutated since Snapshot and clearing the pending
// queue.
func (pm *ProgressionManager) Restore(snap Snapshot) {
	pm.obtained = make(map[term.ID]int, len(snap.obtained))
	for k, v := range snap.obtained {
		pm.obtained[k] = v
	}
	pm.stateUnions = make(map[term.ID]*state.StateUnion, len(snap.stateUnions))
	for k, v := range snap.stateUnions {
		pm.stateUnions[k] = v
	}
	pm.pending = nil
}
