package state

// StateUnion is a minimal antichain of States under the dominance order:
// no element is dominated by another. It represents "at least one of
// these resource configurations is attainable". A zero-element
// StateUnion denotes that no configuration survived (used as an
// intermediate accumulator; callers that need to distinguish
// "not yet reachable" use a nil *StateUnion instead, see the
// progression package).
type StateUnion struct {
	states []State
}

// Empty returns the canonical singleton StateUnion built from mgr's
// dominance-bottom State: "reachable, but with no constraint on which
// resource configuration got you there". Any concrete State unioned
// against Empty dominates and replaces its bottom marker.
func Empty(mgr *StateManager) StateUnion {
	return StateUnion{states: []State{mgr.IndeterminateState()}}
}

// None returns the zero-element StateUnion: no configuration survived.
func None() StateUnion {
	return StateUnion{}
}

// NewStateUnion builds the minimal antichain from a list of States,
// discarding any element dominated by another (ties broken by keeping
// the earlier element, so construction order does not matter for the
// resulting set but does for which representative of equal states
// survives).
func NewStateUnion(states []State) StateUnion {
	return StateUnion{states: reduce(states)}
}

// States returns the antichain's elements. The returned slice must not
// be mutated by callers.
func (u StateUnion) States() []State {
	return u.states
}

// Len returns the number of elements in the antichain.
func (u StateUnion) Len() int {
	return len(u.states)
}

// IsEmpty reports whether the union carries zero elements.
func (u StateUnion) IsEmpty() bool {
	return len(u.states) == 0
}

// reduce computes the minimal antichain from an arbitrary list of
// States: an element survives iff no other (distinct) element of the
// list dominates it. O(n^2) in the candidate count, which is acceptable
// since antichains in practice stay small (a handful of live resource
// configurations).
func reduce(candidates []State) []State {
	kept := make([]State, 0, len(candidates))
	for i, c := range candidates {
		dominated := false
		for j, other := range candidates {
			if i == j {
				continue
			}
			if c.LessEq(other) && !other.LessEq(c) {
				dominated = true
				break
			}
			// Equal elements: keep only the first occurrence.
			if i != j && c.LessEq(other) && other.LessEq(c) && j < i {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, c)
		}
	}
	return kept
}

// Union merges A and B into their combined minimal antichain.
func Union(a, b StateUnion) StateUnion {
	merged := make([]State, 0, len(a.states)+len(b.states))
	merged = append(merged, a.states...)
	merged = append(merged, b.states...)
	return StateUnion{states: reduce(merged)}
}

// TryUnion merges current with newStates. It returns (current, true) if
// no element of newStates improves current (nothing new survives the
// reduction beyond what current already had); it returns (merged, true)
// with a strictly improved antichain otherwise; it returns
// (StateUnion{}, false) only when both current and newStates carry zero
// elements.
func TryUnion(current StateUnion, newStates StateUnion) (StateUnion, bool) {
	if current.IsEmpty() && newStates.IsEmpty() {
		return StateUnion{}, false
	}
	merged := Union(current, newStates)
	if sameAntichain(merged, current) {
		return current, true
	}
	return merged, true
}

// SameAntichain reports whether a and b contain the same set of states,
// ignoring order. Exported for callers (e.g. pkg/progression) that need
// to detect "no strict improvement" themselves when writing back a
// merged union computed some other way than through TryUnion.
func SameAntichain(a, b StateUnion) bool {
	return sameAntichain(a, b)
}

// sameAntichain reports whether a and b contain the same set of states,
// ignoring order. Used to detect "no improvement" in TryUnion without
// relying on slice identity.
func sameAntichain(a, b StateUnion) bool {
	if len(a.states) != len(b.states) {
		return false
	}
	used := make([]bool, len(b.states))
	for _, sa := range a.states {
		found := false
		for j, sb := range b.states {
			if used[j] {
				continue
			}
			if sa.Equal(sb) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
