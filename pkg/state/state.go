package state

// State is an immutable, packed snapshot of every declared bool and int
// field. Two States are only comparable if they share the same
// StateManager; comparing States from different managers panics, since
// that can only happen through programmer error (mixing schemas).
//
// A State may instead be "indeterminate": a dominance-bottom marker
// carrying no field data, used as the single element of the canonical
// Empty StateUnion (see Empty). An indeterminate State is dominated by
// every concrete State and equal only to other indeterminate States.
type State struct {
	mgr           *StateManager
	bools         []bool
	ints          []int
	indeterminate bool
}

// Manager returns the StateManager this State was built against.
func (s State) Manager() *StateManager { return s.mgr }

// IsIndeterminate reports whether s is the dominance-bottom marker.
func (s State) IsIndeterminate() bool { return s.indeterminate }

// Bool returns the value of the boolean field with the given id.
func (s State) Bool(id int) bool {
	if s.indeterminate {
		return false
	}
	return s.bools[id]
}

// Int returns the value of the integer field with the given id.
func (s State) Int(id int) int {
	if s.indeterminate {
		return 0
	}
	return s.ints[id]
}

func (s State) mustSameManager(other State) {
	if s.mgr != other.mgr {
		panic("state: comparing States built against different StateManagers")
	}
}

// Equal reports structural equality: same manager, same indeterminate
// flag, and (for concrete states) identical field values.
func (s State) Equal(other State) bool {
	s.mustSameManager(other)
	if s.indeterminate || other.indeterminate {
		return s.indeterminate == other.indeterminate
	}
	for i := range s.bools {
		if s.bools[i] != other.bools[i] {
			return false
		}
	}
	for i := range s.ints {
		if s.ints[i] != other.ints[i] {
			return false
		}
	}
	return true
}

// LessEq reports whether s <= other under the manager's per-field
// dominance order: "any situation reachable starting from s is
// reachable starting from other". An indeterminate s is always <=
// other; a concrete s is never <= an indeterminate other (unless other
// is also indeterminate, handled by the first branch only when both
// are indeterminate, in which case they are equal and hence <=).
func (s State) LessEq(other State) bool {
	s.mustSameManager(other)
	if s.indeterminate {
		return true
	}
	if other.indeterminate {
		return false
	}
	for i, f := range s.mgr.bools {
		if !boolLessEq(s.bools[i], other.bools[i], f.Direction) {
			return false
		}
	}
	for i, f := range s.mgr.ints {
		if !intLessEq(s.ints[i], other.ints[i], f.Direction) {
			return false
		}
	}
	return true
}

// Dominates reports whether other <= s (s is at least as useful as
// other). It is the mirror of LessEq, provided for readability at call
// sites that think in terms of "this state dominates that one".
func (s State) Dominates(other State) bool {
	return other.LessEq(s)
}

func boolLessEq(a, b bool, dir BoolDirection) bool {
	// a <= b iff b is at least as good as a under dir.
	better := func(v bool) int {
		if dir == HigherIsBetterBool {
			if v {
				return 1
			}
			return 0
		}
		// LowerIsBetterBool: false is better.
		if v {
			return 0
		}
		return 1
	}
	return better(a) <= better(b)
}

func intLessEq(a, b int, dir IntDirection) bool {
	if dir == HigherIsBetterInt {
		return a <= b
	}
	return a >= b
}

// With returns a copy of s with the given boolean field set, leaving s
// unmodified. Panics if s is indeterminate; mutate through
// LazyStateBuilder instead when the base might be indeterminate.
func (s State) With(boolID int, v bool) State {
	if s.indeterminate {
		panic("state: cannot mutate an indeterminate State directly")
	}
	out := s.clone()
	out.bools[boolID] = v
	return out
}

// WithInt returns a copy of s with the given integer field set.
func (s State) WithInt(intID int, v int) State {
	if s.indeterminate {
		panic("state: cannot mutate an indeterminate State directly")
	}
	out := s.clone()
	out.ints[intID] = v
	return out
}

func (s State) clone() State {
	return State{
		mgr:   s.mgr,
		bools: append([]bool(nil), s.bools...),
		ints:  append([]int(nil), s.ints...),
	}
}
