package state

// LazyStateBuilder is a copy-on-write mutable view over a base State,
// used while a Clause walks its state logic. It must never mutate the
// shared base State; the first write to any field allocates a private
// overlay, and every write thereafter touches only that overlay.
type LazyStateBuilder struct {
	base State

	dirtyBools   []bool
	overlayBools []bool
	dirtyInts    []bool
	overlayInts  []int
}

// NewLazyStateBuilder wraps base for mutation. If base is indeterminate,
// the builder starts from the manager's defaults instead, since an
// indeterminate base carries no field data to copy-on-write over.
func NewLazyStateBuilder(base State) *LazyStateBuilder {
	if base.indeterminate {
		base = base.mgr.StartState()
	}
	return &LazyStateBuilder{base: base}
}

func (b *LazyStateBuilder) ensureBoolOverlay() {
	if b.dirtyBools != nil {
		return
	}
	n := len(b.base.bools)
	b.dirtyBools = make([]bool, n)
	b.overlayBools = append([]bool(nil), b.base.bools...)
}

func (b *LazyStateBuilder) ensureIntOverlay() {
	if b.dirtyInts != nil {
		return
	}
	n := len(b.base.ints)
	b.dirtyInts = make([]bool, n)
	b.overlayInts = append([]int(nil), b.base.ints...)
}

// GetBool reads the current value of a boolean field, from the overlay
// if it has been written, else from the base.
func (b *LazyStateBuilder) GetBool(id int) bool {
	if b.dirtyBools != nil {
		return b.overlayBools[id]
	}
	return b.base.bools[id]
}

// SetBool writes a boolean field, allocating the overlay on first write.
func (b *LazyStateBuilder) SetBool(id int, v bool) {
	b.ensureBoolOverlay()
	b.overlayBools[id] = v
	b.dirtyBools[id] = true
}

// GetInt reads the current value of an integer field.
func (b *LazyStateBuilder) GetInt(id int) int {
	if b.dirtyInts != nil {
		return b.overlayInts[id]
	}
	return b.base.ints[id]
}

// SetInt writes an integer field, allocating the overlay on first write.
func (b *LazyStateBuilder) SetInt(id int, v int) {
	b.ensureIntOverlay()
	b.overlayInts[id] = v
	b.dirtyInts[id] = true
}

// AddInt adds delta to the current value of an integer field.
func (b *LazyStateBuilder) AddInt(id int, delta int) {
	b.SetInt(id, b.GetInt(id)+delta)
}

// Clone produces an independent LazyStateBuilder branching from the
// current (possibly already-overlaid) values, for use when a
// StateModifier fans out into several output branches that must each
// continue mutating independently.
func (b *LazyStateBuilder) Clone() *LazyStateBuilder {
	clone := &LazyStateBuilder{base: b.base}
	if b.dirtyBools != nil {
		clone.dirtyBools = append([]bool(nil), b.dirtyBools...)
		clone.overlayBools = append([]bool(nil), b.overlayBools...)
	}
	if b.dirtyInts != nil {
		clone.dirtyInts = append([]bool(nil), b.dirtyInts...)
		clone.overlayInts = append([]int(nil), b.overlayInts...)
	}
	return clone
}

// GetState materializes the builder's current values into an immutable
// State, without mutating the original base.
func (b *LazyStateBuilder) GetState() State {
	out := State{mgr: b.base.mgr}
	if b.dirtyBools != nil {
		out.bools = append([]bool(nil), b.overlayBools...)
	} else {
		out.bools = append([]bool(nil), b.base.bools...)
	}
	if b.dirtyInts != nil {
		out.ints = append([]int(nil), b.overlayInts...)
	} else {
		out.ints = append([]int(nil), b.base.ints...)
	}
	return out
}
