package sphere

import (
	"fmt"

	"github.com/randocore/randocore/pkg/progression"
	"github.com/randocore/randocore/pkg/term"
)

// Placed is the canonical tri-state for items and locations as they
// move through a GroupItemSelector's stacks and a SphereBuilder's
// forward/permanent passes.
type Placed int

const (
	PlacedNone Placed = iota
	PlacedTemporary
	PlacedPermanent
)

// String returns the string representation of a Placed state.
func (p Placed) String() string {
	switch p {
	case PlacedNone:
		return "None"
	case PlacedTemporary:
		return "Temporary"
	case PlacedPermanent:
		return "Permanent"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// Item is the consumed collaborator contract for a thing a
// GroupItemSelector can propose: a name, a float priority assigned by
// PermuteAll's shuffle, and its current Placed state.
type Item interface {
	Name() string
	Priority() float64
	Placed() Placed
	SetPlaced(Placed)

	// Grant returns the underlying progression.Item this rando item
	// applies once accepted into a sphere.
	Grant() progression.Item
}

// Location is the consumed collaborator contract for a place a
// GroupItemSelector's group can unlock: a name, a priority, and its
// current reachability state.
type Location interface {
	Name() string
	Priority() float64
	Reachable() Placed
	SetReachable(Placed)

	// LogicTerm is the term whose reachability this location tracks,
	// queried against the SphereBuilder's PM after each propagation pass.
	LogicTerm() term.ID
}

// Couple links two Items across a pair of coupled groups (e.g. a small
// key and the door it opens back): when one member of the pair has
// already become Permanent in its own group's sphere, the other member
// is discarded rather than proposed again.
type Couple interface {
	Dual(it Item) (Item, bool)
}
