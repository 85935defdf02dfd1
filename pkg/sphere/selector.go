package sphere

import (
	"github.com/randocore/randocore/pkg/randoerrors"
)

// GroupItemSelector is a stack machine over one group's items: items
// flow unusedItems -> proposedItems -> {acceptedItems | rejectedItems},
// with rejectedItems recycled back onto unusedItems at the end of each
// sphere (FinishAccepting).
type GroupItemSelector struct {
	name string

	unusedItems    []Item // top = lowest priority, proposed first
	proposedItems  []Item
	rejectedItems  []Item
	acceptedItems  []Item
	discardedItems []Item

	couple Couple
	cap    int
}

// NewGroupItemSelector builds a selector over items, already ordered by
// PermuteAll so the last element of items is the lowest-priority (first
// to propose). couple may be nil for ungrouped/uncoupled selectors.
func NewGroupItemSelector(name string, items []Item, capacity int, couple Couple) *GroupItemSelector {
	return &GroupItemSelector{
		name:        name,
		unusedItems: append([]Item(nil), items...),
		couple:      couple,
		cap:         capacity,
	}
}

// Name returns the selector's group name, for diagnostics and
// OutOfLocationsError.Selector.
func (s *GroupItemSelector) Name() string { return s.name }

// Cap returns the current live-proposal throttle.
func (s *GroupItemSelector) Cap() int { return s.cap }

// IncrementCap adjusts the cap by n. n may be negative as long as the
// result stays >= 0; a negative result raises OutOfLocationsError.
func (s *GroupItemSelector) IncrementCap(n int) error {
	if s.cap+n < 0 {
		return &randoerrors.OutOfLocationsError{Selector: s.name, Cause: "cap went negative"}
	}
	s.cap += n
	return nil
}

// Finished reports whether this selector has nothing left to propose.
func (s *GroupItemSelector) Finished() bool {
	return len(s.unusedItems) == 0
}

// AcceptedItems returns this selector's accepted-so-far items, in
// acceptance order.
func (s *GroupItemSelector) AcceptedItems() []Item {
	return append([]Item(nil), s.acceptedItems...)
}

// DiscardedItems returns items discarded as a coupled dual of an
// already-permanent item in the other group.
func (s *GroupItemSelector) DiscardedItems() []Item {
	return append([]Item(nil), s.discardedItems...)
}

// CollectDiscardedTransitions pops items from the top of unusedItems
// whose coupled dual has already settled Permanent in its own group,
// routing them to discardedItems instead of ever proposing them.
func (s *GroupItemSelector) CollectDiscardedTransitions() []Item {
	if s.couple == nil {
		return nil
	}
	var collected []Item
	for len(s.unusedItems) > 0 {
		top := s.unusedItems[len(s.unusedItems)-1]
		dual, ok := s.couple.Dual(top)
		if !ok || dual.Placed() != PlacedPermanent {
			break
		}
		s.unusedItems = s.unusedItems[:len(s.unusedItems)-1]
		s.discardedItems = append(s.discardedItems, top)
		collected = append(collected, top)
	}
	return collected
}

// TryGetNextProposalPriority peeks the priority of the next item that
// would be proposed, without mutating any stack.
func (s *GroupItemSelector) TryGetNextProposalPriority() (float64, bool) {
	s.CollectDiscardedTransitions()
	if len(s.unusedItems) == 0 || s.cap <= 0 {
		return 0, false
	}
	return s.unusedItems[len(s.unusedItems)-1].Priority(), true
}

// TryProposeNext pops the top of unusedItems (after discarding any
// settled coupled duals), marks it placed, and pushes it onto
// proposedItems.
func (s *GroupItemSelector) TryProposeNext(placed Placed) (Item, bool) {
	s.CollectDiscardedTransitions()
	if len(s.unusedItems) == 0 || s.cap <= 0 {
		return nil, false
	}
	it := s.unusedItems[len(s.unusedItems)-1]
	s.unusedItems = s.unusedItems[:len(s.unusedItems)-1]
	it.SetPlaced(placed)
	s.proposedItems = append(s.proposedItems, it)
	s.cap--
	return it, true
}

// TryRecallLast peeks the most recently proposed item without popping
// it.
func (s *GroupItemSelector) TryRecallLast() (Item, bool) {
	if len(s.proposedItems) == 0 {
		return nil, false
	}
	return s.proposedItems[len(s.proposedItems)-1], true
}

// AcceptLast promotes the most recently proposed item to accepted.
// Raises a DomainError if proposedItems is empty.
func (s *GroupItemSelector) AcceptLast() error {
	if len(s.proposedItems) == 0 {
		return randoerrors.NewDomainError("GroupItemSelector.AcceptLast", "selector %q: no proposed item to accept", s.name)
	}
	n := len(s.proposedItems) - 1
	it := s.proposedItems[n]
	s.proposedItems = s.proposedItems[:n]
	s.acceptedItems = append(s.acceptedItems, it)
	return nil
}

// RejectLast demotes the most recently proposed item to rejectedItems
// and restores its cap slot. Raises a DomainError if proposedItems is
// empty.
func (s *GroupItemSelector) RejectLast() error {
	if len(s.proposedItems) == 0 {
		return randoerrors.NewDomainError("GroupItemSelector.RejectLast", "selector %q: no proposed item to reject", s.name)
	}
	n := len(s.proposedItems) - 1
	it := s.proposedItems[n]
	s.proposedItems = s.proposedItems[:n]
	it.SetPlaced(PlacedNone)
	s.rejectedItems = append(s.rejectedItems, it)
	s.cap++
	return nil
}

// RejectCurrentAndUnacceptAll resets the entire in-progress sphere:
// every currently-proposed item returns to unusedItems (un-placed),
// restoring its cap slot.
func (s *GroupItemSelector) RejectCurrentAndUnacceptAll() {
	for len(s.proposedItems) > 0 {
		n := len(s.proposedItems) - 1
		it := s.proposedItems[n]
		s.proposedItems = s.proposedItems[:n]
		it.SetPlaced(PlacedNone)
		s.unusedItems = append(s.unusedItems, it)
		s.cap++
	}
}

// FinishAccepting closes the current sphere, recycling rejectedItems
// back onto unusedItems so they are proposable again in a later sphere.
func (s *GroupItemSelector) FinishAccepting() {
	for len(s.rejectedItems) > 0 {
		n := len(s.rejectedItems) - 1
		it := s.rejectedItems[n]
		s.rejectedItems = s.rejectedItems[:n]
		s.unusedItems = append(s.unusedItems, it)
	}
}

// Finish performs the end-of-group sweep: every remaining unused item is
// routed to discardedItems. Raises a DomainError if proposedItems or
// rejectedItems still hold items — Finish must only be called once every
// sphere has been fully accepted or rejected.
func (s *GroupItemSelector) Finish() error {
	if len(s.proposedItems) > 0 || len(s.rejectedItems) > 0 {
		return randoerrors.NewDomainError("GroupItemSelector.Finish", "selector %q: finish called with uncollected accepted items", s.name)
	}
	s.discardedItems = append(s.discardedItems, s.unusedItems...)
	s.unusedItems = nil
	return nil
}
