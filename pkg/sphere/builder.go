package sphere

import (
	"github.com/randocore/randocore/pkg/progression"
	"github.com/randocore/randocore/pkg/randoerrors"
)

// Group bundles one stage-group's selector with the locations its
// accepted items are meant to unlock.
type Group struct {
	Name      string
	Selector  *GroupItemSelector
	Locations []Location
}

// Sphere is the result of one SphereBuilder.Advance call: the items
// accepted this round and the locations that newly became reachable,
// per group, in group declaration order.
type Sphere struct {
	Groups []SphereGroup
}

// SphereGroup is one group's slice of a Sphere.
type SphereGroup struct {
	Name               string
	AcceptedItems      []Item
	ReachableLocations []Location
}

// SphereBuilder owns a PM, its hooked MainUpdater, and one
// GroupItemSelector per group in a stage. Advance exposes the sequence
// of spheres: batches of accepted items whose grant made at least one
// new location reachable.
type SphereBuilder struct {
	pm     *progression.ProgressionManager
	mu     *progression.MainUpdater
	groups []*Group
	placed Placed
}

// NewSphereBuilder builds a SphereBuilder over groups, already hooked to
// pm/mu by the caller. placed is the Placed value (Temporary or
// Permanent) newly-proposed items are marked with as they move through
// this builder's spheres.
func NewSphereBuilder(pm *progression.ProgressionManager, mu *progression.MainUpdater, groups []*Group, placed Placed) *SphereBuilder {
	return &SphereBuilder{pm: pm, mu: mu, groups: groups, placed: placed}
}

// Groups returns the builder's groups in declaration order.
func (b *SphereBuilder) Groups() []*Group { return b.groups }

// Finished reports whether every selector has nothing left to propose
// or has exhausted its cap — the condition under which AdvanceAll stops.
func (b *SphereBuilder) Finished() bool {
	for _, g := range b.groups {
		if !g.Selector.Finished() && g.Selector.Cap() > 0 {
			return false
		}
	}
	return true
}

// AdvanceAll drives Advance to completion, returning every sphere
// produced in order.
func (b *SphereBuilder) AdvanceAll() ([]Sphere, error) {
	var spheres []Sphere
	for !b.Finished() {
		sp, done, err := b.Advance()
		if err != nil {
			return spheres, err
		}
		if done {
			break
		}
		spheres = append(spheres, sp)
	}
	return spheres, nil
}

// Advance runs one iteration of the §4.7 algorithm: it proposes the
// lowest-priority layer of items across all groups, checks whether any
// new location became reachable, and either accepts the layer (emitting
// a Sphere) or rejects it and tries the next priority layer. done is
// true when no selector has anything left to propose.
func (b *SphereBuilder) Advance() (Sphere, bool, error) {
	for {
		frontier, any := b.frontierPriority()
		if !any {
			return Sphere{}, true, nil
		}

		snap := b.pm.Snapshot()

		proposed := b.proposeFrontier(frontier)
		if len(proposed) == 0 {
			// Every selector at this priority was already exhausted by
			// CollectDiscardedTransitions; nothing to do this round.
			return Sphere{}, true, nil
		}

		for _, it := range proposed {
			it.Grant().AddTo(b.pm)
		}
		b.pm.Drain()

		sphere, progressed := b.collectReachable()
		if !progressed {
			b.pm.Restore(snap)
			for _, g := range b.groups {
				if _, ok := proposedByGroup(proposed, g); !ok {
					continue
				}
				if err := g.Selector.RejectLast(); err != nil {
					return Sphere{}, false, err
				}
			}
			if b.allExhausted() {
				return Sphere{}, false, &randoerrors.OutOfLocationsError{Cause: "no selector could make further progress"}
			}
			continue
		}

		for _, g := range b.groups {
			if _, ok := proposedByGroup(proposed, g); ok {
				if err := g.Selector.AcceptLast(); err != nil {
					return Sphere{}, false, err
				}
			}
			g.Selector.FinishAccepting()
		}
		return sphere, false, nil
	}
}

func (b *SphereBuilder) frontierPriority() (float64, bool) {
	best := 0.0
	found := false
	for _, g := range b.groups {
		p, ok := g.Selector.TryGetNextProposalPriority()
		if !ok {
			continue
		}
		if !found || p < best {
			best = p
			found = true
		}
	}
	return best, found
}

func (b *SphereBuilder) proposeFrontier(frontier float64) []Item {
	var proposed []Item
	for _, g := range b.groups {
		p, ok := g.Selector.TryGetNextProposalPriority()
		if !ok || p != frontier {
			continue
		}
		if it, ok := g.Selector.TryProposeNext(b.placed); ok {
			proposed = append(proposed, it)
		}
	}
	return proposed
}

func (b *SphereBuilder) collectReachable() (Sphere, bool) {
	var sphere Sphere
	progressed := false
	for _, g := range b.groups {
		var reachable []Location
		for _, loc := range g.Locations {
			if loc.Reachable() != PlacedNone {
				continue
			}
			if b.pm.Has(loc.LogicTerm()) {
				loc.SetReachable(b.placed)
				reachable = append(reachable, loc)
				progressed = true
			}
		}
		accepted, _ := g.Selector.TryRecallLast()
		var acc []Item
		if accepted != nil {
			acc = []Item{accepted}
		}
		sphere.Groups = append(sphere.Groups, SphereGroup{
			Name:               g.Name,
			AcceptedItems:      acc,
			ReachableLocations: reachable,
		})
	}
	return sphere, progressed
}

func (b *SphereBuilder) allExhausted() bool {
	for _, g := range b.groups {
		if !g.Selector.Finished() && g.Selector.Cap() > 0 {
			return false
		}
	}
	return true
}

func proposedByGroup(proposed []Item, g *Group) (Item, bool) {
	last, ok := g.Selector.TryRecallLast()
	if !ok {
		return nil, false
	}
	for _, it := range proposed {
		if it == last {
			return it, true
		}
	}
	return nil, false
}
