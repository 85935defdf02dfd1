package rando

import (
	"github.com/randocore/randocore/pkg/progression"
	"github.com/randocore/randocore/pkg/randoerrors"
	"github.com/randocore/randocore/pkg/sphere"
	"github.com/randocore/randocore/pkg/term"
)

// ItemSpec is the caller's declaration of one item a stage's group may
// place: a name and the term deltas it grants once accepted.
type ItemSpec struct {
	Name    string
	Effects map[term.ID]int
}

// LocationSpec is the caller's declaration of one location a stage's
// group may unlock: a name and the term whose reachability gates it.
type LocationSpec struct {
	Name      string
	LogicTerm term.ID
}

// GroupSpec is one group within a RandomizationStage: the items and
// locations it contends over, its live-proposal cap, and an optional
// Couple for paired groups (e.g. small keys and the doors they open).
type GroupSpec struct {
	Name      string
	Items     []ItemSpec
	Locations []LocationSpec
	Capacity  int
	Couple    sphere.Couple
}

// RandoPlacement is one committed item-to-location assignment, the unit
// a RandomizationStage's Strategy hands back to the Randomizer.
type RandoPlacement struct {
	Item     sphere.Item
	Location sphere.Location
}

// Strategy turns a completed sequence of spheres into placements, one
// list per group in declaration order.
type Strategy interface {
	PlaceItems(stage *RandomizationStage, spheres []sphere.Sphere, placed sphere.Placed) ([][]RandoPlacement, error)
}

// RandomizationStage is one pass of the randomizer pipeline: a named set
// of groups and the strategy that converts their spheres into
// placements.
type RandomizationStage struct {
	Name     string
	Groups   []*GroupSpec
	Strategy Strategy
}

// DefaultPlacementStrategy pairs each group's accepted items against its
// newly-reachable locations, in the order spheres produced them. It
// requires the two counts to match per group — the randomizer invariant
// that every stage declares exactly as many items as locations per
// group — and reports a DomainError otherwise rather than guessing.
type DefaultPlacementStrategy struct{}

// PlaceItems implements Strategy by flattening each group's accepted
// items and reachable locations across all spheres and zipping them
// index-wise.
func (DefaultPlacementStrategy) PlaceItems(stage *RandomizationStage, spheres []sphere.Sphere, placed sphere.Placed) ([][]RandoPlacement, error) {
	out := make([][]RandoPlacement, len(stage.Groups))
	for gi, gs := range stage.Groups {
		var items []sphere.Item
		var locs []sphere.Location
		for _, sp := range spheres {
			if gi >= len(sp.Groups) {
				continue
			}
			items = append(items, sp.Groups[gi].AcceptedItems...)
			locs = append(locs, sp.Groups[gi].ReachableLocations...)
		}
		if len(items) != len(locs) {
			return nil, randoerrors.NewDomainError("DefaultPlacementStrategy.PlaceItems",
				"group %q: %d accepted items but %d reachable locations", gs.Name, len(items), len(locs))
		}
		placements := make([]RandoPlacement, len(items))
		for k := range items {
			placements[k] = RandoPlacement{Item: items[k], Location: locs[k]}
		}
		out[gi] = placements
	}
	return out, nil
}

// Monitor receives diagnostics as a run progresses, satisfied in
// production by a randolog.Logger adapter.
type Monitor interface {
	RunStarted(seed uint64)
	Attempt(n int)
	Retry(err error)
	OutOfLocations(stage int, attempt int, cause error)
	SphereAdvanced(stage int, sphereIndex int, accepted int)
	ValidationFailed(err error)
}

// NopMonitor discards everything; the Randomizer's default.
type NopMonitor struct{}

func (NopMonitor) RunStarted(uint64)                  {}
func (NopMonitor) Attempt(int)                        {}
func (NopMonitor) Retry(error)                        {}
func (NopMonitor) OutOfLocations(int, int, error)     {}
func (NopMonitor) SphereAdvanced(int, int, int)       {}
func (NopMonitor) ValidationFailed(error)             {}

// ranItem is the concrete sphere.Item the Randomizer builds from an
// ItemSpec once PermuteAll has assigned it a priority.
type ranItem struct {
	name     string
	priority float64
	placed   sphere.Placed
	effects  map[term.ID]int
}

func (it *ranItem) Name() string              { return it.name }
func (it *ranItem) Priority() float64         { return it.priority }
func (it *ranItem) Placed() sphere.Placed     { return it.placed }
func (it *ranItem) SetPlaced(p sphere.Placed) { it.placed = p }

func (it *ranItem) Grant() progression.Item {
	return &progression.IncrItem{ItemName: it.name, Effects: it.effects}
}

// ranLocation is the concrete sphere.Location the Randomizer builds from
// a LocationSpec once PermuteAll has assigned it a priority.
type ranLocation struct {
	name      string
	priority  float64
	reachable sphere.Placed
	logicTerm term.ID
}

func (l *ranLocation) Name() string          { return l.name }
func (l *ranLocation) Priority() float64     { return l.priority }
func (l *ranLocation) Reachable() sphere.Placed { return l.reachable }
func (l *ranLocation) SetReachable(p sphere.Placed) { l.reachable = p }
func (l *ranLocation) LogicTerm() term.ID    { return l.logicTerm }

// permutedItem/permutedLocation are PermuteAll's output: a spec plus the
// priority it was assigned, independent of any one round's Placed state
// so RandomizeForward/Randomize/Rerandomize can each build a fresh,
// unplaced object graph from the same permutation.
type permutedItem struct {
	spec     ItemSpec
	priority float64
}

type permutedLocation struct {
	spec     LocationSpec
	priority float64
}

type permutedGroup struct {
	name      string
	items     []permutedItem // selector order: last = lowest priority = proposed first
	locations []permutedLocation
	capacity  int
	couple    sphere.Couple
}
