package rando

import (
	"errors"
	"fmt"
	"sort"

	"github.com/randocore/randocore/pkg/logic"
	"github.com/randocore/randocore/pkg/progression"
	"github.com/randocore/randocore/pkg/randoerrors"
	"github.com/randocore/randocore/pkg/rng"
	"github.com/randocore/randocore/pkg/sphere"
	"github.com/randocore/randocore/pkg/term"
)

// RunResult is the output of a completed Randomizer.Run: one entry per
// stage, each holding one placement list per group, in declaration
// order.
type RunResult struct {
	StagedPlacements [][][]RandoPlacement
}

// EntriesFactory builds a fresh set of MainUpdater entries. The
// Randomizer calls it once per ProgressionManager it constructs (one per
// stage pass per attempt), since an Entry's one-shot internal state
// (PlacementEntry.obtained) must not leak between independent passes.
type EntriesFactory func() []progression.Entry

// Randomizer drives the full pipeline described in §4.9: PermuteAll,
// RandomizeForward per look-ahead stage, Randomize for the final stage,
// Rerandomize back over the look-ahead stages, retrying the whole
// attempt on OutOfLocationsError.
type Randomizer struct {
	lm          *logic.LogicManager
	stages      []*RandomizationStage
	stateValued []term.ID
	rng         *rng.RNG
	entries     EntriesFactory
	monitor     Monitor
	maxAttempts int

	permuted [][]permutedGroup // attempt-scoped: [stage][group]
}

// Option configures a Randomizer at construction.
type Option func(*Randomizer)

// WithMonitor installs m in place of NopMonitor.
func WithMonitor(m Monitor) Option {
	return func(r *Randomizer) { r.monitor = m }
}

// WithMaxAttempts bounds the number of OutOfLocationsError retries. 0
// (the default) means unbounded.
func WithMaxAttempts(n int) Option {
	return func(r *Randomizer) { r.maxAttempts = n }
}

// WithStateValued marks terms as state-valued on every ProgressionManager
// the Randomizer builds (see progression.NewProgressionManager).
func WithStateValued(ids ...term.ID) Option {
	return func(r *Randomizer) { r.stateValued = append(r.stateValued, ids...) }
}

// NewRandomizer builds a Randomizer over stages (in pipeline order),
// seeded by rngSource and wired to lm via entries.
func NewRandomizer(lm *logic.LogicManager, stages []*RandomizationStage, rngSource *rng.RNG, entries EntriesFactory, opts ...Option) *Randomizer {
	r := &Randomizer{
		lm:      lm,
		stages:  stages,
		rng:     rngSource,
		entries: entries,
		monitor: NopMonitor{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the full pipeline, retrying on OutOfLocationsError until
// it either succeeds, hits a non-retryable error, or (if WithMaxAttempts
// was set) exhausts its attempt budget.
func (rz *Randomizer) Run() (*RunResult, error) {
	rz.monitor.RunStarted(rz.rng.Seed())
	attempt := 0
	for {
		attempt++
		rz.monitor.Attempt(attempt)
		result, err := rz.runAttempt()
		if err == nil {
			return result, nil
		}
		var ool *randoerrors.OutOfLocationsError
		if !errors.As(err, &ool) {
			return nil, err
		}
		rz.monitor.Retry(err)
		rz.monitor.OutOfLocations(ool.Stage, attempt, ool)
		if rz.maxAttempts > 0 && attempt >= rz.maxAttempts {
			return nil, fmt.Errorf("randomizer: exhausted %d attempts: %w", attempt, err)
		}
	}
}

func (rz *Randomizer) runAttempt() (*RunResult, error) {
	n := len(rz.stages)
	if n == 0 {
		return &RunResult{}, nil
	}

	rz.permuteAll()

	staged := make([][][]RandoPlacement, n)

	// Stage A: forward pass. Stages 0 .. n-2, each with later stages'
	// raw items pre-granted as "assumed obtainable".
	for i := 0; i < n-1; i++ {
		placements, err := rz.randomizeForward(i)
		if err != nil {
			return nil, annotateStage(err, i)
		}
		staged[i] = placements
	}

	// Stage B: final stage, with every earlier stage's forward result
	// now fixed.
	finalPlacements, err := rz.randomize(n-1, sphere.PlacedPermanent, staged)
	if err != nil {
		return nil, annotateStage(err, n-1)
	}
	staged[n-1] = finalPlacements

	// Stage C: rerandomize the look-ahead stages in reverse, with every
	// other stage's current placements (forward or already-rerandomized)
	// fixed.
	for i := n - 2; i >= 0; i-- {
		placements, err := rz.randomize(i, sphere.PlacedPermanent, staged)
		if err != nil {
			return nil, annotateStage(err, i)
		}
		staged[i] = placements
	}

	result := &RunResult{StagedPlacements: staged}
	if err := rz.Validate(result); err != nil {
		rz.monitor.ValidationFailed(err)
		return nil, err
	}
	return result, nil
}

func annotateStage(err error, stage int) error {
	var ool *randoerrors.OutOfLocationsError
	if errors.As(err, &ool) {
		ool.Stage = stage
	}
	return err
}

// permuteAll assigns every stage/group's items and locations a priority
// derived from a fresh shuffle: priority = index in the shuffled order,
// then items are stable-sorted descending (so the lowest-priority item
// ends up last — first to propose, per GroupItemSelector's stack
// convention) and locations stable-sorted ascending.
func (rz *Randomizer) permuteAll() {
	rz.permuted = make([][]permutedGroup, len(rz.stages))
	for si, stage := range rz.stages {
		groups := make([]permutedGroup, len(stage.Groups))
		for gi, gs := range stage.Groups {
			groups[gi] = permutedGroup{
				name:      gs.Name,
				items:     rz.permuteItems(gs.Items),
				locations: rz.permuteLocations(gs.Locations),
				capacity:  gs.Capacity,
				couple:    gs.Couple,
			}
		}
		rz.permuted[si] = groups
	}
}

func (rz *Randomizer) permuteItems(specs []ItemSpec) []permutedItem {
	order := append([]ItemSpec(nil), specs...)
	rz.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	items := make([]permutedItem, len(order))
	for i, spec := range order {
		items[i] = permutedItem{spec: spec, priority: float64(i)}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].priority > items[j].priority })
	return items
}

func (rz *Randomizer) permuteLocations(specs []LocationSpec) []permutedLocation {
	order := append([]LocationSpec(nil), specs...)
	rz.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	locs := make([]permutedLocation, len(order))
	for i, spec := range order {
		locs[i] = permutedLocation{spec: spec, priority: float64(i)}
	}
	sort.SliceStable(locs, func(i, j int) bool { return locs[i].priority < locs[j].priority })
	return locs
}

// buildGroups constructs a fresh, unplaced sphere.Group slice from a
// permutation, so every stage pass starts from Placed/Reachable == None
// regardless of what an earlier pass did to its own object graph.
func buildGroups(pgs []permutedGroup) []*sphere.Group {
	groups := make([]*sphere.Group, len(pgs))
	for i, pg := range pgs {
		items := make([]sphere.Item, len(pg.items))
		for j, pi := range pg.items {
			it := &ranItem{name: pi.spec.Name, priority: pi.priority, effects: pi.spec.Effects}
			items[j] = it
			if reg, ok := pg.couple.(sphere.Registrar); ok {
				reg.Register(it)
			}
		}
		locs := make([]sphere.Location, len(pg.locations))
		for j, pl := range pg.locations {
			locs[j] = &ranLocation{name: pl.spec.Name, priority: pl.priority, logicTerm: pl.spec.LogicTerm}
		}
		groups[i] = &sphere.Group{
			Name:      pg.name,
			Selector:  sphere.NewGroupItemSelector(pg.name, items, pg.capacity, pg.couple),
			Locations: locs,
		}
	}
	return groups
}

func (rz *Randomizer) newHookedPM() (*progression.ProgressionManager, *progression.MainUpdater) {
	pm := progression.NewProgressionManager(rz.lm, rz.stateValued...)
	mu := progression.NewMainUpdater()
	for _, e := range rz.entries() {
		mu.AddEntry(e)
	}
	mu.Hook(pm)
	return pm, mu
}

// randomizeForward builds stage i with later stages' raw items
// pre-granted unconditionally (they aren't decided yet, so this models
// "assumed obtainable eventually" rather than a real placement).
func (rz *Randomizer) randomizeForward(i int) ([][]RandoPlacement, error) {
	pm, mu := rz.newHookedPM()
	for j := i + 1; j < len(rz.stages); j++ {
		for _, pg := range rz.permuted[j] {
			for _, pi := range pg.items {
				pm.Add(&progression.IncrItem{ItemName: pi.spec.Name, Effects: pi.spec.Effects})
			}
		}
	}

	groups := buildGroups(rz.permuted[i])
	builder := sphere.NewSphereBuilder(pm, mu, groups, sphere.PlacedTemporary)
	spheres, err := builder.AdvanceAll()
	if err != nil {
		return nil, err
	}
	rz.reportSpheres(i, spheres)
	return rz.stages[i].Strategy.PlaceItems(rz.stages[i], spheres, sphere.PlacedTemporary)
}

// reportSpheres logs one SphereAdvanced event per completed sphere,
// summing accepted items across every group in that sphere.
func (rz *Randomizer) reportSpheres(stage int, spheres []sphere.Sphere) {
	for si, sp := range spheres {
		accepted := 0
		for _, g := range sp.Groups {
			accepted += len(g.AcceptedItems)
		}
		rz.monitor.SphereAdvanced(stage, si, accepted)
	}
}

// randomize builds stage i with every OTHER stage's currently-decided
// placements pre-granted as permanent, real items (not raw specs): used
// both for the final stage (staged holds only forward results so far)
// and for each Rerandomize pass (staged holds the latest decision for
// every stage except i).
func (rz *Randomizer) randomize(i int, placed sphere.Placed, staged [][][]RandoPlacement) ([][]RandoPlacement, error) {
	pm, mu := rz.newHookedPM()
	for j, groupPlacements := range staged {
		if j == i || groupPlacements == nil {
			continue
		}
		for _, placements := range groupPlacements {
			for _, p := range placements {
				pm.Add(p.Item.Grant())
			}
		}
	}

	groups := buildGroups(rz.permuted[i])
	builder := sphere.NewSphereBuilder(pm, mu, groups, placed)
	spheres, err := builder.AdvanceAll()
	if err != nil {
		return nil, err
	}
	rz.reportSpheres(i, spheres)
	return rz.stages[i].Strategy.PlaceItems(rz.stages[i], spheres, placed)
}

// Validate replays every placement from result into a fresh
// ProgressionManager and confirms each placement's location is
// reachable once all items are granted — the §8 "Randomizer validity"
// property.
func (rz *Randomizer) Validate(result *RunResult) error {
	pm, _ := rz.newHookedPM()
	for _, stagePlacements := range result.StagedPlacements {
		for _, groupPlacements := range stagePlacements {
			for _, p := range groupPlacements {
				pm.Add(p.Item.Grant())
			}
		}
	}

	var violations []string
	for _, stagePlacements := range result.StagedPlacements {
		for _, groupPlacements := range stagePlacements {
			for _, p := range groupPlacements {
				if !pm.Has(p.Location.LogicTerm()) {
					violations = append(violations, fmt.Sprintf("%s@%s unreachable", p.Item.Name(), p.Location.Name()))
				}
			}
		}
	}
	if len(violations) > 0 {
		return &randoerrors.ValidationError{Violations: violations}
	}
	return nil
}
