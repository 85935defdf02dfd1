package config

import (
	"fmt"

	"github.com/randocore/randocore/pkg/logic"
	"github.com/randocore/randocore/pkg/logicparse"
	"github.com/randocore/randocore/pkg/progression"
	"github.com/randocore/randocore/pkg/rando"
	"github.com/randocore/randocore/pkg/sphere"
	"github.com/randocore/randocore/pkg/state"
	"github.com/randocore/randocore/pkg/term"
	"github.com/randocore/randocore/pkg/transitiongraph"
)

// compiledGate pairs a compiled gate expression with the term it grants.
type compiledGate struct {
	target term.ID
	def    *logic.DNFLogicDef
}

// Built is the product of Scenario.Build: a frozen LogicManager, the
// randomizer's stage pipeline, the state-valued term list, and a
// ready-to-use EntriesFactory wrapping the scenario's gates — the
// exact argument shape rando.NewRandomizer expects.
type Built struct {
	LogicManager *logic.LogicManager
	Stages       []*rando.RandomizationStage
	StateValued  []term.ID
	Entries      rando.EntriesFactory

	gateDefs []compiledGate
}

// Build compiles the scenario into the pieces rando.NewRandomizer
// needs: registers every term, pre-registers every literal, compiles
// each gate's expression, and constructs one rando.RandomizationStage
// per StageCfg with rando.DefaultPlacementStrategy.
func (sc *Scenario) Build() (*Built, error) {
	sm := state.NewStateManagerBuilder().Build()
	b := logic.NewLogicManagerBuilder(sm)
	b.SetCompiler(logicparse.Compiler{})

	termIDs := make(map[string]term.ID, len(sc.Terms))
	for _, name := range sc.Terms {
		termIDs[name] = b.AddTerm(name)
	}
	logicparse.RegisterLiterals(b, sc.Literals...)

	lm := b.Build()

	stateValued := make([]term.ID, 0, len(sc.StateValuedTerms))
	for _, name := range sc.StateValuedTerms {
		stateValued = append(stateValued, termIDs[name])
	}

	gateDefs := make([]compiledGate, len(sc.Gates))
	for i, g := range sc.Gates {
		def, err := lm.CreateDNFLogicDef(g.Expr)
		if err != nil {
			return nil, fmt.Errorf("compiling gate %q: %w", g.Target, err)
		}
		gateDefs[i] = compiledGate{target: termIDs[g.Target], def: def}
	}

	stages := make([]*rando.RandomizationStage, len(sc.Stages))
	for si, stageCfg := range sc.Stages {
		groups := make([]*rando.GroupSpec, len(stageCfg.Groups))
		for gi, groupCfg := range stageCfg.Groups {
			items := make([]rando.ItemSpec, len(groupCfg.Items))
			for ii, itemCfg := range groupCfg.Items {
				effects := make(map[term.ID]int, len(itemCfg.Grants))
				for name, delta := range itemCfg.Grants {
					effects[termIDs[name]] = delta
				}
				items[ii] = rando.ItemSpec{Name: itemCfg.Name, Effects: effects}
			}
			locations := make([]rando.LocationSpec, len(groupCfg.Locations))
			for li, locCfg := range groupCfg.Locations {
				locations[li] = rando.LocationSpec{Name: locCfg.Name, LogicTerm: termIDs[locCfg.Term]}
			}
			groups[gi] = &rando.GroupSpec{
				Name:      groupCfg.Name,
				Items:     items,
				Locations: locations,
				Capacity:  groupCfg.Capacity,
			}
		}

		couplePairs := make(map[string]string)
		for _, groupCfg := range stageCfg.Groups {
			for from, to := range groupCfg.Couple {
				couplePairs[from] = to
			}
		}
		if len(couplePairs) > 0 {
			stageCouple := sphere.NewNameCouple(couplePairs)
			for gi := range stageCfg.Groups {
				groups[gi].Couple = stageCouple
			}
		}

		stages[si] = &rando.RandomizationStage{
			Name:     stageCfg.Name,
			Groups:   groups,
			Strategy: rando.DefaultPlacementStrategy{},
		}
	}

	entries := func() []progression.Entry {
		out := make([]progression.Entry, len(gateDefs))
		for i, gd := range gateDefs {
			out[i] = progression.NewLogicGateEntry(gd.target, gd.def)
		}
		return out
	}

	return &Built{LogicManager: lm, Stages: stages, StateValued: stateValued, Entries: entries, gateDefs: gateDefs}, nil
}

// DependencyGraph builds a transitiongraph.Graph over every registered
// term, with one edge per gate from its target to each term its
// compiled expression reads. Use GetCycles on the result to catch gates
// that can never fire because their dependency loops back on
// themselves.
func (b *Built) DependencyGraph() *transitiongraph.Graph {
	g := transitiongraph.NewGraph()
	for _, t := range b.LogicManager.Terms() {
		g.AddNode(t.ID, t.Name)
	}
	for _, gd := range b.gateDefs {
		for _, dep := range gd.def.ReferencedTerms() {
			if _, ok := b.LogicManager.Term(dep); !ok {
				continue
			}
			_ = g.AddEdge(gd.target, dep)
		}
	}
	return g
}

// TermIndex re-derives the item-name-to-effects and location-name-to-term
// maps a Built's stages were constructed from, for callers (e.g. the CLI's
// validate command) that only have item/location names from a serialized
// placement file and need to replay them against a ProgressionManager.
func (sc *Scenario) TermIndex(built *Built) (itemEffects map[string]map[term.ID]int, locationTerms map[string]term.ID, err error) {
	termIDs := make(map[string]term.ID, len(sc.Terms))
	for _, name := range sc.Terms {
		t, ok := built.LogicManager.TermByName(name)
		if !ok {
			return nil, nil, fmt.Errorf("term %q not found in built LogicManager", name)
		}
		termIDs[name] = t.ID
	}

	itemEffects = make(map[string]map[term.ID]int)
	locationTerms = make(map[string]term.ID)
	for _, stage := range sc.Stages {
		for _, group := range stage.Groups {
			for _, it := range group.Items {
				effects := make(map[term.ID]int, len(it.Grants))
				for name, delta := range it.Grants {
					effects[termIDs[name]] = delta
				}
				itemEffects[it.Name] = effects
			}
			for _, loc := range group.Locations {
				locationTerms[loc.Name] = termIDs[loc.Term]
			}
		}
	}
	return itemEffects, locationTerms, nil
}
