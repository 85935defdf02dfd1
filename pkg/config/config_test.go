package config

import (
	"testing"

	"github.com/randocore/randocore/pkg/rando"
	"github.com/randocore/randocore/pkg/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
seed: 12345
terms: [KEY, DOOR, WIN]
gates:
  - target: WIN
    expr: "KEY & DOOR"
stages:
  - name: main
    groups:
      - name: keys
        capacity: 2
        items:
          - name: Key
            grants: { KEY: 1, DOOR: 1 }
        locations:
          - name: Chest
            term: DOOR
`

func TestLoadConfigFromBytesValidatesAndDefaults(t *testing.T) {
	sc, err := LoadConfigFromBytes([]byte(sampleYAML))
	require.NoError(t, err)
	assert.EqualValues(t, 12345, sc.Seed)
	require.Len(t, sc.Stages, 1)
	assert.Len(t, sc.Stages[0].Groups, 1)
}

func TestLoadConfigFromBytesAutoSeedsWhenZero(t *testing.T) {
	sc, err := LoadConfigFromBytes([]byte(`
terms: [A]
stages:
  - name: s
    groups:
      - name: g
        capacity: 1
        items: []
        locations: []
`))
	require.NoError(t, err)
	assert.NotZero(t, sc.Seed)
}

func TestValidateRejectsMismatchedItemLocationCounts(t *testing.T) {
	sc := &Scenario{
		Seed:  1,
		Terms: []string{"A"},
		Stages: []StageCfg{{
			Name: "s",
			Groups: []GroupCfg{{
				Name:      "g",
				Capacity:  1,
				Items:     []ItemCfg{{Name: "x"}},
				Locations: nil,
			}},
		}},
	}
	assert.Error(t, sc.Validate())
}

func TestValidateRejectsUnknownTerm(t *testing.T) {
	sc := &Scenario{
		Seed:  1,
		Terms: []string{"A"},
		Gates: []GateCfg{{Target: "GHOST", Expr: "A"}},
		Stages: []StageCfg{{
			Name:   "s",
			Groups: []GroupCfg{{Name: "g", Capacity: 1}},
		}},
	}
	assert.Error(t, sc.Validate())
}

func TestBuildWiresGateAndPlacement(t *testing.T) {
	sc, err := LoadConfigFromBytes([]byte(sampleYAML))
	require.NoError(t, err)

	built, err := sc.Build()
	require.NoError(t, err)
	require.Len(t, built.Stages, 1)

	rngSrc := rng.NewRNG(sc.Seed, "test", sc.Hash())
	rz := rando.NewRandomizer(built.LogicManager, built.Stages, rngSrc, built.Entries, rando.WithStateValued(built.StateValued...))
	result, err := rz.Run()
	require.NoError(t, err)
	require.Len(t, result.StagedPlacements, 1)
	assert.Len(t, result.StagedPlacements[0][0], 1)
}

func TestDependencyGraphHasNoCyclesForAcyclicGates(t *testing.T) {
	sc, err := LoadConfigFromBytes([]byte(sampleYAML))
	require.NoError(t, err)

	built, err := sc.Build()
	require.NoError(t, err)

	g := built.DependencyGraph()
	assert.Empty(t, g.GetCycles())
}

func TestDependencyGraphDetectsCircularGate(t *testing.T) {
	sc, err := LoadConfigFromBytes([]byte(`
seed: 1
terms: [A, B]
gates:
  - target: A
    expr: "B"
  - target: B
    expr: "A"
stages:
  - name: main
    groups:
      - name: g
        capacity: 1
        items: []
        locations: []
`))
	require.NoError(t, err)

	built, err := sc.Build()
	require.NoError(t, err)

	g := built.DependencyGraph()
	assert.NotEmpty(t, g.GetCycles())
}
