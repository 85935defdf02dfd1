package config

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario specifies everything a randomizer run needs: the term/logic
// universe, any derived logic gates, and the pipeline of stages to run
// in order.
type Scenario struct {
	// Seed is the master RNG seed. Use 0 to auto-generate from the
	// current time.
	Seed uint64 `yaml:"seed" json:"seed"`

	// Terms lists every term name the scenario's items, locations and
	// gates reference.
	Terms []string `yaml:"terms" json:"terms"`

	// Literals lists integer literals referenced by any gate's Expr, so
	// they can be pre-registered before the LogicManager is built.
	Literals []int `yaml:"literals,omitempty" json:"literals,omitempty"`

	// StateValuedTerms lists which Terms are treated as state-valued by
	// the ProgressionManager (see progression.NewProgressionManager).
	StateValuedTerms []string `yaml:"stateValuedTerms,omitempty" json:"stateValuedTerms,omitempty"`

	// Gates are logicparse expressions that grant a target term once
	// satisfied, independent of any one stage's item placement.
	Gates []GateCfg `yaml:"gates,omitempty" json:"gates,omitempty"`

	// Stages is the randomizer pipeline, in order (look-ahead stages
	// first, the final stage last).
	Stages []StageCfg `yaml:"stages" json:"stages"`
}

// GateCfg declares one LogicGateEntry: Target is granted the first time
// Expr (a logicparse expression over Terms) evaluates true.
type GateCfg struct {
	Target string `yaml:"target" json:"target"`
	Expr   string `yaml:"expr" json:"expr"`
}

// StageCfg is one RandomizationStage: a name and its groups.
type StageCfg struct {
	Name   string     `yaml:"name" json:"name"`
	Groups []GroupCfg `yaml:"groups" json:"groups"`
}

// GroupCfg is one sphere.Group's worth of items and locations plus the
// selector's live-proposal capacity.
type GroupCfg struct {
	Name      string        `yaml:"name" json:"name"`
	Capacity  int           `yaml:"capacity" json:"capacity"`
	Items     []ItemCfg     `yaml:"items" json:"items"`
	Locations []LocationCfg `yaml:"locations" json:"locations"`

	// Couple maps one of this group's item names to its paired dual
	// item's name in another group of the same stage (e.g. a small key
	// to the door it opens back). Once one side of a pair settles
	// Permanent, the other is discarded rather than proposed again.
	// Entries from every group in a stage are merged into a single
	// pairing, so either side may declare the mapping. Optional; omit
	// for ungrouped/uncoupled groups.
	Couple map[string]string `yaml:"couple,omitempty" json:"couple,omitempty"`
}

// ItemCfg declares one placeable item and the term deltas it grants
// once accepted.
type ItemCfg struct {
	Name   string         `yaml:"name" json:"name"`
	Grants map[string]int `yaml:"grants,omitempty" json:"grants,omitempty"`
}

// LocationCfg declares one location and the single term that gates its
// reachability.
type LocationCfg struct {
	Name string `yaml:"name" json:"name"`
	Term string `yaml:"term" json:"term"`
}

// LoadConfig reads and validates a YAML scenario file.
func LoadConfig(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses and validates a YAML scenario from memory.
func LoadConfigFromBytes(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if sc.Seed == 0 {
		sc.Seed = generateSeed()
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &sc, nil
}

// Validate checks structural constraints Build relies on: every term
// name referenced by a gate, item grant, or location is declared in
// Terms; every stage has at least one group; every group's item count
// matches its location count (the randomizer's zip invariant).
func (sc *Scenario) Validate() error {
	known := make(map[string]bool, len(sc.Terms))
	for _, t := range sc.Terms {
		if t == "" {
			return errors.New("terms: empty term name")
		}
		if known[t] {
			return fmt.Errorf("terms: duplicate term name %q", t)
		}
		known[t] = true
	}

	for _, name := range sc.StateValuedTerms {
		if !known[name] {
			return fmt.Errorf("stateValuedTerms: unknown term %q", name)
		}
	}

	for i, g := range sc.Gates {
		if g.Target == "" {
			return fmt.Errorf("gates[%d]: target must not be empty", i)
		}
		if !known[g.Target] {
			return fmt.Errorf("gates[%d]: unknown target term %q", i, g.Target)
		}
		if g.Expr == "" {
			return fmt.Errorf("gates[%d]: expr must not be empty", i)
		}
	}

	if len(sc.Stages) == 0 {
		return errors.New("stages: at least one stage is required")
	}
	for si, stage := range sc.Stages {
		if stage.Name == "" {
			return fmt.Errorf("stages[%d]: name must not be empty", si)
		}
		if len(stage.Groups) == 0 {
			return fmt.Errorf("stages[%d] (%s): at least one group is required", si, stage.Name)
		}
		stageItemNames := make(map[string]bool)
		for _, g := range stage.Groups {
			for _, it := range g.Items {
				stageItemNames[it.Name] = true
			}
		}
		for gi, g := range stage.Groups {
			if g.Name == "" {
				return fmt.Errorf("stages[%d].groups[%d]: name must not be empty", si, gi)
			}
			if g.Capacity <= 0 {
				return fmt.Errorf("stages[%d].groups[%d] (%s): capacity must be positive", si, gi, g.Name)
			}
			if len(g.Items) != len(g.Locations) {
				return fmt.Errorf("stages[%d].groups[%d] (%s): %d items but %d locations",
					si, gi, g.Name, len(g.Items), len(g.Locations))
			}
			for ii, it := range g.Items {
				if it.Name == "" {
					return fmt.Errorf("stages[%d].groups[%d].items[%d]: name must not be empty", si, gi, ii)
				}
				for term := range it.Grants {
					if !known[term] {
						return fmt.Errorf("stages[%d].groups[%d].items[%d] (%s): unknown term %q", si, gi, ii, it.Name, term)
					}
				}
			}
			for li, loc := range g.Locations {
				if loc.Name == "" {
					return fmt.Errorf("stages[%d].groups[%d].locations[%d]: name must not be empty", si, gi, li)
				}
				if !known[loc.Term] {
					return fmt.Errorf("stages[%d].groups[%d].locations[%d] (%s): unknown term %q", si, gi, li, loc.Name, loc.Term)
				}
			}
			for from, to := range g.Couple {
				if !stageItemNames[from] {
					return fmt.Errorf("stages[%d].groups[%d] (%s): couple references unknown item %q", si, gi, g.Name, from)
				}
				if !stageItemNames[to] {
					return fmt.Errorf("stages[%d].groups[%d] (%s): couple references unknown dual item %q", si, gi, g.Name, to)
				}
			}
		}
	}
	return nil
}

// ToYAML serializes the scenario back to YAML.
func (sc *Scenario) ToYAML() ([]byte, error) {
	return yaml.Marshal(sc)
}

// Hash computes a deterministic digest of the scenario, for correlating
// a run's output with the exact scenario that produced it.
func (sc *Scenario) Hash() []byte {
	data, err := sc.ToYAML()
	if err != nil {
		h := sha256.New()
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], sc.Seed)
		h.Write(buf[:])
		return h.Sum(nil)
	}
	h := sha256.New()
	h.Write(data)
	return h.Sum(nil)
}

func generateSeed() uint64 {
	now := time.Now().UnixNano()
	if now < 0 {
		now = -now
	}
	seed := uint64(now)
	if seed == 0 {
		seed = 1
	}
	return seed
}
