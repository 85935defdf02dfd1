package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// RNG is a deterministic random source derived from a master seed, a
// stage name and a config hash. Each stage name yields its own
// sequence; rando.Randomizer draws every stage's shuffles from the one
// RNG it is given. The derivation is:
//
//	seed_stage = H(masterSeed, stageName, configHash)
//
// with H = SHA-256, keeping the first 8 bytes as the uint64 seed.
//
// Every method is a pure function of the RNG's internal state, so two
// RNGs built from identical arguments produce identical sequences —
// the property config.Scenario.Hash and the Randomizer's retry loop
// both depend on for reproducible runs.
type RNG struct {
	seed      uint64
	stageName string
	source    *rand.Rand
}

// NewRNG derives an RNG from masterSeed, stageName (a name for the
// sequence, e.g. "main" or "keys"; cmd/randocore uses "run"), and
// configHash (the Scenario's own hash, so two scenarios that only
// differ in content never collide on the same sequence even with the
// same seed and stage name). Combining all three through SHA-256 gives:
//
//  1. Determinism — identical inputs always replay the identical
//     sequence.
//  2. Isolation — each stage name gets an independent sequence.
//  3. Sensitivity — any change to the scenario's content changes every
//     stage's sequence, even if the seed didn't change.
func NewRNG(masterSeed uint64, stageName string, configHash []byte) *RNG {
	h := sha256.New()

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], masterSeed)
	h.Write(buf[:])

	h.Write([]byte(stageName))

	h.Write(configHash)

	hash := h.Sum(nil)
	derivedSeed := binary.BigEndian.Uint64(hash[:8])

	return &RNG{
		seed:      derivedSeed,
		stageName: stageName,
		source:    rand.New(rand.NewSource(int64(derivedSeed))),
	}
}

// Uint64 returns a pseudo-random 64-bit unsigned integer.
func (r *RNG) Uint64() uint64 {
	return r.source.Uint64()
}

// Intn returns a pseudo-random integer in [0, n). It panics if n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn argument must be positive")
	}
	return r.source.Intn(n)
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0).
func (r *RNG) Float64() float64 {
	return r.source.Float64()
}

// Shuffle pseudo-randomizes the order of n elements via swap. The
// Randomizer uses this to assign each stage's items and locations their
// priority order every attempt (see PermuteAll).
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.source.Shuffle(n, swap)
}

// Seed returns this RNG's derived sub-seed, for diagnostics and for
// correlating a run's monitor output back to a specific stage pass.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// StageName returns the RandomizationStage.Name this RNG was derived
// for.
func (r *RNG) StageName() string {
	return r.stageName
}

// IntRange returns a pseudo-random integer in [min, max]. It panics if
// min > max.
func (r *RNG) IntRange(min, max int) int {
	if min > max {
		panic("rng: IntRange min must be <= max")
	}
	if min == max {
		return min
	}
	return min + r.source.Intn(max-min+1)
}

// Float64Range returns a pseudo-random float64 in [min, max). It panics
// if min >= max.
func (r *RNG) Float64Range(min, max float64) float64 {
	if min >= max {
		panic("rng: Float64Range min must be < max")
	}
	return min + r.source.Float64()*(max-min)
}

// Bool returns a pseudo-random boolean value.
func (r *RNG) Bool() bool {
	return r.source.Intn(2) == 1
}

// WeightedChoice picks an index from weights proportionally to their
// value. Weights must be non-negative; returns -1 if weights is empty
// or every weight is zero.
func (r *RNG) WeightedChoice(weights []float64) int {
	if len(weights) == 0 {
		return -1
	}

	total := 0.0
	for _, w := range weights {
		if w < 0 {
			panic("rng: WeightedChoice weights must be non-negative")
		}
		total += w
	}

	if total == 0 {
		return -1
	}

	randVal := r.Float64() * total

	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if randVal < cumulative {
			return i
		}
	}

	return len(weights) - 1
}
