// Package rng provides deterministic random number generation for the
// randomizer pipeline.
//
// # Overview
//
// The RNG type makes a Randomizer run reproducible by deriving a seed
// from a scenario's master seed, a stage name and the scenario's config
// hash. Different stage names give independent sequences. A
// rando.Randomizer takes a single RNG for a whole run: its permutation
// pass shuffles every stage's items and locations from that one
// sequence, and a retry after an OutOfLocationsError continues the same
// sequence rather than re-deriving it.
//
// # Sub-Seed Derivation
//
// Each RNG derives its seed using SHA-256:
//
//	seed_stage = H(masterSeed, stageName, configHash)
//
// where:
//   - masterSeed: the scenario's top-level seed
//   - stageName: a name for the sequence (cmd/randocore uses "run")
//   - configHash: config.Scenario.Hash, so editing the scenario changes
//     every stage's sequence even if the seed is unchanged
//
// This gives:
//  1. Determinism — identical inputs replay the identical sequence.
//  2. Isolation — each stage name's sequence is independent of the others.
//  3. Sensitivity — scenario edits change every stage's sequence.
//
// # Usage
//
// Build one RNG per stage from the same master seed and config hash:
//
//	mainRNG := rng.NewRNG(sc.Seed, "main", sc.Hash())
//	keysRNG := rng.NewRNG(sc.Seed, "keys", sc.Hash())
//
// Then drive any random decision for that stage from it:
//
//	capacity := mainRNG.IntRange(1, 4)
//	priorityJitter := mainRNG.Float64Range(0, 1)
//	if mainRNG.Bool() {
//	    // include an optional item
//	}
//
// # Thread Safety
//
// RNG instances are NOT thread-safe. Each goroutine should use its own
// RNG instance — the Randomizer itself is single-threaded per run, so
// this only matters for callers building their own tooling on top.
//
// # Performance
//
// The underlying math/rand.Rand is cheap per call (single-digit
// nanoseconds for Uint64/Intn/Float64); constructing a new RNG costs a
// SHA-256 hash (a few microseconds). Build one RNG per stage and reuse
// it for that stage's lifetime rather than constructing a fresh one per
// draw.
package rng
