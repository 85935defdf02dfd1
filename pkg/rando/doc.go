// Package rando orchestrates a full randomization run: PermuteAll seeds
// every group's item/location priorities, RandomizeForward walks stages
// with look-ahead (later stages' items pre-granted), Randomize places the
// final stage with no look-ahead, and Rerandomize revisits every
// look-ahead stage with the final placements now fixed. OutOfLocations
// failures anywhere in the pipeline are recovered by resetting and
// restarting the whole attempt with the same RNG continuing forward.
package rando
