// Package randoerrors defines the three distinguishable failure surfaces
// of the randomizer core: DomainError for programmer mistakes, which are
// always fatal; OutOfLocationsError, which the Randomizer recovers from
// internally by resetting and retrying; and ValidationError, which is
// always surfaced to the caller after a completed run.
package randoerrors
