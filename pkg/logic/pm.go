package logic

import (
	"github.com/randocore/randocore/pkg/state"
	"github.com/randocore/randocore/pkg/term"
)

// PM is the narrow view of a ProgressionManager the evaluator needs.
// Defined here (not in pkg/progression) so logic depends only on term
// and state; pkg/progression's ProgressionManager satisfies PM
// structurally, without progression importing logic's concrete types
// or logic importing progression.
type PM interface {
	// Get returns the current obtained count/value for a term id, or 0
	// if the term has never been set.
	Get(id term.ID) int
	// Has reports whether Get(id) > 0.
	Has(id term.ID) bool
	// GetState returns the term's current state union, or nil if the
	// term is not yet reachable or carries no state.
	GetState(id term.ID) *state.StateUnion
}
