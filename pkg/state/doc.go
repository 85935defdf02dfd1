// Package state implements the immutable resource-vector model used by
// the logic evaluator: StateField/StateManager define the schema, State
// is a single packed snapshot, StateUnion is a minimal antichain of
// States under a per-field dominance order, and LazyStateBuilder is a
// copy-on-write mutator used while walking a Clause's state logic.
package state
