// Package progression holds the mutable run state the logic evaluator
// reads: ProgressionManager (obtained terms, state unions) and
// MainUpdater (the event-driven propagator that drives PM to a fixed
// point as items are granted).
package progression
