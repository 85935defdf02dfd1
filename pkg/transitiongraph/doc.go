// Package transitiongraph provides a diagnostic dependency graph over
// logic terms: which terms a gate's compiled expression reads, and
// whether those dependencies ever cycle back on themselves. A gate
// whose satisfaction transitively depends on itself can never fire
// under MainUpdater's monotonic fixed-point semantics (see
// pkg/progression), so detecting such cycles ahead of a run is a real
// diagnostic, not cosmetic tooling.
//
// The graph representation and its BFS/DFS traversal algorithms
// (shortest path, connectivity, cycle detection) use a classic
// adjacency-list shape, generalized here from rooms and connectors to
// terms and gate dependencies.
package transitiongraph
