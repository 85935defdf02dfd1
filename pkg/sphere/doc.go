// Package sphere expands reachability sphere by sphere: GroupItemSelector
// is a stack machine over one group's items and locations; SphereBuilder
// drives a PM+MU+selectors loop that proposes the lowest-priority layer
// of items, checks whether any new location became reachable, and either
// accepts the layer (emitting a sphere) or rejects it and tries the next
// layer.
package sphere
