package transitiongraph

import (
	"fmt"

	"github.com/randocore/randocore/pkg/term"
)

// Node is one term in the dependency graph: its id plus the name a
// diagnostic report should show instead of a raw id.
type Node struct {
	ID   term.ID
	Name string
}

// Graph is a directed dependency graph over terms: an edge from A to B
// means "A's gate reads B", using the same adjacency-list shape a
// room/connector graph would, applied here to terms and dependencies.
type Graph struct {
	Nodes     map[term.ID]Node
	Adjacency map[term.ID][]term.ID
}

// NewGraph returns an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:     make(map[term.ID]Node),
		Adjacency: make(map[term.ID][]term.ID),
	}
}

// AddNode registers a term, if not already present.
func (g *Graph) AddNode(id term.ID, name string) {
	if _, exists := g.Nodes[id]; exists {
		return
	}
	g.Nodes[id] = Node{ID: id, Name: name}
	if g.Adjacency[id] == nil {
		g.Adjacency[id] = []term.ID{}
	}
}

// AddEdge records that from depends on to. Both ends must already be
// registered via AddNode.
func (g *Graph) AddEdge(from, to term.ID) error {
	if _, ok := g.Nodes[from]; !ok {
		return fmt.Errorf("transitiongraph: unknown node %s", from)
	}
	if _, ok := g.Nodes[to]; !ok {
		return fmt.Errorf("transitiongraph: unknown node %s", to)
	}
	g.Adjacency[from] = append(g.Adjacency[from], to)
	return nil
}

// GetPath finds a shortest dependency chain from `from` to `to` via
// BFS, inclusive of both endpoints.
func (g *Graph) GetPath(from, to term.ID) ([]term.ID, error) {
	if _, ok := g.Nodes[from]; !ok {
		return nil, fmt.Errorf("transitiongraph: unknown node %s", from)
	}
	if _, ok := g.Nodes[to]; !ok {
		return nil, fmt.Errorf("transitiongraph: unknown node %s", to)
	}
	if from == to {
		return []term.ID{from}, nil
	}

	queue := []term.ID{from}
	visited := map[term.ID]bool{from: true}
	parent := make(map[term.ID]term.ID)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range g.Adjacency[current] {
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = current
			queue = append(queue, next)

			if next == to {
				path := []term.ID{to}
				for node := current; ; node = parent[node] {
					path = append([]term.ID{node}, path...)
					if node == from {
						return path, nil
					}
				}
			}
		}
	}
	return nil, fmt.Errorf("transitiongraph: no path from %s to %s", from, to)
}

// GetReachable returns every node reachable from `from`, including
// itself, via BFS over the directed edges.
func (g *Graph) GetReachable(from term.ID) map[term.ID]bool {
	reachable := make(map[term.ID]bool)
	if _, ok := g.Nodes[from]; !ok {
		return reachable
	}

	queue := []term.ID{from}
	reachable[from] = true
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range g.Adjacency[current] {
			if !reachable[next] {
				reachable[next] = true
				queue = append(queue, next)
			}
		}
	}
	return reachable
}

// GetCycles runs a DFS from each node not yet visited and returns the
// first cycle each DFS finds, as a term.ID path that starts and ends on
// the same node. It does not list every cycle: one DFS reports at most
// one, and nodes already visited are not searched again. A non-empty
// result means some gate can never fire: MainUpdater's fixed point
// never assigns its target a value because the dependency loops back
// through it.
func (g *Graph) GetCycles() [][]term.ID {
	var cycles [][]term.ID
	visited := make(map[term.ID]bool)

	for start := range g.Nodes {
		if visited[start] {
			continue
		}
		onStack := make(map[term.ID]bool)
		parent := make(map[term.ID]term.ID)

		var dfs func(term.ID) []term.ID
		dfs = func(node term.ID) []term.ID {
			visited[node] = true
			onStack[node] = true

			for _, next := range g.Adjacency[node] {
				if !visited[next] {
					parent[next] = node
					if cycle := dfs(next); cycle != nil {
						return cycle
					}
				} else if onStack[next] {
					cycle := []term.ID{next}
					for curr := node; curr != next; curr = parent[curr] {
						cycle = append([]term.ID{curr}, cycle...)
					}
					cycle = append([]term.ID{next}, cycle...)
					return cycle
				}
			}

			onStack[node] = false
			return nil
		}

		if cycle := dfs(start); cycle != nil {
			cycles = append(cycles, cycle)
		}
	}
	return cycles
}
