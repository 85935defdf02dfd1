package transitiongraph

import (
	"testing"

	"github.com/randocore/randocore/pkg/term"
)

func buildLinear(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()
	g.AddNode(0, "A")
	g.AddNode(1, "B")
	g.AddNode(2, "C")
	if err := g.AddEdge(0, 1); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := g.AddEdge(1, 2); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	return g
}

func TestGetPathFindsShortestChain(t *testing.T) {
	g := buildLinear(t)
	path, err := g.GetPath(0, 2)
	if err != nil {
		t.Fatalf("GetPath: %v", err)
	}
	want := []term.ID{0, 1, 2}
	if len(path) != len(want) {
		t.Fatalf("expected %v, got %v", want, path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, path)
		}
	}
}

func TestGetReachableFollowsEdges(t *testing.T) {
	g := buildLinear(t)
	reachable := g.GetReachable(0)
	for _, id := range []term.ID{0, 1, 2} {
		if !reachable[id] {
			t.Fatalf("expected %d reachable from 0", id)
		}
	}
}

func TestGetCyclesDetectsSelfLoop(t *testing.T) {
	g := NewGraph()
	g.AddNode(0, "WIN")
	g.AddNode(1, "KEY")
	if err := g.AddEdge(0, 1); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := g.AddEdge(1, 0); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	cycles := g.GetCycles()
	if len(cycles) == 0 {
		t.Fatal("expected at least one cycle")
	}
}

func TestGetCyclesEmptyForDAG(t *testing.T) {
	g := buildLinear(t)
	if cycles := g.GetCycles(); len(cycles) != 0 {
		t.Fatalf("expected no cycles, got %v", cycles)
	}
}

func TestAddEdgeRejectsUnknownNode(t *testing.T) {
	g := NewGraph()
	g.AddNode(0, "A")
	if err := g.AddEdge(0, 1); err == nil {
		t.Fatal("expected error adding edge to unregistered node")
	}
}
