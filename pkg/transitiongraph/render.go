package transitiongraph

import (
	"fmt"
	"strings"

	"github.com/randocore/randocore/pkg/term"
)

// FormatCycle renders a cycle (as returned by GetCycles) using node
// names joined by " -> ", for CLI diagnostics.
func (g *Graph) FormatCycle(cycle []term.ID) string {
	names := make([]string, len(cycle))
	for i, id := range cycle {
		if n, ok := g.Nodes[id]; ok {
			names[i] = n.Name
		} else {
			names[i] = fmt.Sprintf("#%d", int(id))
		}
	}
	return strings.Join(names, " -> ")
}
