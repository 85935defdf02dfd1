package main

import (
	"fmt"
	"strings"

	"github.com/randocore/randocore/pkg/config"
	"github.com/randocore/randocore/pkg/logic"
	"github.com/randocore/randocore/pkg/term"
	"github.com/spf13/cobra"
)

var explainTerm string

var explainCmd = &cobra.Command{
	Use:   "explain",
	Args:  cobra.NoArgs,
	Short: "Print a term's logic gate in human-readable form",
	Long:  `Loads a scenario, finds the gate targeting --term, and prints its compiled clauses via DNFLogicDef.ToTokenSequence.`,
	RunE:  runExplain,
}

func init() {
	explainCmd.Flags().StringVar(&explainTerm, "term", "", "name of the gated term to explain (required)")
}

func runExplain(cmd *cobra.Command, args []string) error {
	if err := requireScenarioFlag(); err != nil {
		return err
	}
	if explainTerm == "" {
		return fmt.Errorf("--term flag is required")
	}

	sc, err := config.LoadConfig(scenarioPath)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}

	var expr string
	found := false
	for _, g := range sc.Gates {
		if g.Target == explainTerm {
			expr = g.Expr
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("no gate targets term %q", explainTerm)
	}

	built, err := sc.Build()
	if err != nil {
		return fmt.Errorf("building scenario: %w", err)
	}

	def, err := built.LogicManager.CreateDNFLogicDef(expr)
	if err != nil {
		return fmt.Errorf("compiling gate %q: %w", explainTerm, err)
	}

	fmt.Printf("%s := %s\n\n", explainTerm, expr)
	for i, clause := range def.ToTokenSequence() {
		fmt.Printf("clause %d: %s\n", i, renderClause(built.LogicManager, clause))
	}
	return nil
}

// renderClause resolves term/variable names in place of their raw ids,
// falling back to ID.String() for operator sentinels.
func renderClause(lm *logic.LogicManager, seq []term.ID) string {
	parts := make([]string, len(seq))
	for i, id := range seq {
		switch {
		case id.IsTerm():
			if t, ok := lm.Term(id); ok {
				parts[i] = t.Name
				continue
			}
			parts[i] = id.String()
		case id.IsVariable():
			if v, ok := lm.Variable(id); ok {
				parts[i] = v.Name()
				continue
			}
			parts[i] = id.String()
		default:
			parts[i] = id.String()
		}
	}
	return strings.Join(parts, " ")
}
