package main

import (
	"fmt"

	"github.com/randocore/randocore/pkg/config"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Args:  cobra.NoArgs,
	Short: "Report gate dependency cycles",
	Long:  `Loads a scenario, builds its gate dependency graph, and reports any cycle that would prevent a gate from ever firing under MainUpdater's fixed-point semantics.`,
	RunE:  runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	if err := requireScenarioFlag(); err != nil {
		return err
	}

	sc, err := config.LoadConfig(scenarioPath)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}
	built, err := sc.Build()
	if err != nil {
		return fmt.Errorf("building scenario: %w", err)
	}

	depGraph := built.DependencyGraph()
	cycles := depGraph.GetCycles()
	if len(cycles) == 0 {
		fmt.Println("no gate dependency cycles found")
		return nil
	}

	for _, cycle := range cycles {
		fmt.Println(depGraph.FormatCycle(cycle))
	}
	return fmt.Errorf("%d gate dependency cycle(s) found", len(cycles))
}
