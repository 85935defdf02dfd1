package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	scenarioPath string
	verbose      bool
	version      = "dev"
)

var rootCmd = &cobra.Command{
	Use:     "randocore",
	Short:   "A logic-driven item/location randomizer engine",
	Long:    `randocore builds, runs, and inspects item/location randomization scenarios described by a config.Scenario YAML document.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&scenarioPath, "scenario", "", "path to scenario YAML file (required)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(explainCmd)
}

// Commands are defined in separate files:
// - runCmd in run.go
// - validateCmd in validate.go
// - explainCmd in explain.go

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func requireScenarioFlag() error {
	if scenarioPath == "" {
		return fmt.Errorf("--scenario flag is required")
	}
	return nil
}
