package main

import (
	"fmt"
	"os"

	"github.com/randocore/randocore/pkg/config"
	"github.com/randocore/randocore/pkg/export"
	"github.com/randocore/randocore/pkg/progression"
	"github.com/randocore/randocore/pkg/randoerrors"
	"github.com/spf13/cobra"
)

var validatePlacementsPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Args:  cobra.NoArgs,
	Short: "Replay a placement file and report reachability violations",
	Long:  `Loads a scenario and a placement file previously written by "randocore run --format json", replays every placement through a fresh ProgressionManager, and reports whether each placement's location was reachable once every item was granted.`,
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validatePlacementsPath, "placements", "", "path to a JSON placement file (required)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if err := requireScenarioFlag(); err != nil {
		return err
	}
	if validatePlacementsPath == "" {
		return fmt.Errorf("--placements flag is required")
	}

	sc, err := config.LoadConfig(scenarioPath)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}
	built, err := sc.Build()
	if err != nil {
		return fmt.Errorf("building scenario: %w", err)
	}

	f, err := os.Open(validatePlacementsPath)
	if err != nil {
		return fmt.Errorf("opening placements file: %w", err)
	}
	defer f.Close()
	records, err := export.ReadJSON(f)
	if err != nil {
		return fmt.Errorf("reading placements: %w", err)
	}

	itemEffects, locationTerms, err := sc.TermIndex(built)
	if err != nil {
		return err
	}

	pm := progression.NewProgressionManager(built.LogicManager, built.StateValued...)
	mu := progression.NewMainUpdater()
	for _, e := range built.Entries() {
		mu.AddEntry(e)
	}
	mu.Hook(pm)

	for _, rec := range records {
		effects, ok := itemEffects[rec.Item]
		if !ok {
			return fmt.Errorf("placement references unknown item %q", rec.Item)
		}
		pm.Add(&progression.IncrItem{ItemName: rec.Item, Effects: effects})
	}

	var violations []string
	for _, rec := range records {
		termID, ok := locationTerms[rec.Location]
		if !ok {
			return fmt.Errorf("placement references unknown location %q", rec.Location)
		}
		if !pm.Has(termID) {
			violations = append(violations, fmt.Sprintf("%s@%s unreachable", rec.Item, rec.Location))
		}
	}

	if len(violations) > 0 {
		verr := &randoerrors.ValidationError{Violations: violations}
		fmt.Fprintln(os.Stderr, verr.Error())
		return verr
	}

	fmt.Println("all placements reachable")
	return nil
}
