package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rulemine/internal/output"
)

var (
	runsPrune  int
	runsDelete string

	runsCmd = &cobra.Command{
		Use:   "runs",
		Short: "List and manage mining run history",
		Long: `List stored mining runs, newest first.

Old runs accumulate one row set per mining pass; --prune keeps only the N
most recent runs and deletes the rest (their itemsets and rules go with
them). --delete removes a single run by ID.`,
		Example: `  # List run history
  rulemine runs

  # Keep the 10 most recent runs, delete the rest
  rulemine runs --prune 10

  # Delete one run
  rulemine runs --delete 0b51f5ae-9f8c-49d7-b9b1-3d1a77c52e0f`,
		RunE: runRuns,
	}
)

func init() {
	runsCmd.Flags().IntVar(&runsPrune, "prune", 0, "keep only the N most recent runs")
	runsCmd.Flags().StringVar(&runsDelete, "delete", "", "delete the run with this ID")
}

func runRuns(cmd *cobra.Command, args []string) error {
	db, _, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if runsDelete != "" {
		if err := db.DeleteRun(runsDelete); err != nil {
			return fmt.Errorf("failed to delete run: %w", err)
		}
		fmt.Printf("Deleted run %s\n", output.ShortID(runsDelete))
		return nil
	}

	if cmd.Flags().Changed("prune") {
		if runsPrune < 1 {
			return fmt.Errorf("invalid prune count: %d (must be >= 1)", runsPrune)
		}
		removed, err := db.PruneRuns(runsPrune)
		if err != nil {
			return fmt.Errorf("failed to prune runs: %w", err)
		}
		fmt.Printf("Pruned %d runs, kept the %d most recent\n", removed, runsPrune)
		return nil
	}

	runs, err := db.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	fmt.Print(output.RenderRunTable(runs))
	return nil
}
