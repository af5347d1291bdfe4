package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rulemine/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long: `Display an overview of the rulemine database: where it lives, how big it
is, and how many runs, itemsets, and rules it holds.`,
	Example: `  # Database overview
  rulemine stats

  # Against a custom database path
  rulemine stats --db /tmp/experiments.db`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	db, path, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := db.GetStats()
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	var sizeBytes int64
	if info, err := os.Stat(path); err == nil {
		sizeBytes = info.Size()
	}

	fmt.Print(output.RenderStats(stats, path, sizeBytes))
	return nil
}
