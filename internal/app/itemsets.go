package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rulemine/internal/output"
)

var (
	itemsetsRun    string
	itemsetsLength int

	itemsetsCmd = &cobra.Command{
		Use:   "itemsets",
		Short: "Show frequent itemsets from a mining run",
		Long: `Display the frequent itemsets of a stored mining run, ordered by length
and descending support count.

Use --length to restrict the listing to itemsets of one size (for example
--length 2 for frequent pairs).`,
		Example: `  # All frequent itemsets of the latest run
  rulemine itemsets

  # Frequent pairs only
  rulemine itemsets --length 2

  # Itemsets of a specific run
  rulemine itemsets --run 0b51f5ae`,
		RunE: runItemsets,
	}
)

func init() {
	itemsetsCmd.Flags().StringVar(&itemsetsRun, "run", "latest", "run ID (or 'latest')")
	itemsetsCmd.Flags().IntVar(&itemsetsLength, "length", 0, "show only itemsets of this length (0 = all)")
}

func runItemsets(cmd *cobra.Command, args []string) error {
	if itemsetsLength < 0 {
		return fmt.Errorf("invalid length: %d (must be >= 0)", itemsetsLength)
	}

	db, _, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := resolveRun(db, itemsetsRun)
	if err != nil {
		return err
	}

	itemsets, err := db.ListItemsets(run.ID, itemsetsLength)
	if err != nil {
		return fmt.Errorf("failed to list itemsets: %w", err)
	}

	fmt.Printf("Run %s (%s): %d itemsets\n\n", output.ShortID(run.ID), run.Source, len(itemsets))
	fmt.Print(output.RenderItemsetTable(itemsets, run.NumTransactions))
	return nil
}
