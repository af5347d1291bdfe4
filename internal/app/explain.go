package app

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rulemine/internal/apriori"
	"github.com/blackwell-systems/rulemine/internal/output"
	"github.com/blackwell-systems/rulemine/internal/store"
)

var (
	explainRun string

	explainCmd = &cobra.Command{
		Use:   "explain <rule>",
		Short: "Explain one rule's metrics from stored counts",
		Long: `Recompute and break down the metrics of a single rule using the itemset
counts stored for a mining run.

The rule is written as "lhs => rhs"; multiple items on a side are
comma-separated. Both sides and their union must have been frequent in the
run, otherwise no counts exist to explain.`,
		Example: `  # Explain a single-item rule from the latest run
  rulemine explain "eggs => bacon"

  # Multi-item left-hand side
  rulemine explain "butter, jam => bread"

  # Against a specific run
  rulemine explain "eggs => bacon" --run 0b51f5ae`,
		Args: cobra.ExactArgs(1),
		RunE: runExplain,
	}
)

func init() {
	explainCmd.Flags().StringVar(&explainRun, "run", "latest", "run ID (or 'latest')")
}

func runExplain(cmd *cobra.Command, args []string) error {
	lhs, rhs, err := parseRuleSpec(args[0])
	if err != nil {
		return err
	}

	db, _, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := resolveRun(db, explainRun)
	if err != nil {
		return err
	}

	full := append(append([]string{}, lhs...), rhs...)

	countFull, err := lookupCount(db, run, full)
	if err != nil {
		return err
	}
	countLhs, err := lookupCount(db, run, lhs)
	if err != nil {
		return err
	}
	countRhs, err := lookupCount(db, run, rhs)
	if err != nil {
		return err
	}

	rule := apriori.Rule{
		Lhs:             lhs,
		Rhs:             rhs,
		CountFull:       countFull,
		CountLhs:        countLhs,
		CountRhs:        countRhs,
		NumTransactions: run.NumTransactions,
	}

	n := run.NumTransactions
	fmt.Printf("Rule: {%s} => {%s}\n", strings.Join(lhs, ", "), strings.Join(rhs, ", "))
	fmt.Printf("Run:  %s (%s, %d transactions)\n\n", output.ShortID(run.ID), run.Source, n)
	fmt.Printf("Counts:\n")
	fmt.Printf("  lhs+rhs together: %6d of %d\n", countFull, n)
	fmt.Printf("  lhs alone:        %6d of %d\n", countLhs, n)
	fmt.Printf("  rhs alone:        %6d of %d\n\n", countRhs, n)
	fmt.Printf("Metrics:\n")
	fmt.Printf("  Support:    %.3f  (share of transactions with lhs and rhs)\n", rule.Support())
	fmt.Printf("  Confidence: %.3f  (share of lhs transactions that also have rhs)\n", rule.Confidence())
	fmt.Printf("  Lift:       %.3f  (confidence relative to rhs base rate)\n", rule.Lift())
	if math.IsInf(rule.Conviction(), 1) {
		fmt.Printf("  Conviction: ∞      (the rule never misses)\n")
	} else {
		fmt.Printf("  Conviction: %.3f  (how strongly the rule beats chance)\n", rule.Conviction())
	}

	return nil
}

// lookupCount fetches one itemset count, turning ErrNotFound into a
// user-facing explanation.
func lookupCount(db *store.Store, run *store.Run, items []string) (int, error) {
	count, err := db.GetItemsetCount(run.ID, items)
	if errors.Is(err, store.ErrNotFound) {
		return 0, fmt.Errorf("itemset %v was not frequent in run %s (min support %.3f); no stored counts to explain",
			items, output.ShortID(run.ID), run.MinSupport)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up itemset count: %w", err)
	}
	return count, nil
}
