package app

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rulemine/internal/apriori"
	"github.com/blackwell-systems/rulemine/internal/output"
	"github.com/blackwell-systems/rulemine/internal/store"
)

var (
	mineMinSupport    float64
	mineMinConfidence float64
	mineMaxLength     int
	mineMinLift       float64
	mineTrackIDs      bool
	mineSeparator     string
	mineNoSave        bool
	mineQuiet         bool

	mineCmd = &cobra.Command{
		Use:   "mine <dataset>",
		Short: "Mine frequent itemsets and association rules from a dataset",
		Long: `Mine a transaction dataset with the Apriori algorithm.

The dataset is a plain text file with one transaction per line and items
separated by --separator (default ","). Blank lines and lines starting
with # are skipped. Item aliases from the config directory are applied
before mining.

The miner makes one pass over the dataset per itemset length, so the file
is re-read on every level; it is never loaded into memory whole. Results
(frequent itemsets plus rules) are saved as a new run in the database
unless --no-save is given.`,
		Example: `  # Mine with defaults (min support 0.5, min confidence 0.5)
  rulemine mine baskets.csv

  # Lower thresholds for a sparse retail dataset
  rulemine mine groceries.csv --min-support 0.01 --min-confidence 0.3

  # Cap itemset length and record matching transaction ids
  rulemine mine baskets.csv --max-length 3 --track-ids

  # Tab-separated dataset, don't save the run
  rulemine mine events.tsv --separator "\t" --no-save`,
		Args: cobra.ExactArgs(1),
		RunE: runMine,
	}
)

func init() {
	mineCmd.Flags().Float64Var(&mineMinSupport, "min-support", 0.5, "minimum itemset support, in (0, 1]")
	mineCmd.Flags().Float64Var(&mineMinConfidence, "min-confidence", 0.5, "minimum rule confidence, in (0, 1]")
	mineCmd.Flags().IntVar(&mineMaxLength, "max-length", 0, "maximum itemset length (0 = unbounded)")
	mineCmd.Flags().Float64Var(&mineMinLift, "min-lift", 0, "minimum rule lift (0 = no lift filter)")
	mineCmd.Flags().BoolVar(&mineTrackIDs, "track-ids", false, "record which transactions contain each itemset")
	mineCmd.Flags().StringVar(&mineSeparator, "separator", ",", "item separator in the dataset file")
	mineCmd.Flags().BoolVar(&mineNoSave, "no-save", false, "print results without saving a run")
	mineCmd.Flags().BoolVar(&mineQuiet, "quiet", false, "suppress tables, print the summary line only")
}

func runMine(cmd *cobra.Command, args []string) error {
	datasetPath := args[0]

	src := newFileSource(datasetPath, mineSeparator)

	cfg := apriori.Config{
		MinSupport:        mineMinSupport,
		MinConfidence:     mineMinConfidence,
		MaxLength:         mineMaxLength,
		MinLift:           mineMinLift,
		TrackTransactions: mineTrackIDs,
	}

	isTTY := isatty.IsTerminal(os.Stdout.Fd())
	var spinner *output.Spinner
	if !mineQuiet {
		spinner = output.NewSpinner(fmt.Sprintf("Mining %s", datasetPath))
		spinner.Start()
		reporter := output.NewPassReporter(spinner)
		cfg.Progress = reporter.Report
	}

	start := time.Now()
	table, rules, err := apriori.Run(src, cfg)
	elapsed := time.Since(start)
	if !mineQuiet {
		spinner.Stop()
	}
	if err != nil {
		return fmt.Errorf("mining failed: %w", err)
	}

	run := &store.Run{
		Source:        datasetPath,
		MinSupport:    mineMinSupport,
		MinConfidence: mineMinConfidence,
		MaxLength:     mineMaxLength,
		MinLift:       mineMinLift,
		TrackIDs:      mineTrackIDs,
	}

	if !mineNoSave {
		db, _, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.SaveRun(run, table, rules); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
	} else {
		// Fill the summary counters SaveRun would have set.
		run.NumTransactions = table.NumTransactions()
		run.ItemsetCount = table.Size()
		run.RuleCount = len(rules)
	}

	fmt.Println(output.RenderRunSummary(run, elapsed))

	if mineQuiet {
		return nil
	}
	fmt.Println()

	// Render stored shapes so mine and the read commands print identically.
	storeRules := make([]*store.Rule, len(rules))
	for i, r := range rules {
		storeRules[i] = &store.Rule{
			Lhs:             r.Lhs,
			Rhs:             r.Rhs,
			CountFull:       r.CountFull,
			CountLhs:        r.CountLhs,
			CountRhs:        r.CountRhs,
			NumTransactions: r.NumTransactions,
			Support:         r.Support(),
			Confidence:      r.Confidence(),
			Lift:            r.Lift(),
			Conviction:      r.Conviction(),
		}
	}
	fmt.Print(output.RenderRuleTable(storeRules))

	if !isTTY {
		return nil
	}
	fmt.Printf("\nTip: 'rulemine itemsets' lists the frequent itemsets; 'rulemine rules --sort lift' reorders rules.\n")
	return nil
}
