package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	dbPath string

	// RootCmd is the root command for rulemine
	RootCmd = &cobra.Command{
		Use:   "rulemine",
		Short: "Association rule mining for transaction datasets",
		Long: `rulemine discovers frequent itemsets and association rules in transaction
datasets using the Apriori algorithm, and keeps a local history of mining
runs so results can be browsed, compared, and explained later.

A dataset is a plain text file with one transaction per line, items
separated by a configurable separator (default ","). Every mining run is
saved to a local SQLite database.

Quick Start:
  1. rulemine mine baskets.csv --min-support 0.05 --min-confidence 0.5
  2. rulemine rules --sort lift
  3. rulemine explain "butter => bread"

Features:
  • Level-wise Apriori mining with candidate pruning
  • Confidence-pruned rule generation with lift and conviction
  • Run history with prune/delete lifecycle
  • Watch mode: re-mine automatically when the dataset changes
  • Item alias file for merging synonymous item spellings

Examples:
  # Mine a dataset
  rulemine mine baskets.csv

  # Show rules from the latest run, strongest lift first
  rulemine rules --sort lift

  # Show frequent pairs only
  rulemine itemsets --length 2

  # Explain one rule's metrics
  rulemine explain "eggs => bacon"

  # Re-mine on every dataset change
  rulemine watch baskets.csv --daemon`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.rulemine/rulemine.db)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2

	// Register subcommands
	RootCmd.AddCommand(mineCmd)
	RootCmd.AddCommand(rulesCmd)
	RootCmd.AddCommand(itemsetsCmd)
	RootCmd.AddCommand(runsCmd)
	RootCmd.AddCommand(explainCmd)
	RootCmd.AddCommand(statsCmd)
	RootCmd.AddCommand(watchCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// getDBPath returns the database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	// Create .rulemine directory if it doesn't exist
	rulemineDir := filepath.Join(home, ".rulemine")
	if err := os.MkdirAll(rulemineDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create rulemine directory: %w", err)
	}

	return filepath.Join(rulemineDir, "rulemine.db"), nil
}

// getDefaultPIDFile returns the default PID file path
func getDefaultPIDFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	rulemineDir := filepath.Join(home, ".rulemine")
	if err := os.MkdirAll(rulemineDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create rulemine directory: %w", err)
	}

	return filepath.Join(rulemineDir, "watch.pid"), nil
}

// getDefaultLogFile returns the default log file path
func getDefaultLogFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	rulemineDir := filepath.Join(home, ".rulemine")
	if err := os.MkdirAll(rulemineDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create rulemine directory: %w", err)
	}

	return filepath.Join(rulemineDir, "watch.log"), nil
}
