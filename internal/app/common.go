package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/rulemine/internal/config"
	"github.com/blackwell-systems/rulemine/internal/dataset"
	"github.com/blackwell-systems/rulemine/internal/store"
)

// openStore opens the database at the configured path and ensures the
// schema exists. Callers must Close the returned store.
func openStore() (*store.Store, string, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get database path: %w", err)
	}

	db, err := store.New(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.CreateSchema(); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("failed to create database schema: %w", err)
	}

	return db, path, nil
}

// resolveRun turns a --run flag value into a stored run. Empty string and
// "latest" both mean the most recent run.
func resolveRun(db *store.Store, runFlag string) (*store.Run, error) {
	if runFlag == "" || runFlag == "latest" {
		run, err := db.LatestRun()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve latest run: %w", err)
		}
		return run, nil
	}

	run, err := db.GetRun(runFlag)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve run %s: %w", runFlag, err)
	}
	return run, nil
}

// newFileSource builds a dataset source with the user's item aliases
// applied. A missing or unreadable alias file degrades to no aliasing.
func newFileSource(path, separator string) *dataset.FileSource {
	src := &dataset.FileSource{
		Path:      path,
		Separator: separator,
	}

	cfgDir, err := config.Dir()
	if err != nil {
		return src
	}
	aliasCfg, err := config.LoadAliases(cfgDir)
	if err != nil || len(aliasCfg.Aliases) == 0 {
		return src
	}

	src.Aliases = aliasCfg.Aliases
	return src
}

// parseRuleSpec splits an "lhs => rhs" rule string into its two item lists.
// Items within a side are comma-separated.
func parseRuleSpec(spec string) (lhs, rhs []string, err error) {
	parts := strings.Split(spec, "=>")
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("rule must have the form \"lhs => rhs\", got %q", spec)
	}

	lhs = splitItems(parts[0])
	rhs = splitItems(parts[1])
	if len(lhs) == 0 || len(rhs) == 0 {
		return nil, nil, fmt.Errorf("rule sides cannot be empty in %q", spec)
	}
	return lhs, rhs, nil
}

// splitItems splits one side of a rule spec on commas, trimming whitespace
// and dropping empty tokens.
func splitItems(side string) []string {
	var items []string
	for _, raw := range strings.Split(side, ",") {
		item := strings.TrimSpace(raw)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
