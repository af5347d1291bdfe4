// Package dataset provides transaction sources for the mining engine.
//
// The engine makes one full pass over its source per itemset length, so a
// source must be restartable: FileSource re-opens its file on every pass
// instead of materializing the transactions in memory.
package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/blackwell-systems/rulemine/internal/apriori"
)

// DefaultSeparator splits items within one dataset line.
const DefaultSeparator = ","

// FileSource reads transactions from a text file, one transaction per line,
// items split on Separator. Blank lines and lines starting with '#' are
// skipped. Duplicate items within a line are collapsed, and items found in
// the Aliases map are rewritten to their canonical spelling before mining.
type FileSource struct {
	Path      string
	Separator string            // defaults to DefaultSeparator when empty
	Aliases   map[string]string // optional item canonicalization
}

// Scan opens the file and calls fn for each transaction in order. Every
// call makes a fresh pass, which keeps memory bounded for large files.
func (f *FileSource) Scan(fn func(tx apriori.Transaction) error) error {
	file, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	sep := f.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tx := f.parseLine(line, sep)
		if len(tx) == 0 {
			continue
		}
		if err := fn(tx); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}
	return nil
}

// parseLine splits one line into a transaction: trimmed items, aliases
// applied, duplicates collapsed.
func (f *FileSource) parseLine(line, sep string) apriori.Transaction {
	fields := strings.Split(line, sep)
	tx := make(apriori.Transaction, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))

	for _, field := range fields {
		item := strings.TrimSpace(field)
		if item == "" {
			continue
		}
		if canonical, ok := f.Aliases[item]; ok {
			item = canonical
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		tx = append(tx, item)
	}
	return tx
}

// CountTransactions makes one pass over the file and returns the number of
// transactions it holds. Used for pre-flight checks and progress sizing.
func (f *FileSource) CountTransactions() (int, error) {
	n := 0
	err := f.Scan(func(tx apriori.Transaction) error {
		n++
		return nil
	})
	return n, err
}
