package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/rulemine/internal/apriori"
)

// writeDataset creates a dataset file in a temp directory and returns its path.
func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "basket.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}
	return path
}

// collect drains a source into a slice.
func collect(t *testing.T, src apriori.Source) []apriori.Transaction {
	t.Helper()
	var out []apriori.Transaction
	if err := src.Scan(func(tx apriori.Transaction) error {
		out = append(out, tx)
		return nil
	}); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	return out
}

func TestFileSourceParsesLines(t *testing.T) {
	path := writeDataset(t, "eggs, bacon, soup\neggs,bacon,apple\nsoup,bacon,banana\n")
	src := &FileSource{Path: path}

	txs := collect(t, src)
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	want := apriori.Transaction{"eggs", "bacon", "soup"}
	if len(txs[0]) != 3 {
		t.Fatalf("expected %v, got %v", want, txs[0])
	}
	for i := range want {
		if txs[0][i] != want[i] {
			t.Errorf("expected %v, got %v", want, txs[0])
			break
		}
	}
}

func TestFileSourceSkipsBlanksAndComments(t *testing.T) {
	path := writeDataset(t, "# weekly baskets\n\neggs,bacon\n\n# trailing comment\nsoup,bacon\n")
	src := &FileSource{Path: path}

	txs := collect(t, src)
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d: %v", len(txs), txs)
	}
}

func TestFileSourceCollapsesDuplicates(t *testing.T) {
	path := writeDataset(t, "eggs,eggs,bacon,eggs\n")
	src := &FileSource{Path: path}

	txs := collect(t, src)
	if len(txs) != 1 || len(txs[0]) != 2 {
		t.Fatalf("expected one transaction with 2 distinct items, got %v", txs)
	}
}

func TestFileSourceAppliesAliases(t *testing.T) {
	path := writeDataset(t, "coke,chips\ncola,chips\n")
	src := &FileSource{
		Path:    path,
		Aliases: map[string]string{"coke": "cola"},
	}

	txs := collect(t, src)
	for _, tx := range txs {
		if tx[0] != "cola" {
			t.Errorf("expected alias to rewrite coke to cola, got %v", tx)
		}
	}
}

func TestFileSourceAliasCollision(t *testing.T) {
	// An alias that maps onto an item already in the line must collapse.
	path := writeDataset(t, "coke,cola,chips\n")
	src := &FileSource{
		Path:    path,
		Aliases: map[string]string{"coke": "cola"},
	}

	txs := collect(t, src)
	if len(txs[0]) != 2 {
		t.Errorf("expected coke and cola to collapse into one item, got %v", txs[0])
	}
}

func TestFileSourceCustomSeparator(t *testing.T) {
	path := writeDataset(t, "eggs|bacon|soup\n")
	src := &FileSource{Path: path, Separator: "|"}

	txs := collect(t, src)
	if len(txs) != 1 || len(txs[0]) != 3 {
		t.Fatalf("expected one transaction with 3 items, got %v", txs)
	}
}

func TestFileSourceIsRestartable(t *testing.T) {
	path := writeDataset(t, "eggs,bacon\nsoup,bacon\nsoup,eggs\n")
	src := &FileSource{Path: path}

	first := collect(t, src)
	second := collect(t, src)
	if len(first) != len(second) {
		t.Fatalf("passes disagree: %d vs %d transactions", len(first), len(second))
	}
	for i := range first {
		if len(first[i]) != len(second[i]) {
			t.Fatalf("transaction %d differs across passes: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	src := &FileSource{Path: filepath.Join(t.TempDir(), "missing.csv")}
	err := src.Scan(func(tx apriori.Transaction) error { return nil })
	if err == nil {
		t.Fatal("expected an error for a missing dataset file")
	}
}

func TestCountTransactions(t *testing.T) {
	path := writeDataset(t, "a,b\nb,c\n# comment\nc,d\n")
	src := &FileSource{Path: path}

	n, err := src.CountTransactions()
	if err != nil {
		t.Fatalf("CountTransactions failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 transactions, got %d", n)
	}
}

func TestFileSourceFeedsMiner(t *testing.T) {
	path := writeDataset(t, "eggs,bacon,soup\neggs,bacon,apple\nsoup,bacon,banana\n")
	src := &FileSource{Path: path}

	table, rules, err := apriori.Run(src, apriori.Config{MinSupport: 0.5, MinConfidence: 1.0})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if table.Size() != 5 {
		t.Errorf("expected 5 frequent itemsets, got %d", table.Size())
	}
	if len(rules) != 2 {
		t.Errorf("expected 2 rules, got %d", len(rules))
	}
}
