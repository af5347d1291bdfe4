package apriori

import "sort"

// ItemsetCount is the support record attached to one frequent itemset: the
// number of transactions containing the itemset and, when transaction
// tracking was requested, the identifiers of those transactions in
// ascending order. Counts are final once mining completes.
type ItemsetCount struct {
	Count        int
	Transactions []int // nil unless Options.TrackTransactions was set
}

// Table is the layered frequent-itemset table produced by Mine: itemset
// length to itemset key to support record. It is built bottom-up during one
// mining run and read-only afterwards.
//
// Invariant: every itemset present at length k has all of its k subsets of
// length k-1 present at level k-1 (downward closure of support).
type Table struct {
	levels map[int]map[string]ItemsetCount
	n      int
	order  itemOrder
}

func newTable(n int, order itemOrder) *Table {
	return &Table{
		levels: make(map[int]map[string]ItemsetCount),
		n:      n,
		order:  order,
	}
}

// NumTransactions returns the total number of transactions observed while
// the table was mined.
func (t *Table) NumTransactions() int {
	return t.n
}

// MaxLength returns the largest itemset length present in the table, or 0
// when the table is empty.
func (t *Table) MaxLength() int {
	max := 0
	for k := range t.levels {
		if k > max {
			max = k
		}
	}
	return max
}

// Lengths returns the itemset lengths present, ascending.
func (t *Table) Lengths() []int {
	out := make([]int, 0, len(t.levels))
	for k := range t.levels {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// Len returns the number of frequent itemsets of the given length.
func (t *Table) Len(k int) int {
	return len(t.levels[k])
}

// Size returns the total number of frequent itemsets across all lengths.
func (t *Table) Size() int {
	total := 0
	for _, level := range t.levels {
		total += len(level)
	}
	return total
}

// Itemsets returns the frequent itemsets of length k in the table's
// deterministic enumeration order.
func (t *Table) Itemsets(k int) []Itemset {
	level := t.levels[k]
	out := make([]Itemset, 0, len(level))
	for key := range level {
		out = append(out, parseKey(key))
	}
	t.order.sortItemsets(out)
	return out
}

// Canonicalize returns the given items as an itemset in this table's
// canonical order, with duplicates collapsed.
func (t *Table) Canonicalize(items []string) Itemset {
	seen := make(map[string]struct{}, len(items))
	out := make(Itemset, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	t.order.sortItems(out)
	return out
}

// Count looks up the support record for the given items. The items need not
// be in canonical order. The second return is false when the itemset is not
// frequent.
func (t *Table) Count(items ...string) (ItemsetCount, bool) {
	set := t.Canonicalize(items)
	ic, ok := t.levels[len(set)][set.Key()]
	return ic, ok
}

// count is the internal lookup for itemsets already in canonical order.
func (t *Table) count(s Itemset) (ItemsetCount, bool) {
	ic, ok := t.levels[len(s)][s.Key()]
	return ic, ok
}
