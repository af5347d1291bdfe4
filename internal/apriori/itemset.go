// Package apriori implements frequent-itemset mining and association-rule
// generation over transaction data.
//
// Mining is the classic level-wise Apriori algorithm: candidate itemsets of
// size k are generated by joining frequent itemsets of size k-1, pruned using
// the downward-closure property of support, and counted against the
// transaction source. Rules are derived from the resulting table with a
// level-wise search over rule right-hand sides, pruned using the
// anti-monotonicity of confidence.
package apriori

import (
	"sort"
	"strings"
)

// itemSep joins itemset members into map keys. It is a control character so
// that it cannot collide with item text read from datasets.
const itemSep = "\x1f"

// Transaction is a single observation: the set of items that occurred
// together. Duplicate items within one transaction are counted once.
type Transaction []string

// Itemset is a set of distinct items held in the canonical order of the
// mining run that produced it. Two itemsets are equal iff they contain the
// same items.
type Itemset []string

// Key returns the canonical map key for the itemset.
func (s Itemset) Key() string {
	return strings.Join(s, itemSep)
}

// String renders the itemset in set notation, e.g. {eggs, bacon}.
func (s Itemset) String() string {
	return "{" + strings.Join(s, ", ") + "}"
}

// Contains reports whether the itemset contains the given item.
func (s Itemset) Contains(item string) bool {
	for _, it := range s {
		if it == item {
			return true
		}
	}
	return false
}

// Equal reports whether both itemsets contain exactly the same items. Both
// sides are assumed to be in canonical order, as all itemsets produced by
// this package are.
func (s Itemset) Equal(other Itemset) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// parseKey is the inverse of Itemset.Key.
func parseKey(key string) Itemset {
	return Itemset(strings.Split(key, itemSep))
}

// without returns a copy of the itemset with the element at index i removed.
// Canonical order is preserved.
func (s Itemset) without(i int) Itemset {
	out := make(Itemset, 0, len(s)-1)
	out = append(out, s[:i]...)
	out = append(out, s[i+1:]...)
	return out
}

// difference returns the items of s that are not in other, preserving order.
func (s Itemset) difference(other Itemset) Itemset {
	out := make(Itemset, 0, len(s))
	for _, it := range s {
		if !other.Contains(it) {
			out = append(out, it)
		}
	}
	return out
}

// itemOrder is the canonical total order over items for one mining run,
// fixed after the first counting pass: rank ascending means more frequent,
// with lexicographic tie-breaks. Candidate generation depends on every
// itemset being sorted by the same order, so the order never changes once
// level 1 is complete.
type itemOrder map[string]int

// newItemOrder ranks items by descending count, breaking ties by name.
func newItemOrder(counts map[string]int) itemOrder {
	items := make([]string, 0, len(counts))
	for item := range counts {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if counts[items[i]] != counts[items[j]] {
			return counts[items[i]] > counts[items[j]]
		}
		return items[i] < items[j]
	})
	order := make(itemOrder, len(items))
	for rank, item := range items {
		order[item] = rank
	}
	return order
}

// lessItems compares two items under the canonical order. Items that were
// never ranked (infrequent at level 1) sort after ranked ones by name; they
// only show up when callers canonicalize ad hoc queries.
func (o itemOrder) lessItems(a, b string) bool {
	ra, aok := o[a]
	rb, bok := o[b]
	switch {
	case aok && bok:
		return ra < rb
	case aok:
		return true
	case bok:
		return false
	default:
		return a < b
	}
}

// sortItems puts items into canonical order in place.
func (o itemOrder) sortItems(items []string) {
	sort.Slice(items, func(i, j int) bool {
		return o.lessItems(items[i], items[j])
	})
}

// lessItemsets compares itemsets lexicographically under the canonical
// item order. Both operands must already be in canonical order.
func (o itemOrder) lessItemsets(a, b Itemset) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return o.lessItems(a[i], b[i])
		}
	}
	return len(a) < len(b)
}

// sortItemsets puts a slice of canonical itemsets into the deterministic
// enumeration order used by candidate generation.
func (o itemOrder) sortItemsets(sets []Itemset) {
	sort.Slice(sets, func(i, j int) bool {
		return o.lessItemsets(sets[i], sets[j])
	})
}

// containsAll reports whether every member of the itemset is present in the
// transaction set.
func containsAll(tx map[string]struct{}, s Itemset) bool {
	for _, it := range s {
		if _, ok := tx[it]; !ok {
			return false
		}
	}
	return true
}
