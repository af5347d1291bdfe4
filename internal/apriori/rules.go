package apriori

import (
	"fmt"
	"math"
)

// Rule is an implication lhs -> rhs between two disjoint, non-empty
// itemsets whose union is frequent. The counts needed to derive every
// metric are copied in at construction; a Rule holds no reference back into
// the table and is immutable.
type Rule struct {
	Lhs Itemset
	Rhs Itemset

	CountFull       int // transactions containing lhs ∪ rhs
	CountLhs        int // transactions containing lhs
	CountRhs        int // transactions containing rhs
	NumTransactions int
}

// Support is the fraction of all transactions containing both sides.
func (r Rule) Support() float64 {
	return float64(r.CountFull) / float64(r.NumTransactions)
}

// Confidence estimates P(rhs | lhs): the fraction of transactions
// containing the left-hand side that also contain the right-hand side.
func (r Rule) Confidence() float64 {
	return float64(r.CountFull) / float64(r.CountLhs)
}

// Lift is the ratio of the observed co-occurrence to that expected if the
// two sides were independent. Lift above 1 means the sides occur together
// more often than chance.
func (r Rule) Lift() float64 {
	rhsSupport := float64(r.CountRhs) / float64(r.NumTransactions)
	return r.Confidence() / rhsSupport
}

// Conviction is (1 - support(rhs)) / (1 - confidence), infinite when the
// rule always holds.
func (r Rule) Conviction() float64 {
	conf := r.Confidence()
	if conf == 1 {
		return math.Inf(1)
	}
	rhsSupport := float64(r.CountRhs) / float64(r.NumTransactions)
	return (1 - rhsSupport) / (1 - conf)
}

// String renders the rule with its headline metrics,
// e.g. {eggs} -> {bacon} (conf: 1.000, supp: 0.667, lift: 1.500).
func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s (conf: %.3f, supp: %.3f, lift: %.3f)",
		r.Lhs, r.Rhs, r.Confidence(), r.Support(), r.Lift())
}

// GenerateRules derives every association rule meeting minConfidence (and
// minLift, when positive) from the frequent-itemset table.
//
// For each frequent itemset of size >= 2, candidate right-hand sides are
// searched level-wise by size, starting from singletons. Only right-hand
// sides formed by joining two surviving smaller ones are ever evaluated:
// growing the right-hand side shrinks the left-hand side, which can only
// lower confidence, so a candidate whose immediate sub-right-hand-side
// already failed the threshold cannot pass it either. minLift filters the
// emitted rules but never prunes the search, since lift is not
// anti-monotone in the right-hand side.
//
// No pass over the transaction source is made: every metric is derived from
// counts already in the table.
func GenerateRules(table *Table, minConfidence, minLift float64) ([]Rule, error) {
	if minConfidence <= 0 || minConfidence > 1 {
		return nil, &InvalidParameterError{Name: "min_confidence", Value: minConfidence, Reason: "must be in (0, 1]"}
	}
	if minLift < 0 {
		return nil, &InvalidParameterError{Name: "min_lift", Value: minLift, Reason: "must be >= 0"}
	}

	var rules []Rule
	for _, k := range table.Lengths() {
		if k < 2 {
			continue
		}
		for _, full := range table.Itemsets(k) {
			rules = append(rules, rulesForItemset(table, full, minConfidence, minLift)...)
		}
	}
	return rules, nil
}

// rulesForItemset runs the level-wise right-hand-side search for one
// frequent itemset.
func rulesForItemset(table *Table, full Itemset, minConfidence, minLift float64) []Rule {
	fullCount, ok := table.count(full)
	if !ok {
		return nil
	}

	var rules []Rule
	emit := func(lhs, rhs Itemset, countLhs int) {
		countRhs, ok := table.count(rhs)
		if !ok {
			return
		}
		r := Rule{
			Lhs:             lhs,
			Rhs:             rhs,
			CountFull:       fullCount.Count,
			CountLhs:        countLhs,
			CountRhs:        countRhs.Count,
			NumTransactions: table.NumTransactions(),
		}
		if minLift > 0 && r.Lift() < minLift {
			return
		}
		rules = append(rules, r)
	}

	// Right-hand sides of size 1: every single item is evaluated.
	var survivors []Itemset
	for i := range full {
		rhs := Itemset{full[i]}
		lhs := full.without(i)
		lhsCount, ok := table.count(lhs)
		if !ok {
			continue
		}
		if float64(fullCount.Count)/float64(lhsCount.Count) >= minConfidence {
			survivors = append(survivors, rhs)
			emit(lhs, rhs, lhsCount.Count)
		}
	}

	// Larger right-hand sides come only from joining survivors, and the
	// left-hand side must stay non-empty.
	for m := 2; m < len(full) && len(survivors) > 1; m++ {
		table.order.sortItemsets(survivors)
		candidates := aprioriGen(survivors)
		var next []Itemset
		for _, rhs := range candidates {
			lhs := full.difference(rhs)
			lhsCount, ok := table.count(lhs)
			if !ok {
				continue
			}
			if float64(fullCount.Count)/float64(lhsCount.Count) >= minConfidence {
				next = append(next, rhs)
				emit(lhs, rhs, lhsCount.Count)
			}
		}
		survivors = next
	}

	return rules
}
