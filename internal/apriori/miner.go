package apriori

// Options controls one mining run.
type Options struct {
	// MinSupport is the minimum fraction of transactions an itemset must
	// occur in, in (0, 1].
	MinSupport float64

	// MaxLength caps the itemset length to mine up to. 0 means unbounded.
	MaxLength int

	// TrackTransactions records, for each frequent itemset, the identifiers
	// of the transactions containing it. Identifiers are assigned in read
	// order starting at 0.
	TrackTransactions bool

	// Progress, when non-nil, is invoked after each completed level with
	// the itemset length, the number of candidates counted, and the number
	// that met the support threshold.
	Progress func(length, candidates, frequent int)
}

func (o Options) validate() error {
	if o.MinSupport <= 0 || o.MinSupport > 1 {
		return &InvalidParameterError{Name: "min_support", Value: o.MinSupport, Reason: "must be in (0, 1]"}
	}
	if o.MaxLength < 0 {
		return &InvalidParameterError{Name: "max_length", Value: float64(o.MaxLength), Reason: "must be >= 0"}
	}
	return nil
}

// Mine builds the frequent-itemset table for the source, level by level.
//
// Level 1 counts every distinct item in a single pass and fixes the run's
// canonical item order (descending frequency, ties by name). Each further
// level joins the previous level's itemsets into candidates, prunes
// candidates with any infrequent subset, and counts the survivors in one
// more pass over the source. Mining stops when a level yields nothing or
// MaxLength is reached.
//
// Mine returns ErrEmptyInput when the source has no transactions and a
// SourceMismatchError when successive passes disagree on the transaction
// count. A support threshold too high for any single item yields an empty
// table, not an error.
func Mine(src Source, opts Options) (*Table, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	// Level 1: count singletons and the transaction total in one pass.
	itemCounts := make(map[string]int)
	var itemTxs map[string][]int
	if opts.TrackTransactions {
		itemTxs = make(map[string][]int)
	}
	n := 0
	err := src.Scan(func(tx Transaction) error {
		row := n
		n++
		seen := make(map[string]struct{}, len(tx))
		for _, item := range tx {
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
			itemCounts[item]++
			if opts.TrackTransactions {
				itemTxs[item] = append(itemTxs[item], row)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrEmptyInput
	}

	order := newItemOrder(itemCounts)
	table := newTable(n, order)

	level1 := make(map[string]ItemsetCount)
	for item, count := range itemCounts {
		if float64(count)/float64(n) < opts.MinSupport {
			continue
		}
		ic := ItemsetCount{Count: count}
		if opts.TrackTransactions {
			ic.Transactions = itemTxs[item]
		}
		level1[Itemset{item}.Key()] = ic
	}
	if opts.Progress != nil {
		opts.Progress(1, len(itemCounts), len(level1))
	}
	if len(level1) == 0 {
		return table, nil
	}
	table.levels[1] = level1

	// Rows that supported no candidate at some level cannot support any
	// candidate at a later level either, so they are skipped from then on.
	skipRows := make(map[int]struct{})

	for k := 2; opts.MaxLength == 0 || k <= opts.MaxLength; k++ {
		prev := table.Itemsets(k - 1)
		candidates := aprioriGen(prev)
		if len(candidates) == 0 {
			break
		}

		counts := make([]int, len(candidates))
		var txs [][]int
		if opts.TrackTransactions {
			txs = make([][]int, len(candidates))
		}

		rows := 0
		err := src.Scan(func(tx Transaction) error {
			row := rows
			rows++
			if _, skip := skipRows[row]; skip {
				return nil
			}
			txSet := make(map[string]struct{}, len(tx))
			for _, item := range tx {
				txSet[item] = struct{}{}
			}
			foundAny := false
			for i, cand := range candidates {
				if containsAll(txSet, cand) {
					counts[i]++
					foundAny = true
					if opts.TrackTransactions {
						txs[i] = append(txs[i], row)
					}
				}
			}
			if !foundAny {
				skipRows[row] = struct{}{}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if rows != n {
			return nil, &SourceMismatchError{Pass: k, Expected: n, Got: rows}
		}

		level := make(map[string]ItemsetCount)
		for i, cand := range candidates {
			if float64(counts[i])/float64(n) < opts.MinSupport {
				continue
			}
			ic := ItemsetCount{Count: counts[i]}
			if opts.TrackTransactions {
				ic.Transactions = txs[i]
			}
			level[cand.Key()] = ic
		}
		if opts.Progress != nil {
			opts.Progress(k, len(candidates), len(level))
		}
		if len(level) == 0 {
			break
		}
		table.levels[k] = level
	}

	return table, nil
}

// aprioriGen generates the candidate itemsets of length k+1 from the
// frequent itemsets of length k: a join step proposing only supersets whose
// prefix subsets are known frequent, then a prune step dropping any
// candidate with an infrequent immediate subset. The input must be sorted
// in the canonical enumeration order.
func aprioriGen(itemsets []Itemset) []Itemset {
	return pruneStep(itemsets, joinStep(itemsets))
}

// joinStep joins itemsets of length k into candidates of length k+1.
//
// Within a block of itemsets sharing their first k-1 items, every pair of
// distinct last items yields one candidate: the shared prefix plus both
// tails. Because the input is sorted, blocks are contiguous and the tails
// within a block are already in canonical order, so every candidate comes
// out in canonical order too.
func joinStep(itemsets []Itemset) []Itemset {
	var out []Itemset
	for i := 0; i < len(itemsets); {
		prefix := itemsets[i][:len(itemsets[i])-1]
		tails := []string{itemsets[i][len(itemsets[i])-1]}

		j := i + 1
		for ; j < len(itemsets); j++ {
			other := itemsets[j][:len(itemsets[j])-1]
			if !prefix.Equal(other) {
				break
			}
			tails = append(tails, itemsets[j][len(itemsets[j])-1])
		}

		for a := 0; a < len(tails); a++ {
			for b := a + 1; b < len(tails); b++ {
				cand := make(Itemset, 0, len(prefix)+2)
				cand = append(cand, prefix...)
				cand = append(cand, tails[a], tails[b])
				out = append(out, cand)
			}
		}
		i = j
	}
	return out
}

// pruneStep drops candidates that have any immediate subset missing from
// the frequent itemsets of the previous length. An itemset with an
// infrequent subset cannot itself be frequent, so such candidates need not
// be counted at all.
func pruneStep(itemsets []Itemset, candidates []Itemset) []Itemset {
	frequent := make(map[string]struct{}, len(itemsets))
	for _, s := range itemsets {
		frequent[s.Key()] = struct{}{}
	}

	out := make([]Itemset, 0, len(candidates))
	for _, cand := range candidates {
		keep := true
		for i := range cand {
			if _, ok := frequent[cand.without(i).Key()]; !ok {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, cand)
		}
	}
	return out
}
