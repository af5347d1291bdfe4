package apriori

// Source provides repeatable passes over a collection of transactions.
//
// The miner performs one full pass per itemset length, so Scan may be called
// many times. Every call must yield the same transactions in the same order;
// the miner verifies the transaction count on each pass and fails with
// SourceMismatchError when a source breaks that contract. Sources are free
// to stream (e.g. re-open a file per pass) rather than hold everything in
// memory.
type Source interface {
	Scan(fn func(tx Transaction) error) error
}

// SliceSource is an in-memory Source backed by a slice of transactions.
type SliceSource [][]string

// Scan calls fn for every transaction in order.
func (s SliceSource) Scan(fn func(tx Transaction) error) error {
	for _, tx := range s {
		if err := fn(Transaction(tx)); err != nil {
			return err
		}
	}
	return nil
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(fn func(tx Transaction) error) error

// Scan invokes the wrapped function.
func (f SourceFunc) Scan(fn func(tx Transaction) error) error {
	return f(fn)
}
