package apriori

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the transaction source yields no
// transactions at all. It is distinct from "no frequent itemsets found",
// which is a valid empty result, not an error.
var ErrEmptyInput = errors.New("transaction source yielded no transactions")

// InvalidParameterError reports a threshold or bound outside its valid
// domain.
type InvalidParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Name, e.Value, e.Reason)
}

// SourceMismatchError reports a transaction source that violated its
// re-iterability contract: a later pass observed a different number of
// transactions than the first. Counting against an inconsistent source
// silently corrupts support counts, so mining aborts instead.
type SourceMismatchError struct {
	Pass     int // itemset length whose counting pass detected the mismatch
	Expected int // transactions observed on the first pass
	Got      int // transactions observed on this pass
}

func (e *SourceMismatchError) Error() string {
	return fmt.Sprintf("transaction source changed between passes: first pass saw %d transactions, pass for length %d saw %d",
		e.Expected, e.Pass, e.Got)
}
