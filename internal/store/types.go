package store

import "time"

// Run records the parameters and summary of one completed mining run.
type Run struct {
	ID              string
	CreatedAt       time.Time
	Source          string // dataset path or a caller-supplied label
	MinSupport      float64
	MinConfidence   float64
	MaxLength       int
	MinLift         float64
	TrackIDs        bool
	NumTransactions int
	ItemsetCount    int
	RuleCount       int
}

// Itemset is a persisted frequent itemset belonging to a run.
type Itemset struct {
	RunID  string
	Items  []string
	Length int
	Count  int
}

// Rule is a persisted association rule belonging to a run. Metrics are
// stored alongside the raw counts so the read path never recomputes them;
// Conviction is infinite for rules that always hold.
type Rule struct {
	RunID           string
	Lhs             []string
	Rhs             []string
	CountFull       int
	CountLhs        int
	CountRhs        int
	NumTransactions int
	Support         float64
	Confidence      float64
	Lift            float64
	Conviction      float64
}

// Stats summarizes database contents for the stats command.
type Stats struct {
	Runs     int
	Itemsets int
	Rules    int
}
