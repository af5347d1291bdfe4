package apriori

// Config bundles the parameters for a full mining run: itemset discovery
// followed by rule generation.
type Config struct {
	MinSupport        float64
	MinConfidence     float64
	MaxLength         int     // 0 = unbounded
	MinLift           float64 // 0 = no lift filter
	TrackTransactions bool

	// Progress mirrors Options.Progress for the mining stage.
	Progress func(length, candidates, frequent int)
}

// Run mines the frequent-itemset table from the source and derives the
// association rules from it. This is the single entry point the CLI layer
// calls; both stages can also be run separately via Mine and GenerateRules.
//
// Rule order is the engine's deterministic enumeration order; callers sort
// and filter for presentation.
func Run(src Source, cfg Config) (*Table, []Rule, error) {
	// Validate the rule threshold up front so a bad configuration fails
	// before any pass over the source is made.
	if cfg.MinConfidence <= 0 || cfg.MinConfidence > 1 {
		return nil, nil, &InvalidParameterError{Name: "min_confidence", Value: cfg.MinConfidence, Reason: "must be in (0, 1]"}
	}

	table, err := Mine(src, Options{
		MinSupport:        cfg.MinSupport,
		MaxLength:         cfg.MaxLength,
		TrackTransactions: cfg.TrackTransactions,
		Progress:          cfg.Progress,
	})
	if err != nil {
		return nil, nil, err
	}

	rules, err := GenerateRules(table, cfg.MinConfidence, cfg.MinLift)
	if err != nil {
		return nil, nil, err
	}
	return table, rules, nil
}
