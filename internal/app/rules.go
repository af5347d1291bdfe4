package app

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rulemine/internal/output"
	"github.com/blackwell-systems/rulemine/internal/store"
)

var (
	rulesRun     string
	rulesSort    string
	rulesMinLift float64
	rulesMinConf float64
	rulesLimit   int
	rulesJSON    bool

	rulesCmd = &cobra.Command{
		Use:   "rules",
		Short: "Show association rules from a mining run",
		Long: `Display the association rules of a stored mining run.

By default the latest run is shown. Rules can be re-sorted and filtered
here without re-mining: sorting and presentation filters are applied to
the stored rules, the mining thresholds of the original run stay as they
were.`,
		Example: `  # Rules from the latest run, sorted by confidence
  rulemine rules

  # Strongest lift first, top 20
  rulemine rules --sort lift --limit 20

  # Only rules with lift above 1.2 from a specific run
  rulemine rules --run 0b51f5ae --min-lift 1.2

  # Machine-readable output
  rulemine rules --json`,
		RunE: runRules,
	}
)

func init() {
	rulesCmd.Flags().StringVar(&rulesRun, "run", "latest", "run ID (or 'latest')")
	rulesCmd.Flags().StringVar(&rulesSort, "sort", "confidence", "sort key: confidence|lift|support|conviction")
	rulesCmd.Flags().Float64Var(&rulesMinLift, "min-lift", 0, "hide rules with lift below this value")
	rulesCmd.Flags().Float64Var(&rulesMinConf, "min-confidence", 0, "hide rules with confidence below this value")
	rulesCmd.Flags().IntVar(&rulesLimit, "limit", 0, "show at most this many rules (0 = all)")
	rulesCmd.Flags().BoolVar(&rulesJSON, "json", false, "emit rules as JSON")
}

func runRules(cmd *cobra.Command, args []string) error {
	if err := validateRuleSort(rulesSort); err != nil {
		return err
	}

	db, _, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := resolveRun(db, rulesRun)
	if err != nil {
		return err
	}

	rules, err := db.ListRules(run.ID)
	if err != nil {
		return fmt.Errorf("failed to list rules: %w", err)
	}

	rules = filterRules(rules, rulesMinConf, rulesMinLift)
	sortRules(rules, rulesSort)
	if rulesLimit > 0 && len(rules) > rulesLimit {
		rules = rules[:rulesLimit]
	}

	if rulesJSON {
		return writeRulesJSON(os.Stdout, run, rules)
	}

	fmt.Printf("Run %s (%s): %d rules\n\n", output.ShortID(run.ID), run.Source, len(rules))
	fmt.Print(output.RenderRuleTable(rules))
	return nil
}

func validateRuleSort(key string) error {
	switch key {
	case "confidence", "lift", "support", "conviction":
		return nil
	}
	return fmt.Errorf("invalid sort key %q (want confidence, lift, support, or conviction)", key)
}

// filterRules applies the presentation thresholds.
func filterRules(rules []*store.Rule, minConf, minLift float64) []*store.Rule {
	if minConf <= 0 && minLift <= 0 {
		return rules
	}
	kept := rules[:0]
	for _, r := range rules {
		if r.Confidence < minConf || r.Lift < minLift {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// sortRules orders rules by the chosen metric, descending, with the rule
// string as a stable tie-break so output is deterministic.
func sortRules(rules []*store.Rule, key string) {
	metric := func(r *store.Rule) float64 {
		switch key {
		case "lift":
			return r.Lift
		case "support":
			return r.Support
		case "conviction":
			return r.Conviction
		default:
			return r.Confidence
		}
	}
	sort.SliceStable(rules, func(i, j int) bool {
		mi, mj := metric(rules[i]), metric(rules[j])
		if mi != mj {
			return mi > mj
		}
		return ruleLabel(rules[i]) < ruleLabel(rules[j])
	})
}

func ruleLabel(r *store.Rule) string {
	return fmt.Sprintf("%v=>%v", r.Lhs, r.Rhs)
}

// ruleJSON is the wire shape of one rule in --json output. Infinite
// conviction is encoded as null, matching the database encoding.
type ruleJSON struct {
	Lhs        []string `json:"lhs"`
	Rhs        []string `json:"rhs"`
	Support    float64  `json:"support"`
	Confidence float64  `json:"confidence"`
	Lift       float64  `json:"lift"`
	Conviction *float64 `json:"conviction"`
}

func writeRulesJSON(w *os.File, run *store.Run, rules []*store.Rule) error {
	out := struct {
		Run    string     `json:"run"`
		Source string     `json:"source"`
		Rules  []ruleJSON `json:"rules"`
	}{
		Run:    run.ID,
		Source: run.Source,
		Rules:  make([]ruleJSON, 0, len(rules)),
	}

	for _, r := range rules {
		rj := ruleJSON{
			Lhs:        r.Lhs,
			Rhs:        r.Rhs,
			Support:    r.Support,
			Confidence: r.Confidence,
			Lift:       r.Lift,
		}
		if !math.IsInf(r.Conviction, 1) {
			conv := r.Conviction
			rj.Conviction = &conv
		}
		out.Rules = append(out.Rules, rj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	return nil
}
