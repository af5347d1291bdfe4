package output

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/rulemine/internal/store"
)

func TestRenderRuleTable(t *testing.T) {
	tests := []struct {
		name     string
		rules    []*store.Rule
		contains []string
	}{
		{
			name:     "empty rules",
			rules:    []*store.Rule{},
			contains: []string{"No rules found"},
		},
		{
			name: "strong rule with infinite conviction",
			rules: []*store.Rule{
				{
					Lhs:        []string{"eggs"},
					Rhs:        []string{"bacon"},
					Support:    0.667,
					Confidence: 1.0,
					Lift:       1.0,
					Conviction: math.Inf(1),
				},
			},
			contains: []string{"{eggs} -> {bacon}", "1.000", "∞", "strong"},
		},
		{
			name: "moderate and weak tiers",
			rules: []*store.Rule{
				{
					Lhs:        []string{"milk"},
					Rhs:        []string{"bread"},
					Support:    0.4,
					Confidence: 0.6,
					Lift:       1.2,
					Conviction: 1.5,
				},
				{
					Lhs:        []string{"beer"},
					Rhs:        []string{"diapers"},
					Support:    0.1,
					Confidence: 0.3,
					Lift:       0.9,
					Conviction: 0.95,
				},
			},
			contains: []string{"{milk} -> {bread}", "moderate", "{beer} -> {diapers}", "weak", "1.500", "0.950"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RenderRuleTable(tt.rules)

			for _, expected := range tt.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("RenderRuleTable() missing expected string %q\nGot:\n%s", expected, result)
				}
			}
		})
	}
}

func TestRenderItemsetTable(t *testing.T) {
	tests := []struct {
		name            string
		itemsets        []*store.Itemset
		numTransactions int
		contains        []string
	}{
		{
			name:     "empty itemsets",
			itemsets: []*store.Itemset{},
			contains: []string{"No itemsets found"},
		},
		{
			name: "support derived from count",
			itemsets: []*store.Itemset{
				{Items: []string{"bacon"}, Length: 1, Count: 3},
				{Items: []string{"eggs", "bacon"}, Length: 2, Count: 2},
			},
			numTransactions: 4,
			contains:        []string{"{bacon}", "0.750", "{eggs, bacon}", "0.500"},
		},
		{
			name: "zero transactions shows n/a",
			itemsets: []*store.Itemset{
				{Items: []string{"bacon"}, Length: 1, Count: 3},
			},
			numTransactions: 0,
			contains:        []string{"n/a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RenderItemsetTable(tt.itemsets, tt.numTransactions)

			for _, expected := range tt.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("RenderItemsetTable() missing expected string %q\nGot:\n%s", expected, result)
				}
			}
		})
	}
}

func TestRenderRunTable(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		runs     []*store.Run
		contains []string
	}{
		{
			name:     "empty runs",
			runs:     []*store.Run{},
			contains: []string{"No runs found"},
		},
		{
			name: "single run",
			runs: []*store.Run{
				{
					ID:              "0b51f5ae-9f8c-49d7-b9b1-000000000000",
					CreatedAt:       now.Add(-24 * time.Hour),
					Source:          "groceries.csv",
					MinSupport:      0.05,
					MinConfidence:   0.4,
					NumTransactions: 9835,
					ItemsetCount:    333,
					RuleCount:       62,
				},
			},
			contains: []string{"0b51f5ae", "1 day ago", "groceries.csv", "9,835", "333", "62"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RenderRunTable(tt.runs)

			for _, expected := range tt.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("RenderRunTable() missing expected string %q\nGot:\n%s", expected, result)
				}
			}
		})
	}
}

func TestRenderRunSummary(t *testing.T) {
	run := &store.Run{
		ID:              "0b51f5ae-9f8c-49d7-b9b1-000000000000",
		NumTransactions: 9835,
		ItemsetCount:    333,
		RuleCount:       62,
	}

	summary := RenderRunSummary(run, 1234*time.Millisecond)
	for _, expected := range []string{"0b51f5ae", "9,835 transactions", "333 frequent itemsets", "62 rules", "1.234s"} {
		if !strings.Contains(summary, expected) {
			t.Errorf("RenderRunSummary() missing %q\nGot: %s", expected, summary)
		}
	}
}

func TestRenderStats(t *testing.T) {
	result := RenderStats(&store.Stats{Runs: 3, Itemsets: 1200, Rules: 456}, "/tmp/rulemine.db", 2048*1024)
	for _, expected := range []string{"/tmp/rulemine.db", "2.1 MB", "3", "1,200", "456"} {
		if !strings.Contains(result, expected) {
			t.Errorf("RenderStats() missing %q\nGot:\n%s", expected, result)
		}
	}
}

func TestStrengthTier(t *testing.T) {
	tests := []struct {
		confidence float64
		want       string
	}{
		{1.0, strengthStrong},
		{0.8, strengthStrong},
		{0.79, strengthModerate},
		{0.5, strengthModerate},
		{0.49, strengthWeak},
		{0.1, strengthWeak},
	}

	for _, tt := range tests {
		if got := strengthTier(tt.confidence); got != tt.want {
			t.Errorf("strengthTier(%v) = %q, want %q", tt.confidence, got, tt.want)
		}
	}
}

func TestFormatConviction(t *testing.T) {
	if got := formatConviction(math.Inf(1)); got != "∞" {
		t.Errorf("formatConviction(+Inf) = %q, want ∞", got)
	}
	if got := formatConviction(1.5); got != "1.500" {
		t.Errorf("formatConviction(1.5) = %q, want 1.500", got)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		time time.Time
		want string
	}{
		{"zero time", time.Time{}, "never"},
		{"just now", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5 minutes ago"},
		{"one hour", now.Add(-1 * time.Hour), "1 hour ago"},
		{"days", now.Add(-72 * time.Hour), "3 days ago"},
		{"weeks", now.Add(-14 * 24 * time.Hour), "2 weeks ago"},
		{"months", now.Add(-60 * 24 * time.Hour), "2 months ago"},
		{"years", now.Add(-400 * 24 * time.Hour), "1 year ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRelativeTime(tt.time); got != tt.want {
				t.Errorf("formatRelativeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"this is a long string", 10, "this is..."},
		{"abc", 2, "ab"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}
