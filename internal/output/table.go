// Package output provides terminal output utilities for rulemine.
//
// This package includes:
//   - Table rendering functions for association rules, frequent itemsets, and mining runs
//   - Progress bars for long-running mining passes
//   - Spinners for indeterminate operations
//   - Human-readable formatting for metrics, counts, and dates
//
// All table rendering functions use ASCII characters and ANSI color codes for terminal output.
// Progress indicators are thread-safe and can be used from multiple goroutines.
package output

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/rulemine/internal/store"
)

// ANSI color codes for rule strength display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// Rule strength tiers, assigned from confidence.
const (
	strengthStrong   = "strong"
	strengthModerate = "moderate"
	strengthWeak     = "weak"
)

// strengthTier buckets a rule by confidence. Strong rules hold at least 80%
// of the time, moderate at least 50%.
func strengthTier(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return strengthStrong
	case confidence >= 0.5:
		return strengthModerate
	default:
		return strengthWeak
	}
}

// getStrengthColor returns the ANSI color code for a strength tier.
func getStrengthColor(tier string) string {
	switch tier {
	case strengthStrong:
		return colorGreen
	case strengthModerate:
		return colorYellow
	case strengthWeak:
		return colorRed
	default:
		return colorGray
	}
}

// RenderRuleTable renders a table of association rules.
// Note: Does not sort - expects rules to be pre-sorted by caller.
func RenderRuleTable(rules []*store.Rule) string {
	if len(rules) == 0 {
		return "No rules found.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("%-40s %-7s %-7s %-7s %-7s %s\n",
		"Rule", "Conf", "Supp", "Lift", "Conv", "Strength"))
	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")

	// Rows
	for _, r := range rules {
		tier := strengthTier(r.Confidence)
		sb.WriteString(fmt.Sprintf("%-40s %-7.3f %-7.3f %-7.3f %-7s %s\n",
			truncate(formatRule(r.Lhs, r.Rhs), 40),
			r.Confidence,
			r.Support,
			r.Lift,
			formatConviction(r.Conviction),
			colorize(getStrengthColor(tier), tier)))
	}

	return sb.String()
}

// RenderItemsetTable renders a table of frequent itemsets. The transaction
// total of the owning run is needed to derive support from raw counts.
// Note: Does not sort - expects itemsets to be pre-sorted by caller.
func RenderItemsetTable(itemsets []*store.Itemset, numTransactions int) string {
	if len(itemsets) == 0 {
		return "No itemsets found.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("%-44s %-7s %-9s %s\n",
		"Itemset", "Length", "Count", "Support"))
	sb.WriteString(strings.Repeat("─", 70))
	sb.WriteString("\n")

	// Rows
	for _, set := range itemsets {
		support := "n/a"
		if numTransactions > 0 {
			support = fmt.Sprintf("%.3f", float64(set.Count)/float64(numTransactions))
		}
		sb.WriteString(fmt.Sprintf("%-44s %-7d %-9s %s\n",
			truncate(formatItems(set.Items), 44),
			set.Length,
			humanize.Comma(int64(set.Count)),
			support))
	}

	return sb.String()
}

// RenderRunTable renders a table of mining runs.
// Note: Does not sort - expects runs to be pre-sorted by caller (newest first).
func RenderRunTable(runs []*store.Run) string {
	if len(runs) == 0 {
		return "No runs found.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("%-10s %-14s %-24s %-7s %-7s %-10s %-9s %s\n",
		"Run", "Created", "Source", "Supp", "Conf", "Txns", "Itemsets", "Rules"))
	sb.WriteString(strings.Repeat("─", 96))
	sb.WriteString("\n")

	// Rows
	for _, run := range runs {
		sb.WriteString(fmt.Sprintf("%-10s %-14s %-24s %-7.2f %-7.2f %-10s %-9d %d\n",
			ShortID(run.ID),
			formatRelativeTime(run.CreatedAt),
			truncate(run.Source, 24),
			run.MinSupport,
			run.MinConfidence,
			humanize.Comma(int64(run.NumTransactions)),
			run.ItemsetCount,
			run.RuleCount))
	}

	return sb.String()
}

// RenderRunSummary renders the one-line summary printed after a mining run.
// Unsaved runs have no ID and drop the run prefix.
func RenderRunSummary(run *store.Run, elapsed time.Duration) string {
	prefix := "Mined"
	if run.ID != "" {
		prefix = fmt.Sprintf("Run %s:", ShortID(run.ID))
	}
	return fmt.Sprintf("%s %s transactions, %d frequent itemsets, %d rules (%s)",
		prefix,
		humanize.Comma(int64(run.NumTransactions)),
		run.ItemsetCount,
		run.RuleCount,
		elapsed.Round(time.Millisecond))
}

// RenderStats renders the stats command output. sizeBytes is the database
// file size on disk (0 when unknown, e.g. in-memory databases).
func RenderStats(stats *store.Stats, dbPath string, sizeBytes int64) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Database: %s\n", dbPath))
	if sizeBytes > 0 {
		sb.WriteString(fmt.Sprintf("Size:     %s\n", humanize.Bytes(uint64(sizeBytes))))
	}
	sb.WriteString(fmt.Sprintf("Runs:     %s\n", humanize.Comma(int64(stats.Runs))))
	sb.WriteString(fmt.Sprintf("Itemsets: %s\n", humanize.Comma(int64(stats.Itemsets))))
	sb.WriteString(fmt.Sprintf("Rules:    %s\n", humanize.Comma(int64(stats.Rules))))
	return sb.String()
}

// ShortID abbreviates a run UUID for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatItems renders an itemset as "{a, b, c}".
func formatItems(items []string) string {
	return "{" + strings.Join(items, ", ") + "}"
}

// formatRule renders "{lhs} -> {rhs}".
func formatRule(lhs, rhs []string) string {
	return formatItems(lhs) + " -> " + formatItems(rhs)
}

// formatConviction renders a conviction value, using the infinity sign for
// rules that always hold.
func formatConviction(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.3f", v)
}

// formatRelativeTime converts a timestamp to relative time (e.g., "2 days ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	case diff < 30*24*time.Hour:
		weeks := int(diff.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	case diff < 365*24*time.Hour:
		months := int(diff.Hours() / 24 / 30)
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	default:
		years := int(diff.Hours() / 24 / 365)
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
