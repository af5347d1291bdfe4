package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/rulemine/internal/apriori"
)

// ErrNotFound is returned when a run, itemset, or rule does not exist.
var ErrNotFound = errors.New("not found")

// ErrNotInitialized is returned when the database schema has not been
// created yet (no mining run was ever saved to this database).
var ErrNotInitialized = errors.New("database not initialized; run 'rulemine mine' first")

// mapErr translates SQLite's missing-table error into ErrNotInitialized so
// callers can distinguish "never mined" from real failures.
func mapErr(err error) error {
	if err != nil && strings.Contains(err.Error(), "no such table") {
		return ErrNotInitialized
	}
	return err
}

// itemKey builds the order-insensitive identity for an itemset: items
// sorted by name, joined on a control character. Callers can look up an
// itemset without knowing the canonical order of the run that mined it.
func itemKey(items []string) string {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x1f")
}

// SaveRun persists a completed mining run with its frequent itemsets and
// rules in a single database transaction. The run's ID and CreatedAt are
// assigned here if unset, and its summary counters are filled from the
// table and rule list.
func (s *Store) SaveRun(run *Run, table *apriori.Table, rules []apriori.Rule) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.NumTransactions = table.NumTransactions()
	run.ItemsetCount = table.Size()
	run.RuleCount = len(rules)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs
		(id, created_at, source, min_support, min_confidence, max_length, min_lift, track_ids, num_transactions, itemset_count, rule_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.CreatedAt.Format(time.RFC3339),
		run.Source,
		run.MinSupport,
		run.MinConfidence,
		run.MaxLength,
		run.MinLift,
		run.TrackIDs,
		run.NumTransactions,
		run.ItemsetCount,
		run.RuleCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	insertItemset, err := tx.Prepare(`
		INSERT INTO itemsets (run_id, item_key, items, length, count)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare itemset insert: %w", err)
	}
	defer insertItemset.Close()

	for _, k := range table.Lengths() {
		for _, set := range table.Itemsets(k) {
			ic, _ := table.Count(set...)
			itemsJSON, err := json.Marshal([]string(set))
			if err != nil {
				return fmt.Errorf("failed to marshal itemset: %w", err)
			}
			if _, err := insertItemset.Exec(run.ID, itemKey(set), string(itemsJSON), k, ic.Count); err != nil {
				return fmt.Errorf("failed to insert itemset %v: %w", set, err)
			}
		}
	}

	insertRule, err := tx.Prepare(`
		INSERT INTO rules (run_id, lhs, rhs, count_full, count_lhs, count_rhs, support, confidence, lift, conviction)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare rule insert: %w", err)
	}
	defer insertRule.Close()

	for _, r := range rules {
		lhsJSON, err := json.Marshal([]string(r.Lhs))
		if err != nil {
			return fmt.Errorf("failed to marshal rule lhs: %w", err)
		}
		rhsJSON, err := json.Marshal([]string(r.Rhs))
		if err != nil {
			return fmt.Errorf("failed to marshal rule rhs: %w", err)
		}

		// NULL conviction encodes +Inf (rules that always hold).
		conviction := sql.NullFloat64{Float64: r.Conviction(), Valid: !math.IsInf(r.Conviction(), 1)}

		_, err = insertRule.Exec(
			run.ID,
			string(lhsJSON),
			string(rhsJSON),
			r.CountFull,
			r.CountLhs,
			r.CountRhs,
			r.Support(),
			r.Confidence(),
			r.Lift(),
			conviction,
		)
		if err != nil {
			return fmt.Errorf("failed to insert rule %v: %w", r, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// scanRun reads one run row.
func scanRun(row interface{ Scan(...any) error }) (*Run, error) {
	var run Run
	var createdAt string
	err := row.Scan(
		&run.ID,
		&createdAt,
		&run.Source,
		&run.MinSupport,
		&run.MinConfidence,
		&run.MaxLength,
		&run.MinLift,
		&run.TrackIDs,
		&run.NumTransactions,
		&run.ItemsetCount,
		&run.RuleCount,
	)
	if err != nil {
		return nil, err
	}
	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return &run, nil
}

const runColumns = "id, created_at, source, min_support, min_confidence, max_length, min_lift, track_ids, num_transactions, itemset_count, rule_count"

// GetRun retrieves a run by ID.
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow("SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, mapErr(err))
	}
	return run, nil
}

// LatestRun retrieves the most recently created run.
func (s *Store) LatestRun() (*Run, error) {
	row := s.db.QueryRow("SELECT " + runColumns + " FROM runs ORDER BY created_at DESC, id LIMIT 1")
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no runs recorded: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", mapErr(err))
	}
	return run, nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns() ([]*Run, error) {
	rows, err := s.db.Query("SELECT " + runColumns + " FROM runs ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", mapErr(err))
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListItemsets returns a run's frequent itemsets, optionally restricted to
// one length (0 = all lengths), ordered by length then descending count.
func (s *Store) ListItemsets(runID string, length int) ([]*Itemset, error) {
	query := `
		SELECT run_id, items, length, count FROM itemsets
		WHERE run_id = ?`
	args := []any{runID}
	if length > 0 {
		query += " AND length = ?"
		args = append(args, length)
	}
	query += " ORDER BY length, count DESC, item_key"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list itemsets: %w", mapErr(err))
	}
	defer rows.Close()

	var itemsets []*Itemset
	for rows.Next() {
		var set Itemset
		var itemsJSON string
		if err := rows.Scan(&set.RunID, &itemsJSON, &set.Length, &set.Count); err != nil {
			return nil, fmt.Errorf("failed to scan itemset: %w", err)
		}
		if err := json.Unmarshal([]byte(itemsJSON), &set.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal itemset items: %w", err)
		}
		itemsets = append(itemsets, &set)
	}
	return itemsets, rows.Err()
}

// ListRules returns a run's rules in insertion (engine enumeration) order.
// Sorting and filtering for presentation belong to the caller.
func (s *Store) ListRules(runID string) ([]*Rule, error) {
	run, err := s.GetRun(runID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT run_id, lhs, rhs, count_full, count_lhs, count_rhs, support, confidence, lift, conviction
		FROM rules WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", mapErr(err))
	}
	defer rows.Close()

	var rules []*Rule
	for rows.Next() {
		var r Rule
		var lhsJSON, rhsJSON string
		var conviction sql.NullFloat64
		err := rows.Scan(
			&r.RunID,
			&lhsJSON,
			&rhsJSON,
			&r.CountFull,
			&r.CountLhs,
			&r.CountRhs,
			&r.Support,
			&r.Confidence,
			&r.Lift,
			&conviction,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		if err := json.Unmarshal([]byte(lhsJSON), &r.Lhs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rule lhs: %w", err)
		}
		if err := json.Unmarshal([]byte(rhsJSON), &r.Rhs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rule rhs: %w", err)
		}
		if conviction.Valid {
			r.Conviction = conviction.Float64
		} else {
			r.Conviction = math.Inf(1)
		}
		r.NumTransactions = run.NumTransactions
		rules = append(rules, &r)
	}
	return rules, rows.Err()
}

// GetItemsetCount returns the persisted support count of one itemset in a
// run. Lookups are cached; the explain path resolves the same left- and
// right-hand sides repeatedly. Returns ErrNotFound when the itemset was not
// frequent in that run.
func (s *Store) GetItemsetCount(runID string, items []string) (int, error) {
	key := runID + "\x1f" + itemKey(items)
	if count, ok := s.counts.Get(key); ok {
		return count, nil
	}

	var count int
	err := s.db.QueryRow(
		"SELECT count FROM itemsets WHERE run_id = ? AND item_key = ?",
		runID, itemKey(items),
	).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("itemset %v in run %s: %w", items, runID, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get itemset count: %w", mapErr(err))
	}

	s.counts.Add(key, count)
	return count, nil
}

// DeleteRun removes a run and, via cascade, its itemsets and rules.
func (s *Store) DeleteRun(id string) error {
	res, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	s.counts.Purge()
	return nil
}

// PruneRuns deletes all but the keep most recent runs and returns how many
// were removed.
func (s *Store) PruneRuns(keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must be >= 0, got %d", keep)
	}
	res, err := s.db.Exec(`
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY created_at DESC, id LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check prune result: %w", err)
	}
	if n > 0 {
		s.counts.Purge()
	}
	return int(n), nil
}

// GetStats returns row totals for the stats command.
func (s *Store) GetStats() (*Stats, error) {
	var stats Stats
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&stats.Runs); err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", mapErr(err))
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM itemsets").Scan(&stats.Itemsets); err != nil {
		return nil, fmt.Errorf("failed to count itemsets: %w", mapErr(err))
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM rules").Scan(&stats.Rules); err != nil {
		return nil, fmt.Errorf("failed to count rules: %w", mapErr(err))
	}
	return &stats, nil
}
