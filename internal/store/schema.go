package store

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL,
    source TEXT NOT NULL,
    min_support REAL NOT NULL,
    min_confidence REAL NOT NULL,
    max_length INTEGER NOT NULL,
    min_lift REAL NOT NULL,
    track_ids BOOLEAN NOT NULL,
    num_transactions INTEGER NOT NULL,
    itemset_count INTEGER NOT NULL,
    rule_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS itemsets (
    run_id TEXT NOT NULL,
    item_key TEXT NOT NULL,
    items TEXT NOT NULL,
    length INTEGER NOT NULL,
    count INTEGER NOT NULL,
    PRIMARY KEY (run_id, item_key),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS rules (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    lhs TEXT NOT NULL,
    rhs TEXT NOT NULL,
    count_full INTEGER NOT NULL,
    count_lhs INTEGER NOT NULL,
    count_rhs INTEGER NOT NULL,
    support REAL NOT NULL,
    confidence REAL NOT NULL,
    lift REAL NOT NULL,
    conviction REAL,
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_itemsets_run_length ON itemsets(run_id, length);
CREATE INDEX IF NOT EXISTS idx_rules_run ON rules(run_id);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
