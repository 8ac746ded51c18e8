package storage

import "database/sql"

// migrateV001 creates the run-ledger schema. Every statement uses
// IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id             TEXT PRIMARY KEY,
			started_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			input          TEXT NOT NULL DEFAULT '',
			output         TEXT NOT NULL DEFAULT '',
			window_seconds INTEGER NOT NULL DEFAULT 60,
			lines          INTEGER NOT NULL DEFAULT 0,
			emitted        INTEGER NOT NULL DEFAULT 0,
			skipped        INTEGER NOT NULL DEFAULT 0,
			duration_ms    INTEGER NOT NULL DEFAULT 0,
			median_min     REAL NOT NULL DEFAULT 0,
			median_max     REAL NOT NULL DEFAULT 0,
			median_mean    REAL NOT NULL DEFAULT 0,
			median_median  REAL NOT NULL DEFAULT 0,
			created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
