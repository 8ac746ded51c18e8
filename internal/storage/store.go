package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store defines the run-ledger operations.
type Store interface {
	RecordRun(ctx context.Context, run *Run) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	GetStats(ctx context.Context) (*Stats, error)
	PurgeAll(ctx context.Context) error
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	insertRun *sql.Stmt
	listRuns  *sql.Stmt
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and
// migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertRun, err = s.db.Prepare(`
		INSERT INTO runs (id, started_at, input, output, window_seconds,
			lines, emitted, skipped, duration_ms,
			median_min, median_max, median_mean, median_median)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.listRuns, err = s.db.Prepare(`
		SELECT id, started_at, input, output, window_seconds,
			lines, emitted, skipped, duration_ms,
			median_min, median_max, median_mean, median_median
		FROM runs ORDER BY started_at DESC, id LIMIT ?
	`)
	return err
}

// RecordRun inserts a completed run. The run's ID is populated
// automatically; StartedAt defaults to now when zero.
func (s *SQLiteStore) RecordRun(ctx context.Context, run *Run) error {
	run.ID = uuid.NewString()

	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	tsFormatted := run.StartedAt.UTC().Format(time.RFC3339)
	_, err := s.insertRun.ExecContext(ctx,
		run.ID, tsFormatted, run.Input, run.Output, run.WindowSeconds,
		run.Lines, run.Emitted, run.Skipped, run.DurationMs,
		run.MedianMin, run.MedianMax, run.MedianMean, run.MedianMedian,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	return nil
}

// ListRuns returns the most recent runs, newest first. A non-positive limit
// falls back to 10.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.listRuns.QueryContext(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ts string
		if err := rows.Scan(&r.ID, &ts, &r.Input, &r.Output, &r.WindowSeconds,
			&r.Lines, &r.Emitted, &r.Skipped, &r.DurationMs,
			&r.MedianMin, &r.MedianMax, &r.MedianMean, &r.MedianMedian); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if t, err := parseTimestamp(ts); err == nil {
			r.StartedAt = t
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// GetStats aggregates the whole ledger in a single query.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	var first, last sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(lines), 0), COALESCE(SUM(emitted), 0),
			COALESCE(SUM(skipped), 0), MIN(started_at), MAX(started_at)
		FROM runs
	`).Scan(&stats.TotalRuns, &stats.TotalLines, &stats.TotalEmitted,
		&stats.TotalSkipped, &first, &last)
	if err != nil {
		return nil, fmt.Errorf("aggregate runs: %w", err)
	}

	if first.Valid {
		if t, err := parseTimestamp(first.String); err == nil {
			stats.FirstRun = t
		}
	}
	if last.Valid {
		if t, err := parseTimestamp(last.String); err == nil {
			stats.LastRun = t
		}
	}

	return stats, nil
}

// PurgeAll deletes every recorded run.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM runs"); err != nil {
		return fmt.Errorf("delete runs: %w", err)
	}
	return nil
}

// Close releases prepared statements. The caller owns the *sql.DB.
func (s *SQLiteStore) Close() error {
	for _, stmt := range []*sql.Stmt{s.insertRun, s.listRuns} {
		if stmt != nil {
			stmt.Close() //nolint:errcheck
		}
	}
	return nil
}

// parseTimestamp tries the timestamp formats SQLite may hand back.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}
