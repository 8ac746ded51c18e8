package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestStore creates a migrated in-memory Store for testing.
func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	// One connection only: each sqlite :memory: connection is its own DB.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestRecordRun_ListRuns_Roundtrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run := &Run{
		StartedAt:     time.Date(2016, 4, 7, 12, 33, 0, 0, time.UTC),
		Input:         "venmo-trans.txt",
		Output:        "output.txt",
		WindowSeconds: 60,
		Lines:         1000,
		Emitted:       994,
		Skipped:       6,
		DurationMs:    42,
		MedianMin:     1.0,
		MedianMax:     3.5,
		MedianMean:    1.42,
		MedianMedian:  1.33,
	}

	err := store.RecordRun(ctx, run)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID, "run ID should be populated")

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "venmo-trans.txt", got.Input)
	assert.Equal(t, "output.txt", got.Output)
	assert.Equal(t, 60, got.WindowSeconds)
	assert.Equal(t, int64(1000), got.Lines)
	assert.Equal(t, int64(994), got.Emitted)
	assert.Equal(t, int64(6), got.Skipped)
	assert.Equal(t, int64(42), got.DurationMs)
	assert.Equal(t, 1.0, got.MedianMin)
	assert.Equal(t, 3.5, got.MedianMax)
	assert.Equal(t, 1.42, got.MedianMean)
	assert.Equal(t, 1.33, got.MedianMedian)
	assert.True(t, got.StartedAt.Equal(run.StartedAt), "started_at should round-trip")
}

func TestRecordRun_GeneratesUniqueIDs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	r1 := &Run{Input: "a.txt"}
	r2 := &Run{Input: "b.txt"}

	require.NoError(t, store.RecordRun(ctx, r1))
	require.NoError(t, store.RecordRun(ctx, r2))

	assert.NotEqual(t, r1.ID, r2.ID, "IDs should be unique")
	assert.False(t, r1.StartedAt.IsZero(), "StartedAt should default to now")
}

func TestListRuns_NewestFirstAndLimited(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2016, 4, 7, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := &Run{
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			Input:     "input.txt",
		}
		require.NoError(t, store.RecordRun(ctx, run))
	}

	runs, err := store.ListRuns(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt))
	assert.True(t, runs[1].StartedAt.After(runs[2].StartedAt))
	assert.True(t, runs[0].StartedAt.Equal(base.Add(4*time.Hour)))
}

func TestGetStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	empty, err := store.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.TotalRuns)
	assert.True(t, empty.FirstRun.IsZero())

	first := time.Date(2016, 4, 7, 10, 0, 0, 0, time.UTC)
	last := time.Date(2016, 4, 7, 14, 0, 0, 0, time.UTC)
	require.NoError(t, store.RecordRun(ctx, &Run{
		StartedAt: first, Lines: 100, Emitted: 98, Skipped: 2,
	}))
	require.NoError(t, store.RecordRun(ctx, &Run{
		StartedAt: last, Lines: 50, Emitted: 50, Skipped: 0,
	}))

	stats, err := store.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalRuns)
	assert.Equal(t, int64(150), stats.TotalLines)
	assert.Equal(t, int64(148), stats.TotalEmitted)
	assert.Equal(t, int64(2), stats.TotalSkipped)
	assert.True(t, stats.FirstRun.Equal(first))
	assert.True(t, stats.LastRun.Equal(last))
}

func TestPurgeAll(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordRun(ctx, &Run{Input: "a.txt"}))
	require.NoError(t, store.RecordRun(ctx, &Run{Input: "b.txt"}))

	require.NoError(t, store.PurgeAll(ctx))

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, runs)

	stats, err := store.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalRuns)
}
