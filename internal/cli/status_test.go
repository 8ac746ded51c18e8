package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlowery2/txmedian/internal/storage"
)

func TestStatusCommand_EmptyLedger(t *testing.T) {
	store, _ := testStore(t)

	cmd := &StatusCommand{globals: &GlobalFlags{}, version: "test"}
	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, "/tmp/txmedian-test.db", 60))
	})

	assert.Contains(t, out, "txmedian Status")
	assert.Contains(t, out, "Version:       test")
	assert.Contains(t, out, "Runs:          0")
	assert.Contains(t, out, "Window:        60s")
}

func TestStatusCommand_WithRuns(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordRun(ctx, &storage.Run{
		StartedAt: time.Date(2016, 4, 7, 12, 0, 0, 0, time.UTC),
		Input:     "a.txt", Lines: 1500, Emitted: 1490, Skipped: 10,
	}))
	require.NoError(t, store.RecordRun(ctx, &storage.Run{
		StartedAt: time.Date(2016, 4, 8, 12, 0, 0, 0, time.UTC),
		Input:     "b.txt", Lines: 500, Emitted: 500,
	}))

	cmd := &StatusCommand{globals: &GlobalFlags{}, version: "test"}
	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, "/tmp/txmedian-test.db", 60))
	})

	assert.Contains(t, out, "Runs:          2")
	assert.Contains(t, out, "Lines:         2,000")
	assert.Contains(t, out, "Skipped:       10 (0.5%)")
	assert.Contains(t, out, "First run:")
	assert.Contains(t, out, "Last run:")
}

func TestStatusCommand_JSON(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordRun(ctx, &storage.Run{
		StartedAt: time.Date(2016, 4, 7, 12, 0, 0, 0, time.UTC),
		Input:     "a.txt", Lines: 100, Emitted: 99, Skipped: 1,
	}))

	cmd := &StatusCommand{globals: &GlobalFlags{JSON: true}, version: "test"}
	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, "/tmp/txmedian-test.db", 60))
	})

	assert.Contains(t, out, `"total_runs": 1`)
	assert.Contains(t, out, `"total_lines": 100`)
	assert.Contains(t, out, `"first_run": "2016-04-07T12:00:00Z"`)
	assert.Contains(t, out, `"window_seconds": 60`)
}
