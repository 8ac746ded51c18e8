package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlowery2/txmedian/internal/storage"
)

func TestPurgeCommand_RequiresAllFlag(t *testing.T) {
	cmd := &PurgeCommand{globals: &GlobalFlags{}}
	err := cmd.Execute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--all")
}

func TestPurgeCommand_DeletesAllRuns(t *testing.T) {
	store, db := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordRun(ctx, &storage.Run{Input: "a.txt"}))
	require.NoError(t, store.RecordRun(ctx, &storage.Run{Input: "b.txt"}))

	cmd := &PurgeCommand{All: true, Force: true, globals: &GlobalFlags{}}
	cmd.setDB(db)

	out := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})
	assert.Contains(t, out, "Purged all runs")

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestPurgeCommand_JSONOutput(t *testing.T) {
	_, db := testStore(t)

	cmd := &PurgeCommand{All: true, Force: true, globals: &GlobalFlags{JSON: true}}
	cmd.setDB(db)

	out := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})
	assert.Contains(t, out, `"purged":true`)
}
