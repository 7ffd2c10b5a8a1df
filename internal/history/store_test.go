package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.InitSchema())
	return store
}

func TestStore_StartAndCompleteRun(t *testing.T) {
	store := openTestStore(t)

	run, err := store.StartRun("test")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "test", run.Target)
	assert.Equal(t, StatusRunning, run.Status)

	require.NoError(t, store.CompleteRun(run.ID, StatusFailed, 1, "2 tests failed"))

	runs, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, StatusFailed, runs[0].Status)
	assert.Equal(t, 1, runs[0].ExitCode)
	assert.Equal(t, "2 tests failed", runs[0].Error)
	require.NotNil(t, runs[0].CompletedAt)
	assert.GreaterOrEqual(t, runs[0].Duration(), time.Duration(0))
}

func TestStore_CompleteUnknownRun(t *testing.T) {
	store := openTestStore(t)

	err := store.CompleteRun("nope", StatusSuccess, 0, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestStore_RecentOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	for _, target := range []string{"clean", "install", "test"} {
		run, err := store.StartRun(target)
		require.NoError(t, err)
		require.NoError(t, store.CompleteRun(run.ID, StatusSuccess, 0, ""))
		time.Sleep(5 * time.Millisecond)
	}

	runs, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "test", runs[0].Target)
	assert.Equal(t, "install", runs[1].Target)
}

func TestStore_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.InitSchema())

	run, err := store.StartRun("clean")
	require.NoError(t, err)
	require.NoError(t, store.CompleteRun(run.ID, StatusSuccess, 0, ""))
	require.NoError(t, store.Close())

	// Reopen and read back.
	store, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runs, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "clean", runs[0].Target)
}
