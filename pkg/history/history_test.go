package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecordAndRecent verifies the insert/select round-trip and ordering.
func TestRecordAndRecent(t *testing.T) {
	log, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer log.Close()

	ctx := context.Background()
	require.NoError(t, log.Record(ctx, Entry{
		Actor:    "admin@portal.test",
		Resource: "dealers",
		Action:   "update",
		TargetID: "d42",
		Detail:   "tier Net2 -> Net3",
	}))
	require.NoError(t, log.Record(ctx, Entry{
		Actor:    "admin@portal.test",
		Resource: "banners",
		Action:   "delete",
		TargetID: "b7",
	}))

	entries, err := log.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Новые первыми
	assert.Equal(t, "banners", entries[0].Resource)
	assert.Equal(t, "dealers", entries[1].Resource)
	assert.Equal(t, "tier Net2 -> Net3", entries[1].Detail)
	assert.WithinDuration(t, time.Now().UTC(), entries[0].At, time.Minute)
}

// TestRecentLimit verifies the limit is applied.
func TestRecentLimit(t *testing.T) {
	log, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer log.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, log.Record(ctx, Entry{Actor: "a", Resource: "orders", Action: "export"}))
	}

	entries, err := log.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

// TestOpenCreatesDir verifies nested db paths are created.
func TestOpenCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	log, err := Open(path)
	require.NoError(t, err)
	defer log.Close()

	require.NoError(t, log.Record(context.Background(), Entry{Actor: "a", Resource: "r", Action: "x"}))
}
