package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cuemby/naxml-ingest/pkg/storage"
	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.NewBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func setupIntegration(t *testing.T) *types.POSIntegration {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "BOInbox"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "BOOutbox"), 0o755))
	return &types.POSIntegration{
		ID:                  uuid.NewString(),
		StoreID:             "0042",
		CompanyID:           "co-1",
		POSType:             types.POSTypeGilbarcoPassport,
		ExchangeRoot:        root,
		PollIntervalSeconds: types.DefaultPollIntervalSec,
	}
}

func TestPollProcessesClassifiedFileOnce(t *testing.T) {
	integration := setupIntegration(t)
	require.NoError(t, os.WriteFile(filepath.Join(integration.ExchangeRoot, "BOOutbox", "PJR0001.xml"), []byte("<x/>"), 0o644))

	store := newTestStore(t)
	calls := 0
	handler := func(ctx context.Context, in *types.POSIntegration, fileLog *types.FileLog, data []byte) (int, error) {
		calls++
		return 1, nil
	}

	w := NewFileWatcher(integration, store, handler)
	require.NoError(t, w.Poll(context.Background()))
	assert.Equal(t, 1, calls)

	logs, err := store.ListFileLogsByStore(integration.StoreID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, types.FileStatusSuccess, logs[0].Status)
}

func TestPollSkipsDuplicateContentOnSecondPass(t *testing.T) {
	integration := setupIntegration(t)
	integration.ArchiveProcessedFiles = false
	require.NoError(t, os.WriteFile(filepath.Join(integration.ExchangeRoot, "BOOutbox", "PJR0001.xml"), []byte("<x/>"), 0o644))

	store := newTestStore(t)
	calls := 0
	handler := func(ctx context.Context, in *types.POSIntegration, fileLog *types.FileLog, data []byte) (int, error) {
		calls++
		return 1, nil
	}

	w := NewFileWatcher(integration, store, handler)
	require.NoError(t, w.Poll(context.Background()))
	require.NoError(t, w.Poll(context.Background()))
	assert.Equal(t, 1, calls, "second pass must not reprocess the same content hash")

	logs, err := store.ListFileLogsByStore(integration.StoreID)
	require.NoError(t, err)
	var skipped *types.FileLog
	for _, fl := range logs {
		if fl.Status == types.FileStatusSkipped {
			skipped = fl
		}
	}
	require.NotNil(t, skipped, "expected a SKIPPED file log for the duplicate arrival")
	assert.Equal(t, "DUPLICATE", skipped.Reason)
}

func TestPollRecordsFailureAndMovesToErrorDir(t *testing.T) {
	integration := setupIntegration(t)
	integration.ArchiveProcessedFiles = true
	require.NoError(t, os.WriteFile(filepath.Join(integration.ExchangeRoot, "BOOutbox", "PJR0001.xml"), []byte("<x/>"), 0o644))

	store := newTestStore(t)
	handler := func(ctx context.Context, in *types.POSIntegration, fileLog *types.FileLog, data []byte) (int, error) {
		return 0, assertErr
	}

	w := NewFileWatcher(integration, store, handler)
	require.NoError(t, w.Poll(context.Background()))

	entries, err := os.ReadDir(filepath.Join(integration.ExchangeRoot, "BOOutbox", "Error"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	logs, err := store.ListFileLogsByStore(integration.StoreID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, types.FileStatusFailed, logs[0].Status)
}

func TestUnclassifiableFileIsLeftInOutbox(t *testing.T) {
	integration := setupIntegration(t)
	require.NoError(t, os.WriteFile(filepath.Join(integration.ExchangeRoot, "BOOutbox", "readme.txt"), []byte("hi"), 0o644))

	store := newTestStore(t)
	handler := func(ctx context.Context, in *types.POSIntegration, fileLog *types.FileLog, data []byte) (int, error) {
		t.Fatal("handler should not be called for an unclassifiable file")
		return 0, nil
	}

	w := NewFileWatcher(integration, store, handler)
	require.NoError(t, w.Poll(context.Background()))

	_, err := os.Stat(filepath.Join(integration.ExchangeRoot, "BOOutbox", "readme.txt"))
	assert.NoError(t, err)
}

var assertErr = &testError{"boom"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
