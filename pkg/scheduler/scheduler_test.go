package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/storage"
	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/cuemby/naxml-ingest/pkg/watcher"
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

func newTestIntegration(t *testing.T, storeID string) *types.POSIntegration {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "BOInbox"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "BOOutbox"), 0o755))
	return &types.POSIntegration{
		StoreID:             storeID,
		POSType:             types.POSTypeGilbarcoPassport,
		ExchangeRoot:        root,
		PollIntervalSeconds: types.MinPollIntervalSeconds,
		SyncEnabled:         true,
		SyncIntervalMins:    1,
	}
}

func noopHandler(ctx context.Context, integration *types.POSIntegration, fileLog *types.FileLog, data []byte) (int, error) {
	return 0, nil
}

func TestStartRegistersAndStopRemoves(t *testing.T) {
	store := newTestStore(t)
	orch := NewOrchestrator(store, watcher.DocumentHandler(noopHandler), func(ctx context.Context, integration *types.POSIntegration) (map[string]types.SyncCategoryResult, error) {
		return nil, nil
	})

	integration := newTestIntegration(t, "0042")
	require.NoError(t, orch.Start(integration))
	assert.Len(t, orch.ListActive(), 1)

	require.NoError(t, orch.Stop("0042"))
	assert.Len(t, orch.ListActive(), 0)
}

func TestStopUnknownStoreErrors(t *testing.T) {
	store := newTestStore(t)
	orch := NewOrchestrator(store, watcher.DocumentHandler(noopHandler), nil)
	assert.Error(t, orch.Stop("does-not-exist"))
}

func TestUpdatePollIntervalClampsToBounds(t *testing.T) {
	store := newTestStore(t)
	orch := NewOrchestrator(store, watcher.DocumentHandler(noopHandler), func(ctx context.Context, integration *types.POSIntegration) (map[string]types.SyncCategoryResult, error) {
		return nil, nil
	})

	integration := newTestIntegration(t, "0042")
	require.NoError(t, orch.Start(integration))
	defer orch.Stop("0042")

	require.NoError(t, orch.UpdatePollInterval("0042", 5))
	active := orch.ListActive()
	require.Len(t, active, 1)
	assert.Equal(t, types.MinPollIntervalSeconds, active[0].PollIntervalSeconds)
}

func TestRunSyncCycleAppendsSyncLogWithAggregateStatus(t *testing.T) {
	store := newTestStore(t)
	integration := newTestIntegration(t, "0042")

	syncFn := func(ctx context.Context, in *types.POSIntegration) (map[string]types.SyncCategoryResult, error) {
		return map[string]types.SyncCategoryResult{
			"departments": {Received: 5, Created: 5},
			"tenderTypes": {Received: 2, Errors: []string{"boom"}},
		}, nil
	}
	orch := NewOrchestrator(store, watcher.DocumentHandler(noopHandler), syncFn)

	orch.runSyncCycle(context.Background(), integration)

	logs, err := store.ListSyncLogs(integration.StoreID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, types.SyncStatusPartialSuccess, logs[0].Status)
}

func TestAggregateStatusAllClean(t *testing.T) {
	status := aggregateStatus(map[string]types.SyncCategoryResult{
		"departments": {Received: 3, Created: 3},
	})
	assert.Equal(t, types.SyncStatusSuccess, status)
}

func TestAggregateStatusAllFailed(t *testing.T) {
	status := aggregateStatus(map[string]types.SyncCategoryResult{
		"departments": {Errors: []string{"e1"}},
		"tenderTypes": {Errors: []string{"e2"}},
	})
	assert.Equal(t, types.SyncStatusFailed, status)
}

func TestSyncDisabledIntegrationSkipsCycle(t *testing.T) {
	store := newTestStore(t)
	integration := newTestIntegration(t, "0042")
	integration.SyncEnabled = false

	called := false
	syncFn := func(ctx context.Context, in *types.POSIntegration) (map[string]types.SyncCategoryResult, error) {
		called = true
		return nil, nil
	}
	orch := NewOrchestrator(store, watcher.DocumentHandler(noopHandler), syncFn)
	orch.runSyncCycle(context.Background(), integration)

	assert.False(t, called)
	time.Sleep(10 * time.Millisecond)
}
