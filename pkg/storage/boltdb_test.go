package storage

import (
	"testing"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := NewBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestFileLogDedupeByHash(t *testing.T) {
	store := newTestStore(t)

	log := &types.FileLog{ID: "fl-1", StoreID: "store-1", FileHash: "abc123", FileName: "FGM_1.xml", Status: types.FileStatusPending}
	require.NoError(t, store.CreateFileLog(log))

	got, err := store.GetFileLogByHash("store-1", "abc123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "FGM_1.xml", got.FileName)

	missing, err := store.GetFileLogByHash("store-1", "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)

	other, err := store.GetFileLogByHash("store-2", "abc123")
	require.NoError(t, err)
	assert.Nil(t, other, "hash uniqueness is scoped per store")
}

func TestAuditRecordTerminalIsImmutable(t *testing.T) {
	store := newTestStore(t)

	rec := &types.AuditRecord{ExchangeID: "ex-1", StoreID: "store-1", Status: types.AuditStatusPending}
	require.NoError(t, store.CreateAuditRecord(rec))

	rec.Status = types.AuditStatusProcessing
	require.NoError(t, store.UpdateAuditRecord(rec))

	rec.Status = types.AuditStatusSuccess
	require.NoError(t, store.UpdateAuditRecord(rec))

	rec.Status = types.AuditStatusFailed
	err := store.UpdateAuditRecord(rec)
	assert.Error(t, err, "terminal audit records must not be mutated")

	stored, err := store.GetAuditRecord("ex-1")
	require.NoError(t, err)
	assert.Equal(t, types.AuditStatusSuccess, stored.Status)
}

func TestDeactivateDepartmentsNotIn(t *testing.T) {
	store := newTestStore(t)

	for _, code := range []string{"10", "20", "30"} {
		require.NoError(t, store.UpsertDepartment(&types.Department{
			StoreID: "store-1", POSCode: code, Code: "DEPT_" + code,
			IsActive: true, POSSource: types.POSSource("GILBARCO_NAXML"),
		}))
	}

	deactivated, err := store.DeactivateDepartmentsNotIn("store-1", types.POSSource("GILBARCO_NAXML"), map[string]bool{"10": true, "20": true})
	require.NoError(t, err)
	assert.Equal(t, 1, deactivated)

	d30, err := store.GetDepartmentByPOSCode("store-1", "30")
	require.NoError(t, err)
	assert.False(t, d30.IsActive)

	d10, err := store.GetDepartmentByPOSCode("store-1", "10")
	require.NoError(t, err)
	assert.True(t, d10.IsActive)
}

func TestTransactionBundleAtomicAndDedupeable(t *testing.T) {
	store := newTestStore(t)

	tx := &types.Transaction{ID: "tx-1", StoreID: "store-1", SourceFileHash: "hash-1", POSTransactionID: "99001"}
	lines := []*types.LineItem{{ID: "li-1", TransactionID: "tx-1", StoreID: "store-1", LineNumber: 1}}
	payments := []*types.Payment{{ID: "p-1", TransactionID: "tx-1", StoreID: "store-1", Amount: 10.5}}

	require.NoError(t, store.CreateTransactionBundle(tx, lines, payments))

	got, err := store.GetTransactionBySourceHash("store-1", "hash-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "99001", got.POSTransactionID)

	none, err := store.GetTransactionBySourceHash("store-2", "hash-1")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestDaySummaryUpsertKeyedByDate(t *testing.T) {
	store := newTestStore(t)
	day := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.UpsertDaySummary(&types.DaySummary{StoreID: "store-1", BusinessDate: day, FuelSales: 100}))
	require.NoError(t, store.UpsertDaySummary(&types.DaySummary{StoreID: "store-1", BusinessDate: day, FuelSales: 150}))

	got, err := store.GetDaySummary("store-1", day)
	require.NoError(t, err)
	assert.Equal(t, 150.0, got.FuelSales)
}

func TestSyncLogsListedMostRecentFirst(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.AppendSyncLog(&types.SyncLog{
			ID: string(rune('a' + i)), StoreID: "store-1",
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			Status:    types.SyncStatusSuccess,
		}))
	}

	logs, err := store.ListSyncLogs("store-1", 3)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.True(t, logs[0].StartedAt.After(logs[1].StartedAt))
	assert.True(t, logs[1].StartedAt.After(logs[2].StartedAt))
}
