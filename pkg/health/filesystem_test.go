package health

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupExchange(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "BOInbox"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "BOOutbox"), 0o755))
	return root
}

func TestFilesystemCheckerHealthyWithReachableDirs(t *testing.T) {
	root := setupExchange(t)
	integration := &types.POSIntegration{POSType: types.POSTypeGilbarcoPassport, ExchangeRoot: root}
	checker := &FilesystemChecker{Integration: integration}

	result := checker.Test(context.Background())
	assert.True(t, result.Success)
	assert.Empty(t, result.ErrorCode)
}

func TestFilesystemCheckerReportsPOSVersionFromPendingFile(t *testing.T) {
	root := setupExchange(t)
	xml := []byte(`<NAXML-POSJournal version="3.4"><POSJournal><StoreID>1</StoreID><TerminalID>1</TerminalID><TransactionID>1</TransactionID></POSJournal></NAXML-POSJournal>`)
	require.NoError(t, os.WriteFile(filepath.Join(root, "BOOutbox", "PJR0001.xml"), xml, 0o644))

	integration := &types.POSIntegration{POSType: types.POSTypeGilbarcoPassport, ExchangeRoot: root}
	checker := &FilesystemChecker{Integration: integration}

	result := checker.Test(context.Background())
	assert.True(t, result.Success)
	assert.Equal(t, "3.4", result.POSVersion)
	assert.Contains(t, result.Preview, "PJR0001.xml")
}

func TestFilesystemCheckerFailsWhenOutboxMissing(t *testing.T) {
	integration := &types.POSIntegration{POSType: types.POSTypeGilbarcoPassport, ExchangeRoot: filepath.Join(t.TempDir(), "missing")}
	checker := &FilesystemChecker{Integration: integration}

	result := checker.Test(context.Background())
	assert.False(t, result.Success)
	assert.Equal(t, "OUTBOX_UNREACHABLE", result.ErrorCode)
}
