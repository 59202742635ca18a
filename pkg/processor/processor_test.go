package processor

import (
	"context"
	"testing"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/naxmlerr"
	"github.com/cuemby/naxml-ingest/pkg/projector"
	"github.com/cuemby/naxml-ingest/pkg/storage"
	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProcessor(t *testing.T) (*Processor, storage.Store) {
	t.Helper()
	store, err := storage.NewBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return New(store, projector.New(store), nil), store
}

func newFileLog(storeID, hash string, status types.FileStatus) *types.FileLog {
	return &types.FileLog{
		ID:        uuid.NewString(),
		StoreID:   storeID,
		FileHash:  hash,
		FileName:  "FGM0001.xml",
		FileType:  "FuelGradeMovement",
		Status:    status,
		CreatedAt: time.Now(),
	}
}

func TestHandleRejectsContentAlreadyProjectedUnderAnotherFileLog(t *testing.T) {
	p, store := newTestProcessor(t)
	integration := &types.POSIntegration{StoreID: "0042", CompanyID: "co-1"}

	hash := "deadbeef"
	prior := newFileLog(integration.StoreID, hash, types.FileStatusSuccess)
	require.NoError(t, store.CreateFileLog(prior))

	current := newFileLog(integration.StoreID, hash, types.FileStatusProcessing)
	require.NoError(t, store.CreateFileLog(current))

	n, err := p.Handle(context.Background(), integration, current, []byte(`<x/>`))
	assert.Equal(t, 0, n)
	require.Error(t, err)
	assert.True(t, naxmlerr.Is(err, naxmlerr.CodeDuplicateContent))
}

func TestHandleProcessesFirstArrivalForAHash(t *testing.T) {
	p, store := newTestProcessor(t)
	integration := &types.POSIntegration{StoreID: "0042", CompanyID: "co-1", POSType: types.POSTypeGilbarcoPassport}

	current := newFileLog(integration.StoreID, "freshhash", types.FileStatusProcessing)
	require.NoError(t, store.CreateFileLog(current))

	data := []byte(`<NAXML-MovementReport version="3.4">
  <FuelGradeMovement>
    <PrimaryReportPeriod>2</PrimaryReportPeriod>
    <BusinessDate>2026-01-09</BusinessDate>
    <FGMDetail fuelGradeId="001">
      <TenderSummary tenderCode="cash">
        <salesVolume>10.0</salesVolume>
        <salesAmount>30.0</salesAmount>
      </TenderSummary>
    </FGMDetail>
  </FuelGradeMovement>
</NAXML-MovementReport>`)

	n, err := p.Handle(context.Background(), integration, current, data)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
