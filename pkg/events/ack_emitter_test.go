package events

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAckEmitterWritesAckDocumentWhenEnabled(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "BOInbox"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "BOOutbox"), 0o755))

	integration := &types.POSIntegration{
		StoreID:                 "0042",
		POSType:                 types.POSTypeGilbarcoPassport,
		ExchangeRoot:            root,
		NAXMLVersion:            "3.4",
		GenerateAcknowledgments: true,
	}

	broker := NewBroker()
	broker.Start()
	defer broker.Stop()

	emitter := NewAckEmitter(broker, func(storeID string) (*types.POSIntegration, bool) {
		return integration, storeID == integration.StoreID
	})
	emitter.Start()
	defer emitter.Stop()

	broker.Publish(&Event{
		ID:      "evt-1",
		Type:    EventFileProcessed,
		StoreID: "0042",
		Metadata: map[string]string{
			"file_name": "PJR0001.xml",
			"status":    "SUCCESS",
		},
	})

	require.Eventually(t, func() bool {
		entries, err := os.ReadDir(filepath.Join(root, "BOInbox"))
		return err == nil && len(entries) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestAckEmitterSkipsWhenDisabled(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "BOInbox"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "BOOutbox"), 0o755))

	integration := &types.POSIntegration{
		StoreID:                 "0042",
		POSType:                 types.POSTypeGilbarcoPassport,
		ExchangeRoot:            root,
		GenerateAcknowledgments: false,
	}

	broker := NewBroker()
	broker.Start()
	defer broker.Stop()

	emitter := NewAckEmitter(broker, func(storeID string) (*types.POSIntegration, bool) {
		return integration, true
	})
	emitter.Start()
	defer emitter.Stop()

	broker.Publish(&Event{ID: "evt-1", Type: EventFileProcessed, StoreID: "0042", Metadata: map[string]string{}})

	time.Sleep(50 * time.Millisecond)
	entries, err := os.ReadDir(filepath.Join(root, "BOInbox"))
	require.NoError(t, err)
	assert.Len(t, entries, 0)
}
