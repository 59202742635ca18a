package events

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/adapter"
	"github.com/cuemby/naxml-ingest/pkg/log"
	"github.com/cuemby/naxml-ingest/pkg/types"
)

// AckEmitter subscribes to file-processed events and, for integrations
// configured to generate acknowledgments, writes a NAXML Acknowledgment
// document back into the POS inbox.
type AckEmitter struct {
	broker      *Broker
	sub         Subscriber
	integration func(storeID string) (*types.POSIntegration, bool)
	stopCh      chan struct{}
}

// NewAckEmitter constructs an emitter. lookup resolves a store ID to its
// integration; the CLI backs it with the store's GetIntegrationByStore.
func NewAckEmitter(broker *Broker, lookup func(storeID string) (*types.POSIntegration, bool)) *AckEmitter {
	return &AckEmitter{
		broker:      broker,
		integration: lookup,
		stopCh:      make(chan struct{}),
	}
}

// Start begins consuming the broker until Stop is called.
func (a *AckEmitter) Start() {
	a.sub = a.broker.Subscribe()
	go a.run()
}

// Stop ends consumption and unsubscribes from the broker.
func (a *AckEmitter) Stop() {
	close(a.stopCh)
	a.broker.Unsubscribe(a.sub)
}

func (a *AckEmitter) run() {
	logger := log.WithComponent("ack-emitter")
	for {
		select {
		case event, ok := <-a.sub:
			if !ok {
				return
			}
			if event.Type != EventFileProcessed {
				continue
			}
			if err := a.emit(event); err != nil {
				logger.Warn().Err(err).Str("store_id", event.StoreID).Msg("failed to emit acknowledgment")
			}
		case <-a.stopCh:
			return
		}
	}
}

func (a *AckEmitter) emit(event *Event) error {
	integration, ok := a.integration(event.StoreID)
	if !ok || !integration.GenerateAcknowledgments {
		return nil
	}

	paths, err := adapter.ResolvePaths(integration)
	if err != nil {
		return err
	}

	fileName := event.Metadata["file_name"]
	status := event.Metadata["status"]
	now := time.Now().UTC()

	doc := fmt.Sprintf(
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"+
			"<NAXML-Acknowledgment version=\"%s\">\n"+
			"  <Acknowledgment>\n"+
			"    <ExchangeID>%s</ExchangeID>\n"+
			"    <FileName>%s</FileName>\n"+
			"    <Status>%s</Status>\n"+
			"    <AcknowledgedAt>%s</AcknowledgedAt>\n"+
			"  </Acknowledgment>\n"+
			"</NAXML-Acknowledgment>\n",
		integration.NAXMLVersion, event.ID, fileName, status, now.Format(time.RFC3339),
	)

	ackName := fmt.Sprintf("Ack_%s.xml", now.Format("20060102T150405Z"))
	return os.WriteFile(filepath.Join(paths.Inbox, ackName), []byte(doc), 0o644)
}
