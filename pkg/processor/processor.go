// Package processor implements MovementReportProcessor: it parses one
// discovered file, routes the resulting document to the right projection
// routine, and wraps the whole thing in an audit record created before
// any side effect runs. It is the concrete watcher.DocumentHandler and
// scheduler.SyncFunc this core wires into the orchestrator.
package processor

import (
	"context"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/audit"
	"github.com/cuemby/naxml-ingest/pkg/events"
	"github.com/cuemby/naxml-ingest/pkg/log"
	"github.com/cuemby/naxml-ingest/pkg/naxml"
	"github.com/cuemby/naxml-ingest/pkg/naxmlerr"
	"github.com/cuemby/naxml-ingest/pkg/projector"
	"github.com/cuemby/naxml-ingest/pkg/storage"
	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultRetentionPolicy = "standard-365d"

// Processor routes parsed NAXML documents to the projector and records an
// audit trail for every exchange it handles.
type Processor struct {
	store     storage.Store
	projector *projector.Projector
	auditor   *audit.Recorder
	broker    *events.Broker
	logger    zerolog.Logger
}

// New constructs a Processor. broker may be nil when acknowledgment
// publication is not needed (e.g. one-shot CLI commands).
func New(store storage.Store, proj *projector.Projector, broker *events.Broker) *Processor {
	return &Processor{
		store:     store,
		projector: proj,
		auditor:   audit.NewRecorder(store),
		broker:    broker,
		logger:    log.WithComponent("processor"),
	}
}

// Handle implements watcher.DocumentHandler. It creates the audit record
// for this exchange before parsing or routing the file; if that record
// cannot be created, neither happens.
func (p *Processor) Handle(ctx context.Context, integration *types.POSIntegration, fileLog *types.FileLog, data []byte) (int, error) {
	if prior, err := p.store.GetFileLogByHash(integration.StoreID, fileLog.FileHash); err == nil &&
		prior != nil && prior.ID != fileLog.ID && prior.Status == types.FileStatusSuccess {
		// The watcher's hash gate is the first line of defense and rejects
		// re-arrivals before this is ever called; this re-check catches a
		// FileLog created for a hash that already has a SUCCESS row (for a
		// caller that reaches Handle without that gate), so FGM/FPM/MSM folds
		// -- which have no natural upsert key of their own -- don't double-count.
		// A hash whose FileLog row was purged by DeleteFileLogsOlderThan is
		// not caught here either: GetFileLogByHash returns nil for it.
		return 0, naxmlerr.New(naxmlerr.CodeDuplicateContent, "content already projected for this store")
	}

	params := audit.Params{
		StoreID:           integration.StoreID,
		CompanyID:         integration.CompanyID,
		ExchangeType:      types.AuditExchangeFileImport,
		Direction:         types.FileDirectionInbound,
		DataCategory:      fileLog.FileType,
		SourceSystem:      string(integration.POSType),
		DestinationSystem: "operational-store",
		ContainsFinancial: true,
		FileHash:          fileLog.FileHash,
		RetentionPolicy:   defaultRetentionPolicy,
	}

	var recordCount int
	_, err := p.auditor.Do(params, func() (int, bool, error) {
		parsed, perr := naxml.Parse(data)
		if perr != nil {
			return 0, false, perr
		}
		for _, w := range parsed.Warnings {
			p.logger.Warn().Str("store_id", integration.StoreID).Str("file", fileLog.FileName).Msg(w)
		}

		n, partial, rerr := p.route(integration, fileLog, parsed.Document)
		recordCount = n
		return n, partial, rerr
	})

	if err == nil && p.broker != nil && integration.GenerateAcknowledgments {
		p.broker.Publish(&events.Event{
			ID:      uuid.NewString(),
			Type:    events.EventFileProcessed,
			StoreID: integration.StoreID,
			Message: "file processed",
			Metadata: map[string]string{
				"file_name": fileLog.FileName,
				"status":    "SUCCESS",
			},
		})
	}

	return recordCount, err
}

func (p *Processor) route(integration *types.POSIntegration, fileLog *types.FileLog, doc naxml.Document) (int, bool, error) {
	switch d := doc.(type) {
	case *naxml.FuelGradeMovement:
		n, err := p.processFGM(integration, fileLog, d)
		return n, false, err
	case *naxml.FuelProductMovement:
		n, err := p.processFPM(integration, fileLog, d)
		return n, false, err
	case *naxml.MiscellaneousSummaryMovement:
		n, err := p.processMSM(integration, d)
		return n, false, err
	case *naxml.TransactionDocument:
		n, err := p.projector.IngestTransaction(integration.StoreID, integration.CompanyID, fileLog.FileHash, d)
		return n, false, err
	case *naxml.MaintenanceDocument:
		return p.processMaintenance(integration, d)
	case *naxml.Acknowledgment:
		return p.processAcknowledgment(d)
	case *naxml.GenericMovementDocument:
		// TLM/MCM/ISM/TPM: acknowledged and audited, no projection
		// contract is defined for these dialects.
		return len(d.Rows), false, nil
	default:
		return 0, false, naxmlerr.Newf(naxmlerr.CodeUnsupportedDocType, "no projector route for %T", doc)
	}
}

func (p *Processor) processMaintenance(integration *types.POSIntegration, doc *naxml.MaintenanceDocument) (int, bool, error) {
	source := types.POSSource(integration.POSType)

	var result types.SyncCategoryResult
	var err error
	switch doc.DocumentType() {
	case naxml.DocDepartmentMaintenance:
		result, err = p.projector.SyncDepartments(integration.StoreID, integration.CompanyID, source, doc)
	case naxml.DocTenderMaintenance:
		result, err = p.projector.SyncTenderTypes(integration.StoreID, integration.CompanyID, source, doc)
	case naxml.DocTaxRateMaintenance:
		result, err = p.projector.SyncTaxRates(integration.StoreID, integration.CompanyID, source, doc)
	default:
		// EmployeeMaintenance / PriceBookMaintenance: acknowledged, no
		// reference-data table is defined in this core's data model for
		// employees or price books.
		return len(doc.Entities), false, nil
	}
	if err != nil {
		return 0, false, err
	}

	switch {
	case len(result.Errors) == 0:
		return result.Received, false, nil
	case result.Created+result.Updated+result.Deactivated > 0:
		return result.Received, true, nil
	default:
		return result.Received, false, naxmlerr.Newf(naxmlerr.CodeInvalidFieldValue, "maintenance sync failed for all %d entities", result.Received)
	}
}

func (p *Processor) processAcknowledgment(doc *naxml.Acknowledgment) (int, bool, error) {
	if doc.ReferencedExchangeID == "" {
		return 0, false, nil
	}

	rec, err := p.store.GetAuditRecord(doc.ReferencedExchangeID)
	if err != nil || rec == nil {
		// The referenced exchange isn't known locally (different
		// retention window, different core instance); nothing to update.
		return 0, false, nil
	}
	if rec.Status.Terminal() {
		return 1, false, nil
	}

	switch doc.Status {
	case "SUCCESS":
		rec.Status = types.AuditStatusSuccess
	case "FAILED":
		rec.Status = types.AuditStatusFailed
		rec.ErrorMessage = doc.Message
	default:
		rec.Status = types.AuditStatusPartial
	}
	rec.UpdatedAt = time.Now()

	if err := p.store.UpdateAuditRecord(rec); err != nil {
		return 0, false, err
	}
	return 1, false, nil
}
