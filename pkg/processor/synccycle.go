package processor

import (
	"context"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/naxml"
	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/cuemby/naxml-ingest/pkg/watcher"
)

// RunSyncCycle implements scheduler.SyncFunc. A file-exchange POS has no
// query API to ask for "just departments" or "just PJR since date X", so
// one sync cycle is one poll pass over the outbox; the per-category tally
// the scheduler wants is reconstructed from the FileLog rows this pass
// creates, grouped by document type and gated by the integration's sync
// flags.
func (p *Processor) RunSyncCycle(ctx context.Context, integration *types.POSIntegration) (map[string]types.SyncCategoryResult, error) {
	start := time.Now()

	fw := watcher.NewFileWatcher(integration, p.store, p.Handle)
	if err := fw.Poll(ctx); err != nil {
		return nil, err
	}

	logs, err := p.store.ListFileLogsByStore(integration.StoreID)
	if err != nil {
		return nil, err
	}

	categories := map[string]types.SyncCategoryResult{}
	for _, fl := range logs {
		if fl.CreatedAt.Before(start) {
			continue
		}
		cat, ok := syncCategoryFor(fl.FileType, integration)
		if !ok {
			continue
		}
		r := categories[cat]
		r.Received++
		switch fl.Status {
		case types.FileStatusSuccess:
			r.Created += fl.RecordCount
		case types.FileStatusFailed:
			r.Errors = append(r.Errors, fl.ErrorMessage)
		}
		categories[cat] = r
	}

	return categories, nil
}

func syncCategoryFor(fileType string, integration *types.POSIntegration) (string, bool) {
	switch naxml.DocumentType(fileType) {
	case naxml.DocDepartmentMaintenance:
		return "departments", integration.SyncDepartments
	case naxml.DocTenderMaintenance:
		return "tender_types", integration.SyncTenderTypes
	case naxml.DocTaxRateMaintenance:
		return "tax_rates", integration.SyncTaxRates
	case naxml.DocEmployeeMaintenance:
		return "cashiers", integration.SyncCashiers
	case naxml.DocFuelGradeMovement, naxml.DocFuelProductMovement:
		return "fuel_sales", true
	case naxml.DocTransaction, naxml.DocPOSJournal:
		return "transactions", true
	default:
		return "", false
	}
}
