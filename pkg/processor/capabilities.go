package processor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/adapter"
	"github.com/cuemby/naxml-ingest/pkg/audit"
	"github.com/cuemby/naxml-ingest/pkg/health"
	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/cuemby/naxml-ingest/pkg/watcher"
)

// FileExchangeAdapter satisfies adapter.Capabilities, adapter.FuelCapable,
// and adapter.PJRExtractor for every vendor whose ConnectionMode is
// FILE_EXCHANGE -- which, per the vendor layouts this core declares, is
// every one of them. A vendor reachable over a query API instead of a
// shared directory would get its own Capabilities implementation; none
// is defined here because none of the declared layouts need it.
type FileExchangeAdapter struct {
	processor *Processor
}

// NewFileExchangeAdapter wraps a Processor to expose the fixed dispatch
// surface the scheduler and CLI use instead of switching on POSType.
func NewFileExchangeAdapter(p *Processor) *FileExchangeAdapter {
	return &FileExchangeAdapter{processor: p}
}

// TestConnection confirms the exchange directories are reachable and
// writable, and samples the outbox for a POS version string.
func (a *FileExchangeAdapter) TestConnection(ctx context.Context, integration *types.POSIntegration) (*types.ConnectionTestResult, error) {
	checker := &health.FilesystemChecker{Integration: integration}
	return checker.Test(ctx), nil
}

// pollOnce runs one watcher pass over the outbox. The pass processes every
// classified file it finds, whatever its document type, so each Sync* and
// Import* method below triggers the same pass.
func (a *FileExchangeAdapter) pollOnce(ctx context.Context, integration *types.POSIntegration) error {
	fw := watcher.NewFileWatcher(integration, a.processor.store, a.processor.Handle)
	return fw.Poll(ctx)
}

// SyncDepartments runs one outbox poll (which is where DepartmentMaintenance
// files are picked up), when the integration is configured to sync departments.
func (a *FileExchangeAdapter) SyncDepartments(ctx context.Context, integration *types.POSIntegration) error {
	if !integration.SyncDepartments {
		return nil
	}
	return a.pollOnce(ctx, integration)
}

// SyncTenderTypes runs one outbox poll (which is where TenderMaintenance
// files are picked up), when the integration is configured to sync tenders.
func (a *FileExchangeAdapter) SyncTenderTypes(ctx context.Context, integration *types.POSIntegration) error {
	if !integration.SyncTenderTypes {
		return nil
	}
	return a.pollOnce(ctx, integration)
}

// SyncCashiers runs one outbox poll (which is where EmployeeMaintenance
// files are picked up), when the integration is configured to sync
// cashiers. This core's
// data model has no Cashier/User table to project into; the poll still
// runs (to keep FileLog/audit coverage complete for these files) but the
// documents themselves carry no projection beyond acknowledgment.
func (a *FileExchangeAdapter) SyncCashiers(ctx context.Context, integration *types.POSIntegration) error {
	if !integration.SyncCashiers {
		return nil
	}
	return a.pollOnce(ctx, integration)
}

// SyncTaxRates runs one outbox poll (which is where TaxRateMaintenance
// files are picked up), when the integration is configured to sync tax rates.
func (a *FileExchangeAdapter) SyncTaxRates(ctx context.Context, integration *types.POSIntegration) error {
	if !integration.SyncTaxRates {
		return nil
	}
	return a.pollOnce(ctx, integration)
}

// ImportTransactions runs one outbox poll (which is where
// PJR/TransactionDocument files are picked up).
// Unlike the maintenance categories, transaction import is not gated by
// a sync flag -- every POSJournal file found is ingested.
func (a *FileExchangeAdapter) ImportTransactions(ctx context.Context, integration *types.POSIntegration) error {
	return a.pollOnce(ctx, integration)
}

// SyncFuelSales runs one outbox poll; the FGM/FPM files it picks up fold
// fuel totals into DaySummary and append meter readings.
func (a *FileExchangeAdapter) SyncFuelSales(ctx context.Context, integration *types.POSIntegration) error {
	return a.pollOnce(ctx, integration)
}

// ExtractPJRTransactions is the on-demand counterpart to ImportTransactions
// used by the initial historical import. A passive file-exchange adapter
// has no range-query API to honor from/to against; both are accepted for
// interface compatibility and ignored, and the call degrades to the same
// poll every other sync performs. A vendor with a real PJR query endpoint
// would override this meaningfully.
func (a *FileExchangeAdapter) ExtractPJRTransactions(ctx context.Context, integration *types.POSIntegration, from, to string) error {
	return a.pollOnce(ctx, integration)
}

var exportPrefixes = map[string]string{
	"departments":  "DeptMaint",
	"tender_types": "TenderMaint",
	"tax_rates":    "TaxMaint",
	"price_book":   "PriceBook",
}

func (a *FileExchangeAdapter) export(ctx context.Context, integration *types.POSIntegration, category, rootElement, body string) error {
	paths, err := adapter.ResolvePaths(integration)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	doc := fmt.Sprintf(
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<%s version=%q storeLocationId=%q>\n%s</%s>\n",
		rootElement, integration.NAXMLVersion, integration.StoreLocationID, body, rootElement,
	)
	sum := sha256.Sum256([]byte(doc))
	hash := hex.EncodeToString(sum[:])

	fileName := fmt.Sprintf("%s_%s.xml", exportPrefixes[category], now.Format("20060102T150405Z"))

	params := audit.Params{
		StoreID:           integration.StoreID,
		CompanyID:         integration.CompanyID,
		ExchangeType:      types.AuditExchangeFileExport,
		Direction:         types.FileDirectionOutbound,
		DataCategory:      category,
		SourceSystem:      "operational-store",
		DestinationSystem: string(integration.POSType),
		ContainsFinancial: category != "price_book",
		FileHash:          hash,
		RetentionPolicy:   defaultRetentionPolicy,
	}

	_, err = a.processor.auditor.Do(params, func() (int, bool, error) {
		if werr := os.WriteFile(filepath.Join(paths.Inbox, fileName), []byte(doc), 0o644); werr != nil {
			return 0, false, werr
		}
		return 1, false, nil
	})
	return err
}

// ExportDepartments writes a DepartmentMaintenance snapshot into the inbox.
func (a *FileExchangeAdapter) ExportDepartments(ctx context.Context, integration *types.POSIntegration) error {
	depts, err := a.processor.store.ListDepartmentsByStore(integration.StoreID)
	if err != nil {
		return err
	}
	body := ""
	for _, d := range depts {
		body += fmt.Sprintf("  <Department posCode=%q description=%q isTaxable=%q/>\n", d.POSCode, d.Name, yesNo(d.IsTaxable))
	}
	return a.export(ctx, integration, "departments", "NAXML-DepartmentMaintenance", body)
}

// ExportTenderTypes writes a TenderMaintenance snapshot into the inbox.
func (a *FileExchangeAdapter) ExportTenderTypes(ctx context.Context, integration *types.POSIntegration) error {
	tenders, err := a.processor.store.ListTenderTypesByStore(integration.StoreID)
	if err != nil {
		return err
	}
	body := ""
	for _, t := range tenders {
		body += fmt.Sprintf("  <TenderType posCode=%q description=%q isElectronic=%q/>\n", t.POSCode, t.Name, yesNo(t.IsElectronic))
	}
	return a.export(ctx, integration, "tender_types", "NAXML-TenderMaintenance", body)
}

// ExportTaxRates writes a TaxRateMaintenance snapshot into the inbox.
func (a *FileExchangeAdapter) ExportTaxRates(ctx context.Context, integration *types.POSIntegration) error {
	rates, err := a.processor.store.ListTaxRatesByStore(integration.StoreID)
	if err != nil {
		return err
	}
	body := ""
	for _, r := range rates {
		body += fmt.Sprintf("  <TaxRate posCode=%q description=%q ratePercent=\"%.4f\"/>\n", r.POSCode, r.Name, r.RatePercent)
	}
	return a.export(ctx, integration, "tax_rates", "NAXML-TaxRateMaintenance", body)
}

// ExportPriceBook writes an (empty, capability-only) PriceBookMaintenance
// document into the inbox. This core's data model has no price-book
// entity to source rows from; the export exists so the capability
// surface is complete and every outbound exchange is still audited.
func (a *FileExchangeAdapter) ExportPriceBook(ctx context.Context, integration *types.POSIntegration) error {
	return a.export(ctx, integration, "price_book", "NAXML-PriceBookMaintenance", "")
}

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}
