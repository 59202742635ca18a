package adapter

import (
	"context"

	"github.com/cuemby/naxml-ingest/pkg/types"
)

// Capabilities is the fixed dispatch surface every POS vendor adapter
// implements. Apart from LayoutFor and the Gilbarco business-date
// adjustment in pkg/processor's fuelSalesDate, the core does not branch on
// types.POSType; every other behavioral difference is expressed by a vendor
// satisfying (or not satisfying) one of these interfaces.
type Capabilities interface {
	TestConnection(ctx context.Context, integration *types.POSIntegration) (*types.ConnectionTestResult, error)
	SyncDepartments(ctx context.Context, integration *types.POSIntegration) error
	SyncTenderTypes(ctx context.Context, integration *types.POSIntegration) error
	SyncCashiers(ctx context.Context, integration *types.POSIntegration) error
	SyncTaxRates(ctx context.Context, integration *types.POSIntegration) error
	ImportTransactions(ctx context.Context, integration *types.POSIntegration) error
	ExportDepartments(ctx context.Context, integration *types.POSIntegration) error
	ExportTenderTypes(ctx context.Context, integration *types.POSIntegration) error
	ExportTaxRates(ctx context.Context, integration *types.POSIntegration) error
	ExportPriceBook(ctx context.Context, integration *types.POSIntegration) error
}

// FuelCapable is implemented by vendors whose exchange includes fuel
// movement documents (FGM/FPM). Not every POS integration sells fuel, so
// this is a secondary, optional interface rather than part of
// Capabilities.
type FuelCapable interface {
	SyncFuelSales(ctx context.Context, integration *types.POSIntegration) error
}

// PJRExtractor is implemented by vendors that support on-demand PJR
// (POSJournal) extraction outside of the normal polling cycle, used by
// the initial historical import.
type PJRExtractor interface {
	ExtractPJRTransactions(ctx context.Context, integration *types.POSIntegration, from, to string) error
}
