package storage

import (
	"time"

	"github.com/cuemby/naxml-ingest/pkg/types"
)

// Store is the operational store contract the rest of the core depends on.
// The production deployment of this system backs it with a relational
// database (an external, non-goal collaborator); BoltStore is the
// reference implementation that exercises this exact contract so the
// core can run and be tested without one.
type Store interface {
	// POS integrations
	CreateIntegration(integration *types.POSIntegration) error
	GetIntegration(id string) (*types.POSIntegration, error)
	GetIntegrationByStore(storeID string) (*types.POSIntegration, error)
	ListActiveIntegrations() ([]*types.POSIntegration, error)
	UpdateIntegration(integration *types.POSIntegration) error

	// File log (at-most-once gate)
	CreateFileLog(log *types.FileLog) error
	GetFileLogByHash(storeID, fileHash string) (*types.FileLog, error)
	UpdateFileLog(log *types.FileLog) error
	ListFileLogsByStore(storeID string) ([]*types.FileLog, error)
	DeleteFileLogsOlderThan(cutoff time.Time) (int, error)

	// Audit trail
	CreateAuditRecord(record *types.AuditRecord) error
	GetAuditRecord(exchangeID string) (*types.AuditRecord, error)
	UpdateAuditRecord(record *types.AuditRecord) error
	DeleteAuditRecordsOlderThan(cutoff time.Time) (int, error)

	// Reference data: departments
	GetDepartmentByPOSCode(storeID, posCode string) (*types.Department, error)
	UpsertDepartment(dept *types.Department) error
	ListDepartmentsByStore(storeID string) ([]*types.Department, error)
	DeactivateDepartmentsNotIn(storeID string, source types.POSSource, keepPOSCodes map[string]bool) (int, error)

	// Reference data: tender types
	GetTenderTypeByPOSCode(storeID, posCode string) (*types.TenderType, error)
	UpsertTenderType(t *types.TenderType) error
	ListTenderTypesByStore(storeID string) ([]*types.TenderType, error)
	DeactivateTenderTypesNotIn(storeID string, source types.POSSource, keepPOSCodes map[string]bool) (int, error)

	// Reference data: tax rates
	GetTaxRateByPOSCode(storeID, posCode string) (*types.TaxRate, error)
	UpsertTaxRate(t *types.TaxRate) error
	ListTaxRatesByStore(storeID string) ([]*types.TaxRate, error)
	DeactivateTaxRatesNotIn(storeID string, source types.POSSource, keepPOSCodes map[string]bool) (int, error)

	// Fuel grades (company-scoped) and positions (store-scoped)
	GetFuelGrade(companyID, gradeID string) (*types.FuelGrade, error)
	UpsertFuelGrade(g *types.FuelGrade) error
	GetFuelPosition(storeID, positionID string) (*types.FuelPosition, error)
	UpsertFuelPosition(p *types.FuelPosition) error

	// Transactions: written atomically per POSJournal event
	GetTransactionBySourceHash(storeID, sourceFileHash string) (*types.Transaction, error)
	CreateTransactionBundle(tx *types.Transaction, lines []*types.LineItem, payments []*types.Payment) error

	// Fuel movement projections
	UpsertShiftFuelSummary(s *types.ShiftFuelSummary) error
	AppendMeterReading(r *types.MeterReading) error
	GetLatestMeterReading(storeID, positionID, productID string) (*types.MeterReading, error)
	GetDaySummary(storeID string, businessDate time.Time) (*types.DaySummary, error)
	UpsertDaySummary(d *types.DaySummary) error

	// Sync cycle bookkeeping
	AppendSyncLog(log *types.SyncLog) error
	ListSyncLogs(storeID string, limit int) ([]*types.SyncLog, error)

	Close() error
}
