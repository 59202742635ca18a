package types

import "time"

// POSIntegration binds a store to a point-of-sale vendor and its file
// exchange conventions. Exactly one POSIntegration exists per store.
type POSIntegration struct {
	ID             string
	CompanyID      string
	StoreID        string
	POSType        POSType
	ConnectionMode ConnectionMode

	ExchangeRoot string // R in the filesystem contract
	ExportPath   string // override for the inbox (core -> POS); empty = vendor default
	ImportPath   string // override for the outbox (POS -> core); empty = vendor default
	ArchivePath  string // override for the processed subpath; empty = vendor default
	ErrorPath    string // override for the error subpath; empty = vendor default

	EncryptedCredentials []byte // opaque, produced by an external credential cipher

	NAXMLVersion            string // "3.2" | "3.4" | "4.0"
	GenerateAcknowledgments bool
	StoreLocationID         string
	ArchiveProcessedFiles   bool
	SyncEnabled             bool
	SyncIntervalMins        int
	SyncDepartments         bool
	SyncTenderTypes         bool
	SyncCashiers            bool
	SyncTaxRates            bool
	IsActive                bool
	PollIntervalSeconds     int

	NextSyncAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// POSType enumerates the vendor/controller families this core understands.
type POSType string

const (
	POSTypeGilbarcoPassport POSType = "GILBARCO_PASSPORT"
	POSTypeVerifoneRuby2    POSType = "VERIFONE_RUBY2"
	POSTypeGenericNAXML     POSType = "GENERIC_NAXML"
)

// ConnectionMode describes how the core talks to the POS controller.
type ConnectionMode string

const (
	ConnectionModeFileExchange ConnectionMode = "FILE_EXCHANGE"
	ConnectionModeNetwork      ConnectionMode = "NETWORK"
)

// Poll interval bounds, enforced by the scheduler and orchestrator.
const (
	MinPollIntervalSeconds = 60
	MaxPollIntervalSeconds = 86400
	DefaultPollIntervalSec = 900
)

// FileStatus is the lifecycle state of a FileLog row.
type FileStatus string

const (
	FileStatusPending    FileStatus = "PENDING"
	FileStatusProcessing FileStatus = "PROCESSING"
	FileStatusSuccess    FileStatus = "SUCCESS"
	FileStatusFailed     FileStatus = "FAILED"
	FileStatusPartial    FileStatus = "PARTIAL"
	FileStatusSkipped    FileStatus = "SKIPPED"
)

// FileDirection distinguishes inbound POS output from outbound core exports.
type FileDirection string

const (
	FileDirectionInbound  FileDirection = "INBOUND"
	FileDirectionOutbound FileDirection = "OUTBOUND"
)

// FileLog records the processing lifecycle of one discovered file. Rows
// are keyed by ID; several rows may share a store and SHA-256 content hash
// (e.g. a SKIPPED duplicate), and the first one written for that hash is
// the one a lookup by hash returns.
type FileLog struct {
	ID            string
	StoreID       string
	CompanyID     string
	FileHash      string
	FileName      string
	FileType      string // classified NAXML document type, e.g. "FuelGradeMovement"
	Direction     FileDirection
	Status        FileStatus
	SizeBytes     int64
	ProcessingMS  int64
	RecordCount   int
	ErrorCode     string
	ErrorMessage  string
	Reason        string // set on SKIPPED, e.g. "DUPLICATE"
	SourcePath    string
	ProcessedPath string
	CreatedAt     time.Time
	ProcessedAt   time.Time
}

// AuditExchangeType classifies the kind of exchange an AuditRecord covers.
type AuditExchangeType string

const (
	AuditExchangeFileImport    AuditExchangeType = "FILE_IMPORT"
	AuditExchangeFileExport    AuditExchangeType = "FILE_EXPORT"
	AuditExchangeSyncOperation AuditExchangeType = "SYNC_OPERATION"
)

// AuditStatus is the monotone lattice an AuditRecord moves through.
type AuditStatus string

const (
	AuditStatusPending    AuditStatus = "PENDING"
	AuditStatusProcessing AuditStatus = "PROCESSING"
	AuditStatusSuccess    AuditStatus = "SUCCESS"
	AuditStatusFailed     AuditStatus = "FAILED"
	AuditStatusPartial    AuditStatus = "PARTIAL"
)

// Terminal reports whether the status is one the lattice cannot leave.
func (s AuditStatus) Terminal() bool {
	switch s {
	case AuditStatusSuccess, AuditStatusFailed, AuditStatusPartial:
		return true
	default:
		return false
	}
}

// AuditRecord is created before any side effect touches the operational
// store and is immutable once it reaches a terminal status.
type AuditRecord struct {
	ExchangeID        string
	StoreID           string
	CompanyID         string
	ExchangeType      AuditExchangeType
	Direction         FileDirection
	DataCategory      string
	SourceSystem      string
	DestinationSystem string
	ContainsPII       bool
	ContainsFinancial bool
	Status            AuditStatus
	RecordCount       int
	DataSizeBytes     int64
	FileHash          string
	RetentionPolicy   string
	RetentionExpires  time.Time
	ErrorMessage      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// POSSource records which vendor/feed last wrote a reference-data entity,
// used to scope Full-maintenance deactivation sweeps.
type POSSource string

// Department is a local projection of a POS department/merchandise category.
type Department struct {
	ID           string
	StoreID      string
	CompanyID    string
	Code         string
	POSCode      string
	Name         string
	IsTaxable    bool
	IsActive     bool
	POSSource    POSSource
	LastSyncedAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TenderType is a local projection of a POS tender/payment method.
type TenderType struct {
	ID           string
	StoreID      string
	CompanyID    string
	Code         string
	POSCode      string
	Name         string
	IsElectronic bool
	IsActive     bool
	POSSource    POSSource
	LastSyncedAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TaxRate is a local projection of a POS tax level.
type TaxRate struct {
	ID           string
	StoreID      string
	CompanyID    string
	Code         string
	POSCode      string
	Name         string
	RatePercent  float64
	IsActive     bool
	POSSource    POSSource
	LastSyncedAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FuelProductType classifies a FuelGrade.
type FuelProductType string

const (
	FuelProductGasoline FuelProductType = "GASOLINE"
	FuelProductDiesel   FuelProductType = "DIESEL"
	FuelProductDEF      FuelProductType = "DEF"
	FuelProductKerosene FuelProductType = "KEROSENE"
	FuelProductOther    FuelProductType = "OTHER"
)

// FuelGrade is company-scoped (logically partitioned per store) and keyed
// by the vendor's stable grade identifier.
type FuelGrade struct {
	ID          string
	CompanyID   string
	GradeID     string
	Name        string
	ProductType FuelProductType
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FuelPosition is a dispenser position (pump), stable within a store.
type FuelPosition struct {
	ID         string
	StoreID    string
	CompanyID  string
	PositionID string
	Name       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TransactionType enumerates the POSJournal/TransactionDocument event kinds.
type TransactionType string

const (
	TransactionTypeSale       TransactionType = "Sale"
	TransactionTypeRefund     TransactionType = "Refund"
	TransactionTypeVoidSale   TransactionType = "VoidSale"
	TransactionTypeNoSale     TransactionType = "NoSale"
	TransactionTypePaidOut    TransactionType = "PaidOut"
	TransactionTypePaidIn     TransactionType = "PaidIn"
	TransactionTypeSafeDrop   TransactionType = "SafeDrop"
	TransactionTypeEndOfShift TransactionType = "EndOfShift"
)

// Transaction is written atomically per POSJournal event.
type Transaction struct {
	ID                string
	StoreID           string
	CompanyID         string
	SourceFileHash    string
	PublicID          string
	POSTransactionID  string
	TerminalID        string
	CashierID         string
	ShiftID           string
	BusinessDate      time.Time
	TransactionTime   time.Time
	Type              TransactionType
	SubtotalAmount    float64
	TaxTotalAmount    float64
	DiscountTotal     float64
	GrandTotal        float64
	ChangeDue         float64
	ItemCount         int
	IsTrainingMode    bool
	IsOutsideSale     bool
	IsOffline         bool
	IsSuspended       bool
	LinkedTransaction string // dangling-safe: may reference a tx not (yet) ingested
	LinkReason        string
	CreatedAt         time.Time
}

// LineItemType classifies a transaction line for reporting rollups.
type LineItemType string

const (
	LineItemFuel        LineItemType = "FUEL"
	LineItemLottery     LineItemType = "LOTTERY"
	LineItemPrepay      LineItemType = "PREPAY"
	LineItemMerchandise LineItemType = "MERCHANDISE"
)

// LineItem is one sold line within a Transaction. Lines whose source
// itemType was "tax" or "tender" are never materialized as LineItems.
type LineItem struct {
	ID             string
	TransactionID  string
	StoreID        string
	LineNumber     int
	ItemCode       string
	DepartmentCode string
	Description    string
	Type           LineItemType
	Quantity       float64
	UnitPrice      float64
	ExtendedPrice  float64
	TaxCode        string
	TaxAmount      float64
	DiscountAmount float64
	ModifierCodes  []string
	IsVoid         bool
	IsRefund       bool
}

// Payment is one tender applied to a Transaction. Lines flagged as change
// return (isChange = true) are never materialized as Payments.
type Payment struct {
	ID            string
	TransactionID string
	StoreID       string
	TenderCode    string
	Description   string
	Amount        float64
	Reference     string
	CardType      string
	CardLast4     string
	ChangeGiven   float64
}

// FuelTenderType is the fixed tender allowlist used by FGM detail rows.
type FuelTenderType string

const (
	FuelTenderCash          FuelTenderType = "CASH"
	FuelTenderOutsideCredit FuelTenderType = "OUTSIDE_CREDIT"
	FuelTenderOutsideDebit  FuelTenderType = "OUTSIDE_DEBIT"
	FuelTenderInsideCredit  FuelTenderType = "INSIDE_CREDIT"
	FuelTenderInsideDebit   FuelTenderType = "INSIDE_DEBIT"
	FuelTenderFleet         FuelTenderType = "FLEET"
	FuelTenderOther         FuelTenderType = "OTHER"
)

// ShiftFuelSummary is upserted per (shift, grade, tender) from FGM details.
type ShiftFuelSummary struct {
	ID             string
	StoreID        string
	ShiftSummaryID string
	FuelGradeID    string
	TenderType     FuelTenderType
	Volume         float64
	Amount         float64
	Discounts      float64
	SourceFileHash string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MeterReadingType distinguishes reading snapshots taken from FPM details.
type MeterReadingType string

const (
	MeterReadingClose MeterReadingType = "CLOSE"
)

// MeterReading is appended per FPM; cumulative readings never decrease for
// the same (position, product) pair.
type MeterReading struct {
	ID             string
	StoreID        string
	PositionID     string
	ProductID      string
	BusinessDate   time.Time
	ReadingType    MeterReadingType
	Volume         float64
	Amount         float64
	SourceFileHash string
	CreatedAt      time.Time
}

// DaySummary is upserted per (store, business_date) from MSM/FGM folding.
type DaySummary struct {
	ID               string
	StoreID          string
	BusinessDate     time.Time
	FuelSales        float64
	FuelGallons      float64
	MerchandiseSales float64
	NetSales         float64
	GrossSales       float64
	TaxTotal         float64
	TransactionCount int
	VoidCount        int
	RefundCount      int
	SafeDropTotal    float64
	SafeLoanTotal    float64
	OpeningBalance   float64
	ClosingBalance   float64
	UpdatedAt        time.Time
}

// SyncLog captures the outcome of one periodic sync cycle for an
// integration: counts created/updated/deactivated per category, duration,
// and an overall verdict.
type SyncLog struct {
	ID            string
	StoreID       string
	StartedAt     time.Time
	FinishedAt    time.Time
	Status        SyncStatus
	Categories    map[string]SyncCategoryResult
	ErrorMessages []string
}

// SyncStatus is the per-cycle aggregate verdict.
type SyncStatus string

const (
	SyncStatusSuccess        SyncStatus = "SUCCESS"
	SyncStatusPartialSuccess SyncStatus = "PARTIAL_SUCCESS"
	SyncStatusFailed         SyncStatus = "FAILED"
)

// SyncCategoryResult is the per-category tally the sync cycle reports,
// e.g. {received, created, updated, deactivated, errors[]}.
type SyncCategoryResult struct {
	Received    int
	Created     int
	Updated     int
	Deactivated int
	Errors      []string
}

// ConnectionTestResult is the user-visible outcome of testing an
// integration's filesystem reachability.
type ConnectionTestResult struct {
	Success    bool
	Message    string
	POSVersion string
	LatencyMS  int64
	ErrorCode  string
	Preview    []string // sample of pending filenames, for operator feedback
}
