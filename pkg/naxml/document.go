package naxml

import "time"

// DocumentType enumerates every NAXML document variant this parser
// recognizes. It is the discriminant of the Document sum type below.
type DocumentType string

const (
	DocTransaction             DocumentType = "TransactionDocument"
	DocPOSJournal              DocumentType = "POSJournal"
	DocDepartmentMaintenance   DocumentType = "DepartmentMaintenance"
	DocTenderMaintenance       DocumentType = "TenderMaintenance"
	DocTaxRateMaintenance      DocumentType = "TaxRateMaintenance"
	DocPriceBookMaintenance    DocumentType = "PriceBookMaintenance"
	DocEmployeeMaintenance     DocumentType = "EmployeeMaintenance"
	DocFuelGradeMovement       DocumentType = "FuelGradeMovement"
	DocFuelProductMovement     DocumentType = "FuelProductMovement"
	DocMiscSummaryMovement     DocumentType = "MiscellaneousSummaryMovement"
	DocTaxLevelMovement        DocumentType = "TaxLevelMovement"
	DocMerchandiseCodeMovement DocumentType = "MerchandiseCodeMovement"
	DocItemSalesMovement       DocumentType = "ItemSalesMovement"
	DocTankProductMovement     DocumentType = "TankProductMovement"
	DocAcknowledgment          DocumentType = "Acknowledgment"
)

// Document is the tagged-variant sum type every parsed NAXML file
// produces. The generic tree built by pkg/xmlreader exists only inside
// this package; everything downstream works against one of these structs.
type Document interface {
	DocumentType() DocumentType
	// Version is the NAXML version string read from the root element,
	// or "3.4" (the assumed default) when absent or unrecognized.
	Version() string
}

type docMeta struct {
	Type DocumentType
	Ver  string
}

func (m docMeta) DocumentType() DocumentType { return m.Type }
func (m docMeta) Version() string            { return m.Ver }

// --- TransactionDocument / POSJournal ---

type TransactionHeader struct {
	StoreID         string
	TerminalID      string
	POSTransactionID string
	BusinessDate    time.Time
	TransactionDate time.Time
	Type            string // Sale, Refund, VoidSale, NoSale, PaidOut, PaidIn, SafeDrop, EndOfShift

	LinkedTransactionID string
	LinkReason          string
	IsTrainingMode      bool
	IsOutsideSale       bool
	IsOffline           bool
	IsSuspended         bool
}

type TransactionLineItem struct {
	LineNumber     int
	ItemCode       string
	DepartmentCode string
	Description    string
	ItemType       string // fuel/lottery/prepay/merchandise/tax/tender, raw from wire
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

type TransactionTender struct {
	Code        string
	Description string
	Amount      float64
	Reference   string
	CardType    string
	CardLast4   string
	ChangeGiven float64
	IsChange    bool
}

type TransactionTax struct {
	Code          string
	TaxableAmount float64
	TaxAmount     float64
	TaxRate       float64
}

type TransactionTotals struct {
	Subtotal      float64
	TaxTotal      float64
	GrandTotal    float64
	DiscountTotal float64
	ChangeDue     float64
	ItemCount     int
}

// TransactionDocument is the typed variant for TransactionDocument and
// POSJournal roots -- both share this shape; Meta.Type records which root
// produced it for downstream telemetry.
type TransactionDocument struct {
	docMeta
	Header    TransactionHeader
	LineItems []TransactionLineItem
	Tenders   []TransactionTender
	Taxes     []TransactionTax
	Totals    TransactionTotals
}

// --- Maintenance documents ---

// MaintenanceKind is Full (complete snapshot) or Incremental (delta).
type MaintenanceKind string

const (
	MaintenanceFull        MaintenanceKind = "Full"
	MaintenanceIncremental MaintenanceKind = "Incremental"
)

type MaintenanceHeader struct {
	StoreID         string
	MaintenanceDate time.Time
	Kind            MaintenanceKind
}

// MaintenanceEntity is one row of a maintenance document: a department,
// tender type, tax rate, employee, or price book item. Flags that don't
// apply to a given document type are simply left nil.
type MaintenanceEntity struct {
	Code         string // vendor pos_code, preserved as a string verbatim
	Description  string
	IsTaxable    *bool
	IsElectronic *bool
	RatePercent  *float64
	Action       string // Add, Update, Delete, AddUpdate
}

type MaintenanceDocument struct {
	docMeta
	Header   MaintenanceHeader
	Entities []MaintenanceEntity
}

// --- FuelGradeMovement ---

type FGMHeader struct {
	ReportSequence  int
	PrimaryPeriod   int // 2 = day-close, 98 = shift-close
	SecondaryPeriod string
	BusinessDate    time.Time
	BeginDateTime   time.Time
	EndDateTime     time.Time

	// SalesHeader fields, present only for shift reports (PrimaryPeriod=98).
	HasSalesHeader bool
	Register       string
	Cashier        string
	Till           string
}

type FGMTotals struct {
	SalesVolume       float64
	SalesAmount       float64
	Discounts         float64
	Count             int
	TaxExempt         float64
	DispenserDiscount float64
	PumpTestVolume    float64
	PumpTestAmount    float64
}

type FGMTenderSummary struct {
	TenderCode   string // normalized fuel-tender allowlist code
	SubCode      string
	SellPrice    float64
	ServiceLevel string
	Totals       FGMTotals
}

type FGMPriceTierSummary struct {
	TierCode string
	Totals   FGMTotals
}

type FGMPositionSummary struct {
	PositionID      string
	NonResettable   *FGMTotals
	PriceTiers      []FGMPriceTierSummary
}

type FGMDetail struct {
	FuelGradeID string
	Tender      *FGMTenderSummary
	Position    *FGMPositionSummary
}

type FuelGradeMovement struct {
	docMeta
	Header  FGMHeader
	Details []FGMDetail
}

// --- FuelProductMovement ---

type FPMRow struct {
	FuelPositionID   string
	CumulativeVolume float64
	CumulativeAmount float64
}

type FPMDetail struct {
	FuelProductID string
	Rows          []FPMRow
}

type FPMHeader struct {
	BusinessDate  time.Time
	BeginDateTime time.Time
	EndDateTime   time.Time
}

type FuelProductMovement struct {
	docMeta
	Header  FPMHeader
	Details []FPMDetail
}

// --- MiscellaneousSummaryMovement ---

type MSMTotals struct {
	Amount float64
	Count  float64 // holds volume, not a transaction count, for fuelSalesByGrade
	Tender string
}

type MSMDetail struct {
	SummaryCode string
	SubCode     string
	Modifier    string
	Register    string
	Cashier     string
	Till        string
	Totals      MSMTotals
}

type MSMHeader struct {
	BusinessDate  time.Time
	BeginDateTime time.Time
	EndDateTime   time.Time
}

type MiscellaneousSummaryMovement struct {
	docMeta
	Header  MSMHeader
	Details []MSMDetail
}

// --- Other movement-report dialects (TLM/MCM/ISM/TPM) ---
//
// The spec names these for detection completeness but defines no
// projection contract for them (MovementReportProcessor's routing table
// only handles FGM/FPM/MSM). They parse into a thin generic-row shape so
// the file is still acknowledged and audited, without inventing business
// semantics the spec never describes.

type GenericMovementRow struct {
	Attrs map[string]string
	Text  string
}

type GenericMovementDocument struct {
	docMeta
	Rows []GenericMovementRow
}

// --- Acknowledgment ---

type Acknowledgment struct {
	docMeta
	ReferencedExchangeID string
	ReferencedFileName   string
	Status               string
	Message              string
}
