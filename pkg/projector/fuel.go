package projector

import (
	"time"

	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/google/uuid"
)

// EnsureFuelGrade returns the FuelGrade for (companyID, gradeID), creating
// a placeholder (named after the vendor grade id) on first discovery.
// Grades are renamed by an operator later; the projector never guesses a
// display name from the wire.
func (p *Projector) EnsureFuelGrade(companyID, gradeID string) (*types.FuelGrade, error) {
	g, err := p.store.GetFuelGrade(companyID, gradeID)
	if err != nil {
		return nil, err
	}
	if g != nil {
		return g, nil
	}
	now := time.Now()
	g = &types.FuelGrade{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		GradeID:     gradeID,
		Name:        gradeID,
		ProductType: types.FuelProductOther,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.store.UpsertFuelGrade(g); err != nil {
		return nil, err
	}
	return g, nil
}

// EnsureFuelPosition returns the FuelPosition for (storeID, positionID),
// creating a placeholder on first discovery.
func (p *Projector) EnsureFuelPosition(storeID, companyID, positionID string) (*types.FuelPosition, error) {
	fp, err := p.store.GetFuelPosition(storeID, positionID)
	if err != nil {
		return nil, err
	}
	if fp != nil {
		return fp, nil
	}
	now := time.Now()
	fp = &types.FuelPosition{
		ID:         uuid.NewString(),
		StoreID:    storeID,
		CompanyID:  companyID,
		PositionID: positionID,
		Name:       "Position " + positionID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := p.store.UpsertFuelPosition(fp); err != nil {
		return nil, err
	}
	return fp, nil
}

// UpsertShiftFuelSummary writes the totals for one (shift, grade, tender)
// combination. FGM details already carry a cumulative totals block for
// the reporting period, so this overwrites rather than accumulates.
func (p *Projector) UpsertShiftFuelSummary(storeID, shiftSummaryID, fuelGradeID string, tender types.FuelTenderType, volume, amount, discounts float64, sourceHash string) error {
	return p.store.UpsertShiftFuelSummary(&types.ShiftFuelSummary{
		ID:             uuid.NewString(),
		StoreID:        storeID,
		ShiftSummaryID: shiftSummaryID,
		FuelGradeID:    fuelGradeID,
		TenderType:     tender,
		Volume:         volume,
		Amount:         amount,
		Discounts:      discounts,
		SourceFileHash: sourceHash,
		UpdatedAt:      time.Now(),
	})
}

// AppendMeterReading records one FPM close reading. Readings are expected
// never to decrease for the same (position, product) pair; a regression
// is tolerated here (the source file is authoritative) rather than
// rejected, since nothing in the spec defines an error code for it.
func (p *Projector) AppendMeterReading(storeID, positionID, productID string, businessDate time.Time, volume, amount float64, sourceHash string) error {
	return p.store.AppendMeterReading(&types.MeterReading{
		ID:             uuid.NewString(),
		StoreID:        storeID,
		PositionID:     positionID,
		ProductID:      productID,
		BusinessDate:   businessDate,
		ReadingType:    types.MeterReadingClose,
		Volume:         volume,
		Amount:         amount,
		SourceFileHash: sourceHash,
		CreatedAt:      time.Now(),
	})
}

// FoldFuelDaySummary aggregates FGM totals into the DaySummary for
// businessDate, summing across every FGM file observed for that day (as
// opposed to overwriting), since multiple FGM files -- one per shift, or
// per grade batch -- can cover the same calendar day.
func (p *Projector) FoldFuelDaySummary(storeID string, businessDate time.Time, amount, volume float64) error {
	day, err := p.getOrCreateDaySummary(storeID, businessDate)
	if err != nil {
		return err
	}
	day.FuelSales += amount
	day.FuelGallons += volume
	return p.saveDaySummary(day)
}

// FoldMSMDetail applies one MiscellaneousSummaryMovement detail row onto
// the DaySummary for businessDate per the summaryCode/subCode mapping
// table, then persists it.
func (p *Projector) FoldMSMDetail(storeID string, businessDate time.Time, summaryCode, subCode string, amount, count float64) error {
	day, err := p.getOrCreateDaySummary(storeID, businessDate)
	if err != nil {
		return err
	}

	switch summaryCode {
	case "totalizer":
		switch subCode {
		case "sales":
			day.NetSales += amount
		case "fuelSales":
			day.FuelSales += amount
		case "merchandiseSales":
			day.MerchandiseSales += amount
		}
	case "fuelSalesByGrade":
		// count holds volume, not a transaction count, for this code.
		day.FuelSales += amount
		day.FuelGallons += count
	case "safeDrop":
		day.SafeDropTotal += amount
	case "safeLoan":
		day.SafeLoanTotal += amount
	case "openingBalance":
		day.OpeningBalance += amount
	case "closingBalance":
		day.ClosingBalance += amount
	case "statistics":
		switch subCode {
		case "transactionCount":
			day.TransactionCount += int(count)
		case "voidCount":
			day.VoidCount += int(count)
		case "refundCount":
			day.RefundCount += int(count)
		}
	}

	return p.saveDaySummary(day)
}
