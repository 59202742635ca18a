package processor

import (
	"fmt"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/metrics"
	"github.com/cuemby/naxml-ingest/pkg/naxml"
	"github.com/cuemby/naxml-ingest/pkg/types"
)

func (p *Processor) processFGM(integration *types.POSIntegration, fileLog *types.FileLog, doc *naxml.FuelGradeMovement) (int, error) {
	date := fuelSalesDate(integration.POSType, doc.Header)
	shiftID := shiftSummaryID(integration.StoreID, doc.Header)

	var totalAmount, totalVolume float64
	for _, d := range doc.Details {
		if _, err := p.projector.EnsureFuelGrade(integration.CompanyID, d.FuelGradeID); err != nil {
			return 0, err
		}

		switch {
		case d.Tender != nil:
			tender := mapFuelTender(d.Tender.TenderCode)
			t := d.Tender.Totals
			if err := p.projector.UpsertShiftFuelSummary(integration.StoreID, shiftID, d.FuelGradeID, tender, t.SalesVolume, t.SalesAmount, t.Discounts, fileLog.FileHash); err != nil {
				return 0, err
			}
			totalAmount += t.SalesAmount
			totalVolume += t.SalesVolume
		case d.Position != nil:
			agg := aggregatePositionTiers(d.Position)
			if err := p.projector.UpsertShiftFuelSummary(integration.StoreID, shiftID, d.FuelGradeID, types.FuelTenderOther, agg.SalesVolume, agg.SalesAmount, agg.Discounts, fileLog.FileHash); err != nil {
				return 0, err
			}
			totalAmount += agg.SalesAmount
			totalVolume += agg.SalesVolume
		}
	}

	if err := p.projector.FoldFuelDaySummary(integration.StoreID, date, totalAmount, totalVolume); err != nil {
		return 0, err
	}

	metrics.FuelGradeMovementsTotal.WithLabelValues(integration.StoreID).Inc()
	return len(doc.Details), nil
}

func (p *Processor) processFPM(integration *types.POSIntegration, fileLog *types.FileLog, doc *naxml.FuelProductMovement) (int, error) {
	count := 0
	for _, d := range doc.Details {
		for _, row := range d.Rows {
			if _, err := p.projector.EnsureFuelPosition(integration.StoreID, integration.CompanyID, row.FuelPositionID); err != nil {
				return count, err
			}
			if err := p.projector.AppendMeterReading(integration.StoreID, row.FuelPositionID, d.FuelProductID, doc.Header.BusinessDate, row.CumulativeVolume, row.CumulativeAmount, fileLog.FileHash); err != nil {
				return count, err
			}
			count++
			metrics.MeterReadingsAppendedTotal.WithLabelValues(integration.StoreID).Inc()
		}
	}
	return count, nil
}

func (p *Processor) processMSM(integration *types.POSIntegration, doc *naxml.MiscellaneousSummaryMovement) (int, error) {
	for _, d := range doc.Details {
		if err := p.projector.FoldMSMDetail(integration.StoreID, doc.Header.BusinessDate, d.SummaryCode, d.SubCode, d.Totals.Amount, d.Totals.Count); err != nil {
			return 0, err
		}
	}
	return len(doc.Details), nil
}

// fuelSalesDate isolates the one vendor-specific business-date adjustment
// this core makes: Gilbarco's FGM business_date is the period-start
// timestamp, so the sales day it describes is the following calendar
// day. Whether other NAXML producers share this convention is open; only
// Gilbarco gets the adjustment.
func fuelSalesDate(posType types.POSType, header naxml.FGMHeader) time.Time {
	if posType == types.POSTypeGilbarcoPassport {
		return header.BusinessDate.AddDate(0, 0, 1)
	}
	return header.BusinessDate
}

// shiftSummaryID keys a ShiftFuelSummary row. Shift-close reports
// (PrimaryPeriod=98) key by register and the report's start time so two
// shifts on the same register in one day don't collide; day-close
// reports key by calendar day alone.
func shiftSummaryID(storeID string, header naxml.FGMHeader) string {
	if header.PrimaryPeriod == 98 && header.HasSalesHeader {
		return fmt.Sprintf("%s|%s|%s", storeID, header.Register, header.BeginDateTime.Format("20060102T150405"))
	}
	return fmt.Sprintf("%s|DAY|%s", storeID, header.BusinessDate.Format("2006-01-02"))
}

func mapFuelTender(code string) types.FuelTenderType {
	switch code {
	case "cash":
		return types.FuelTenderCash
	case "outsideCredit":
		return types.FuelTenderOutsideCredit
	case "outsideDebit":
		return types.FuelTenderOutsideDebit
	case "insideCredit":
		return types.FuelTenderInsideCredit
	case "insideDebit":
		return types.FuelTenderInsideDebit
	case "fleet":
		return types.FuelTenderFleet
	default:
		return types.FuelTenderOther
	}
}

// aggregatePositionTiers sums every price tier under a position summary
// into one totals block. The spec leaves open how multiple price tiers
// on one detail should be combined; summing is chosen over "keep only
// the first tier" so a detail with tiered pricing doesn't silently lose
// volume.
func aggregatePositionTiers(pos *naxml.FGMPositionSummary) naxml.FGMTotals {
	var agg naxml.FGMTotals
	for _, tier := range pos.PriceTiers {
		agg.SalesVolume += tier.Totals.SalesVolume
		agg.SalesAmount += tier.Totals.SalesAmount
		agg.Discounts += tier.Totals.Discounts
		agg.Count += tier.Totals.Count
		agg.TaxExempt += tier.Totals.TaxExempt
		agg.DispenserDiscount += tier.Totals.DispenserDiscount
		agg.PumpTestVolume += tier.Totals.PumpTestVolume
		agg.PumpTestAmount += tier.Totals.PumpTestAmount
	}
	return agg
}
