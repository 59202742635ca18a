package naxml

import (
	"github.com/cuemby/naxml-ingest/pkg/naxmlerr"
	"github.com/cuemby/naxml-ingest/pkg/xmlreader"
)

// fuelTenderAllowlist is the fixed set of tender codes a FGM tender
// summary may carry.
var fuelTenderAllowlist = map[string]bool{
	"cash": true, "outsideCredit": true, "outsideDebit": true,
	"insideCredit": true, "insideDebit": true, "fleet": true,
}

func buildFGM(n *xmlreader.Node, version string) (*FuelGradeMovement, error) {
	header := FGMHeader{
		ReportSequence:  parseInt(textOf(n, "ReportSequence")),
		PrimaryPeriod:   parseInt(textOf(n, "PrimaryReportPeriod", "PrimaryPeriod")),
		SecondaryPeriod: textOf(n, "SecondaryReportPeriod", "SecondaryPeriod"),
	}
	header.BusinessDate, _ = parseNAXMLTime(textOf(n, "BusinessDate"))
	header.BeginDateTime, _ = parseNAXMLTime(textOf(n, "BeginDateTime", "BeginDate"))
	header.EndDateTime, _ = parseNAXMLTime(textOf(n, "EndDateTime", "EndDate"))

	if header.PrimaryPeriod != 2 && header.PrimaryPeriod != 98 {
		return nil, naxmlerr.Newf(naxmlerr.CodeFGMInvalidPeriod, "primary report period %d is not one of {2, 98}", header.PrimaryPeriod)
	}

	if sh := n.Child("SalesMovementHeader"); sh != nil {
		header.HasSalesHeader = true
		header.Register = textOf(sh, "Register")
		header.Cashier = textOf(sh, "Cashier")
		header.Till = textOf(sh, "Till")
	}

	var details []FGMDetail
	for _, dn := range n.Repeated("FGMDetail") {
		gradeID, err := requireText(dn, naxmlerr.CodeFGMMissingGradeID, "fuelGradeId", "fuelGradeId", "fuelGradeID", "FuelGradeId")
		if err != nil {
			return nil, err
		}
		detail := FGMDetail{FuelGradeID: gradeID}

		if tn := dn.Child("TenderSummary"); tn != nil {
			tender, err := buildFGMTenderSummary(tn)
			if err != nil {
				return nil, err
			}
			detail.Tender = tender
		}
		if pn := dn.Child("PositionSummary"); pn != nil {
			position, err := buildFGMPositionSummary(pn)
			if err != nil {
				return nil, err
			}
			detail.Position = position
		}

		details = append(details, detail)
	}

	return &FuelGradeMovement{
		docMeta: docMeta{Type: DocFuelGradeMovement, Ver: version},
		Header:  header,
		Details: details,
	}, nil
}

func buildFGMTenderSummary(n *xmlreader.Node) (*FGMTenderSummary, error) {
	code := textOf(n, "tenderCode", "TenderCode")
	if !fuelTenderAllowlist[code] {
		return nil, naxmlerr.Newf(naxmlerr.CodeFGMInvalidTenderCode, "tender code %q is not in the fuel-tender allowlist", code)
	}
	totals, err := buildFGMTotals(n)
	if err != nil {
		return nil, err
	}
	return &FGMTenderSummary{
		TenderCode:   code,
		SubCode:      textOf(n, "subCode", "SubCode"),
		SellPrice:    parseFloat(textOf(n, "sellPrice", "SellPrice")),
		ServiceLevel: textOf(n, "serviceLevel", "ServiceLevel"),
		Totals:       *totals,
	}, nil
}

func buildFGMPositionSummary(n *xmlreader.Node) (*FGMPositionSummary, error) {
	pos := &FGMPositionSummary{
		PositionID: textOf(n, "positionId", "PositionId", "positionID"),
	}
	if nr := n.Child("NonResettableTotals"); nr != nil {
		totals, err := buildFGMTotals(nr)
		if err != nil {
			return nil, err
		}
		pos.NonResettable = totals
	}
	for _, tier := range n.Repeated("PriceTier") {
		totals, err := buildFGMTotals(tier)
		if err != nil {
			return nil, err
		}
		pos.PriceTiers = append(pos.PriceTiers, FGMPriceTierSummary{
			TierCode: textOf(tier, "tierCode", "TierCode"),
			Totals:   *totals,
		})
	}
	return pos, nil
}

func buildFGMTotals(n *xmlreader.Node) (*FGMTotals, error) {
	volume := parseFloat(textOf(n, "salesVolume", "SalesVolume", "fuelGradeSalesVolume"))
	amount := parseFloat(textOf(n, "salesAmount", "SalesAmount", "fuelGradeSalesAmount"))
	if volume < 0 {
		return nil, naxmlerr.New(naxmlerr.CodeFGMInvalidSalesVolume, "fuelGradeSalesVolume must not be negative")
	}
	if amount < 0 {
		return nil, naxmlerr.New(naxmlerr.CodeFGMInvalidSalesAmount, "fuelGradeSalesAmount must not be negative")
	}
	return &FGMTotals{
		SalesVolume:       volume,
		SalesAmount:       amount,
		Discounts:         parseFloat(textOf(n, "discounts", "Discounts")),
		Count:             parseInt(textOf(n, "count", "Count")),
		TaxExempt:         parseFloat(textOf(n, "taxExempt", "TaxExempt")),
		DispenserDiscount: parseFloat(textOf(n, "dispenserDiscount", "DispenserDiscount")),
		PumpTestVolume:    parseFloat(textOf(n, "pumpTestVolume", "PumpTestVolume")),
		PumpTestAmount:    parseFloat(textOf(n, "pumpTestAmount", "PumpTestAmount")),
	}, nil
}
