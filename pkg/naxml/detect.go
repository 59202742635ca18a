package naxml

import (
	"github.com/cuemby/naxml-ingest/pkg/naxmlerr"
	"github.com/cuemby/naxml-ingest/pkg/xmlreader"
)

// RepeatingNames is the fixed allowlist of element names that must always
// materialize as an ordered sequence, across every dialect this parser
// understands.
var RepeatingNames = map[string]bool{
	"LineItem": true, "Tender": true, "Tax": true, "Department": true,
	"Item": true, "Employee": true, "TaxRate": true, "ModifierCode": true,
	"Error": true, "FGMDetail": true, "FPMDetail": true, "MSMDetail": true,
	"Row": true, "PriceTier": true, "TenderType": true, "PriceBookItem": true,
}

var supportedVersions = map[string]bool{"3.2": true, "3.4": true, "4.0": true}

const defaultVersion = "3.4"

// rootTypeMarkers maps a recognized root element name directly to a
// document type; NAXML-MovementReport and NAXML-POSJournal are handled
// separately because they require one level of recursion to disambiguate.
var rootTypeMarkers = map[string]DocumentType{
	"TransactionDocument":   DocTransaction,
	"DepartmentMaintenance": DocDepartmentMaintenance,
	"TenderMaintenance":     DocTenderMaintenance,
	"TaxRateMaintenance":    DocTaxRateMaintenance,
	"PriceBookMaintenance":  DocPriceBookMaintenance,
	"EmployeeMaintenance":   DocEmployeeMaintenance,
	"Acknowledgment":        DocAcknowledgment,
}

var movementInnerMarkers = map[string]DocumentType{
	"FuelGradeMovement":            DocFuelGradeMovement,
	"FuelProductMovement":          DocFuelProductMovement,
	"MiscellaneousSummaryMovement": DocMiscSummaryMovement,
	"TaxLevelMovement":             DocTaxLevelMovement,
	"MerchandiseCodeMovement":      DocMerchandiseCodeMovement,
	"ItemSalesMovement":            DocItemSalesMovement,
	"TankProductMovement":          DocTankProductMovement,
}

// detectVersion reads the root element's version attribute, returning the
// version to treat the document AS (forcing 3.4 when unsupported) and a
// warning string when the declared version was not one of 3.2/3.4/4.0.
func detectVersion(root *xmlreader.Node) (effective string, warning string) {
	declared, ok := root.Attr("version")
	if !ok || declared == "" {
		return defaultVersion, ""
	}
	if supportedVersions[declared] {
		return declared, ""
	}
	return defaultVersion, "unsupported NAXML version " + declared + "; parsing as " + defaultVersion
}

// detectDocumentType resolves the root node to a DocumentType, recursing
// one level into the Movement-Report/POSJournal envelopes per the spec's
// detection rule. It returns the node callers should parse fields from:
// for envelope roots this is the inner node, otherwise it's root itself.
func detectDocumentType(root *xmlreader.Node) (DocumentType, *xmlreader.Node, error) {
	if dt, ok := rootTypeMarkers[root.Name]; ok {
		return dt, root, nil
	}

	if root.Name == "NAXML-POSJournal" {
		if inner := root.Child("POSJournal"); inner != nil {
			return DocPOSJournal, inner, nil
		}
		// Some Gilbarco exports carry the journal directly under the
		// envelope with no POSJournal wrapper; treat the envelope itself
		// as the transaction body in that case.
		return DocPOSJournal, root, nil
	}

	if root.Name == "NAXML-MovementReport" {
		for name, dt := range movementInnerMarkers {
			if inner := root.Child(name); inner != nil {
				return dt, inner, nil
			}
		}
		return "", nil, naxmlerr.Newf(naxmlerr.CodeUnknownDocumentType, "NAXML-MovementReport envelope did not contain a recognized inner movement type")
	}

	return "", nil, naxmlerr.Newf(naxmlerr.CodeUnknownDocumentType, "unrecognized document root <%s>", root.Name)
}
