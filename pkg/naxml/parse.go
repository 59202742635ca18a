package naxml

import (
	"github.com/cuemby/naxml-ingest/pkg/naxmlerr"
	"github.com/cuemby/naxml-ingest/pkg/xmlreader"
)

// Result is the outcome of parsing one NAXML file: the typed document
// plus any non-fatal warnings (currently just version drift).
type Result struct {
	Document Document
	Warnings []string
}

// Parse decodes raw NAXML bytes into a typed Document. It is the sole
// entry point callers outside this package should use -- the generic
// xmlreader tree never escapes this function.
func Parse(data []byte) (*Result, error) {
	root, err := xmlreader.Decode(data, RepeatingNames)
	if err != nil {
		return nil, err
	}

	version, versionWarning := detectVersion(root)

	dt, body, err := detectDocumentType(root)
	if err != nil {
		return nil, err
	}

	var doc Document
	switch dt {
	case DocTransaction, DocPOSJournal:
		doc, err = buildTransaction(body, dt, version)
	case DocDepartmentMaintenance, DocTenderMaintenance, DocTaxRateMaintenance,
		DocPriceBookMaintenance, DocEmployeeMaintenance:
		doc, err = buildMaintenance(body, dt, version)
	case DocFuelGradeMovement:
		doc, err = buildFGM(body, version)
	case DocFuelProductMovement:
		doc, err = buildFPM(body, version)
	case DocMiscSummaryMovement:
		doc, err = buildMSM(body, version)
	case DocAcknowledgment:
		doc, err = buildAcknowledgment(body, version)
	case DocTaxLevelMovement, DocMerchandiseCodeMovement, DocItemSalesMovement, DocTankProductMovement:
		doc, err = buildGenericMovement(body, dt, version)
	default:
		err = naxmlerr.Newf(naxmlerr.CodeUnknownDocumentType, "no builder registered for document type %s", dt)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{Document: doc}
	if versionWarning != "" {
		result.Warnings = append(result.Warnings, versionWarning)
	}
	return result, nil
}
