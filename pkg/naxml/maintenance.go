package naxml

import (
	"github.com/cuemby/naxml-ingest/pkg/xmlreader"
)

// maintenanceEntityNames maps each maintenance document type to the
// element name its repeating entity rows use on the wire.
var maintenanceEntityNames = map[DocumentType]string{
	DocDepartmentMaintenance: "Department",
	DocTenderMaintenance:     "TenderType",
	DocTaxRateMaintenance:    "TaxRate",
	DocPriceBookMaintenance:  "PriceBookItem",
	DocEmployeeMaintenance:   "Employee",
}

func buildMaintenance(n *xmlreader.Node, dt DocumentType, version string) (*MaintenanceDocument, error) {
	header := MaintenanceHeader{
		StoreID: textOf(n, "StoreID", "StoreId"),
		Kind:    MaintenanceIncremental,
	}
	header.MaintenanceDate, _ = parseNAXMLTime(textOf(n, "MaintenanceDate"))
	if kind := textOf(n, "MaintenanceType", "Type"); kind == string(MaintenanceFull) {
		header.Kind = MaintenanceFull
	}

	entityName := maintenanceEntityNames[dt]
	var entities []MaintenanceEntity
	for _, row := range n.Repeated(entityName) {
		code, _ := row.AttrOrChildText("Code", entityName+"Code")
		e := MaintenanceEntity{
			Code:        code,
			Description: textOf(row, "Description", "Name"),
			Action:      textOf(row, "Action"),
		}
		if v := boolOf(row, "Taxable", "IsTaxable"); v != nil {
			e.IsTaxable = v
		}
		if v := boolOf(row, "Electronic", "IsElectronic"); v != nil {
			e.IsElectronic = v
		}
		if rate := textOf(row, "RatePercent", "Rate"); rate != "" {
			v := parseFloat(rate)
			e.RatePercent = &v
		}
		if e.Action == "" {
			e.Action = "AddUpdate"
		}
		entities = append(entities, e)
	}

	return &MaintenanceDocument{
		docMeta:  docMeta{Type: dt, Ver: version},
		Header:   header,
		Entities: entities,
	}, nil
}
