package naxml

import "github.com/cuemby/naxml-ingest/pkg/xmlreader"

// buildGenericMovement handles the movement-report dialects the spec
// names for detection (TaxLevelMovement, MerchandiseCodeMovement,
// ItemSalesMovement, TankProductMovement) but defines no projection
// contract for. Each detail-ish child becomes a row of raw attributes so
// the document can still be audited and acknowledged.
func buildGenericMovement(n *xmlreader.Node, dt DocumentType, version string) (*GenericMovementDocument, error) {
	var rows []GenericMovementRow
	for name, child := range n.Children {
		switch c := child.(type) {
		case []*xmlreader.Node:
			for _, cn := range c {
				rows = append(rows, GenericMovementRow{Attrs: cn.Attrs, Text: cn.Text})
			}
		case *xmlreader.Node:
			if name != "" {
				rows = append(rows, GenericMovementRow{Attrs: c.Attrs, Text: c.Text})
			}
		}
	}
	return &GenericMovementDocument{
		docMeta: docMeta{Type: dt, Ver: version},
		Rows:    rows,
	}, nil
}
