package naxml

import (
	"github.com/cuemby/naxml-ingest/pkg/naxmlerr"
	"github.com/cuemby/naxml-ingest/pkg/xmlreader"
)

func buildMSM(n *xmlreader.Node, version string) (*MiscellaneousSummaryMovement, error) {
	header := MSMHeader{}
	header.BusinessDate, _ = parseNAXMLTime(textOf(n, "BusinessDate"))
	header.BeginDateTime, _ = parseNAXMLTime(textOf(n, "BeginDateTime", "BeginDate"))
	header.EndDateTime, _ = parseNAXMLTime(textOf(n, "EndDateTime", "EndDate"))

	var details []MSMDetail
	for _, dn := range n.Repeated("MSMDetail") {
		summaryCode, err := requireText(dn, naxmlerr.CodeMSMMissingSummaryCode, "summaryCode", "summaryCode", "SummaryCode")
		if err != nil {
			return nil, err
		}
		totalsNode := dn.Child("Totals")
		details = append(details, MSMDetail{
			SummaryCode: summaryCode,
			SubCode:     textOf(dn, "subCode", "SubCode"),
			Modifier:    textOf(dn, "modifier", "Modifier"),
			Register:    textOf(dn, "Register"),
			Cashier:     textOf(dn, "Cashier"),
			Till:        textOf(dn, "Till"),
			Totals: MSMTotals{
				Amount: parseFloat(textOf(totalsNode, "amount", "Amount")),
				Count:  parseFloat(textOf(totalsNode, "count", "Count")),
				Tender: textOf(totalsNode, "tender", "Tender"),
			},
		})
	}

	return &MiscellaneousSummaryMovement{
		docMeta: docMeta{Type: DocMiscSummaryMovement, Ver: version},
		Header:  header,
		Details: details,
	}, nil
}
