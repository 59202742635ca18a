package naxml

import (
	"github.com/cuemby/naxml-ingest/pkg/naxmlerr"
	"github.com/cuemby/naxml-ingest/pkg/xmlreader"
)

func buildFPM(n *xmlreader.Node, version string) (*FuelProductMovement, error) {
	header := FPMHeader{}
	header.BusinessDate, _ = parseNAXMLTime(textOf(n, "BusinessDate"))
	header.BeginDateTime, _ = parseNAXMLTime(textOf(n, "BeginDateTime", "BeginDate"))
	header.EndDateTime, _ = parseNAXMLTime(textOf(n, "EndDateTime", "EndDate"))

	var details []FPMDetail
	for _, dn := range n.Repeated("FPMDetail") {
		productID, err := requireText(dn, naxmlerr.CodeFPMMissingProductID, "fuelProductId", "fuelProductId", "fuelProductID", "FuelProductId")
		if err != nil {
			return nil, err
		}
		detail := FPMDetail{FuelProductID: productID}

		rows := dn.Repeated("Row")
		if len(rows) == 0 {
			rows = []*xmlreader.Node{dn}
		}
		for _, rn := range rows {
			positionID, err := requireText(rn, naxmlerr.CodeFPMMissingPositionID, "fuelPositionId", "fuelPositionId", "fuelPositionID", "FuelPositionId")
			if err != nil {
				return nil, err
			}
			volume, err := requireFloat(rn, naxmlerr.CodeFPMMissingVolume, "cumulativeVolume", "cumulativeVolume", "CumulativeVolume")
			if err != nil {
				return nil, err
			}
			amount := parseFloat(textOf(rn, "cumulativeAmount", "CumulativeAmount"))
			if volume < 0 || amount < 0 {
				return nil, naxmlerr.New(naxmlerr.CodeFPMInvalidVolume, "cumulative volume/amount must not be negative")
			}
			detail.Rows = append(detail.Rows, FPMRow{
				FuelPositionID:   positionID,
				CumulativeVolume: volume,
				CumulativeAmount: amount,
			})
		}
		details = append(details, detail)
	}

	return &FuelProductMovement{
		docMeta: docMeta{Type: DocFuelProductMovement, Ver: version},
		Header:  header,
		Details: details,
	}, nil
}
