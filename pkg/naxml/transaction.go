package naxml

import (
	"github.com/cuemby/naxml-ingest/pkg/naxmlerr"
	"github.com/cuemby/naxml-ingest/pkg/xmlreader"
)

// buildTransaction parses a TransactionDocument or POSJournal body. Both
// roots share this shape; dt records which one produced it.
func buildTransaction(n *xmlreader.Node, dt DocumentType, version string) (*TransactionDocument, error) {
	storeID := textOf(n, "StoreID", "StoreId")
	terminalID := textOf(n, "TerminalID", "TerminalId")

	posTxID, err := requireText(n, naxmlerr.CodeMissingRequiredField, "TransactionID", "TransactionID", "TransactionId")
	if err != nil {
		return nil, err
	}

	businessDate, _ := parseNAXMLTime(textOf(n, "BusinessDate"))
	transactionDate, _ := parseNAXMLTime(textOf(n, "TransactionDate", "TransactionDateTime"))

	header := TransactionHeader{
		StoreID:          storeID,
		TerminalID:       terminalID,
		POSTransactionID: posTxID,
		BusinessDate:     businessDate,
		TransactionDate:  transactionDate,
		Type:             textOf(n, "TransactionType", "Type"),
	}
	header.LinkedTransactionID = textOf(n, "LinkedTransactionID", "LinkedTransactionId")
	header.LinkReason = textOf(n, "LinkReason")
	if v := boolOf(n, "IsTrainingMode", "TrainingMode"); v != nil {
		header.IsTrainingMode = *v
	}
	if v := boolOf(n, "IsOutsideSale", "OutsideSale"); v != nil {
		header.IsOutsideSale = *v
	}
	if v := boolOf(n, "IsOffline", "Offline"); v != nil {
		header.IsOffline = *v
	}
	if v := boolOf(n, "IsSuspended", "Suspended"); v != nil {
		header.IsSuspended = *v
	}

	var lineItems []TransactionLineItem
	for _, ln := range n.Repeated("LineItem") {
		li := TransactionLineItem{
			LineNumber:     parseInt(textOf(ln, "lineNumber", "LineNumber")),
			ItemCode:       textOf(ln, "itemCode", "ItemCode"),
			DepartmentCode: textOf(ln, "departmentCode", "DepartmentCode", "departmentID", "departmentId"),
			Description:    textOf(ln, "Description"),
			ItemType:       textOf(ln, "itemType", "ItemType"),
			Quantity:       1,
			UnitPrice:      parseFloat(textOf(ln, "unitPrice", "UnitPrice")),
			ExtendedPrice:  parseFloat(textOf(ln, "extendedPrice", "ExtendedPrice")),
			TaxCode:        textOf(ln, "taxCode", "TaxCode"),
			TaxAmount:      parseFloat(textOf(ln, "taxAmount", "TaxAmount")),
			DiscountAmount: parseFloat(textOf(ln, "discountAmount", "DiscountAmount")),
		}
		if q := textOf(ln, "quantity", "Quantity"); q != "" {
			li.Quantity = parseFloat(q)
		}
		if v := boolOf(ln, "isVoid", "IsVoid"); v != nil {
			li.IsVoid = *v
		}
		if v := boolOf(ln, "isRefund", "IsRefund"); v != nil {
			li.IsRefund = *v
		}
		for _, mc := range ln.Repeated("ModifierCode") {
			li.ModifierCodes = append(li.ModifierCodes, mc.Text)
		}
		lineItems = append(lineItems, li)
	}

	var tenders []TransactionTender
	for _, tn := range n.Repeated("Tender") {
		t := TransactionTender{
			Code:        textOf(tn, "code", "Code"),
			Description: textOf(tn, "Description"),
			Amount:      parseFloat(textOf(tn, "amount", "Amount")),
			Reference:   textOf(tn, "reference", "Reference"),
			CardType:    textOf(tn, "cardType", "CardType"),
			CardLast4:   textOf(tn, "cardLast4", "CardLast4"),
			ChangeGiven: parseFloat(textOf(tn, "changeGiven", "ChangeGiven")),
		}
		if v := boolOf(tn, "isChange", "IsChange"); v != nil {
			t.IsChange = *v
		}
		tenders = append(tenders, t)
	}

	var taxes []TransactionTax
	for _, txn := range n.Repeated("Tax") {
		taxes = append(taxes, TransactionTax{
			Code:          textOf(txn, "code", "Code"),
			TaxableAmount: parseFloat(textOf(txn, "taxableAmount", "TaxableAmount")),
			TaxAmount:     parseFloat(textOf(txn, "taxAmount", "TaxAmount")),
			TaxRate:       parseFloat(textOf(txn, "taxRate", "TaxRate")),
		})
	}

	totalsNode := n.Child("Totals")
	totals := TransactionTotals{
		Subtotal:      parseFloat(textOf(totalsNode, "subtotal", "Subtotal")),
		TaxTotal:      parseFloat(textOf(totalsNode, "taxTotal", "TaxTotal")),
		GrandTotal:    parseFloat(textOf(totalsNode, "grandTotal", "GrandTotal")),
		DiscountTotal: parseFloat(textOf(totalsNode, "discountTotal", "DiscountTotal")),
		ChangeDue:     parseFloat(textOf(totalsNode, "changeDue", "ChangeDue")),
		ItemCount:     parseInt(textOf(totalsNode, "itemCount", "ItemCount")),
	}

	return &TransactionDocument{
		docMeta:   docMeta{Type: dt, Ver: version},
		Header:    header,
		LineItems: lineItems,
		Tenders:   tenders,
		Taxes:     taxes,
		Totals:    totals,
	}, nil
}
