package projector

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/naxml"
	"github.com/cuemby/naxml-ingest/pkg/naxmlerr"
	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/google/uuid"
)

// IngestTransaction writes one POSJournal/TransactionDocument as a single
// Transaction row plus its line items and payments, inside one store
// transaction. Deduplication by (store_id, source_file_hash) is the
// caller's responsibility at the file level (the watcher's hash gate);
// this function re-checks as a second line of defense before writing.
func (p *Projector) IngestTransaction(storeID, companyID, sourceHash string, doc *naxml.TransactionDocument) (int, error) {
	existing, err := p.store.GetTransactionBySourceHash(storeID, sourceHash)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, nil
	}

	h := doc.Header
	txID := uuid.NewString()

	tx := &types.Transaction{
		ID:                txID,
		StoreID:           storeID,
		CompanyID:         companyID,
		SourceFileHash:    sourceHash,
		PublicID:          derivePublicID(h.POSTransactionID),
		POSTransactionID:  h.POSTransactionID,
		TerminalID:        h.TerminalID,
		CashierID:         ImportCashierID,
		ShiftID:           shiftKey(storeID, h.BusinessDate),
		BusinessDate:      h.BusinessDate,
		TransactionTime:   h.TransactionDate,
		Type:              types.TransactionType(h.Type),
		SubtotalAmount:    doc.Totals.Subtotal,
		TaxTotalAmount:    doc.Totals.TaxTotal,
		DiscountTotal:     doc.Totals.DiscountTotal,
		GrandTotal:        doc.Totals.GrandTotal,
		ChangeDue:         doc.Totals.ChangeDue,
		ItemCount:         doc.Totals.ItemCount,
		IsTrainingMode:    h.IsTrainingMode,
		IsOutsideSale:     h.IsOutsideSale,
		IsOffline:         h.IsOffline,
		IsSuspended:       h.IsSuspended,
		LinkedTransaction: h.LinkedTransactionID,
		LinkReason:        h.LinkReason,
		CreatedAt:         time.Now(),
	}

	if tx.LinkedTransaction != "" && tx.LinkReason == "" {
		// The referenced transaction may not exist in this store (it could
		// be in a prior batch not yet ingested, or never will be); the
		// reference is kept dangling rather than dropped, with a reason
		// recorded for anything the document itself didn't supply.
		tx.LinkReason = "UNVERIFIED"
	}

	lines := make([]*types.LineItem, 0, len(doc.LineItems))
	for _, li := range doc.LineItems {
		switch strings.ToLower(li.ItemType) {
		case "tax", "tender":
			continue
		}
		lines = append(lines, &types.LineItem{
			ID:             uuid.NewString(),
			TransactionID:  txID,
			StoreID:        storeID,
			LineNumber:     li.LineNumber,
			ItemCode:       li.ItemCode,
			DepartmentCode: li.DepartmentCode,
			Description:    li.Description,
			Type:           classifyLineItem(li),
			Quantity:       li.Quantity,
			UnitPrice:      li.UnitPrice,
			ExtendedPrice:  li.ExtendedPrice,
			TaxCode:        li.TaxCode,
			TaxAmount:      li.TaxAmount,
			DiscountAmount: li.DiscountAmount,
			ModifierCodes:  li.ModifierCodes,
			IsVoid:         li.IsVoid,
			IsRefund:       li.IsRefund,
		})
	}

	payments := make([]*types.Payment, 0, len(doc.Tenders))
	for _, t := range doc.Tenders {
		if t.IsChange {
			continue
		}
		payments = append(payments, &types.Payment{
			ID:            uuid.NewString(),
			TransactionID: txID,
			StoreID:       storeID,
			TenderCode:    t.Code,
			Description:   t.Description,
			Amount:        t.Amount,
			Reference:     t.Reference,
			CardType:      t.CardType,
			CardLast4:     t.CardLast4,
			ChangeGiven:   t.ChangeGiven,
		})
	}

	if err := p.store.CreateTransactionBundle(tx, lines, payments); err != nil {
		return 0, naxmlerr.Wrap(naxmlerr.CodeDatabaseFailure, err, "create transaction bundle")
	}

	return 1, nil
}

// classifyLineItem maps a raw wire itemType (and, failing that, a keyword
// in the description) to a reporting category.
func classifyLineItem(li naxml.TransactionLineItem) types.LineItemType {
	itemType := strings.ToLower(li.ItemType)
	desc := strings.ToLower(li.Description)

	switch {
	case itemType == "fuel" || strings.Contains(desc, "fuel"):
		return types.LineItemFuel
	case itemType == "lottery" || strings.Contains(desc, "lotto") || strings.Contains(desc, "lottery"):
		return types.LineItemLottery
	case itemType == "prepay" || strings.Contains(desc, "prepay"):
		return types.LineItemPrepay
	default:
		return types.LineItemMerchandise
	}
}

// derivePublicID builds `POS-<last4 of pos_tx_id padded>-<base36 ts>`,
// uppercased.
func derivePublicID(posTxID string) string {
	digits := posTxID
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	digits = fmt.Sprintf("%04s", digits)
	digits = strings.ReplaceAll(digits, " ", "0")

	ts := strconv.FormatInt(time.Now().Unix(), 36)
	return strings.ToUpper(fmt.Sprintf("POS-%s-%s", digits, ts))
}
