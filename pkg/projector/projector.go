// Package projector writes parsed NAXML documents into the operational
// store: reference-data entity sync with change detection and
// Full-maintenance deactivation, transaction ingest, and the fuel/day
// summary folds that MovementReportProcessor drives.
package projector

import (
	"time"

	"github.com/cuemby/naxml-ingest/pkg/storage"
	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/google/uuid"
)

// Projector owns every write to reference-data, transaction, and summary
// tables. Apart from IngestTransaction's re-check for a transaction already
// stored under the same source file hash, it does not decide whether a
// document is a duplicate -- that gate lives in the watcher (file-level)
// and the processor (document-level).
type Projector struct {
	store storage.Store
}

// New constructs a Projector backed by store.
func New(store storage.Store) *Projector {
	return &Projector{store: store}
}

func boolOrFalse(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}

func floatOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// shiftKey derives a deterministic per-(store, business day) shift
// identity. The data model this core projects into never defines a Shift
// or User entity (no open-shift table, no company-owner lookup), so the
// "most-recent open shift / dedicated import user" resolution rule
// described for the source system has no table to resolve against here,
// and the shift identity is derived from the store and business date alone.
func shiftKey(storeID string, businessDate time.Time) string {
	return storeID + "|" + businessDate.Format("2006-01-02")
}

// ImportCashierID is the sentinel bound to every ingested transaction's
// CashierID, standing in for the "company's dedicated import user" the
// source system resolves dynamically.
const ImportCashierID = "IMPORT"

func (p *Projector) getOrCreateDaySummary(storeID string, businessDate time.Time) (*types.DaySummary, error) {
	day, err := p.store.GetDaySummary(storeID, businessDate)
	if err != nil {
		return nil, err
	}
	if day == nil {
		day = &types.DaySummary{
			ID:           uuid.NewString(),
			StoreID:      storeID,
			BusinessDate: businessDate,
		}
	}
	return day, nil
}

func (p *Projector) saveDaySummary(day *types.DaySummary) error {
	day.UpdatedAt = time.Now()
	return p.store.UpsertDaySummary(day)
}
