// Package audit implements the record-then-act wrapper around every
// exchange this core performs. An AuditRecord is created before any side
// effect runs; if that creation fails, the caller's action never runs.
// This replaces decorator-style audit middleware with an explicit
// precondition, so "did we audit this" is never a question of whether an
// aspect happened to fire.
package audit

import (
	"time"

	"github.com/cuemby/naxml-ingest/pkg/metrics"
	"github.com/cuemby/naxml-ingest/pkg/naxmlerr"
	"github.com/cuemby/naxml-ingest/pkg/storage"
	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/google/uuid"
)

// DefaultRetention is applied to records created without an explicit
// RetentionTTL.
const DefaultRetention = 365 * 24 * time.Hour

// Params describes one exchange to be recorded before its side effects run.
type Params struct {
	StoreID           string
	CompanyID         string
	ExchangeType      types.AuditExchangeType
	Direction         types.FileDirection
	DataCategory      string
	SourceSystem      string
	DestinationSystem string
	ContainsPII       bool
	ContainsFinancial bool
	FileHash          string
	RetentionPolicy   string
	RetentionTTL      time.Duration
}

// Recorder creates and transitions AuditRecord rows around side effects.
type Recorder struct {
	store storage.Store
}

// NewRecorder constructs a Recorder backed by store.
func NewRecorder(store storage.Store) *Recorder {
	return &Recorder{store: store}
}

// Action is the side-effecting work a Recorder wraps. It reports how many
// rows it produced, whether the outcome is partial (some succeeded, some
// didn't), and an error if the whole action failed.
type Action func() (recordCount int, partial bool, err error)

// Do creates an AuditRecord (PENDING, then PROCESSING) before invoking fn.
// If record creation fails, fn is never called and the caller must not
// proceed with side effects -- the returned record is nil in that case.
// Otherwise the record is always returned, moved to its terminal status
// (SUCCESS, PARTIAL, or FAILED) based on fn's outcome.
func (r *Recorder) Do(p Params, fn Action) (*types.AuditRecord, error) {
	ttl := p.RetentionTTL
	if ttl <= 0 {
		ttl = DefaultRetention
	}

	now := time.Now()
	record := &types.AuditRecord{
		ExchangeID:        uuid.NewString(),
		StoreID:           p.StoreID,
		CompanyID:         p.CompanyID,
		ExchangeType:      p.ExchangeType,
		Direction:         p.Direction,
		DataCategory:      p.DataCategory,
		SourceSystem:      p.SourceSystem,
		DestinationSystem: p.DestinationSystem,
		ContainsPII:       p.ContainsPII,
		ContainsFinancial: p.ContainsFinancial,
		FileHash:          p.FileHash,
		RetentionPolicy:   p.RetentionPolicy,
		RetentionExpires:  now.Add(ttl),
		Status:            types.AuditStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := r.store.CreateAuditRecord(record); err != nil {
		return nil, naxmlerr.Wrap(naxmlerr.CodeAuditCreateFailed, err, "create audit record")
	}

	record.Status = types.AuditStatusProcessing
	record.UpdatedAt = time.Now()
	if err := r.store.UpdateAuditRecord(record); err != nil {
		return nil, naxmlerr.Wrap(naxmlerr.CodeAuditCreateFailed, err, "mark audit record processing")
	}

	count, partial, actErr := fn()

	record.RecordCount = count
	record.UpdatedAt = time.Now()
	switch {
	case actErr != nil:
		record.Status = types.AuditStatusFailed
		record.ErrorMessage = actErr.Error()
	case partial:
		record.Status = types.AuditStatusPartial
	default:
		record.Status = types.AuditStatusSuccess
	}

	if err := r.store.UpdateAuditRecord(record); err != nil {
		// The record is already terminal in memory; a failure to persist
		// the final transition is logged by the caller, not escalated,
		// since the side effect itself already ran.
		return record, actErr
	}

	metrics.AuditRecordsTotal.WithLabelValues(string(record.Status)).Inc()
	return record, actErr
}

// PurgeExpired deletes audit records whose retention window has elapsed.
func (r *Recorder) PurgeExpired(before time.Time) (int, error) {
	return r.store.DeleteAuditRecordsOlderThan(before)
}
