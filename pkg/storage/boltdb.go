package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/types"
	bolt "go.etcd.io/bbolt"
)

var (
	// Bucket names
	bucketIntegrations  = []byte("integrations")
	bucketFileLogs      = []byte("file_logs")
	bucketFileLogByHash = []byte("file_logs_by_hash")
	bucketAuditRecords  = []byte("audit_records")
	bucketDepartments   = []byte("departments")
	bucketTenderTypes   = []byte("tender_types")
	bucketTaxRates      = []byte("tax_rates")
	bucketFuelGrades    = []byte("fuel_grades")
	bucketFuelPositions = []byte("fuel_positions")
	bucketTransactions  = []byte("transactions")
	bucketTxByHash      = []byte("transactions_by_hash")
	bucketLineItems     = []byte("line_items")
	bucketPayments      = []byte("payments")
	bucketShiftFuel     = []byte("shift_fuel_summaries")
	bucketMeterReadings = []byte("meter_readings")
	bucketMeterLatest   = []byte("meter_readings_latest")
	bucketDaySummaries  = []byte("day_summaries")
	bucketSyncLogs      = []byte("sync_logs")
)

// BoltStore implements Store using an embedded BoltDB file. It stands in
// for the external relational store named by the spec's non-goals,
// exercising the same Store contract a real driver would.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (creating if absent) a BoltDB file under dataDir and
// ensures every bucket this store needs exists.
func NewBoltStore(dataDir string) (*BoltStore, error) {
	dbPath := filepath.Join(dataDir, "naxml-ingest.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		buckets := [][]byte{
			bucketIntegrations, bucketFileLogs, bucketFileLogByHash, bucketAuditRecords,
			bucketDepartments, bucketTenderTypes, bucketTaxRates,
			bucketFuelGrades, bucketFuelPositions,
			bucketTransactions, bucketTxByHash, bucketLineItems, bucketPayments,
			bucketShiftFuel, bucketMeterReadings, bucketMeterLatest,
			bucketDaySummaries, bucketSyncLogs,
		}
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func storeKey(storeID, code string) []byte {
	return []byte(storeID + "|" + code)
}

// --- POS integrations ---

func (s *BoltStore) CreateIntegration(integration *types.POSIntegration) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketIntegrations)
		data, err := json.Marshal(integration)
		if err != nil {
			return err
		}
		return b.Put([]byte(integration.ID), data)
	})
}

func (s *BoltStore) GetIntegration(id string) (*types.POSIntegration, error) {
	var it types.POSIntegration
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketIntegrations)
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("integration not found: %s", id)
		}
		return json.Unmarshal(data, &it)
	})
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *BoltStore) GetIntegrationByStore(storeID string) (*types.POSIntegration, error) {
	var found *types.POSIntegration
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketIntegrations)
		return b.ForEach(func(k, v []byte) error {
			var it types.POSIntegration
			if err := json.Unmarshal(v, &it); err != nil {
				return err
			}
			if it.StoreID == storeID {
				found = &it
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, nil
	}
	return found, nil
}

func (s *BoltStore) ListActiveIntegrations() ([]*types.POSIntegration, error) {
	var out []*types.POSIntegration
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketIntegrations)
		return b.ForEach(func(k, v []byte) error {
			var it types.POSIntegration
			if err := json.Unmarshal(v, &it); err != nil {
				return err
			}
			if it.IsActive && it.SyncEnabled {
				out = append(out, &it)
			}
			return nil
		})
	})
	return out, err
}

func (s *BoltStore) UpdateIntegration(integration *types.POSIntegration) error {
	return s.CreateIntegration(integration)
}

// --- File log ---
//
// FileLogs are keyed primarily by ID, the same primary/secondary-index
// split CreateTransactionBundle/GetTransactionBySourceHash use. The
// secondary index (store_id, file_hash) -> ID is the at-most-once gate;
// it is set only by the FIRST row written for a given hash, so a later
// SKIPPED row recorded for a re-observed hash under a different filename
// never overwrites the original terminal FileLog.

func (s *BoltStore) CreateFileLog(log *types.FileLog) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFileLogs)
		data, err := json.Marshal(log)
		if err != nil {
			return err
		}
		if err := b.Put([]byte(log.ID), data); err != nil {
			return err
		}

		hashIdx := tx.Bucket(bucketFileLogByHash)
		key := storeKey(log.StoreID, log.FileHash)
		if hashIdx.Get(key) == nil {
			return hashIdx.Put(key, []byte(log.ID))
		}
		return nil
	})
}

func (s *BoltStore) GetFileLogByHash(storeID, fileHash string) (*types.FileLog, error) {
	var id string
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketFileLogByHash).Get(storeKey(storeID, fileHash))
		if data != nil {
			id = string(data)
		}
		return nil
	})
	if err != nil || id == "" {
		return nil, err
	}

	var fl types.FileLog
	found := false
	err = s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketFileLogs).Get([]byte(id))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &fl)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &fl, nil
}

func (s *BoltStore) UpdateFileLog(log *types.FileLog) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFileLogs)
		data, err := json.Marshal(log)
		if err != nil {
			return err
		}
		return b.Put([]byte(log.ID), data)
	})
}

func (s *BoltStore) ListFileLogsByStore(storeID string) ([]*types.FileLog, error) {
	var out []*types.FileLog
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFileLogs)
		return b.ForEach(func(k, v []byte) error {
			var fl types.FileLog
			if err := json.Unmarshal(v, &fl); err != nil {
				return err
			}
			if fl.StoreID == storeID {
				out = append(out, &fl)
			}
			return nil
		})
	})
	return out, err
}

func (s *BoltStore) DeleteFileLogsOlderThan(cutoff time.Time) (int, error) {
	deleted := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFileLogs)
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var fl types.FileLog
			if err := json.Unmarshal(v, &fl); err != nil {
				return err
			}
			if !fl.ProcessedAt.IsZero() && fl.ProcessedAt.Before(cutoff) {
				key := append([]byte(nil), k...)
				stale = append(stale, key)
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		deleted = len(stale)
		return nil
	})
	return deleted, err
}

// --- Audit records ---

func (s *BoltStore) CreateAuditRecord(record *types.AuditRecord) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAuditRecords)
		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		return b.Put([]byte(record.ExchangeID), data)
	})
}

func (s *BoltStore) GetAuditRecord(exchangeID string) (*types.AuditRecord, error) {
	var rec types.AuditRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAuditRecords)
		data := b.Get([]byte(exchangeID))
		if data == nil {
			return fmt.Errorf("audit record not found: %s", exchangeID)
		}
		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *BoltStore) UpdateAuditRecord(record *types.AuditRecord) error {
	existing, err := s.GetAuditRecord(record.ExchangeID)
	if err == nil && existing.Status.Terminal() {
		return fmt.Errorf("audit record %s is terminal (%s), cannot be updated", record.ExchangeID, existing.Status)
	}
	return s.CreateAuditRecord(record)
}

func (s *BoltStore) DeleteAuditRecordsOlderThan(cutoff time.Time) (int, error) {
	deleted := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAuditRecords)
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var rec types.AuditRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			if !rec.RetentionExpires.IsZero() && rec.RetentionExpires.Before(cutoff) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		deleted = len(stale)
		return nil
	})
	return deleted, err
}

// --- Reference data: shared upsert/deactivate shape ---

func (s *BoltStore) GetDepartmentByPOSCode(storeID, posCode string) (*types.Department, error) {
	var d types.Department
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketDepartments).Get(storeKey(storeID, posCode))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &d)
	})
	if err != nil || !found {
		return nil, err
	}
	return &d, nil
}

func (s *BoltStore) UpsertDepartment(dept *types.Department) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(dept)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketDepartments).Put(storeKey(dept.StoreID, dept.POSCode), data)
	})
}

func (s *BoltStore) ListDepartmentsByStore(storeID string) ([]*types.Department, error) {
	var out []*types.Department
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDepartments).ForEach(func(k, v []byte) error {
			var d types.Department
			if err := json.Unmarshal(v, &d); err != nil {
				return err
			}
			if d.StoreID == storeID {
				out = append(out, &d)
			}
			return nil
		})
	})
	return out, err
}

func (s *BoltStore) DeactivateDepartmentsNotIn(storeID string, source types.POSSource, keepPOSCodes map[string]bool) (int, error) {
	count := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDepartments)
		var toUpdate []*types.Department
		err := b.ForEach(func(k, v []byte) error {
			var d types.Department
			if err := json.Unmarshal(v, &d); err != nil {
				return err
			}
			if d.StoreID == storeID && d.POSSource == source && d.IsActive && !keepPOSCodes[d.POSCode] {
				dd := d
				dd.IsActive = false
				toUpdate = append(toUpdate, &dd)
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, d := range toUpdate {
			data, err := json.Marshal(d)
			if err != nil {
				return err
			}
			if err := b.Put(storeKey(d.StoreID, d.POSCode), data); err != nil {
				return err
			}
		}
		count = len(toUpdate)
		return nil
	})
	return count, err
}

func (s *BoltStore) GetTenderTypeByPOSCode(storeID, posCode string) (*types.TenderType, error) {
	var t types.TenderType
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketTenderTypes).Get(storeKey(storeID, posCode))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &t)
	})
	if err != nil || !found {
		return nil, err
	}
	return &t, nil
}

func (s *BoltStore) UpsertTenderType(t *types.TenderType) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(t)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketTenderTypes).Put(storeKey(t.StoreID, t.POSCode), data)
	})
}

func (s *BoltStore) ListTenderTypesByStore(storeID string) ([]*types.TenderType, error) {
	var out []*types.TenderType
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTenderTypes).ForEach(func(k, v []byte) error {
			var t types.TenderType
			if err := json.Unmarshal(v, &t); err != nil {
				return err
			}
			if t.StoreID == storeID {
				out = append(out, &t)
			}
			return nil
		})
	})
	return out, err
}

func (s *BoltStore) DeactivateTenderTypesNotIn(storeID string, source types.POSSource, keepPOSCodes map[string]bool) (int, error) {
	count := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTenderTypes)
		var toUpdate []*types.TenderType
		err := b.ForEach(func(k, v []byte) error {
			var t types.TenderType
			if err := json.Unmarshal(v, &t); err != nil {
				return err
			}
			if t.StoreID == storeID && t.POSSource == source && t.IsActive && !keepPOSCodes[t.POSCode] {
				tt := t
				tt.IsActive = false
				toUpdate = append(toUpdate, &tt)
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, t := range toUpdate {
			data, err := json.Marshal(t)
			if err != nil {
				return err
			}
			if err := b.Put(storeKey(t.StoreID, t.POSCode), data); err != nil {
				return err
			}
		}
		count = len(toUpdate)
		return nil
	})
	return count, err
}

func (s *BoltStore) GetTaxRateByPOSCode(storeID, posCode string) (*types.TaxRate, error) {
	var t types.TaxRate
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketTaxRates).Get(storeKey(storeID, posCode))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &t)
	})
	if err != nil || !found {
		return nil, err
	}
	return &t, nil
}

func (s *BoltStore) UpsertTaxRate(t *types.TaxRate) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(t)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketTaxRates).Put(storeKey(t.StoreID, t.POSCode), data)
	})
}

func (s *BoltStore) ListTaxRatesByStore(storeID string) ([]*types.TaxRate, error) {
	var out []*types.TaxRate
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTaxRates).ForEach(func(k, v []byte) error {
			var t types.TaxRate
			if err := json.Unmarshal(v, &t); err != nil {
				return err
			}
			if t.StoreID == storeID {
				out = append(out, &t)
			}
			return nil
		})
	})
	return out, err
}

func (s *BoltStore) DeactivateTaxRatesNotIn(storeID string, source types.POSSource, keepPOSCodes map[string]bool) (int, error) {
	count := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTaxRates)
		var toUpdate []*types.TaxRate
		err := b.ForEach(func(k, v []byte) error {
			var t types.TaxRate
			if err := json.Unmarshal(v, &t); err != nil {
				return err
			}
			if t.StoreID == storeID && t.POSSource == source && t.IsActive && !keepPOSCodes[t.POSCode] {
				tt := t
				tt.IsActive = false
				toUpdate = append(toUpdate, &tt)
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, t := range toUpdate {
			data, err := json.Marshal(t)
			if err != nil {
				return err
			}
			if err := b.Put(storeKey(t.StoreID, t.POSCode), data); err != nil {
				return err
			}
		}
		count = len(toUpdate)
		return nil
	})
	return count, err
}

// --- Fuel grades / positions ---

func (s *BoltStore) GetFuelGrade(companyID, gradeID string) (*types.FuelGrade, error) {
	var g types.FuelGrade
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketFuelGrades).Get(storeKey(companyID, gradeID))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &g)
	})
	if err != nil || !found {
		return nil, err
	}
	return &g, nil
}

func (s *BoltStore) UpsertFuelGrade(g *types.FuelGrade) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(g)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketFuelGrades).Put(storeKey(g.CompanyID, g.GradeID), data)
	})
}

func (s *BoltStore) GetFuelPosition(storeID, positionID string) (*types.FuelPosition, error) {
	var p types.FuelPosition
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketFuelPositions).Get(storeKey(storeID, positionID))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &p)
	})
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (s *BoltStore) UpsertFuelPosition(p *types.FuelPosition) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketFuelPositions).Put(storeKey(p.StoreID, p.PositionID), data)
	})
}

// --- Transactions ---

func (s *BoltStore) GetTransactionBySourceHash(storeID, sourceFileHash string) (*types.Transaction, error) {
	var txID string
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketTxByHash).Get(storeKey(storeID, sourceFileHash))
		if data != nil {
			txID = string(data)
		}
		return nil
	})
	if err != nil || txID == "" {
		return nil, err
	}
	var out types.Transaction
	err = s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketTransactions).Get([]byte(txID))
		if data == nil {
			return fmt.Errorf("transaction index points to missing row: %s", txID)
		}
		return json.Unmarshal(data, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTransactionBundle writes the transaction, its line items, and its
// payments inside a single BoltDB transaction -- the ONE-transaction-per-file
// guarantee the projector relies on.
func (s *BoltStore) CreateTransactionBundle(transaction *types.Transaction, lines []*types.LineItem, payments []*types.Payment) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		txData, err := json.Marshal(transaction)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketTransactions).Put([]byte(transaction.ID), txData); err != nil {
			return err
		}
		if err := tx.Bucket(bucketTxByHash).Put(storeKey(transaction.StoreID, transaction.SourceFileHash), []byte(transaction.ID)); err != nil {
			return err
		}
		lb := tx.Bucket(bucketLineItems)
		for _, li := range lines {
			data, err := json.Marshal(li)
			if err != nil {
				return err
			}
			if err := lb.Put([]byte(li.ID), data); err != nil {
				return err
			}
		}
		pb := tx.Bucket(bucketPayments)
		for _, p := range payments {
			data, err := json.Marshal(p)
			if err != nil {
				return err
			}
			if err := pb.Put([]byte(p.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// --- Fuel movement projections ---

func shiftFuelKey(s *types.ShiftFuelSummary) []byte {
	return []byte(s.ShiftSummaryID + "|" + s.FuelGradeID + "|" + string(s.TenderType))
}

func (s *BoltStore) UpsertShiftFuelSummary(summary *types.ShiftFuelSummary) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(summary)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketShiftFuel).Put(shiftFuelKey(summary), data)
	})
}

func (s *BoltStore) AppendMeterReading(r *types.MeterReading) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketMeterReadings).Put([]byte(r.ID), data); err != nil {
			return err
		}
		latestKey := []byte(r.StoreID + "|" + r.PositionID + "|" + r.ProductID + "|" + string(r.ReadingType))
		return tx.Bucket(bucketMeterLatest).Put(latestKey, data)
	})
}

func (s *BoltStore) GetLatestMeterReading(storeID, positionID, productID string) (*types.MeterReading, error) {
	var r types.MeterReading
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		key := []byte(storeID + "|" + positionID + "|" + productID + "|" + string(types.MeterReadingClose))
		data := tx.Bucket(bucketMeterLatest).Get(key)
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &r)
	})
	if err != nil || !found {
		return nil, err
	}
	return &r, nil
}

func daySummaryKey(storeID string, businessDate time.Time) []byte {
	return []byte(storeID + "|" + businessDate.Format("2006-01-02"))
}

func (s *BoltStore) GetDaySummary(storeID string, businessDate time.Time) (*types.DaySummary, error) {
	var d types.DaySummary
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketDaySummaries).Get(daySummaryKey(storeID, businessDate))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &d)
	})
	if err != nil || !found {
		return nil, err
	}
	return &d, nil
}

func (s *BoltStore) UpsertDaySummary(d *types.DaySummary) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(d)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketDaySummaries).Put(daySummaryKey(d.StoreID, d.BusinessDate), data)
	})
}

// --- Sync logs ---

func (s *BoltStore) AppendSyncLog(log *types.SyncLog) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(log)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketSyncLogs).Put([]byte(log.StoreID+"|"+log.ID), data)
	})
}

func (s *BoltStore) ListSyncLogs(storeID string, limit int) ([]*types.SyncLog, error) {
	var out []*types.SyncLog
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSyncLogs).ForEach(func(k, v []byte) error {
			var l types.SyncLog
			if err := json.Unmarshal(v, &l); err != nil {
				return err
			}
			if l.StoreID == storeID {
				out = append(out, &l)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortSyncLogsDesc(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortSyncLogsDesc(logs []*types.SyncLog) {
	for i := 1; i < len(logs); i++ {
		j := i
		for j > 0 && logs[j-1].StartedAt.Before(logs[j].StartedAt) {
			logs[j-1], logs[j] = logs[j], logs[j-1]
			j--
		}
	}
}
