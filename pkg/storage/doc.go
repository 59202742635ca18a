/*
Package storage provides BoltDB-backed persistence for the NAXML ingestion
core's operational data: POS integrations, the file/audit ledger,
reference-data entities, and the projected transaction and fuel-movement
tables.

In production this contract is fulfilled by a relational database (an
external, non-goal collaborator of this spec); BoltStore is the reference
implementation used here so the Store interface can be exercised and
tested without one.

# Bucket layout

	integrations            POSIntegration.ID
	file_logs               FileLog.ID
	file_logs_by_hash       "<store_id>|<file_hash>" -> FileLog.ID (first row for the hash)
	audit_records           AuditRecord.ExchangeID
	departments             "<store_id>|<pos_code>"
	tender_types            "<store_id>|<pos_code>"
	tax_rates               "<store_id>|<pos_code>"
	fuel_grades             "<company_id>|<grade_id>"
	fuel_positions          "<store_id>|<position_id>"
	transactions            Transaction.ID
	transactions_by_hash    "<store_id>|<source_file_hash>" -> Transaction.ID
	line_items              LineItem.ID
	payments                Payment.ID
	shift_fuel_summaries    "<shift_summary_id>|<fuel_grade_id>|<tender_type>"
	meter_readings          MeterReading.ID (history)
	meter_readings_latest   "<store_id>|<position_id>|<product_id>|<type>"
	day_summaries           "<store_id>|<business_date>"
	sync_logs               "<store_id>|<id>"

Composite keys double as the natural uniqueness constraints the data model
requires (reference data's (store_id, pos_code), FuelGrade's (company_id,
grade_id), and so on) -- a lookup by that key IS the dedupe check, no
secondary scan needed. FileLog's (store_id, file_hash) and Transaction's
(store_id, source_file_hash) are checked the same way through their
*_by_hash index buckets. Where a lookup
needs a field that isn't part of the key (e.g. listing all departments for
a store), the bucket is scanned and filtered in Go, the same shape the
corpus uses for its by-name lookups.

Every write is a single db.Update transaction; CreateTransactionBundle
writes the transaction, its line items, and its payments in one bolt
transaction so a projected file is atomic even though it touches three
buckets.
*/
package storage
