/*
Package types defines the core data structures used throughout the NAXML
ingestion core.

This package contains every fundamental type that represents the system's
domain model: POS integrations, the file/audit ledger, reference-data
entities synced from maintenance documents, fuel grades/positions, and the
transactional sale data projected from POS journals. These types are used
by every other package for parsing output, projection, storage, and
reporting.

# Architecture

	┌───────────────────── DOMAIN MODEL ───────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │            POSIntegration                   │          │
	│  │  - 1:1 with a store                         │          │
	│  │  - exchange paths, vendor, sync flags       │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │ drives                                │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │     FileLog            AuditRecord           │          │
	│  │  (store_id,file_hash)  exchange ledger       │          │
	│  │  at-most-once gate     PENDING→...→terminal  │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │ projects into                        │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │  Department / TenderType / TaxRate           │          │
	│  │  FuelGrade / FuelPosition                    │          │
	│  │  Transaction + LineItem + Payment            │          │
	│  │  ShiftFuelSummary / MeterReading / DaySummary│          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────────┘

# Tenant scoping

Every row in this package is scoped by (company_id, store_id), except
FuelGrade which is company-scoped and logically partitioned by grade_id
(a vendor fuel grade is the same physical product across stores in the
same company). Cross-store joins are forbidden in every code path that
consumes these types.

# Lifecycle

POSIntegration is created by setup (external, non-goal) and mutated by an
admin; the core only reads it. FileLog and AuditRecord are created by the
FileWatcher/AuditRecorder before any side effect and transition forward
only — never backward, never re-opened once terminal. Reference-data
entities (Department, TenderType, TaxRate, FuelGrade, FuelPosition) are
upserted by maintenance documents and deactivated by Full-maintenance
reconciliation; Transaction/LineItem/Payment are written once, atomically,
per POSJournal event and never mutated afterward.
*/
package types
