/*
Package scheduler owns the registry of active POS integrations: one
FileWatcher and one periodic sync-cycle loop per store, started on
Start, torn down and rebuilt on Restart/UpdatePollInterval, and removed
on Stop.

Mutation of the registry is single-producer (guarded by a mutex);
ListActive returns a snapshot copy so callers never observe or race a
live map. Each sync cycle's outcome is persisted as a types.SyncLog,
with the aggregate Status following: SUCCESS if no category reported
errors, FAILED if every category did, PARTIAL_SUCCESS otherwise.
*/
package scheduler
