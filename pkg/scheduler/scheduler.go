// Package scheduler runs the per-integration registry: one FileWatcher
// and one periodic sync-cycle loop per store, started and stopped as
// integrations are added, removed, or reconfigured.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/health"
	"github.com/cuemby/naxml-ingest/pkg/log"
	"github.com/cuemby/naxml-ingest/pkg/metrics"
	"github.com/cuemby/naxml-ingest/pkg/storage"
	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/cuemby/naxml-ingest/pkg/watcher"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SyncFunc runs one full sync cycle for an integration (maintenance
// discovery, fuel movement folding, PJR ingest) and reports a per-category
// tally. It is supplied by pkg/processor/pkg/projector; the scheduler
// itself has no opinion on what a sync cycle does, only when it runs.
type SyncFunc func(ctx context.Context, integration *types.POSIntegration) (map[string]types.SyncCategoryResult, error)

// entry is the registry's per-store bookkeeping.
type entry struct {
	integration *types.POSIntegration
	fileWatcher *watcher.FileWatcher
	cancel      context.CancelFunc
	stopSync    chan struct{}
}

// Orchestrator owns the registry of active integrations. Mutation
// (Start/Stop/Restart/UpdatePollInterval) is single-producer; reads
// (ListActive) return a snapshot copy so callers never race the registry
// map.
type Orchestrator struct {
	store       storage.Store
	handler     watcher.DocumentHandler
	syncFn      SyncFunc
	logger      zerolog.Logger
	mu          sync.RWMutex
	entries     map[string]*entry // keyed by store_id
}

// NewOrchestrator creates an orchestrator. handler processes one
// discovered file (wired from pkg/processor); syncFn runs one periodic
// sync cycle (wired from pkg/processor's RunSyncCycle).
func NewOrchestrator(store storage.Store, handler watcher.DocumentHandler, syncFn SyncFunc) *Orchestrator {
	return &Orchestrator{
		store:   store,
		handler: handler,
		syncFn:  syncFn,
		logger:  log.WithComponent("orchestrator"),
		entries: make(map[string]*entry),
	}
}

// Start registers an integration and begins its file watcher and sync
// cycle loop. Starting an already-registered store is a no-op; call
// Restart to pick up configuration changes.
func (o *Orchestrator) Start(integration *types.POSIntegration) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, exists := o.entries[integration.StoreID]; exists {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	fw := watcher.NewFileWatcher(integration, o.store, o.handler)
	fw.Start(ctx)

	e := &entry{
		integration: integration,
		fileWatcher: fw,
		cancel:      cancel,
		stopSync:    make(chan struct{}),
	}
	o.entries[integration.StoreID] = e

	go o.runSyncLoop(ctx, e)

	o.logger.Info().Str("store_id", integration.StoreID).Msg("integration started")
	return nil
}

// Stop halts a store's file watcher and sync loop and removes it from
// the registry.
func (o *Orchestrator) Stop(storeID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	e, exists := o.entries[storeID]
	if !exists {
		return fmt.Errorf("store %q is not registered", storeID)
	}

	e.fileWatcher.Stop()
	e.cancel()
	close(e.stopSync)
	delete(o.entries, storeID)

	o.logger.Info().Str("store_id", storeID).Msg("integration stopped")
	return nil
}

// Restart stops and re-starts a store's entry with a (possibly updated)
// integration row, so configuration changes like path overrides or poll
// interval take effect without a process restart.
func (o *Orchestrator) Restart(integration *types.POSIntegration) error {
	_ = o.Stop(integration.StoreID)
	return o.Start(integration)
}

// UpdatePollInterval clamps and applies a new poll interval to a
// registered store by restarting its entry with the updated value.
func (o *Orchestrator) UpdatePollInterval(storeID string, seconds int) error {
	o.mu.Lock()
	e, exists := o.entries[storeID]
	o.mu.Unlock()
	if !exists {
		return fmt.Errorf("store %q is not registered", storeID)
	}

	if seconds < types.MinPollIntervalSeconds {
		seconds = types.MinPollIntervalSeconds
	}
	if seconds > types.MaxPollIntervalSeconds {
		seconds = types.MaxPollIntervalSeconds
	}

	updated := *e.integration
	updated.PollIntervalSeconds = seconds
	return o.Restart(&updated)
}

// ListActive returns a snapshot of the currently registered integrations.
func (o *Orchestrator) ListActive() []*types.POSIntegration {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]*types.POSIntegration, 0, len(o.entries))
	for _, e := range o.entries {
		out = append(out, e.integration)
	}
	return out
}

// WatcherHealth reports the outbox-reachability status accumulated by a
// registered store's file watcher. The second return value is false if
// the store is not currently registered.
func (o *Orchestrator) WatcherHealth(storeID string) (health.Status, bool) {
	o.mu.RLock()
	e, exists := o.entries[storeID]
	o.mu.RUnlock()
	if !exists {
		return health.Status{}, false
	}
	return e.fileWatcher.Health(), true
}

func (o *Orchestrator) runSyncLoop(ctx context.Context, e *entry) {
	interval := time.Duration(e.integration.SyncIntervalMins) * time.Minute
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			o.runSyncCycle(ctx, e.integration)
		case <-e.stopSync:
			return
		case <-ctx.Done():
			return
		}
	}
}

// runSyncCycle runs one sync cycle, persists a SyncLog, and updates
// metrics. The cycle's aggregate status follows the per-category tally:
// SUCCESS if every category is error-free, FAILED if the cycle itself
// errored or every category failed, PARTIAL_SUCCESS otherwise.
func (o *Orchestrator) runSyncCycle(ctx context.Context, integration *types.POSIntegration) {
	if !integration.SyncEnabled {
		return
	}

	timer := metrics.NewTimer()
	syncLog := &types.SyncLog{
		ID:        uuid.NewString(),
		StoreID:   integration.StoreID,
		StartedAt: time.Now(),
	}

	categories, err := o.syncFn(ctx, integration)
	syncLog.FinishedAt = time.Now()
	syncLog.Categories = categories
	timer.ObserveDuration(metrics.SyncCycleDuration)

	if err != nil {
		syncLog.Status = types.SyncStatusFailed
		syncLog.ErrorMessages = append(syncLog.ErrorMessages, err.Error())
	} else {
		syncLog.Status = aggregateStatus(categories)
	}

	metrics.SyncCyclesTotal.WithLabelValues(string(syncLog.Status)).Inc()

	if logErr := o.store.AppendSyncLog(syncLog); logErr != nil {
		o.logger.Error().Err(logErr).Str("store_id", integration.StoreID).Msg("failed to persist sync log")
	}
}

func aggregateStatus(categories map[string]types.SyncCategoryResult) types.SyncStatus {
	if len(categories) == 0 {
		return types.SyncStatusSuccess
	}

	withErrors, total := 0, 0
	for _, c := range categories {
		total++
		if len(c.Errors) > 0 {
			withErrors++
		}
	}

	switch {
	case withErrors == 0:
		return types.SyncStatusSuccess
	case withErrors == total:
		return types.SyncStatusFailed
	default:
		return types.SyncStatusPartialSuccess
	}
}
