package main

import (
	"fmt"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/config"
	"github.com/cuemby/naxml-ingest/pkg/events"
	"github.com/cuemby/naxml-ingest/pkg/initialimport"
	"github.com/cuemby/naxml-ingest/pkg/log"
	"github.com/cuemby/naxml-ingest/pkg/processor"
	"github.com/cuemby/naxml-ingest/pkg/projector"
	"github.com/cuemby/naxml-ingest/pkg/scheduler"
	"github.com/cuemby/naxml-ingest/pkg/storage"
	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/google/uuid"
)

// app wires every long-lived collaborator this core needs: the embedded
// store, the event broker, the projector/processor pair, and the
// orchestrator that spawns a watcher per active integration. Every
// subcommand builds one and tears it down when it's done, so a one-shot
// "sync" or "import" run shares exactly the same wiring as the daemon.
type app struct {
	cfg       *config.Config
	store     storage.Store
	broker    *events.Broker
	proj      *projector.Projector
	proc      *processor.Processor
	imports   *initialimport.Service
	orch      *scheduler.Orchestrator
	ackEmit   *events.AckEmitter
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	store, err := storage.NewBoltStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if err := seedIntegrations(store, cfg.Integrations); err != nil {
		store.Close()
		return nil, fmt.Errorf("seed integrations: %w", err)
	}

	broker := events.NewBroker()
	proj := projector.New(store)
	proc := processor.New(store, proj, broker)
	imp := initialimport.New(proj)

	orch := scheduler.NewOrchestrator(store, proc.Handle, proc.RunSyncCycle)

	ackEmit := events.NewAckEmitter(broker, func(storeID string) (*types.POSIntegration, bool) {
		integ, err := store.GetIntegrationByStore(storeID)
		if err != nil || integ == nil {
			return nil, false
		}
		return integ, true
	})

	return &app{
		cfg:     cfg,
		store:   store,
		broker:  broker,
		proj:    proj,
		proc:    proc,
		imports: imp,
		orch:    orch,
		ackEmit: ackEmit,
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		log.WithComponent("cli").Warn().Err(err).Msg("error closing store")
	}
}

// seedIntegrations registers any integration declared in the config file
// that isn't already present in the store, keyed by StoreID so re-running
// with the same file is idempotent.
func seedIntegrations(store storage.Store, seeds []config.IntegrationSeed) error {
	for _, seed := range seeds {
		existing, err := store.GetIntegrationByStore(seed.StoreID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		integ := seed.ToIntegration(uuid.NewString(), time.Now())
		integ.IsActive = true
		if err := store.CreateIntegration(integ); err != nil {
			return fmt.Errorf("store %q: %w", seed.StoreID, err)
		}
	}
	return nil
}

func activeFileIntegrations(store storage.Store) ([]*types.POSIntegration, error) {
	all, err := store.ListActiveIntegrations()
	if err != nil {
		return nil, err
	}
	out := make([]*types.POSIntegration, 0, len(all))
	for _, integ := range all {
		if !integ.IsActive || !integ.SyncEnabled {
			continue
		}
		if integ.ConnectionMode != types.ConnectionModeFileExchange && integ.ExchangeRoot == "" {
			continue
		}
		out = append(out, integ)
	}
	return out, nil
}

func findIntegration(store storage.Store, storeID string) (*types.POSIntegration, error) {
	integ, err := store.GetIntegrationByStore(storeID)
	if err != nil {
		return nil, err
	}
	if integ == nil {
		return nil, fmt.Errorf("no integration registered for store %q", storeID)
	}
	return integ, nil
}
