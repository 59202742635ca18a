package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/log"
	"github.com/cuemby/naxml-ingest/pkg/metrics"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ingestion daemon",
	Long: `Start the ingestion daemon: spawn a file watcher and sync-cycle
loop for every active POS integration, serve Prometheus metrics, and run
until interrupted.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	logger := log.WithComponent("cli")

	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	integrations, err := activeFileIntegrations(a.store)
	if err != nil {
		return err
	}
	for _, integ := range integrations {
		if err := a.orch.Start(integ); err != nil {
			logger.Error().Err(err).Str("store_id", integ.StoreID).Msg("failed to start integration")
		}
	}
	logger.Info().Int("count", len(integrations)).Msg("integrations started")

	a.broker.Start()
	a.ackEmit.Start()

	collector := metrics.NewCollector(a.store)
	collector.Start()

	healthStopCh := make(chan struct{})
	go watchHealth(a, logger, healthStopCh)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: a.cfg.MetricsAddr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server stopped")
		}
	}()
	logger.Info().Str("addr", a.cfg.MetricsAddr).Msg("metrics server listening")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info().Msg("shutdown signal received, stopping integrations")

	for _, integ := range a.orch.ListActive() {
		if err := a.orch.Stop(integ.StoreID); err != nil {
			logger.Warn().Err(err).Str("store_id", integ.StoreID).Msg("error stopping integration")
		}
	}

	close(healthStopCh)
	collector.Stop()
	a.ackEmit.Stop()
	a.broker.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	return nil
}

// watchHealth periodically logs any integration whose file watcher has
// gone unhealthy (its outbox has failed to read for several consecutive
// poll cycles), so an operator watching logs sees a degraded POS
// connection even when no file ever arrives to trigger an error path.
func watchHealth(a *app, logger zerolog.Logger, stopCh <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, integ := range a.orch.ListActive() {
				st, ok := a.orch.WatcherHealth(integ.StoreID)
				if ok && !st.Healthy {
					logger.Warn().
						Str("store_id", integ.StoreID).
						Int("consecutive_failures", st.ConsecutiveFailures).
						Str("last_error", st.LastResult.Message).
						Msg("integration outbox unhealthy")
				}
			}
		case <-stopCh:
			return
		}
	}
}
