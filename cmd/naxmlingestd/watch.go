package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cuemby/naxml-ingest/pkg/log"
	"github.com/cuemby/naxml-ingest/pkg/watcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <store-id>",
	Short: "Run a single store's file watcher in the foreground",
	Long: `Run one store's FileWatcher loop in the foreground, outside the
scheduler, for local debugging: poll its outbox on the integration's
configured interval, log every discovery and disposition, and run until
interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	storeID := args[0]
	logger := log.WithComponent("cli")

	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	integ, err := findIntegration(a.store, storeID)
	if err != nil {
		return err
	}

	fw := watcher.NewFileWatcher(integ, a.store, a.proc.Handle)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)
	logger.Info().Str("store_id", storeID).Int("poll_interval_s", integ.PollIntervalSeconds).Msg("watcher running in foreground")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fw.Stop()
	cancel()
	logger.Info().Str("store_id", storeID).Msg("watcher stopped")
	return nil
}
