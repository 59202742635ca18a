// Package watcher polls a POS integration's outbox, classifies each file
// by name, and hands its raw bytes to a document handler while recording
// a FileLog for every file it touches.
package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/adapter"
	"github.com/cuemby/naxml-ingest/pkg/health"
	"github.com/cuemby/naxml-ingest/pkg/log"
	"github.com/cuemby/naxml-ingest/pkg/metrics"
	"github.com/cuemby/naxml-ingest/pkg/naxmlerr"
	"github.com/cuemby/naxml-ingest/pkg/storage"
	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DocumentHandler processes one discovered, hashed, classified file. It
// is supplied by pkg/processor; the watcher itself never interprets
// NAXML content.
type DocumentHandler func(ctx context.Context, integration *types.POSIntegration, fileLog *types.FileLog, data []byte) (recordCount int, err error)

// FileWatcher runs one cooperative polling loop per store, discovering
// files in its POS outbox, gating them through the at-most-once hash
// index, and dispatching them to a DocumentHandler.
type FileWatcher struct {
	integration *types.POSIntegration
	store       storage.Store
	handler     DocumentHandler
	logger      zerolog.Logger

	mu      sync.Mutex
	stopCh  chan struct{}
	running bool

	healthCfg health.Config
	health    *health.Status
}

// NewFileWatcher constructs a watcher for one integration.
func NewFileWatcher(integration *types.POSIntegration, store storage.Store, handler DocumentHandler) *FileWatcher {
	return &FileWatcher{
		integration: integration,
		store:       store,
		handler:     handler,
		logger:      log.WithStoreID(integration.StoreID),
		healthCfg:   health.DefaultConfig(),
		health:      health.NewStatus(),
	}
}

// Health reports the outbox-reachability status accumulated across poll
// cycles: consecutive failures to read the outbox (missing mount, stale
// NFS handle, permissions change) flip it unhealthy once they reach the
// configured retry threshold, so a long-running watcher need not crash
// or hide a degraded POS integration behind scattered error logs.
func (w *FileWatcher) Health() health.Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return *w.health
}

// Start begins the polling loop in a new goroutine. Calling Start twice
// on a running watcher is a no-op.
func (w *FileWatcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.stopCh = make(chan struct{})
	w.running = true
	w.mu.Unlock()

	go w.run(ctx)
}

// Stop ends the polling loop. It is safe to call on an already-stopped
// watcher.
func (w *FileWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	close(w.stopCh)
	w.running = false
}

func (w *FileWatcher) interval() time.Duration {
	secs := w.integration.PollIntervalSeconds
	if secs < types.MinPollIntervalSeconds {
		secs = types.DefaultPollIntervalSec
	}
	if secs > types.MaxPollIntervalSeconds {
		secs = types.MaxPollIntervalSeconds
	}
	return time.Duration(secs) * time.Second
}

func (w *FileWatcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval())
	defer ticker.Stop()

	w.logger.Info().Msg("file watcher started")

	for {
		select {
		case <-ticker.C:
			err := w.Poll(ctx)
			w.recordPollHealth(err)
			if err != nil {
				w.logger.Error().Err(err).Msg("poll cycle failed")
			}
		case <-w.stopCh:
			w.logger.Info().Msg("file watcher stopped")
			return
		case <-ctx.Done():
			w.logger.Info().Msg("file watcher stopped by context cancellation")
			return
		}
	}
}

func (w *FileWatcher) recordPollHealth(pollErr error) {
	result := health.Result{
		Healthy:   pollErr == nil,
		CheckedAt: time.Now(),
	}
	if pollErr != nil {
		result.Message = pollErr.Error()
	}

	w.mu.Lock()
	wasHealthy := w.health.Healthy
	w.health.Update(result, w.healthCfg)
	isHealthy := w.health.Healthy
	failures := w.health.ConsecutiveFailures
	w.mu.Unlock()

	if wasHealthy && !isHealthy {
		w.logger.Warn().Int("consecutive_failures", failures).Msg("outbox unreachable for too long, marking integration unhealthy")
	} else if !wasHealthy && isHealthy {
		w.logger.Info().Msg("outbox reachable again, integration healthy")
	}
}

// Poll runs one discovery-and-process pass over the outbox. It is
// exported so callers (the orchestrator, the CLI's one-shot commands)
// can trigger it outside of the ticker cadence.
func (w *FileWatcher) Poll(ctx context.Context) error {
	paths, err := adapter.ResolvePaths(w.integration)
	if err != nil {
		return err
	}
	layout := adapter.LayoutFor(w.integration.POSType)

	entries, err := os.ReadDir(paths.Outbox)
	if err != nil {
		return fmt.Errorf("reading outbox %q: %w", paths.Outbox, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names) // deterministic, oldest-looking-name-first processing order

	for _, name := range names {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		docType, ok := layout.Classify(name)
		if !ok {
			w.logger.Warn().Str("file", name).Msg("unclassifiable file, leaving in outbox")
			continue
		}

		if err := w.processOne(ctx, paths, name, string(docType)); err != nil {
			w.logger.Error().Err(err).Str("file", name).Msg("failed to process file")
		}
	}

	return nil
}

func (w *FileWatcher) processOne(ctx context.Context, paths *adapter.Paths, name, docType string) error {
	srcPath := filepath.Join(paths.Outbox, name)

	data, hash, size, err := hashFile(srcPath)
	if err != nil {
		return fmt.Errorf("hashing %q: %w", name, err)
	}

	if existing, _ := w.store.GetFileLogByHash(w.integration.StoreID, hash); existing != nil {
		metrics.FilesSkippedDuplicateTotal.WithLabelValues(w.integration.StoreID).Inc()
		w.logger.Debug().Str("file", name).Str("hash", hash).Msg("duplicate content, skipping")

		skipped := &types.FileLog{
			ID:          uuid.NewString(),
			StoreID:     w.integration.StoreID,
			CompanyID:   w.integration.CompanyID,
			FileHash:    hash,
			FileName:    name,
			FileType:    docType,
			Direction:   types.FileDirectionInbound,
			Status:      types.FileStatusSkipped,
			SizeBytes:   size,
			ErrorCode:   string(naxmlerr.CodeDuplicateContent),
			Reason:      "DUPLICATE",
			SourcePath:  srcPath,
			CreatedAt:   time.Now(),
			ProcessedAt: time.Now(),
		}
		if err := w.store.CreateFileLog(skipped); err != nil {
			w.logger.Warn().Err(err).Str("file", name).Msg("failed to record skipped duplicate file log")
		}

		return w.relocate(paths, srcPath, name, true)
	}

	metrics.FilesDiscoveredTotal.WithLabelValues(w.integration.StoreID, docType).Inc()

	fileLog := &types.FileLog{
		ID:         uuid.NewString(),
		StoreID:    w.integration.StoreID,
		CompanyID:  w.integration.CompanyID,
		FileHash:   hash,
		FileName:   name,
		FileType:   docType,
		Direction:  types.FileDirectionInbound,
		Status:     types.FileStatusPending,
		SizeBytes:  size,
		SourcePath: srcPath,
		CreatedAt:  time.Now(),
	}
	if err := w.store.CreateFileLog(fileLog); err != nil {
		return naxmlerr.Wrap(naxmlerr.CodeDatabaseFailure, err, "create file log")
	}

	fileLog.Status = types.FileStatusProcessing
	_ = w.store.UpdateFileLog(fileLog)

	timer := metrics.NewTimer()
	recordCount, procErr := w.handler(ctx, w.integration, fileLog, data)
	timer.ObserveDurationVec(metrics.FileProcessingDuration, docType)

	fileLog.ProcessedAt = time.Now()
	fileLog.ProcessingMS = timer.Duration().Milliseconds()
	fileLog.RecordCount = recordCount

	if procErr != nil {
		code, _ := naxmlerr.CodeOf(procErr)
		if code == naxmlerr.CodeDuplicateContent {
			fileLog.Status = types.FileStatusSkipped
			fileLog.Reason = "DUPLICATE"
			fileLog.ErrorCode = string(code)
			_ = w.store.UpdateFileLog(fileLog)
			metrics.FilesSkippedDuplicateTotal.WithLabelValues(w.integration.StoreID).Inc()
			return w.relocate(paths, srcPath, name, true)
		}

		fileLog.Status = types.FileStatusFailed
		fileLog.ErrorMessage = procErr.Error()
		fileLog.ErrorCode = string(code)
		_ = w.store.UpdateFileLog(fileLog)
		metrics.FilesProcessedTotal.WithLabelValues(w.integration.StoreID, docType, "failed").Inc()
		return w.relocate(paths, srcPath, name, false)
	}

	fileLog.Status = types.FileStatusSuccess
	_ = w.store.UpdateFileLog(fileLog)
	metrics.FilesProcessedTotal.WithLabelValues(w.integration.StoreID, docType, "success").Inc()

	return w.relocate(paths, srcPath, name, true)
}

// relocate moves a processed file into the archive or error directory
// with an ISO-8601 timestamp prefix, preferring an atomic rename and
// falling back to copy-then-unlink across filesystem boundaries.
func (w *FileWatcher) relocate(paths *adapter.Paths, srcPath, name string, success bool) error {
	if !w.integration.ArchiveProcessedFiles {
		return nil
	}
	destDir := paths.Archive
	infix := ""
	if !success {
		destDir = paths.Error
		infix = "ERROR_"
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	prefix := time.Now().UTC().Format("20060102T150405Z")
	destPath := filepath.Join(destDir, prefix+"_"+infix+name)

	if err := os.Rename(srcPath, destPath); err == nil {
		return nil
	}
	return copyThenUnlink(srcPath, destPath)
}

func copyThenUnlink(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}

func hashFile(path string) (data []byte, hexHash string, size int64, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, "", 0, err
	}
	sum := sha256.Sum256(data)
	return data, hex.EncodeToString(sum[:]), int64(len(data)), nil
}
