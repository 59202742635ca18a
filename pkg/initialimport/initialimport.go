// Package initialimport runs the one-shot historical discovery pass that
// seeds fuel grades and positions from whatever FGM/FPM files already sit
// in an integration's exchange directories, before continuous polling
// begins. It never writes transactions or summaries -- only the
// FuelGrade/FuelPosition reference rows the rest of the core depends on
// existing ahead of time.
package initialimport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/adapter"
	"github.com/cuemby/naxml-ingest/pkg/log"
	"github.com/cuemby/naxml-ingest/pkg/naxml"
	"github.com/cuemby/naxml-ingest/pkg/projector"
	"github.com/cuemby/naxml-ingest/pkg/types"
)

// Progress is the in-memory state of one integration's initial-import
// pass. It is mutated only by the worker running that integration's
// pass; readers (status endpoints, the CLI) take a snapshot under the
// service's lock.
type Progress struct {
	StoreID        string
	FilesScanned   int
	GradesFound    int
	PositionsFound int
	StartedAt      time.Time
	FinishedAt     time.Time
	Done           bool
	Error          string
}

// Service runs and tracks initial-import passes, one per integration.
type Service struct {
	projector *projector.Projector

	mu       sync.RWMutex
	progress map[string]*Progress // keyed by integration id
}

// New constructs a Service.
func New(proj *projector.Projector) *Service {
	return &Service{
		projector: proj,
		progress:  make(map[string]*Progress),
	}
}

// Progress returns a snapshot of an integration's pass, if one has been
// started.
func (s *Service) Progress(integrationID string) (Progress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.progress[integrationID]
	if !ok {
		return Progress{}, false
	}
	return *p, true
}

// Run scans the integration's outbox and archive directories for FGM and
// FPM files and ensures a FuelGrade/FuelPosition row exists for every
// grade and position id it observes. Calling Run twice for the same
// integration ID returns an error; the pass is one-shot.
func (s *Service) Run(ctx context.Context, integration *types.POSIntegration) error {
	s.mu.Lock()
	if _, exists := s.progress[integration.ID]; exists {
		s.mu.Unlock()
		return fmt.Errorf("initial import already run for integration %q", integration.ID)
	}
	p := &Progress{StoreID: integration.StoreID, StartedAt: time.Now()}
	s.progress[integration.ID] = p
	s.mu.Unlock()

	logger := log.WithStoreID(integration.StoreID)
	err := s.scan(ctx, integration, p)

	s.mu.Lock()
	p.FinishedAt = time.Now()
	p.Done = true
	if err != nil {
		p.Error = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		logger.Error().Err(err).Msg("initial import failed")
	} else {
		logger.Info().Int("files", p.FilesScanned).Int("grades", p.GradesFound).Int("positions", p.PositionsFound).Msg("initial import completed")
	}
	return err
}

var archivePrefix = regexp.MustCompile(`^\d{8}T\d{6}Z_(ERROR_)?`)

func originalName(name string) string {
	return archivePrefix.ReplaceAllString(name, "")
}

func (s *Service) scan(ctx context.Context, integration *types.POSIntegration, p *Progress) error {
	paths, err := adapter.ResolvePaths(integration)
	if err != nil {
		return err
	}
	layout := adapter.LayoutFor(integration.POSType)

	seenGrades := map[string]bool{}
	seenPositions := map[string]bool{}

	for _, dir := range []string{paths.Outbox, paths.Archive} {
		entries, rerr := os.ReadDir(dir)
		if rerr != nil {
			continue // archive may not exist until the first file is processed
		}

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if !e.IsDir() {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			docType, ok := layout.Classify(originalName(name))
			if !ok || (docType != naxml.DocFuelGradeMovement && docType != naxml.DocFuelProductMovement) {
				continue
			}

			data, rerr := os.ReadFile(filepath.Join(dir, name))
			if rerr != nil {
				continue
			}
			parsed, perr := naxml.Parse(data)
			if perr != nil {
				continue
			}
			p.FilesScanned++

			switch d := parsed.Document.(type) {
			case *naxml.FuelGradeMovement:
				for _, detail := range d.Details {
					if detail.FuelGradeID == "" || seenGrades[detail.FuelGradeID] {
						continue
					}
					if _, err := s.projector.EnsureFuelGrade(integration.CompanyID, detail.FuelGradeID); err != nil {
						return err
					}
					seenGrades[detail.FuelGradeID] = true
					p.GradesFound++
				}
			case *naxml.FuelProductMovement:
				for _, detail := range d.Details {
					for _, row := range detail.Rows {
						if row.FuelPositionID == "" || seenPositions[row.FuelPositionID] {
							continue
						}
						if _, err := s.projector.EnsureFuelPosition(integration.StoreID, integration.CompanyID, row.FuelPositionID); err != nil {
							return err
						}
						seenPositions[row.FuelPositionID] = true
						p.PositionsFound++
					}
				}
			}
		}
	}

	return nil
}
