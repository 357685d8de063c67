package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"bookscape/internal/book"
	"bookscape/internal/logger"
	"bookscape/internal/metrics"
	"bookscape/internal/platform/googlebooks"
)

// VolumeFetcher pages through the catalog. *Fetcher implements it.
type VolumeFetcher interface {
	Fetch(ctx context.Context, searchTerm string, maxResults int) []googlebooks.Volume
}

type Config struct {
	MaxResults int
}

// Service drives fetch -> normalize -> upsert for one search term.
type Service struct {
	fetcher  VolumeFetcher
	bookRepo book.Repository
	cfg      Config
	log      logger.Logger
	newRunID func() string
}

func NewService(fetcher VolumeFetcher, bookRepo book.Repository, cfg Config, log logger.Logger) *Service {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	return &Service{
		fetcher:  fetcher,
		bookRepo: bookRepo,
		cfg:      cfg,
		log:      log,
		newRunID: uuid.NewString,
	}
}

// Run executes one fetch-and-insert action. A storage failure is returned
// together with a Result that still holds the fetched records.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	req.SearchTerm = strings.TrimSpace(req.SearchTerm)
	if err := req.Validate(); err != nil {
		metrics.IngestRuns.WithLabelValues("invalid").Inc()
		return nil, err
	}
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = s.cfg.MaxResults
	}

	run := &Result{RunID: s.newRunID(), SearchTerm: req.SearchTerm}
	log := s.log.With(logger.String("run_id", run.RunID), logger.String("search_term", req.SearchTerm))
	log.Info("fetch run started", logger.Int("max_results", maxResults))

	items := s.fetcher.Fetch(ctx, req.SearchTerm, maxResults)
	run.Fetched = len(items)
	run.Partial = run.Fetched < PartialThreshold
	run.Records = book.NormalizeAll(items, req.SearchTerm)

	batch, err := s.bookRepo.UpsertBatch(ctx, run.Records)
	run.Inserted = batch.Inserted
	run.Warnings = batch.Warnings
	metrics.BooksUpserted.Add(float64(batch.Inserted))
	metrics.BooksSkipped.Add(float64(len(batch.Warnings)))
	if err != nil {
		metrics.IngestRuns.WithLabelValues(metrics.OutcomeError).Inc()
		log.Error("fetch run failed to persist", logger.Int("fetched", run.Fetched), logger.Error(err))
		return run, fmt.Errorf("persist %d books: %w", run.Fetched, err)
	}

	metrics.IngestRuns.WithLabelValues(metrics.OutcomeOK).Inc()
	log.Info("fetch run completed",
		logger.Int("fetched", run.Fetched),
		logger.Int("inserted", run.Inserted),
		logger.Int("skipped", len(run.Warnings)),
		logger.Bool("partial", run.Partial),
	)
	return run, nil
}
