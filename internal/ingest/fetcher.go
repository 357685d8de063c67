package ingest

import (
	"context"
	"time"

	"bookscape/internal/logger"
	"bookscape/internal/metrics"
	"bookscape/internal/platform/googlebooks"
)

const (
	DefaultMaxResults = 1000
	DefaultPageSize   = googlebooks.MaxPageSize
	DefaultPageDelay  = time.Second
)

// VolumeSearcher fetches one page of catalog results.
type VolumeSearcher interface {
	SearchVolumes(ctx context.Context, q string, startIndex, maxResults int) ([]googlebooks.Volume, error)
}

type FetcherConfig struct {
	PageSize  int
	PageDelay time.Duration
}

// Fetcher pages through the catalog for one search term.
type Fetcher struct {
	client    VolumeSearcher
	pageSize  int
	pageDelay time.Duration
	log       logger.Logger
}

func NewFetcher(client VolumeSearcher, cfg FetcherConfig, log logger.Logger) *Fetcher {
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > googlebooks.MaxPageSize {
		pageSize = DefaultPageSize
	}
	return &Fetcher{
		client:    client,
		pageSize:  pageSize,
		pageDelay: cfg.PageDelay,
		log:       log,
	}
}

// Fetch accumulates raw items until maxResults is reached, a page request
// fails, or a page comes back short. Whatever was collected before stopping
// is returned; a failed page is logged, never returned as an error.
func (f *Fetcher) Fetch(ctx context.Context, searchTerm string, maxResults int) []googlebooks.Volume {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	var all []googlebooks.Volume
	for start := 0; start < maxResults; start += f.pageSize {
		if start > 0 && !f.pause(ctx) {
			f.log.Info("catalog pagination cancelled",
				logger.String("search_term", searchTerm),
				logger.Int("start_index", start),
			)
			break
		}

		want := min(f.pageSize, maxResults-start)
		items, err := f.client.SearchVolumes(ctx, searchTerm, start, want)
		if err != nil {
			metrics.CatalogPages.WithLabelValues(metrics.OutcomeError).Inc()
			f.log.Warn("catalog page request failed, stopping pagination",
				logger.String("search_term", searchTerm),
				logger.Int("start_index", start),
				logger.Int("fetched", len(all)),
				logger.Error(err),
			)
			break
		}
		metrics.CatalogPages.WithLabelValues(metrics.OutcomeOK).Inc()
		metrics.CatalogItems.Add(float64(len(items)))

		all = append(all, items...)
		if len(items) < want {
			break
		}
	}
	return all
}

// pause waits the fixed inter-page delay. It reports false when ctx ended first.
func (f *Fetcher) pause(ctx context.Context) bool {
	if f.pageDelay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(f.pageDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
