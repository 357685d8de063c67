// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CatalogPages counts catalog page requests by outcome (ok, error).
	CatalogPages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookscape_catalog_pages_total",
		Help: "Catalog page requests by outcome",
	}, []string{"outcome"})

	CatalogItems = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookscape_catalog_items_total",
		Help: "Raw catalog items received",
	})

	BooksUpserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookscape_books_upserted_total",
		Help: "Book records written by the upsert batch",
	})

	BooksSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookscape_books_skipped_total",
		Help: "Book records skipped because their upsert failed",
	})

	IngestRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookscape_ingest_runs_total",
		Help: "Fetch-and-insert runs by outcome",
	}, []string{"outcome"})

	ReportRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookscape_report_runs_total",
		Help: "Report executions by report name and outcome",
	}, []string{"report", "outcome"})

	ReportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookscape_report_duration_seconds",
		Help:    "Report execution latency",
		Buckets: []float64{.005, .01, .05, .1, .5, 1, 5},
	}, []string{"report"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookscape_http_requests_total",
		Help: "HTTP requests by method and status",
	}, []string{"method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookscape_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// ObserveHTTP records one finished request.
func ObserveHTTP(r *http.Request, status int, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(r.Method).Observe(elapsed.Seconds())
}
