package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bookscape/internal/httpx"
	"bookscape/internal/ingest"
	"bookscape/internal/logger"
	"bookscape/internal/report"
)

const maxBodyBytes = 1 << 20

// Pinger reports database readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type routerDeps struct {
	log            logger.Logger
	db             Pinger
	books          *ingest.HTTPHandler
	reports        *report.HTTPHandler
	rateLimiter    *httpx.RateLimitMiddleware
	allowedOrigins []string
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(httpx.RequestIDMiddleware)
	r.Use(httpx.RecoveryMiddleware(d.log))
	r.Use(httpx.AccessLogMiddleware(d.log))
	r.Use(httpx.CORSMiddleware(d.allowedOrigins))
	r.Use(httpx.SecurityHeadersMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := d.db.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		if d.rateLimiter != nil {
			r.Use(d.rateLimiter.Middleware)
		}
		r.With(httpx.RequestSizeLimitMiddleware(maxBodyBytes)).Post("/books/fetch", d.books.Fetch)
		r.Get("/reports", d.reports.List)
		r.Get("/reports/{name}", d.reports.Run)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})
	return r
}
