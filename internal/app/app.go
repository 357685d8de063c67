// Package app wires configuration, storage and services for the commands.
package app

import (
	"context"
	"fmt"

	"bookscape/internal/book"
	"bookscape/internal/config"
	"bookscape/internal/ingest"
	"bookscape/internal/logger"
	"bookscape/internal/platform/googlebooks"
	"bookscape/internal/report"
	"bookscape/internal/store"
)

// App holds the dependencies shared by the HTTP server and the CLI.
type App struct {
	Config  *config.Config
	Log     logger.Logger
	DB      *store.DB
	Books   *book.PostgresRepo
	Ingest  *ingest.Service
	Reports *report.Service
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg *config.Config) (logger.Logger, error) {
	return logger.New(logger.Config{Level: cfg.LogLevel, Development: cfg.LogDevelopment})
}

// New opens the database and builds every service. Close releases the pool.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	conn, err := store.Open(ctx, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open database (%s): %w", cfg.RedactedDSN(), err)
	}
	log.Info("database connection OK", logger.String("dsn", cfg.RedactedDSN()))

	client := googlebooks.NewClient(googlebooks.Options{
		BaseURL:   cfg.CatalogBaseURL,
		APIKey:    cfg.CatalogAPIKey,
		UserAgent: cfg.CatalogUserAgent,
		Timeout:   cfg.CatalogTimeout,
	})
	fetcher := ingest.NewFetcher(client, ingest.FetcherConfig{
		PageSize:  cfg.CatalogPageSize,
		PageDelay: cfg.CatalogPageDelay,
	}, log.With(logger.String("component", "fetcher")))

	books := book.NewPostgresRepo(conn.SQL, cfg.DBTimeout, log.With(logger.String("component", "book_repo")))
	reports := report.NewPostgresRepo(conn.SQL, cfg.DBTimeout)

	return &App{
		Config:  cfg,
		Log:     log,
		DB:      conn,
		Books:   books,
		Ingest:  ingest.NewService(fetcher, books, ingest.Config{MaxResults: cfg.CatalogMaxResults}, log),
		Reports: report.NewService(reports, log.With(logger.String("component", "reporter"))),
	}, nil
}

func (a *App) Close() {
	a.DB.Close()
	_ = a.Log.Sync()
}
