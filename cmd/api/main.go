package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookscape/internal/app"
	"bookscape/internal/config"
	"bookscape/internal/httpx"
	"bookscape/internal/ingest"
	"bookscape/internal/logger"
	"bookscape/internal/report"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	lg, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, lg)
	if err != nil {
		lg.Error("startup failed", logger.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	handler := newRouter(routerDeps{
		log:            lg,
		db:             a.DB,
		books:          ingest.NewHTTPHandler(a.Ingest, cfg.InternalSecret, cfg.PreviewLimit),
		reports:        report.NewHTTPHandler(a.Reports),
		rateLimiter:    httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst),
		allowedOrigins: cfg.CORSAllowedOrigins,
	})

	httpServer := &http.Server{
		Addr:        cfg.AppAddr,
		Handler:     handler,
		ReadTimeout: 5 * time.Second,
		// A full fetch run pages through up to 25 catalog requests with a pause between each.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	lg.Info("starting server", logger.String("addr", cfg.AppAddr))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Error("server error", logger.Error(err))
		os.Exit(1)
	}
	lg.Info("server stopped")
}
