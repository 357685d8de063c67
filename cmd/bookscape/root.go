package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bookscape/internal/app"
	"bookscape/internal/config"
	"bookscape/internal/export"
	"bookscape/internal/ingest"
	"bookscape/internal/report"
)

type ingestRunner interface {
	Run(ctx context.Context, req ingest.Request) (*ingest.Result, error)
}

type reportRunner interface {
	Run(ctx context.Context, name string) (report.Result, error)
}

// deps are the services a command needs. close releases them.
type deps struct {
	ingest       ingestRunner
	reports      reportRunner
	previewLimit int
	close        func()
}

type depsFactory func(ctx context.Context, configPath string) (*deps, error)

func openDeps(ctx context.Context, configPath string) (*deps, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := app.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return &deps{ingest: a.Ingest, reports: a.Reports, previewLimit: cfg.PreviewLimit, close: a.Close}, nil
}

func newRootCmd(factory depsFactory) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "bookscape",
		Short:         "Fetch Google Books volumes into Postgres and run canned reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config file")

	load := func(cmd *cobra.Command) (*deps, error) {
		return factory(cmd.Context(), configPath)
	}

	root.AddCommand(newFetchCmd(load))
	root.AddCommand(newReportsCmd())
	root.AddCommand(newReportCmd(load))
	return root
}

// writeFile exports t to path in format f.
func writeFile(path string, f export.Format, t export.Table) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.Write(out, f, t); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
