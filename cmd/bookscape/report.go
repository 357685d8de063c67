package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookscape/internal/export"
	"bookscape/internal/report"
	"bookscape/internal/shell"
)

func newReportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "List the available reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shell.NewRenderer(cmd.OutOrStdout()).RenderCatalog(report.Catalog())
			return nil
		},
	}
}

func newReportCmd(load func(*cobra.Command) (*deps, error)) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:     "report <name|number>",
		Short:   "Run one report",
		Example: "  bookscape report rating-outliers\n  bookscape report 16",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := shell.NewRenderer(cmd.OutOrStdout())
			def, ok := report.Lookup(args[0])
			if !ok {
				err := fmt.Errorf("%w: %q (see `bookscape reports`)", report.ErrUnknownReport, args[0])
				r.RenderError(err)
				return err
			}

			d, err := load(cmd)
			if err != nil {
				return err
			}
			defer d.close()

			res, err := d.reports.Run(cmd.Context(), string(def.Name))
			if err != nil {
				r.RenderError(err)
				return err
			}
			r.RenderReport(def, res)

			if csvPath != "" {
				if err := writeFile(csvPath, export.FormatCSV, export.ReportTable(res.Columns, res.Rows)); err != nil {
					return fmt.Errorf("write csv: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(res.Rows), csvPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "write the result to this CSV file")
	return cmd
}
