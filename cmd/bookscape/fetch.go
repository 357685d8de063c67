package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bookscape/internal/export"
	"bookscape/internal/ingest"
	"bookscape/internal/shell"
)

func newFetchCmd(load func(*cobra.Command) (*deps, error)) *cobra.Command {
	var (
		maxResults int
		csvPath    string
		xlsxPath   string
		preview    int
	)

	cmd := &cobra.Command{
		Use:   "fetch <search term>",
		Short: "Fetch books for a search term and store them",
		Example: `  bookscape fetch fantasy
  bookscape fetch "data science" --max-results 200 --csv books.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := shell.NewRenderer(cmd.OutOrStdout())
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			req := ingest.Request{SearchTerm: term, MaxResults: maxResults}
			// Reject bad input before any connection is opened.
			if err := req.Validate(); err != nil {
				r.RenderError(errors.New(ingest.SearchTermPrompt))
				return err
			}

			d, err := load(cmd)
			if err != nil {
				return err
			}
			defer d.close()

			res, err := d.ingest.Run(cmd.Context(), req)
			if err != nil {
				var verr *ingest.ValidationError
				if errors.As(err, &verr) {
					r.RenderError(errors.New(ingest.SearchTermPrompt))
					return err
				}
				r.RenderError(err)
				if res == nil {
					return err
				}
				// The batch was fetched but not stored; files still get written.
				if werr := writeExports(cmd.OutOrStdout(), res, csvPath, xlsxPath); werr != nil {
					return errors.Join(err, werr)
				}
				return err
			}

			limit := d.previewLimit
			if cmd.Flags().Changed("preview") {
				limit = preview
			}
			r.RenderRun(res, limit)
			return writeExports(cmd.OutOrStdout(), res, csvPath, xlsxPath)
		},
	}

	cmd.Flags().IntVar(&maxResults, "max-results", 0, "maximum books to fetch (default from config, at most 1000)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write the fetched batch to this CSV file")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the fetched batch to this Excel file")
	cmd.Flags().IntVar(&preview, "preview", 0, "number of books to preview (default from config)")
	return cmd
}

func writeExports(out io.Writer, res *ingest.Result, csvPath, xlsxPath string) error {
	table := export.BooksTable(res.Records)
	if csvPath != "" {
		if err := writeFile(csvPath, export.FormatCSV, table); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		fmt.Fprintf(out, "Wrote %d books to %s\n", len(res.Records), csvPath)
	}
	if xlsxPath != "" {
		if err := writeFile(xlsxPath, export.FormatXLSX, table); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
		fmt.Fprintf(out, "Wrote %d books to %s\n", len(res.Records), xlsxPath)
	}
	return nil
}
