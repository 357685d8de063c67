// Package shell renders fetch runs and report results for the terminal.
package shell

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"bookscape/internal/book"
	"bookscape/internal/export"
	"bookscape/internal/ingest"
	"bookscape/internal/report"
)

// previewColumns are the columns shown in the fetch preview.
var previewColumns = []string{"book_id", "book_title", "book_authors", "year", "image_link", "categories", "is_ebook", "retail_price_amount"}

const maxCellWidth = 48

// Renderer writes tables to out.
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	return t
}

// RenderRun prints the run summary, skipped books and up to previewLimit records.
func (r *Renderer) RenderRun(res *ingest.Result, previewLimit int) {
	fmt.Fprintf(r.out, "Fetched %d books for %q, inserted %d.\n", res.Fetched, res.SearchTerm, res.Inserted)
	if res.Partial {
		fmt.Fprintf(r.out, "Only %d books were retrieved; the results may be partial.\n", res.Fetched)
	}

	if len(res.Warnings) > 0 {
		t := r.newTable()
		t.SetTitle("Skipped books")
		t.AppendHeader(table.Row{"Book ID", "Title", "Error"})
		for _, w := range res.Warnings {
			msg := ""
			if w.Err != nil {
				msg = w.Err.Error()
			}
			t.AppendRow(table.Row{w.BookID, book.Truncate(w.Title, maxCellWidth), msg})
		}
		t.Render()
	}

	preview := res.Preview(previewLimit)
	if len(preview) == 0 {
		fmt.Fprintln(r.out, "No books to preview.")
		return
	}

	t := r.newTable()
	t.SetTitle("Preview (%d of %d)", len(preview), len(res.Records))
	header := make(table.Row, len(previewColumns))
	for i, c := range previewColumns {
		header[i] = c
	}
	t.AppendHeader(header)
	for _, rec := range preview {
		t.AppendRow(table.Row{
			rec.BookID,
			book.Truncate(rec.TitleOrEmpty(), maxCellWidth),
			book.Truncate(rec.Authors, maxCellWidth),
			rec.Year,
			// Links are never truncated so they stay usable.
			export.Cell(rec.ImageLink),
			book.Truncate(rec.Categories, maxCellWidth),
			export.Cell(rec.IsEbook),
			export.Cell(rec.RetailPriceAmount),
		})
	}
	t.Render()
}

// RenderCatalog lists the available reports.
func (r *Renderer) RenderCatalog(defs []report.Definition) {
	t := r.newTable()
	t.AppendHeader(table.Row{"#", "Name", "Report"})
	for _, d := range defs {
		t.AppendRow(table.Row{d.Number, d.Name, d.Label})
	}
	t.Render()
}

// RenderReport prints one report result. A result with no rows prints a notice.
func (r *Renderer) RenderReport(def report.Definition, res report.Result) {
	fmt.Fprintln(r.out, text.Bold.Sprint(def.Display()))
	if len(res.Rows) == 0 {
		fmt.Fprintln(r.out, "No rows.")
		return
	}

	t := r.newTable()
	header := make(table.Row, len(res.Columns))
	for i, c := range res.Columns {
		header[i] = c
	}
	t.AppendHeader(header)
	for _, row := range res.Rows {
		out := make(table.Row, len(row))
		for i, v := range row {
			out[i] = book.Truncate(export.Cell(v), maxCellWidth)
		}
		t.AppendRow(out)
	}
	t.SetCaption("%d rows", len(res.Rows))
	t.Render()
}

// RenderError prints a user-visible failure message.
func (r *Renderer) RenderError(err error) {
	fmt.Fprintln(r.out, text.FgRed.Sprint("Error: "+err.Error()))
}
