package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"bookscape/internal/book"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a query or flag value to a Format. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// Filename builds an attachment name such as books_fantasy.csv.
func (f Format) Filename(stem string) string {
	return fmt.Sprintf("%s.%s", sanitize(stem), f)
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "export"
	}
	return b.String()
}

// Table is a header plus rows, the common shape of book batches and report results.
// Sheet names the XLSX worksheet; empty means "books".
type Table struct {
	Sheet   string
	Columns []string
	Rows    [][]any
}

const (
	BooksSheet  = "books"
	ReportSheet = "report"
)

func BooksTable(records []book.Record) Table {
	t := Table{Sheet: BooksSheet, Columns: book.Columns, Rows: make([][]any, len(records))}
	for i, rec := range records {
		t.Rows[i] = rec.Values()
	}
	return t
}

func ReportTable(columns []string, rows [][]any) Table {
	return Table{Sheet: ReportSheet, Columns: columns, Rows: rows}
}

// Cell renders a value for a text cell. Nil and nil pointers become "".
func Cell(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		v = rv.Elem().Interface()
	}
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	line := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j := range line {
			line[j] = ""
			if j < len(row) {
				line[j] = Cell(row[j])
			}
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single-sheet workbook. Numbers and booleans keep their
// native cell types.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := t.Sheet
	if sheetName == "" {
		sheetName = BooksSheet
	}

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = xlsxValue(v)
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return f.Write(w)
}

func xlsxValue(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		return rv.Elem().Interface()
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// Write renders t in the given file format.
func Write(w io.Writer, f Format, t Table) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t)
	default:
		return fmt.Errorf("format %q is not a file format", f)
	}
}

// Bytes renders t fully in memory, so a failure can still become an error response.
func Bytes(f Format, t Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
