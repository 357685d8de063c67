package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bookscape/internal/book"
)

func ptr[T any](v T) *T { return &v }

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatJSON, "json": FormatJSON, "CSV": FormatCSV, " xlsx ": FormatXLSX}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestFormat_Filename(t *testing.T) {
	assert.Equal(t, "books_science_fiction.csv", FormatCSV.Filename("books_science fiction"))
	assert.Equal(t, "export.xlsx", FormatXLSX.Filename(""))
}

func TestCell(t *testing.T) {
	var nilStr *string
	assert.Equal(t, "", Cell(nil))
	assert.Equal(t, "", Cell(nilStr))
	assert.Equal(t, "Dune", Cell(ptr("Dune")))
	assert.Equal(t, "604", Cell(ptr(604)))
	assert.Equal(t, "4.5", Cell(ptr(4.5)))
	assert.Equal(t, "true", Cell(true))
	assert.Equal(t, "12", Cell(int64(12)))
	assert.Equal(t, "raw", Cell([]byte("raw")))
}

func sampleTable() Table {
	return BooksTable([]book.Record{
		{BookID: "a", SearchKey: "fantasy", Title: ptr("The Hobbit, or There and Back Again"), Authors: "J. R. R. Tolkien", PageCount: ptr(310), Year: "1937"},
		{BookID: "b", SearchKey: "fantasy", Year: ""},
	})
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTable()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, book.Columns, rows[0])
	assert.Equal(t, "The Hobbit, or There and Back Again", rows[1][2])
	assert.Equal(t, "310", rows[1][9])
	assert.Equal(t, "", rows[2][2])
}

func TestWriteXLSX(t *testing.T) {
	data, err := Bytes(FormatXLSX, sampleTable())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(BooksSheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, "book_id", rows[0][0])
	assert.Equal(t, "a", rows[1][0])
	assert.Equal(t, "310", rows[1][9])
}

func TestWriteXLSX_ReportSheet(t *testing.T) {
	data, err := Bytes(FormatXLSX, ReportTable([]string{"is_ebook", "avg_pages"}, [][]any{{true, 312.5}}))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ReportSheet}, f.GetSheetList())
	rows, err := f.GetRows(ReportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "avg_pages", rows[0][1])
	assert.Equal(t, "312.5", rows[1][1])
}

func TestWrite_RejectsJSON(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, FormatJSON, Table{}))
}
