package report

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepo(sqlx.NewDb(db, "pgx"), 5*time.Second), mock
}

func TestPostgresRepo_Query(t *testing.T) {
	repo, mock := newMockRepo(t)
	def, _ := Lookup(string(EbookAvailability))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(def.Query)).
		WillReturnRows(sqlmock.NewRows([]string{"is_ebook", "count"}).
			AddRow(true, int64(30)).
			AddRow([]byte("false"), int64(55)))
	mock.ExpectCommit()

	res, err := repo.Query(context.Background(), def.Query)
	require.NoError(t, err)
	assert.Equal(t, []string{"is_ebook", "count"}, res.Columns)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, true, res.Rows[0][0])
	assert.Equal(t, "false", res.Rows[1][0])
	assert.Equal(t, int64(55), res.Rows[1][1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_Query_EmptyTable(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"book_title", "retail_price_amount"}))
	mock.ExpectCommit()

	res, err := repo.Query(context.Background(), "SELECT book_title, retail_price_amount FROM api")
	require.NoError(t, err)
	assert.Equal(t, []string{"book_title", "retail_price_amount"}, res.Columns)
	assert.NotNil(t, res.Rows)
	assert.Empty(t, res.Rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_Query_Error(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	_, err := repo.Query(context.Background(), "SELECT nonsense")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_Query_BeginError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	_, err := repo.Query(context.Background(), "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin read-only")
}
