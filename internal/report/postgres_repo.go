package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type PostgresRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewPostgresRepo(db *sqlx.DB, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

// Query runs query inside a read-only transaction and returns every row.
func (r *PostgresRepo) Query(ctx context.Context, query string) (Result, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return Result{}, fmt.Errorf("begin read-only: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryxContext(ctx, query)
	if err != nil {
		return Result{}, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return Result{}, err
	}
	res := Result{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		row, err := rows.SliceScan()
		if err != nil {
			return Result{}, err
		}
		for i, v := range row {
			if b, ok := v.([]byte); ok {
				row[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return Result{}, err
	}
	return res, tx.Commit()
}
