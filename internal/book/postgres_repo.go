package book

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"bookscape/internal/logger"
)

const upsertSQL = `
	INSERT INTO api (
		book_id, search_key, book_title, book_subtitle, book_authors,
		book_description, industry_identifiers, text_reading_mode, image_reading_mode,
		page_count, categories, language, image_link, ratings_count, average_rating,
		country, saleability, is_ebook, list_price_amount, list_price_currency,
		retail_price_amount, retail_price_currency, buy_link, year
	) VALUES (
		:book_id, :search_key, :book_title, :book_subtitle, :book_authors,
		:book_description, :industry_identifiers, :text_reading_mode, :image_reading_mode,
		:page_count, :categories, :language, :image_link, :ratings_count, :average_rating,
		:country, :saleability, :is_ebook, :list_price_amount, :list_price_currency,
		:retail_price_amount, :retail_price_currency, :buy_link, :year
	)
	ON CONFLICT (book_id) DO UPDATE SET
		book_title = EXCLUDED.book_title`

// A failed statement aborts a Postgres transaction, so every record runs
// inside its own savepoint.
const (
	savepointSQL         = "SAVEPOINT book_upsert"
	releaseSavepointSQL  = "RELEASE SAVEPOINT book_upsert"
	rollbackSavepointSQL = "ROLLBACK TO SAVEPOINT book_upsert"
)

type PostgresRepo struct {
	db      *sqlx.DB
	timeout time.Duration
	log     logger.Logger
}

func NewPostgresRepo(db *sqlx.DB, timeout time.Duration, log logger.Logger) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout, log: log}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// UpsertBatch writes records in one transaction. A record whose insert fails
// is skipped with a Warning; the rest of the batch still commits. On a key
// conflict only book_title is updated.
func (r *PostgresRepo) UpsertBatch(ctx context.Context, records []Record) (BatchResult, error) {
	var res BatchResult
	if len(records) == 0 {
		return res, nil
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTxx(timeoutCtx, nil)
	if err != nil {
		return res, fmt.Errorf("begin upsert batch: %w", err)
	}
	defer tx.Rollback()

	for i := range records {
		rec := records[i]
		if err := r.upsertOne(timeoutCtx, tx, rec); err != nil {
			w := Warning{BookID: rec.BookID, Title: rec.TitleOrEmpty(), Err: err}
			res.Warnings = append(res.Warnings, w)
			r.log.Warn("book skipped",
				logger.String("book_id", rec.BookID),
				logger.String("title", w.Title),
				logger.Error(err),
			)
			continue
		}
		res.Inserted++
	}

	if err := tx.Commit(); err != nil {
		return BatchResult{Warnings: res.Warnings}, fmt.Errorf("commit upsert batch: %w", err)
	}
	return res, nil
}

func (r *PostgresRepo) upsertOne(ctx context.Context, tx *sqlx.Tx, rec Record) error {
	if _, err := tx.ExecContext(ctx, savepointSQL); err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}
	if _, err := tx.NamedExecContext(ctx, upsertSQL, rec); err != nil {
		if _, rbErr := tx.ExecContext(ctx, rollbackSavepointSQL); rbErr != nil {
			return fmt.Errorf("upsert book: %w (rollback to savepoint: %v)", err, rbErr)
		}
		return fmt.Errorf("upsert book: %w", err)
	}
	if _, err := tx.ExecContext(ctx, releaseSavepointSQL); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Count(ctx context.Context) (int, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int
	err := r.db.GetContext(timeoutCtx, &count, "SELECT COUNT(*) FROM api")
	return count, err
}
