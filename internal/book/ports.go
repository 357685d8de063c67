package book

import (
	"context"
)

// Repository defines the contract for book record storage.
type Repository interface {
	UpsertBatch(ctx context.Context, records []Record) (BatchResult, error)
	Count(ctx context.Context) (int, error)
}
