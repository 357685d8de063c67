package report

import (
	"context"
	"errors"
)

var ErrUnknownReport = errors.New("unknown report")

// Result is a tabular report outcome. Column names come from the executed
// statement.
type Result struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func placeholderResult() Result {
	return Result{Columns: []string{"note"}, Rows: [][]any{{PlaceholderNote}}}
}

//go:generate mockgen -source=report.go -destination=mock_repository.go -package=report

// Repository executes a literal read-only query.
type Repository interface {
	Query(ctx context.Context, query string) (Result, error)
}
