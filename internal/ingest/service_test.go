package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookscape/internal/book"
	"bookscape/internal/logger"
	"bookscape/internal/platform/googlebooks"
	"bookscape/internal/testutil"
)

type mockVolumeFetcher struct {
	mock.Mock
}

func (m *mockVolumeFetcher) Fetch(ctx context.Context, searchTerm string, maxResults int) []googlebooks.Volume {
	args := m.Called(ctx, searchTerm, maxResults)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]googlebooks.Volume)
}

type mockBookRepo struct {
	mock.Mock
}

func (m *mockBookRepo) UpsertBatch(ctx context.Context, records []book.Record) (book.BatchResult, error) {
	args := m.Called(ctx, records)
	return args.Get(0).(book.BatchResult), args.Error(1)
}

func (m *mockBookRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newTestService(f *mockVolumeFetcher, repo *mockBookRepo) *Service {
	s := NewService(f, repo, Config{}, logger.NewNop())
	s.newRunID = func() string { return "run-1" }
	return s
}

func TestService_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches normalizes and stores", func(t *testing.T) {
		f := new(mockVolumeFetcher)
		repo := new(mockBookRepo)
		items := testutil.Volumes("fantasy", 0, 85)

		f.On("Fetch", ctx, "fantasy", DefaultMaxResults).Return(items).Once()
		repo.On("UpsertBatch", ctx, mock.MatchedBy(func(recs []book.Record) bool {
			return len(recs) == 85 && recs[0].SearchKey == "fantasy" && recs[0].Year == "2001"
		})).Return(book.BatchResult{Inserted: 85}, nil).Once()

		res, err := newTestService(f, repo).Run(ctx, Request{SearchTerm: "fantasy"})
		require.NoError(t, err)
		assert.Equal(t, "run-1", res.RunID)
		assert.Equal(t, 85, res.Fetched)
		assert.Equal(t, 85, res.Inserted)
		assert.False(t, res.Partial)
		assert.Len(t, res.Preview(10), 10)
		f.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("flags partial runs", func(t *testing.T) {
		f := new(mockVolumeFetcher)
		repo := new(mockBookRepo)
		f.On("Fetch", ctx, "rare", 200).Return(testutil.Volumes("rare", 0, 12)).Once()
		repo.On("UpsertBatch", ctx, mock.Anything).Return(book.BatchResult{Inserted: 12}, nil).Once()

		res, err := newTestService(f, repo).Run(ctx, Request{SearchTerm: "  rare ", MaxResults: 200})
		require.NoError(t, err)
		assert.True(t, res.Partial)
		assert.Equal(t, "rare", res.SearchTerm)
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		f := new(mockVolumeFetcher)
		repo := new(mockBookRepo)
		f.On("Fetch", ctx, "zzzz", DefaultMaxResults).Return(nil).Once()
		repo.On("UpsertBatch", ctx, mock.Anything).Return(book.BatchResult{}, nil).Once()

		res, err := newTestService(f, repo).Run(ctx, Request{SearchTerm: "zzzz"})
		require.NoError(t, err)
		assert.Zero(t, res.Fetched)
		assert.True(t, res.Partial)
	})

	t.Run("skipped records surface as warnings", func(t *testing.T) {
		f := new(mockVolumeFetcher)
		repo := new(mockBookRepo)
		warn := book.Warning{BookID: "", Title: "Broken Book", Err: errors.New("check constraint")}
		f.On("Fetch", ctx, "poetry", DefaultMaxResults).Return(testutil.Volumes("p", 0, 10)).Once()
		repo.On("UpsertBatch", ctx, mock.Anything).Return(book.BatchResult{Inserted: 9, Warnings: []book.Warning{warn}}, nil).Once()

		res, err := newTestService(f, repo).Run(ctx, Request{SearchTerm: "poetry"})
		require.NoError(t, err)
		assert.Equal(t, 9, res.Inserted)
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, "Broken Book", res.Warnings[0].Title)
	})

	t.Run("storage failure keeps fetched records", func(t *testing.T) {
		f := new(mockVolumeFetcher)
		repo := new(mockBookRepo)
		f.On("Fetch", ctx, "history", DefaultMaxResults).Return(testutil.Volumes("h", 0, 3)).Once()
		repo.On("UpsertBatch", ctx, mock.Anything).Return(book.BatchResult{}, errors.New("connection refused")).Once()

		res, err := newTestService(f, repo).Run(ctx, Request{SearchTerm: "history"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "persist 3 books")
		require.NotNil(t, res)
		assert.Len(t, res.Records, 3)
	})
}

func TestService_Run_ValidationHappensFirst(t *testing.T) {
	cases := []Request{
		{SearchTerm: ""},
		{SearchTerm: "   "},
		{SearchTerm: "fantasy", MaxResults: 5000},
		{SearchTerm: "fantasy", MaxResults: -1},
	}
	for _, req := range cases {
		f := new(mockVolumeFetcher)
		repo := new(mockBookRepo)

		res, err := newTestService(f, repo).Run(context.Background(), req)

		assert.Nil(t, res)
		assert.ErrorIs(t, err, ErrInvalidRequest)
		f.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "UpsertBatch", mock.Anything, mock.Anything)
	}
}

func TestRequest_Validate_Messages(t *testing.T) {
	err := Request{}.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "search_term", verr.Fields[0].Field)
	assert.Equal(t, "search_term is required", verr.Fields[0].Message)
}

func TestResult_Preview(t *testing.T) {
	res := &Result{Records: make([]book.Record, 5)}
	assert.Len(t, res.Preview(3), 3)
	assert.Len(t, res.Preview(10), 5)
	assert.Len(t, res.Preview(-1), 5)
}
