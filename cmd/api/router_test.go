package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookscape/internal/ingest"
	"bookscape/internal/logger"
	"bookscape/internal/report"
	"bookscape/internal/testutil"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubRunner struct{ res *ingest.Result }

func (s stubRunner) Run(_ context.Context, req ingest.Request) (*ingest.Result, error) {
	if req.SearchTerm == "" {
		return nil, &ingest.ValidationError{Fields: []ingest.FieldError{{Field: "search_term", Message: "search_term is required"}}}
	}
	return s.res, nil
}

func newTestRouter(t *testing.T, db Pinger) (http.Handler, *report.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := report.NewMockRepository(ctrl)
	return newRouter(routerDeps{
		log:     logger.NewNop(),
		db:      db,
		books:   ingest.NewHTTPHandler(stubRunner{res: &ingest.Result{RunID: "r", SearchTerm: "fantasy"}}, "", 100),
		reports: report.NewHTTPHandler(report.NewService(repo, logger.NewNop())),
	}), repo
}

func TestRouter_Health(t *testing.T) {
	h, _ := newTestRouter(t, stubPinger{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ReadyzDatabaseDown(t *testing.T) {
	h, _ := newTestRouter(t, stubPinger{err: errors.New("connection refused")})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_Metrics(t *testing.T) {
	h, _ := newTestRouter(t, stubPinger{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_V1Routes(t *testing.T) {
	h, repo := newTestRouter(t, stubPinger{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, testutil.NewRequest(http.MethodPost, "/v1/books/fetch", map[string]any{"search_term": "fantasy"}))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, testutil.NewRequest(http.MethodPost, "/v1/books/fetch", map[string]any{"search_term": ""}))
	resp := testutil.RecordHTTPResponse(w)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "VALIDATION_ERROR", resp.ErrorCode())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/reports", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	repo.EXPECT().Query(gomock.Any(), gomock.Any()).Return(report.Result{Columns: []string{"year", "avg_price"}, Rows: [][]any{}}, nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/reports/priciest-year", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/reports/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	h, _ := newTestRouter(t, stubPinger{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/books/fetch", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
