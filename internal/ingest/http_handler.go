package ingest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"bookscape/internal/book"
	"bookscape/internal/export"
	"bookscape/internal/httpx"
)

// Runner executes one fetch-and-insert action. *Service implements it.
type Runner interface {
	Run(ctx context.Context, req Request) (*Result, error)
}

type HTTPHandler struct {
	svc          Runner
	secret       string
	previewLimit int
}

func NewHTTPHandler(svc Runner, secret string, previewLimit int) *HTTPHandler {
	return &HTTPHandler{svc: svc, secret: secret, previewLimit: previewLimit}
}

type warningDTO struct {
	BookID string `json:"book_id"`
	Title  string `json:"title"`
	Error  string `json:"error"`
}

type resultDTO struct {
	RunID      string        `json:"run_id"`
	SearchTerm string        `json:"search_term"`
	Fetched    int           `json:"fetched"`
	Inserted   int           `json:"inserted"`
	Partial    bool          `json:"partial"`
	Warnings   []warningDTO  `json:"warnings"`
	Preview    []book.Record `json:"preview"`
}

func toDTO(res *Result, previewLimit int) resultDTO {
	dto := resultDTO{
		RunID:      res.RunID,
		SearchTerm: res.SearchTerm,
		Fetched:    res.Fetched,
		Inserted:   res.Inserted,
		Partial:    res.Partial,
		Warnings:   make([]warningDTO, 0, len(res.Warnings)),
		Preview:    res.Preview(previewLimit),
	}
	for _, w := range res.Warnings {
		msg := ""
		if w.Err != nil {
			msg = w.Err.Error()
		}
		dto.Warnings = append(dto.Warnings, warningDTO{BookID: w.BookID, Title: w.Title, Error: msg})
	}
	if dto.Preview == nil {
		dto.Preview = []book.Record{}
	}
	return dto
}

// Fetch handles POST /v1/books/fetch
// @Summary Fetch and store books for a search term
// @Tags books
// @Accept json
// @Produce json,text/csv
// @Param X-Internal-Secret header string false "Internal secret"
// @Param format query string false "csv or xlsx to download the fetched batch"
// @Header 200 {string} X-Storage-Error "set when the batch was fetched but not stored"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /v1/books/fetch [post]
func (h *HTTPHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" && r.Header.Get("X-Internal-Secret") != h.secret {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid internal secret", nil)
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), []httpx.ErrorDetail{{Field: "format", Message: "format must be csv or xlsx"}})
		return
	}

	var req Request
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}

	res, err := h.svc.Run(r.Context(), req)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			details := make([]httpx.ErrorDetail, len(verr.Fields))
			for i, f := range verr.Fields {
				details[i] = httpx.ErrorDetail{Field: f.Field, Message: f.Message}
			}
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", SearchTermPrompt, details)
			return
		}
		// The fetched batch is still downloadable when only storage failed.
		if res != nil && format != export.FormatJSON {
			w.Header().Set("X-Storage-Error", err.Error())
			h.writeExport(w, r, format, res)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "STORAGE_ERROR", err.Error(), nil)
		return
	}

	if format == export.FormatJSON {
		meta := map[string]any{"preview_limit": h.previewLimit}
		httpx.JSONSuccess(w, r, toDTO(res, h.previewLimit), meta)
		return
	}
	h.writeExport(w, r, format, res)
}

func (h *HTTPHandler) writeExport(w http.ResponseWriter, r *http.Request, format export.Format, res *Result) {
	body, err := export.Bytes(format, export.BooksTable(res.Records))
	if err != nil {
		w.Header().Del("X-Storage-Error")
		httpx.JSONError(w, r, http.StatusInternalServerError, "EXPORT_FAILED", err.Error(), nil)
		return
	}
	w.Header().Set("X-Books-Fetched", strconv.Itoa(res.Fetched))
	w.Header().Set("X-Books-Inserted", strconv.Itoa(res.Inserted))
	httpx.Attachment(w, format.Filename("books_"+res.SearchTerm), format.ContentType(), body)
}
