package report

import (
	"errors"
	"net/http"

	"bookscape/internal/export"
	"bookscape/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type definitionDTO struct {
	Name    Name   `json:"name"`
	Number  int    `json:"number"`
	Label   string `json:"label"`
	Display string `json:"display"`
}

// List handles GET /v1/reports
// @Summary List available reports
// @Tags reports
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/reports [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	defs := h.svc.List()
	out := make([]definitionDTO, len(defs))
	for i, d := range defs {
		out[i] = definitionDTO{Name: d.Name, Number: d.Number, Label: d.Label, Display: d.Display()}
	}
	httpx.JSONSuccess(w, r, out, map[string]any{"total": len(out)})
}

// Run handles GET /v1/reports/{name}
// @Summary Run one report
// @Tags reports
// @Produce json,text/csv
// @Param name path string true "Report name or number"
// @Param format query string false "csv or xlsx to download the result"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /v1/reports/{name} [get]
func (h *HTTPHandler) Run(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "report name is required", nil)
		return
	}
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	res, err := h.svc.Run(r.Context(), name)
	if err != nil {
		if errors.Is(err, ErrUnknownReport) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "REPORT_FAILED", err.Error(), nil)
		return
	}

	if format == export.FormatJSON {
		httpx.JSONSuccess(w, r, res, map[string]any{"rows": len(res.Rows)})
		return
	}
	body, err := export.Bytes(format, export.ReportTable(res.Columns, res.Rows))
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "EXPORT_FAILED", err.Error(), nil)
		return
	}
	httpx.Attachment(w, format.Filename("report_"+name), format.ContentType(), body)
}
