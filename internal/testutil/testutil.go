package testutil

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/goccy/go-json"

	"bookscape/internal/platform/googlebooks"
)

func Ptr[T any](v T) *T { return &v }

// Volumes builds n catalog items with ids prefix-<offset+i>.
func Volumes(prefix string, offset, n int) []googlebooks.Volume {
	out := make([]googlebooks.Volume, n)
	for i := range out {
		idx := offset + i
		out[i] = googlebooks.Volume{
			ID: fmt.Sprintf("%s-%d", prefix, idx),
			VolumeInfo: &googlebooks.VolumeInfo{
				Title:         Ptr(fmt.Sprintf("%s volume %d", prefix, idx)),
				Authors:       []string{"Author " + prefix},
				PublishedDate: Ptr("2001-01-01"),
			},
			SaleInfo: &googlebooks.SaleInfo{IsEbook: Ptr(idx%2 == 0)},
		}
	}
	return out
}

// VolumesPage wraps items in a catalog response body.
func VolumesPage(items []googlebooks.Volume) []byte {
	body, _ := json.Marshal(googlebooks.VolumesResponse{Kind: "books#volumes", TotalItems: len(items), Items: items})
	return body
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body any) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// NewRequestWithSecret adds the internal secret header.
func NewRequestWithSecret(method, path string, body any, secret string) *http.Request {
	r := NewRequest(method, path, body)
	if secret != "" {
		r.Header.Set("X-Internal-Secret", secret)
	}
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]any
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]any
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// Data returns the "data" object of a success envelope.
func (r RecordResponse) Data() map[string]any {
	data, _ := r.Body["data"].(map[string]any)
	return data
}

// ErrorCode returns error.code of an error envelope.
func (r RecordResponse) ErrorCode() string {
	e, _ := r.Body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}
