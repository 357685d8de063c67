package ingest

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"bookscape/internal/book"
)

// PartialThreshold is the fetched count below which a run is flagged partial.
const PartialThreshold = 50

// SearchTermPrompt is shown to the user when a request fails validation.
const SearchTermPrompt = "Please enter a valid search term."

// ErrInvalidRequest is matched by errors.Is for every ValidationError.
var ErrInvalidRequest = errors.New("invalid fetch request")

// Request is one fetch-and-insert action.
type Request struct {
	SearchTerm string `json:"search_term" validate:"required,max=256"`
	MaxResults int    `json:"max_results" validate:"gte=0,lte=1000"`
}

// Result summarizes a run.
type Result struct {
	RunID      string
	SearchTerm string
	Fetched    int
	Inserted   int
	Partial    bool
	Warnings   []book.Warning
	Records    []book.Record
}

// Preview returns at most n records from the batch.
func (r *Result) Preview(n int) []book.Record {
	if n < 0 || n >= len(r.Records) {
		return r.Records
	}
	return r.Records[:n]
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned before any network or storage activity.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return fmt.Sprintf("%v: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks the request shape. A blank search term counts as missing.
func (r Request) Validate() error {
	r.SearchTerm = strings.TrimSpace(r.SearchTerm)
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		field := fe.Field()
		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		case "gte", "lte":
			message = fmt.Sprintf("%s must be between 0 and 1000", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}
		out.Fields = append(out.Fields, FieldError{Field: field, Message: message})
	}
	return out
}
