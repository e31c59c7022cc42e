// Package response writes the uniform {success, message, data} envelope.
package response

import (
	"encoding/json"
	"net/http"

	"storefront-be/internal/apperr"
	"storefront-be/internal/logger"
	"storefront-be/internal/query"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func init() {
	// Money is rendered as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
}

// List is the envelope of the listing endpoints. Entity names the
// totalMatched<Entity> key, e.g. "Orders".
type List struct {
	Entity     string
	Message    string
	Data       any
	Matched    int
	Counts     any
	Applied    query.Applied
	Pagination query.Pagination
}

func (l List) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"success":                 true,
		"message":                 l.Message,
		"data":                    l.Data,
		"totalMatched" + l.Entity: l.Matched,
		"counts":                  l.Counts,
		"appliedFilters":          l.Applied,
		"pagination":              l.Pagination,
	})
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func Fail(w http.ResponseWriter, status int, message string, err error) {
	env := Envelope{Message: message}
	if err != nil {
		env.Error = err.Error()
	}
	JSON(w, status, env)
}

// Error writes err as a failure envelope. Validation and not-found errors
// carry their own message; anything else is reported with fallback status
// and message, echoing the underlying error text.
func Error(w http.ResponseWriter, r *http.Request, err error, fallback int, message string) {
	switch {
	case apperr.IsValidation(err):
		Fail(w, http.StatusBadRequest, err.Error(), nil)
	case apperr.IsNotFound(err):
		Fail(w, http.StatusNotFound, err.Error(), nil)
	case apperr.IsTooLarge(err):
		Fail(w, http.StatusRequestEntityTooLarge, err.Error(), nil)
	default:
		logger.FromCtx(r.Context()).Error(message,
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		Fail(w, fallback, message, err)
	}
}
