// Package query turns the generic list request accepted by every listing
// endpoint into a safe, parameterised store query and computes the pagination
// and grouping metadata returned next to the rows.
package query

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"storefront-be/internal/apperr"
)

// ListRequest is the normalized form of {filter, sort, page, limit, status}.
type ListRequest struct {
	Filter    map[string]any
	SortBy    string
	SortOrder string
	Page      int
	// Limit is zero when the caller asked for every row.
	Limit int
	// Status is the explicit top-level status, nil when absent.
	Status any
	// StatusCleared marks an explicit null or blank status, which lifts the
	// entity's default status filter.
	StatusCleared bool
}

func (r ListRequest) Window() Page {
	return Page{Number: r.Page, Limit: r.Limit}
}

// StatusOr returns the explicit status when it is a usable string, else
// filter[key].
func (r ListRequest) StatusOr(key string) (string, bool) {
	if s, ok := String(r.Status); ok {
		return s, true
	}
	return String(r.Filter[key])
}

// ParseListRequest decodes a list body. Missing or malformed fields fall back
// to their defaults; only a body that is not a JSON object is rejected.
func ParseListRequest(body []byte) (ListRequest, error) {
	req := ListRequest{Filter: map[string]any{}, Page: 1}

	if len(bytes.TrimSpace(body)) == 0 {
		return req, nil
	}

	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return req, apperr.Validation("request body must be a JSON object")
	}

	if f, ok := raw["filter"].(map[string]any); ok {
		req.Filter = f
	}

	if s, ok := raw["sort"].(map[string]any); ok {
		req.SortBy, _ = s["sortBy"].(string)
		req.SortOrder, _ = s["sortOrder"].(string)
	}

	if n, ok := Int(raw["page"]); ok && n >= 1 {
		req.Page = n
	}

	if n, ok := Int(raw["limit"]); ok && n > 0 {
		req.Limit = n
	}

	if v, ok := raw["status"]; ok {
		if isBlank(v) {
			req.StatusCleared = true
		} else {
			req.Status = v
		}
	}

	return req, nil
}

// Float coerces JSON numbers and numeric strings. NaN and infinities are
// reported as absent.
func Float(v any) (float64, bool) {
	var f float64
	var err error

	switch x := v.(type) {
	case json.Number:
		f, err = x.Float64()
	case float64:
		f = x
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		return 0, false
	}

	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int coerces like Float and truncates toward zero.
func Int(v any) (int, bool) {
	f, ok := Float(v)
	if !ok || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

func String(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// Strings keeps the non-empty string members of a JSON array.
func Strings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := String(item); ok {
			out = append(out, s)
		}
	}
	return out
}

func Bool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		return b, err == nil
	}
	return false, false
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
