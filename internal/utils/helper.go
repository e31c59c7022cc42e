package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"storefront-be/internal/apperr"
)

func StrPtr(s string) *string {
	return &s
}

func IntPtr(i int) *int {
	return &i
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ParseID parses a positive integer record id.
func ParseID(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, apperr.Validation(fmt.Sprintf("invalid id %q", s))
	}
	return n, nil
}

// ParseIDList validates a JSON array of ids for a bulk operation. Members may
// be numbers or numeric strings. Duplicates are dropped, first occurrence wins.
func ParseIDList(v any, field string) ([]int, error) {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil, apperr.Validation(field + " is required and must be a non-empty array")
	}

	ids := make([]int, 0, len(items))
	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		id, ok := toID(item)
		if !ok {
			return nil, apperr.Validation("all " + field + " must be valid integer ids")
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids, nil
}

func toID(v any) (int, bool) {
	var f float64
	switch x := v.(type) {
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case float64:
		f = x
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		f = float64(n)
	default:
		return 0, false
	}

	if f < 1 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// Missing returns the requested ids absent from found, in request order.
func Missing(requested, found []int) []int {
	have := make(map[int]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}

	missing := []int{}
	for _, id := range requested {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
