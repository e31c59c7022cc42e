// Package rest exposes the order, product and user services over JSON/HTTP.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"storefront-be/internal/apperr"
	"storefront-be/internal/metrics"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/query"
	"storefront-be/internal/user"
	"storefront-be/internal/utils"
)

// Pinger reports store reachability for the health check.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	OrderSvc   order.Service
	ProductSvc product.Service
	UserSvc    user.Service
	DB         Pinger
	// MirrorStats, when set, is reported by the health check.
	MirrorStats *metrics.Mirror
}

var errBadBody = apperr.Validation("request body must be valid JSON")

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperr.TooLarge(fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		}
		return nil, errBadBody
	}
	return body, nil
}

func readListRequest(r *http.Request) (query.ListRequest, error) {
	body, err := readBody(r)
	if err != nil {
		return query.ListRequest{}, err
	}
	return query.ParseListRequest(body)
}

// decodeJSON fills v from the request body. Unknown fields are ignored.
func decodeJSON(r *http.Request, v any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errBadBody
	}
	return nil
}

// readIDs reads the id array named field from a bulk delete body.
func readIDs(r *http.Request, field string) ([]int, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}

	raw := map[string]any{}
	if len(bytes.TrimSpace(body)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, errBadBody
		}
	}

	return utils.ParseIDList(raw[field], field)
}

// pathID reads the record id from the {id} segment, or ?id= when the
// segment is absent.
func pathID(r *http.Request) (int, error) {
	id := r.PathValue("id")
	if id == "" {
		id = r.URL.Query().Get("id")
	}
	return utils.ParseID(id)
}
