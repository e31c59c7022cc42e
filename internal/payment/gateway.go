package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

const createProductPath = "/api/create-stripe-product"

var ErrRejected = errors.New("payment provider rejected product")

type Gateway interface {
	// CreateProduct mirrors a product and returns the provider's product id.
	CreateProduct(ctx context.Context, p ProductPayload) (string, error)
}

type httpGateway struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPGateway(baseURL string) Gateway {
	if baseURL == "" {
		logger.L().Warn("payment API URL is empty")
	}

	return &httpGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (g *httpGateway) CreateProduct(ctx context.Context, p ProductPayload) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "gateway"),
		zap.String("method", "CreateProduct"),
		zap.String("product", p.Name),
	)

	body, err := json.Marshal(p)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+createProductPath, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Warn("payment API request failed", zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read payment API response: %w", err)
	}

	var out createProductResponse
	if err := json.Unmarshal(raw, &out); err != nil && resp.StatusCode == http.StatusOK {
		return "", fmt.Errorf("failed to decode payment API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !out.Success || out.StripeProductID == "" {
		log.Warn("payment API returned non-success",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", raw),
		)
		if out.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrRejected, out.Error)
		}
		return "", fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	return out.StripeProductID, nil
}
