package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-be/internal/metrics"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/query"
	"storefront-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, input order.CreateOrderInput) (*order.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrders(ctx context.Context, req query.ListRequest) (*order.ListResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ListResult), args.Error(1)
}

func (m *MockOrderService) GetOrderByID(ctx context.Context, id int) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) DeleteOrders(ctx context.Context, ids []int) (*order.DeleteResult, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.DeleteResult), args.Error(1)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, id int, input order.UpdateStatusInput) (*order.StatusChange, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.StatusChange), args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) CreateProduct(ctx context.Context, input product.CreateProductInput) (*product.CreateResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.CreateResult), args.Error(1)
}

func (m *MockProductService) GetProducts(ctx context.Context, req query.ListRequest) (*product.ListResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.ListResult), args.Error(1)
}

func (m *MockProductService) GetProductByID(ctx context.Context, id int) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) DeleteProducts(ctx context.Context, ids []int) (*product.DeleteResult, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.DeleteResult), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUsers(ctx context.Context, req query.ListRequest) (*user.ListResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.ListResult), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, id int) (*user.Detail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Detail), args.Error(1)
}

func (m *MockUserService) DeleteUsers(ctx context.Context, ids []int) (*user.DeleteResult, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.DeleteResult), args.Error(1)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

// --- Helpers ---

func serve(h *Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// --- Tests ---

func TestIndex(t *testing.T) {
	w := serve(&Handler{}, http.MethodGet, "/api/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w)["hello"], "Welcome")
}

func TestHealth(t *testing.T) {
	t.Run("Up", func(t *testing.T) {
		w := serve(&Handler{DB: stubPinger{}}, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decode(t, w)["success"])
	})

	t.Run("MirrorStats", func(t *testing.T) {
		stats := &metrics.Mirror{}
		stats.Enqueued.Add(3)
		stats.Failed.Inc()

		w := serve(&Handler{MirrorStats: stats}, http.MethodGet, "/health", "")

		data := decode(t, w)["data"].(map[string]any)
		mirror := data["paymentMirror"].(map[string]any)
		assert.Equal(t, float64(3), mirror["enqueued"])
		assert.Equal(t, float64(1), mirror["failed"])
	})

	t.Run("Down", func(t *testing.T) {
		w := serve(&Handler{DB: stubPinger{err: errors.New("connection refused")}}, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "connection refused", body["error"])
	})
}

func TestRoutes_MethodMismatch(t *testing.T) {
	w := serve(&Handler{}, http.MethodGet, "/api/order/getOrders", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestReadBody_TooLarge(t *testing.T) {
	svc := new(MockOrderService)
	h := &Handler{OrderSvc: svc}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/order/getOrders", strings.NewReader(`{"filter":{"minTotal":100}}`))
	req.Body = http.MaxBytesReader(w, req.Body, 8)

	h.Routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "request body exceeds 8 bytes", decode(t, w)["message"])
	svc.AssertNotCalled(t, "GetOrders", mock.Anything, mock.Anything)
}
