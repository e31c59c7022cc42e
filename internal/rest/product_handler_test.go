package rest

import (
	"net/http"
	"testing"

	"storefront-be/internal/apperr"
	"storefront-be/internal/product"
	"storefront-be/internal/query"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandler_CreateProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockProductService)
		h := &Handler{ProductSvc: svc}

		svc.On("CreateProduct", mock.Anything, mock.MatchedBy(func(in product.CreateProductInput) bool {
			return in.Name == "Black truffle" &&
				in.Price.Decimal.Equal(decimal.RequireFromString("49.9")) &&
				assert.ObjectsAreEqual([]string{"fresh", "winter"}, in.Category) &&
				in.ObjectModelData != nil
		})).Return(&product.CreateResult{ID: 4, StripeIntegration: product.IntegrationPending}, nil)

		w := serve(h, http.MethodPost, "/api/product/createProduct", `{
			"name": "Black truffle",
			"description": "Tuber melanosporum",
			"price": 49.9,
			"type": "truffle",
			"category": ["fresh", "winter"],
			"objectModelData": "model.glb"
		}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Product created successfully", body["message"])
		data := body["data"].(map[string]any)
		assert.Equal(t, float64(4), data["id"])
		assert.Nil(t, data["stripeProductId"])
		assert.Equal(t, "pending", data["stripeIntegration"])
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		svc := new(MockProductService)
		h := &Handler{ProductSvc: svc}
		svc.On("CreateProduct", mock.Anything, mock.MatchedBy(func(in product.CreateProductInput) bool {
			return in.Status == "archived"
		})).Return(nil, apperr.Validation("invalid status. Allowed values: active, inactive"))

		w := serve(h, http.MethodPost, "/api/product/createProduct", `{"status":"archived"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid status. Allowed values: active, inactive", decode(t, w)["message"])
	})
}

func TestHandler_GetProducts(t *testing.T) {
	svc := new(MockProductService)
	h := &Handler{ProductSvc: svc}

	svc.On("GetProducts", mock.Anything, mock.MatchedBy(func(req query.ListRequest) bool {
		return req.Status == "inactive"
	})).Return(&product.ListResult{
		Products:   []*product.Product{{ID: 1, Name: "Summer truffle", Category: []string{"fresh"}}},
		Matched:    1,
		Counts:     product.Counts{TotalProducts: 3, TotalActiveProducts: 2, TotalInactiveProducts: 1},
		Applied:    query.Applied{Filter: map[string]any{}, Status: "inactive"},
		Pagination: query.NewPagination(query.Page{Number: 1}, 1),
	}, nil)

	w := serve(h, http.MethodPost, "/api/product/getProducts", `{"status":"inactive"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["totalMatchedProducts"])
	assert.Equal(t, "inactive", body["appliedFilters"].(map[string]any)["status"])
	assert.Equal(t, float64(1), body["counts"].(map[string]any)["totalInactiveProducts"])
}

func TestHandler_GetProductByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockProductService)
		h := &Handler{ProductSvc: svc}
		svc.On("GetProductByID", mock.Anything, 2).Return(&product.Product{ID: 2, Price: decimal.RequireFromString("12.50")}, nil)

		w := serve(h, http.MethodGet, "/api/product/getProductById/2", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 12.5, decode(t, w)["data"].(map[string]any)["price"])
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockProductService)
		h := &Handler{ProductSvc: svc}
		svc.On("GetProductByID", mock.Anything, 2).Return(nil, product.ErrProductNotFound)

		w := serve(h, http.MethodGet, "/api/product/getProductById?id=2", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_DeleteProducts(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockProductService)
		h := &Handler{ProductSvc: svc}
		svc.On("DeleteProducts", mock.Anything, []int{4}).Return(&product.DeleteResult{
			DeletedCount:    1,
			DeletedProducts: []product.Deleted{{ID: 4, Name: "Black truffle"}},
			NotFoundIDs:     []int{},
		}, nil)

		w := serve(h, http.MethodPost, "/api/product/deleteProducts", `{"productIds":["4"]}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1 product(s) deleted successfully", decode(t, w)["message"])
	})

	t.Run("WrongField", func(t *testing.T) {
		svc := new(MockProductService)
		h := &Handler{ProductSvc: svc}

		w := serve(h, http.MethodPost, "/api/product/deleteProducts", `{"orderIds":[4]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "productIds is required and must be a non-empty array", decode(t, w)["message"])
	})
}
