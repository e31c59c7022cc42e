package rest

import (
	"net/http"

	"storefront-be/internal/response"
)

func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/{$}", h.Index)
	mux.HandleFunc("GET /health", h.Health)

	mux.HandleFunc("POST /api/order/createOrder", h.CreateOrder)
	mux.HandleFunc("POST /api/order/getOrders", h.GetOrders)
	mux.HandleFunc("GET /api/order/getOrderById", h.GetOrderByID)
	mux.HandleFunc("GET /api/order/getOrderById/{id}", h.GetOrderByID)
	mux.HandleFunc("POST /api/order/deleteOrders", h.DeleteOrders)
	mux.HandleFunc("PUT /api/order/updateOrderStatus/{id}", h.UpdateOrderStatus)

	mux.HandleFunc("POST /api/product/createProduct", h.CreateProduct)
	mux.HandleFunc("POST /api/product/getProducts", h.GetProducts)
	mux.HandleFunc("GET /api/product/getProductById", h.GetProductByID)
	mux.HandleFunc("GET /api/product/getProductById/{id}", h.GetProductByID)
	mux.HandleFunc("POST /api/product/deleteProducts", h.DeleteProducts)

	mux.HandleFunc("POST /api/user/getUsers", h.GetUsers)
	mux.HandleFunc("GET /api/user/getUserById", h.GetUserByID)
	mux.HandleFunc("GET /api/user/getUserById/{id}", h.GetUserByID)
	mux.HandleFunc("POST /api/user/deleteUsers", h.DeleteUsers)

	return mux
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"hello": "Welcome to the storefront API"})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		if err := h.DB.PingContext(r.Context()); err != nil {
			response.Fail(w, http.StatusServiceUnavailable, "Database unreachable", err)
			return
		}
	}
	data := map[string]any{"database": "up"}
	if h.MirrorStats != nil {
		data["paymentMirror"] = h.MirrorStats.Snapshot()
	}
	response.OK(w, "OK", data)
}
