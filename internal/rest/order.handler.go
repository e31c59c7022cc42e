package rest

import (
	"net/http"

	"storefront-be/internal/order"
	"storefront-be/internal/response"
)

// --- MUTATIONS ---

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var input order.CreateOrderInput
	if err := decodeJSON(r, &input); err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error creating order")
		return
	}

	o, err := h.OrderSvc.CreateOrder(r.Context(), input)
	if err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error creating order")
		return
	}

	response.Created(w, "Order created successfully", order.ToCreated(o))
}

func (h *Handler) DeleteOrders(w http.ResponseWriter, r *http.Request) {
	ids, err := readIDs(r, "orderIds")
	if err != nil {
		response.Error(w, r, err, http.StatusInternalServerError, "Error deleting orders")
		return
	}

	res, err := h.OrderSvc.DeleteOrders(r.Context(), ids)
	if err != nil {
		response.Error(w, r, err, http.StatusInternalServerError, "Error deleting orders")
		return
	}

	response.OK(w, res.Message(), res)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error updating order status")
		return
	}

	var input order.UpdateStatusInput
	if err := decodeJSON(r, &input); err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error updating order status")
		return
	}

	change, err := h.OrderSvc.UpdateOrderStatus(r.Context(), id, input)
	if err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error updating order status")
		return
	}

	response.OK(w, "Order status updated successfully", change)
}

// --- QUERIES ---

func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	req, err := readListRequest(r)
	if err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error retrieving orders")
		return
	}

	res, err := h.OrderSvc.GetOrders(r.Context(), req)
	if err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error retrieving orders")
		return
	}

	response.JSON(w, http.StatusOK, response.List{
		Entity:     "Orders",
		Message:    "Orders retrieved successfully",
		Data:       order.ToViews(res.Orders),
		Matched:    res.Matched,
		Counts:     res.Counts,
		Applied:    res.Applied,
		Pagination: res.Pagination,
	})
}

func (h *Handler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error retrieving order")
		return
	}

	o, err := h.OrderSvc.GetOrderByID(r.Context(), id)
	if err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error retrieving order")
		return
	}

	response.OK(w, "Order retrieved successfully", order.ToView(o))
}
