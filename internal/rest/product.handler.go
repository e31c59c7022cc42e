package rest

import (
	"net/http"

	"storefront-be/internal/product"
	"storefront-be/internal/response"
)

// --- MUTATIONS ---

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input product.CreateProductInput
	if err := decodeJSON(r, &input); err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error creating product")
		return
	}

	res, err := h.ProductSvc.CreateProduct(r.Context(), input)
	if err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error creating product")
		return
	}

	response.Created(w, "Product created successfully", res)
}

func (h *Handler) DeleteProducts(w http.ResponseWriter, r *http.Request) {
	ids, err := readIDs(r, "productIds")
	if err != nil {
		response.Error(w, r, err, http.StatusInternalServerError, "Error deleting products")
		return
	}

	res, err := h.ProductSvc.DeleteProducts(r.Context(), ids)
	if err != nil {
		response.Error(w, r, err, http.StatusInternalServerError, "Error deleting products")
		return
	}

	response.OK(w, res.Message(), res)
}

// --- QUERIES ---

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	req, err := readListRequest(r)
	if err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error retrieving products")
		return
	}

	res, err := h.ProductSvc.GetProducts(r.Context(), req)
	if err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error retrieving products")
		return
	}

	response.JSON(w, http.StatusOK, response.List{
		Entity:     "Products",
		Message:    "Products retrieved successfully",
		Data:       res.Products,
		Matched:    res.Matched,
		Counts:     res.Counts,
		Applied:    res.Applied,
		Pagination: res.Pagination,
	})
}

func (h *Handler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error retrieving product")
		return
	}

	p, err := h.ProductSvc.GetProductByID(r.Context(), id)
	if err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error retrieving product")
		return
	}

	response.OK(w, "Product retrieved successfully", p)
}
