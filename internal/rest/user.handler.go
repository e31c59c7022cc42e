package rest

import (
	"net/http"

	"storefront-be/internal/response"
)

func (h *Handler) DeleteUsers(w http.ResponseWriter, r *http.Request) {
	ids, err := readIDs(r, "userIds")
	if err != nil {
		response.Error(w, r, err, http.StatusInternalServerError, "Error deleting users")
		return
	}

	res, err := h.UserSvc.DeleteUsers(r.Context(), ids)
	if err != nil {
		response.Error(w, r, err, http.StatusInternalServerError, "Error deleting users")
		return
	}

	response.OK(w, res.Message(), res)
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	req, err := readListRequest(r)
	if err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error retrieving users")
		return
	}

	res, err := h.UserSvc.GetUsers(r.Context(), req)
	if err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error retrieving users")
		return
	}

	response.JSON(w, http.StatusOK, response.List{
		Entity:     "Users",
		Message:    "Users retrieved successfully",
		Data:       res.Users,
		Matched:    res.Matched,
		Counts:     res.Counts,
		Applied:    res.Applied,
		Pagination: res.Pagination,
	})
}

func (h *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error retrieving user")
		return
	}

	d, err := h.UserSvc.GetUserByID(r.Context(), id)
	if err != nil {
		response.Error(w, r, err, http.StatusBadRequest, "Error retrieving user")
		return
	}

	response.OK(w, "User retrieved successfully", d)
}
