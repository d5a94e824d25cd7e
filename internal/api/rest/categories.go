package rest

import (
	"net/http"

	"github.com/youridegraef/qash-backend-sub000/internal/api"
	"github.com/youridegraef/qash-backend-sub000/internal/middleware"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
)

type categoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type spendingsResponse struct {
	CategoryID int     `json:"categoryId"`
	Spendings  float64 `json:"spendings"`
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	page, pageSize, paged, ok := pageParams(w, r)
	if !ok {
		return
	}
	userID := middleware.GetUserID(r.Context())

	var (
		cats []service.CategoryDTO
		err  error
	)
	if paged {
		cats, err = h.svc.Categories.GetByUserIDPaged(r.Context(), userID, page, pageSize)
	} else {
		cats, err = h.svc.Categories.GetByUserID(r.Context(), userID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	c, ok := owned(w, r, middleware.GetUserID(r.Context()), id, service.EntityCategory, h.svc.Categories.GetByID, api.CategoryOwner)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.svc.Categories.Add(r.Context(), req.Name, req.Color, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(r.Context())
	if _, ok := owned(w, r, userID, id, service.EntityCategory, h.svc.Categories.GetByID, api.CategoryOwner); !ok {
		return
	}
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeOutcome(w, h.svc.Categories.Edit(r.Context(), id, req.Name, req.Color, userID), service.EntityCategory, id)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, ok := owned(w, r, middleware.GetUserID(r.Context()), id, service.EntityCategory, h.svc.Categories.GetByID, api.CategoryOwner); !ok {
		return
	}
	writeOutcome(w, h.svc.Categories.Delete(r.Context(), id), service.EntityCategory, id)
}

// getCategorySpendings sums the whole category, or the window given by
// ?start=&end= when either is present.
func (h *Handler) getCategorySpendings(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, ok := owned(w, r, middleware.GetUserID(r.Context()), id, service.EntityCategory, h.svc.Categories.GetByID, api.CategoryOwner); !ok {
		return
	}

	var (
		total float64
		err   error
	)
	q := r.URL.Query()
	if q.Get("start") == "" && q.Get("end") == "" {
		total, err = h.svc.Categories.CalculateSpendingsByCategory(r.Context(), id)
	} else {
		start, ok := queryDate(w, r, "start")
		if !ok {
			return
		}
		end, ok := queryDate(w, r, "end")
		if !ok {
			return
		}
		total, err = h.svc.Categories.CalculateSpendingsByCategoryAndDateRange(r.Context(), id, start, end)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, spendingsResponse{CategoryID: id, Spendings: total})
}
