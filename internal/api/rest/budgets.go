package rest

import (
	"net/http"

	"github.com/youridegraef/qash-backend-sub000/internal/api"
	"github.com/youridegraef/qash-backend-sub000/internal/middleware"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
)

type budgetRequest struct {
	StartDate  Date    `json:"startDate"`
	EndDate    Date    `json:"endDate"`
	Target     float64 `json:"target"`
	CategoryID int     `json:"categoryId"`
}

func (h *Handler) listBudgets(w http.ResponseWriter, r *http.Request) {
	page, pageSize, paged, ok := pageParams(w, r)
	if !ok {
		return
	}
	userID := middleware.GetUserID(r.Context())

	var (
		budgets []service.BudgetDTO
		err     error
	)
	if paged {
		budgets, err = h.svc.Budgets.GetByUserIDPaged(r.Context(), userID, page, pageSize)
	} else {
		budgets, err = h.svc.Budgets.GetByUserID(r.Context(), userID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, budgets)
}

func (h *Handler) getBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b, ok := owned(w, r, middleware.GetUserID(r.Context()), id, service.EntityBudget, h.svc.Budgets.GetByID, api.BudgetOwner)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) getBudgetByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(w, r, "categoryId")
	if !ok {
		return
	}
	if _, ok := owned(w, r, middleware.GetUserID(r.Context()), categoryID, service.EntityCategory, h.svc.Categories.GetByID, api.CategoryOwner); !ok {
		return
	}
	b, err := h.svc.Budgets.GetByCategoryID(r.Context(), categoryID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) createBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if !decodeJSON(w, r, &req) || !requireDate(w, "startDate", req.StartDate) || !requireDate(w, "endDate", req.EndDate) {
		return
	}
	if !h.ownsReferences(w, r, middleware.GetUserID(r.Context()), req.CategoryID, nil) {
		return
	}
	b, err := h.svc.Budgets.Add(r.Context(), req.StartDate.Time, req.EndDate.Time, req.Target, req.CategoryID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) updateBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(r.Context())
	if _, ok := owned(w, r, userID, id, service.EntityBudget, h.svc.Budgets.GetByID, api.BudgetOwner); !ok {
		return
	}
	var req budgetRequest
	if !decodeJSON(w, r, &req) || !requireDate(w, "startDate", req.StartDate) || !requireDate(w, "endDate", req.EndDate) {
		return
	}
	if !h.ownsReferences(w, r, userID, req.CategoryID, nil) {
		return
	}
	ok = h.svc.Budgets.Edit(r.Context(), id, req.StartDate.Time, req.EndDate.Time, req.Target, req.CategoryID)
	writeOutcome(w, ok, service.EntityBudget, id)
}

func (h *Handler) deleteBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, ok := owned(w, r, middleware.GetUserID(r.Context()), id, service.EntityBudget, h.svc.Budgets.GetByID, api.BudgetOwner); !ok {
		return
	}
	writeOutcome(w, h.svc.Budgets.Delete(r.Context(), id), service.EntityBudget, id)
}
