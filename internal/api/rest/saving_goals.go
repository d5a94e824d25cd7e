package rest

import (
	"net/http"

	"github.com/youridegraef/qash-backend-sub000/internal/api"
	"github.com/youridegraef/qash-backend-sub000/internal/middleware"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
)

type savingGoalRequest struct {
	Name     string  `json:"name"`
	Target   float64 `json:"target"`
	Deadline Date    `json:"deadline"`
}

func (h *Handler) listSavingGoals(w http.ResponseWriter, r *http.Request) {
	page, pageSize, paged, ok := pageParams(w, r)
	if !ok {
		return
	}
	userID := middleware.GetUserID(r.Context())

	var (
		goals []service.SavingGoalDTO
		err   error
	)
	if paged {
		goals, err = h.svc.SavingGoals.GetByUserIDPaged(r.Context(), userID, page, pageSize)
	} else {
		goals, err = h.svc.SavingGoals.GetByUserID(r.Context(), userID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (h *Handler) getSavingGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	g, ok := owned(w, r, middleware.GetUserID(r.Context()), id, service.EntitySavingGoal, h.svc.SavingGoals.GetByID, api.SavingGoalOwner)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *Handler) createSavingGoal(w http.ResponseWriter, r *http.Request) {
	var req savingGoalRequest
	if !decodeJSON(w, r, &req) || !requireDate(w, "deadline", req.Deadline) {
		return
	}
	g, err := h.svc.SavingGoals.Add(r.Context(), req.Name, req.Target, req.Deadline.Time, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (h *Handler) updateSavingGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(r.Context())
	if _, ok := owned(w, r, userID, id, service.EntitySavingGoal, h.svc.SavingGoals.GetByID, api.SavingGoalOwner); !ok {
		return
	}
	var req savingGoalRequest
	if !decodeJSON(w, r, &req) || !requireDate(w, "deadline", req.Deadline) {
		return
	}
	ok = h.svc.SavingGoals.Edit(r.Context(), id, req.Name, req.Target, req.Deadline.Time, userID)
	writeOutcome(w, ok, service.EntitySavingGoal, id)
}

func (h *Handler) deleteSavingGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, ok := owned(w, r, middleware.GetUserID(r.Context()), id, service.EntitySavingGoal, h.svc.SavingGoals.GetByID, api.SavingGoalOwner); !ok {
		return
	}
	writeOutcome(w, h.svc.SavingGoals.Delete(r.Context(), id), service.EntitySavingGoal, id)
}
