package pages

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/youridegraef/qash-backend-sub000/internal/api"
	"github.com/youridegraef/qash-backend-sub000/internal/middleware"
	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
)

type dashboardView struct {
	layout
	UserName     string
	Today        string
	Summary      service.SummaryDTO
	Transactions []service.TransactionDTO
	Categories   []service.CategoryDTO
	Tags         []service.TagDTO
}

type budgetsView struct {
	layout
	Budgets    []service.BudgetDTO
	Categories []service.CategoryDTO
}

type goalsView struct {
	layout
	Goals []service.SavingGoalDTO
}

// orEmpty turns the NotFound of an empty by-user list into an empty page
// section.
func orEmpty[T any](items []T, err error) ([]T, error) {
	if errors.Is(err, service.ErrNotFound) {
		return nil, nil
	}
	return items, err
}

func (h *Handler) loadDashboard(ctx context.Context, userID int) (dashboardView, error) {
	view := dashboardView{
		layout: layout{Signed: true},
		Today:  time.Now().Format(models.DateLayout),
	}
	user, err := h.svc.Users.GetByID(ctx, userID)
	if err != nil {
		return view, err
	}
	view.UserName = user.Name

	summary, err := h.svc.Transactions.GetSummary(ctx, userID)
	if err != nil {
		return view, err
	}
	view.Summary = *summary

	if view.Transactions, err = orEmpty(h.svc.Transactions.GetByUserID(ctx, userID)); err != nil {
		return view, err
	}
	if view.Categories, err = orEmpty(h.svc.Categories.GetByUserID(ctx, userID)); err != nil {
		return view, err
	}
	if view.Tags, err = orEmpty(h.svc.Tags.GetByUserID(ctx, userID)); err != nil {
		return view, err
	}
	return view, nil
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	h.showDashboard(w, r, http.StatusOK, "")
}

// showDashboard renders the dashboard, with message as the error banner
// when it is not empty.
func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request, status int, message string) {
	userID := middleware.GetUserID(r.Context())
	view, err := h.loadDashboard(r.Context(), userID)
	if errors.Is(err, service.ErrNotFound) && view.UserName == "" {
		// The account behind a still-valid token is gone.
		h.clearSession(w)
		redirect(w, r, loginPath)
		return
	}
	if err != nil {
		status, message = failure(r, err)
	}
	view.Error = message
	h.render(w, r, status, "dashboard.html", view)
}

func (h *Handler) addTransaction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.showDashboard(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}
	userID := middleware.GetUserID(r.Context())

	amount, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("amount")), 64)
	if err != nil {
		h.showDashboard(w, r, http.StatusBadRequest, "Amount must be a number")
		return
	}
	date, err := models.ParseDay(strings.TrimSpace(r.FormValue("date")))
	if err != nil {
		h.showDashboard(w, r, http.StatusBadRequest, "Date must be a valid date")
		return
	}
	categoryID, err := strconv.Atoi(r.FormValue("categoryId"))
	if err != nil {
		h.showDashboard(w, r, http.StatusBadRequest, "Pick a category")
		return
	}
	var tagIDs []int
	for _, v := range r.Form["tagIds"] {
		id, err := strconv.Atoi(v)
		if err != nil {
			h.showDashboard(w, r, http.StatusBadRequest, "Invalid tag")
			return
		}
		tagIDs = append(tagIDs, id)
	}

	if err := api.CheckReferences(r.Context(), h.svc, userID, categoryID, tagIDs); err != nil {
		status, msg := failure(r, err)
		h.showDashboard(w, r, status, msg)
		return
	}
	if _, err := h.svc.Transactions.Add(r.Context(), r.FormValue("description"), amount, date, userID, categoryID, tagIDs); err != nil {
		status, msg := failure(r, err)
		h.showDashboard(w, r, status, msg)
		return
	}
	redirect(w, r, "/")
}

func (h *Handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.showDashboard(w, r, http.StatusBadRequest, "Invalid transaction id")
		return
	}
	_, err = api.Owned(r.Context(), middleware.GetUserID(r.Context()), id, service.EntityTransaction,
		h.svc.Transactions.GetByID, api.TransactionOwner)
	if err != nil {
		status, msg := failure(r, err)
		h.showDashboard(w, r, status, msg)
		return
	}
	if !h.svc.Transactions.Delete(r.Context(), id) {
		h.showDashboard(w, r, http.StatusInternalServerError, "The transaction could not be deleted")
		return
	}
	redirect(w, r, "/")
}

func (h *Handler) budgets(w http.ResponseWriter, r *http.Request) {
	h.showBudgets(w, r, http.StatusOK, "")
}

func (h *Handler) showBudgets(w http.ResponseWriter, r *http.Request, status int, message string) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	view := budgetsView{layout: layout{Signed: true}}

	var err error
	if view.Budgets, err = orEmpty(h.svc.Budgets.GetByUserID(ctx, userID)); err == nil {
		view.Categories, err = orEmpty(h.svc.Categories.GetByUserID(ctx, userID))
	}
	if err != nil {
		status, message = failure(r, err)
	}
	view.Error = message
	h.render(w, r, status, "budgets.html", view)
}

func (h *Handler) addBudget(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.showBudgets(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}
	categoryID, err := strconv.Atoi(r.FormValue("categoryId"))
	if err != nil {
		h.showBudgets(w, r, http.StatusBadRequest, "Pick a category")
		return
	}
	start, errStart := models.ParseDay(r.FormValue("startDate"))
	end, errEnd := models.ParseDay(r.FormValue("endDate"))
	if errStart != nil || errEnd != nil {
		h.showBudgets(w, r, http.StatusBadRequest, "Start and end must be valid dates")
		return
	}
	target, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("target")), 64)
	if err != nil {
		h.showBudgets(w, r, http.StatusBadRequest, "Target must be a number")
		return
	}

	if err := api.CheckReferences(r.Context(), h.svc, middleware.GetUserID(r.Context()), categoryID, nil); err != nil {
		status, msg := failure(r, err)
		h.showBudgets(w, r, status, msg)
		return
	}
	if _, err := h.svc.Budgets.Add(r.Context(), start, end, target, categoryID); err != nil {
		status, msg := failure(r, err)
		h.showBudgets(w, r, status, msg)
		return
	}
	redirect(w, r, "/budgets")
}

func (h *Handler) goals(w http.ResponseWriter, r *http.Request) {
	h.showGoals(w, r, http.StatusOK, "")
}

func (h *Handler) showGoals(w http.ResponseWriter, r *http.Request, status int, message string) {
	view := goalsView{layout: layout{Signed: true}}
	goals, err := orEmpty(h.svc.SavingGoals.GetByUserID(r.Context(), middleware.GetUserID(r.Context())))
	if err != nil {
		status, message = failure(r, err)
	}
	view.Goals = goals
	view.Error = message
	h.render(w, r, status, "goals.html", view)
}

func (h *Handler) addGoal(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.showGoals(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}
	target, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("target")), 64)
	if err != nil {
		h.showGoals(w, r, http.StatusBadRequest, "Target must be a number")
		return
	}
	deadline, err := models.ParseDay(r.FormValue("deadline"))
	if err != nil {
		h.showGoals(w, r, http.StatusBadRequest, "Deadline must be a valid date")
		return
	}
	if _, err := h.svc.SavingGoals.Add(r.Context(), r.FormValue("name"), target, deadline, middleware.GetUserID(r.Context())); err != nil {
		status, msg := failure(r, err)
		h.showGoals(w, r, status, msg)
		return
	}
	redirect(w, r, "/goals")
}
