// Package rest exposes the services as a JSON API under /api.
package rest

import (
	"github.com/go-chi/chi/v5"

	"github.com/youridegraef/qash-backend-sub000/internal/api"
	"github.com/youridegraef/qash-backend-sub000/internal/middleware"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
)

// Handler serves the REST routes.
type Handler struct {
	svc    *service.Services
	tokens api.Tokens
}

// NewRouter returns the REST routes, meant to be mounted at /api.
func NewRouter(svc *service.Services, tokens api.Tokens) chi.Router {
	h := &Handler{svc: svc, tokens: tokens}

	r := chi.NewRouter()
	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)

	// Protected routes
	r.With(middleware.RequireBearer(tokens.Manager)).Group(func(r chi.Router) {
		// User
		r.Get("/users/me", h.getMe)
		r.Put("/users/me", h.updateMe)
		r.Delete("/users/me", h.deleteMe)

		// Transactions
		r.Get("/transactions", h.listTransactions)
		r.Post("/transactions", h.createTransaction)
		r.Get("/transactions/summary", h.getSummary)
		r.Get("/transactions/{id}", h.getTransaction)
		r.Put("/transactions/{id}", h.updateTransaction)
		r.Delete("/transactions/{id}", h.deleteTransaction)

		// Categories
		r.Get("/categories", h.listCategories)
		r.Post("/categories", h.createCategory)
		r.Get("/categories/{id}", h.getCategory)
		r.Put("/categories/{id}", h.updateCategory)
		r.Delete("/categories/{id}", h.deleteCategory)
		r.Get("/categories/{id}/spendings", h.getCategorySpendings)

		// Tags
		r.Get("/tags", h.listTags)
		r.Post("/tags", h.createTag)
		r.Get("/tags/{id}", h.getTag)
		r.Put("/tags/{id}", h.updateTag)
		r.Delete("/tags/{id}", h.deleteTag)

		// Budgets
		r.Get("/budgets", h.listBudgets)
		r.Post("/budgets", h.createBudget)
		r.Get("/budgets/{id}", h.getBudget)
		r.Get("/budgets/category/{categoryId}", h.getBudgetByCategory)
		r.Put("/budgets/{id}", h.updateBudget)
		r.Delete("/budgets/{id}", h.deleteBudget)

		// Saving goals
		r.Get("/saving-goals", h.listSavingGoals)
		r.Post("/saving-goals", h.createSavingGoal)
		r.Get("/saving-goals/{id}", h.getSavingGoal)
		r.Put("/saving-goals/{id}", h.updateSavingGoal)
		r.Delete("/saving-goals/{id}", h.deleteSavingGoal)
	})

	return r
}
