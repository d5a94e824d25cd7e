// Package service implements the finance domain on top of the storage
// repositories: validation, aggregation, DTO assembly and the error
// taxonomy every adapter maps onto its transport.
package service

import (
	"log/slog"
	"time"

	"github.com/youridegraef/qash-backend-sub000/internal/auth"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

// Services bundles every service wired against one store.
type Services struct {
	Users        *UserService
	Categories   *CategoryService
	Tags         *TagService
	Transactions *TransactionService
	Budgets      *BudgetService
	SavingGoals  *SavingGoalService
}

// New wires the services in dependency order.
func New(store storage.Store, hasher auth.PasswordHasher, tokenTTL time.Duration, logger *slog.Logger) *Services {
	categories := NewCategoryService(store, store, logger)
	tags := NewTagService(store, logger)
	transactions := NewTransactionService(store, categories, tags, logger)
	return &Services{
		Users:        NewUserService(store, hasher, tokenTTL, logger),
		Categories:   categories,
		Tags:         tags,
		Transactions: transactions,
		Budgets:      NewBudgetService(store, categories, logger),
		SavingGoals:  NewSavingGoalService(store, transactions, logger),
	}
}
