// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// GetUserByID returns ErrNotFound if no user has the given ID.
	GetUserByID(ctx context.Context, id int) (*models.User, error)

	// GetUserByEmail returns ErrNotFound if no user has the given email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CreateUser persists a new user and sets user.ID.
	// Returns ErrConflict if the email is already taken.
	CreateUser(ctx context.Context, user *models.User) error

	// UpdateUser overwrites name, email, password hash and date of birth.
	UpdateUser(ctx context.Context, user *models.User) error

	// DeleteUser removes the user and everything the user owns.
	DeleteUser(ctx context.Context, id int) error
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	GetCategoryByID(ctx context.Context, id int) (*models.Category, error)
	ListCategoriesByUser(ctx context.Context, userID int) ([]models.Category, error)
	ListCategoriesByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error

	// DeleteCategory also removes the category's transactions and budgets.
	DeleteCategory(ctx context.Context, id int) error
}

// TransactionRepository persists transactions. Lists are ordered newest
// first (date descending, then ID descending).
type TransactionRepository interface {
	GetTransactionByID(ctx context.Context, id int) (*models.Transaction, error)
	ListTransactionsByUser(ctx context.Context, userID int) ([]models.Transaction, error)
	ListTransactionsByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.Transaction, error)
	ListTransactionsByCategory(ctx context.Context, categoryID int) ([]models.Transaction, error)

	// CreateTransaction persists a new transaction and sets tx.ID.
	// Returns ErrInvalidArgument if the category or user does not exist.
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	UpdateTransaction(ctx context.Context, tx *models.Transaction) error
	DeleteTransaction(ctx context.Context, id int) error
}

// TagRepository persists tags and their association with transactions.
type TagRepository interface {
	GetTagByID(ctx context.Context, id int) (*models.Tag, error)
	ListTagsByUser(ctx context.Context, userID int) ([]models.Tag, error)
	ListTagsByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.Tag, error)

	// ListTagsByTransaction returns an empty slice for an untagged transaction.
	ListTagsByTransaction(ctx context.Context, transactionID int) ([]models.Tag, error)

	CreateTag(ctx context.Context, tag *models.Tag) error
	UpdateTag(ctx context.Context, tag *models.Tag) error
	DeleteTag(ctx context.Context, id int) error

	// AddTagsToTransaction associates tags with a transaction. Pairs that are
	// already associated are left alone.
	AddTagsToTransaction(ctx context.Context, transactionID int, tagIDs []int) error

	// RemoveTagsFromTransaction clears every association of the transaction.
	RemoveTagsFromTransaction(ctx context.Context, transactionID int) error
}

// BudgetRepository persists budgets.
type BudgetRepository interface {
	GetBudgetByID(ctx context.Context, id int) (*models.Budget, error)

	// ListBudgetsByUser returns the budgets of every category the user owns.
	ListBudgetsByUser(ctx context.Context, userID int) ([]models.Budget, error)
	ListBudgetsByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.Budget, error)

	// GetBudgetByCategory returns the category's budget with the lowest ID.
	GetBudgetByCategory(ctx context.Context, categoryID int) (*models.Budget, error)

	CreateBudget(ctx context.Context, budget *models.Budget) error
	UpdateBudget(ctx context.Context, budget *models.Budget) error
	DeleteBudget(ctx context.Context, id int) error
}

// SavingGoalRepository persists saving goals.
type SavingGoalRepository interface {
	GetSavingGoalByID(ctx context.Context, id int) (*models.SavingGoal, error)
	ListSavingGoalsByUser(ctx context.Context, userID int) ([]models.SavingGoal, error)
	ListSavingGoalsByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.SavingGoal, error)
	CreateSavingGoal(ctx context.Context, goal *models.SavingGoal) error
	UpdateSavingGoal(ctx context.Context, goal *models.SavingGoal) error
	DeleteSavingGoal(ctx context.Context, id int) error
}

// Store bundles every repository behind one backend.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// in-memory) without changing the service layer.
type Store interface {
	UserRepository
	CategoryRepository
	TransactionRepository
	TagRepository
	BudgetRepository
	SavingGoalRepository

	// Close releases any resources held by the store.
	Close() error
}
