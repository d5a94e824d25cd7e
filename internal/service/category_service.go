package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/youridegraef/qash-backend-sub000/internal/calculator"
	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

// CategoryService manages categories and the spending totals derived from
// their transactions.
type CategoryService struct {
	categories   storage.CategoryRepository
	transactions storage.TransactionRepository
	logger       *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categories storage.CategoryRepository, transactions storage.TransactionRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		categories:   categories,
		transactions: transactions,
		logger:       logger,
	}
}

// GetByID returns the category with the given ID.
func (s *CategoryService) GetByID(ctx context.Context, id int) (*CategoryDTO, error) {
	if err := requireID("category id", id); err != nil {
		return nil, err
	}
	c, err := s.categories.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, translate(err, EntityCategory, id, "failed to load category")
	}
	dto := newCategoryDTO(*c)
	return &dto, nil
}

// GetByUserID returns every category of the user. An empty result is a
// NotFound error.
func (s *CategoryService) GetByUserID(ctx context.Context, userID int) ([]CategoryDTO, error) {
	cats, err := s.categories.ListCategoriesByUser(ctx, userID)
	if err != nil {
		return nil, translate(err, EntityCategory, userID, "failed to list categories")
	}
	return categoryDTOs(cats, userID)
}

// GetByUserIDPaged returns one page of the user's categories.
func (s *CategoryService) GetByUserIDPaged(ctx context.Context, userID, page, pageSize int) ([]CategoryDTO, error) {
	cats, err := s.categories.ListCategoriesByUserPaged(ctx, userID, page, pageSize)
	if err != nil {
		return nil, translate(err, EntityCategory, userID, "failed to list categories")
	}
	return categoryDTOs(cats, userID)
}

func categoryDTOs(cats []models.Category, userID int) ([]CategoryDTO, error) {
	if len(cats) == 0 {
		return nil, noneFound(EntityCategory, userID)
	}
	out := make([]CategoryDTO, len(cats))
	for i, c := range cats {
		out[i] = newCategoryDTO(c)
	}
	return out, nil
}

// Add creates a category for the user.
func (s *CategoryService) Add(ctx context.Context, name, color string, userID int) (*CategoryDTO, error) {
	if err := validateCategory(name, userID); err != nil {
		return nil, err
	}

	c := &models.Category{Name: strings.TrimSpace(name), Color: color, UserID: userID}
	if err := s.categories.CreateCategory(ctx, c); err != nil {
		return nil, translate(err, EntityCategory, c.Name, "could not add category")
	}

	s.logger.Info("Category added", "category_id", c.ID, "user_id", userID)
	dto := newCategoryDTO(*c)
	return &dto, nil
}

// Edit overwrites a category. It reports false on any failure.
func (s *CategoryService) Edit(ctx context.Context, id int, name, color string, userID int) bool {
	return succeeded(s.logger, "CategoryService.Edit", id, s.edit(ctx, id, name, color, userID))
}

func (s *CategoryService) edit(ctx context.Context, id int, name, color string, userID int) error {
	if err := requireID("category id", id); err != nil {
		return err
	}
	if err := validateCategory(name, userID); err != nil {
		return err
	}
	c := &models.Category{ID: id, Name: strings.TrimSpace(name), Color: color, UserID: userID}
	if err := s.categories.UpdateCategory(ctx, c); err != nil {
		return translate(err, EntityCategory, id, "could not edit category")
	}
	return nil
}

// Delete removes a category together with its transactions and budgets.
// It reports false on any failure.
func (s *CategoryService) Delete(ctx context.Context, id int) bool {
	var err error
	if err = requireID("category id", id); err == nil {
		if err = s.categories.DeleteCategory(ctx, id); err != nil {
			err = translate(err, EntityCategory, id, "could not delete category")
		}
	}
	return succeeded(s.logger, "CategoryService.Delete", id, err)
}

// CalculateSpendingsByCategory returns the signed sum of every transaction
// in the category.
func (s *CategoryService) CalculateSpendingsByCategory(ctx context.Context, categoryID int) (float64, error) {
	txs, err := s.categoryTransactions(ctx, categoryID)
	if err != nil {
		return 0, err
	}
	return calculator.Sum(txs), nil
}

// CalculateSpendingsByCategoryAndDateRange returns the signed sum of the
// category's transactions dated within [start, end], both ends inclusive.
func (s *CategoryService) CalculateSpendingsByCategoryAndDateRange(ctx context.Context, categoryID int, start, end time.Time) (float64, error) {
	txs, err := s.transactionsBetween(ctx, categoryID, start, end)
	if err != nil {
		return 0, err
	}
	return calculator.Sum(txs), nil
}

func (s *CategoryService) transactionsBetween(ctx context.Context, categoryID int, start, end time.Time) ([]models.Transaction, error) {
	if err := requireOrdered(models.Day(start), models.Day(end)); err != nil {
		return nil, err
	}
	txs, err := s.categoryTransactions(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return calculator.Between(txs, start, end), nil
}

func (s *CategoryService) categoryTransactions(ctx context.Context, categoryID int) ([]models.Transaction, error) {
	if err := requireID("category id", categoryID); err != nil {
		return nil, err
	}
	txs, err := s.transactions.ListTransactionsByCategory(ctx, categoryID)
	if err != nil {
		return nil, translate(err, EntityCategory, categoryID, "failed to load category transactions")
	}
	return txs, nil
}

func validateCategory(name string, userID int) error {
	if err := requireText("name", name); err != nil {
		return err
	}
	return requireID("user id", userID)
}
