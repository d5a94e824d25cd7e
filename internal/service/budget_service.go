package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/youridegraef/qash-backend-sub000/internal/calculator"
	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

// BudgetService manages budgets. The spent figure is never stored; it is
// recomputed from the category's transactions on every read.
type BudgetService struct {
	budgets    storage.BudgetRepository
	categories *CategoryService
	logger     *slog.Logger
}

// NewBudgetService creates a new budget service.
func NewBudgetService(budgets storage.BudgetRepository, categories *CategoryService, logger *slog.Logger) *BudgetService {
	return &BudgetService{budgets: budgets, categories: categories, logger: logger}
}

// GetByID returns the budget with its spent amount and category name.
func (s *BudgetService) GetByID(ctx context.Context, id int) (*BudgetDTO, error) {
	if err := requireID("budget id", id); err != nil {
		return nil, err
	}
	b, err := s.budgets.GetBudgetByID(ctx, id)
	if err != nil {
		return nil, translate(err, EntityBudget, id, "failed to load budget")
	}
	return s.enrich(ctx, *b)
}

// GetByUserID returns the budgets of every category the user owns.
// An empty result is a NotFound error.
func (s *BudgetService) GetByUserID(ctx context.Context, userID int) ([]BudgetDTO, error) {
	budgets, err := s.budgets.ListBudgetsByUser(ctx, userID)
	if err != nil {
		return nil, translate(err, EntityBudget, userID, "failed to list budgets")
	}
	return s.enrichAll(ctx, budgets, userID)
}

// GetByUserIDPaged returns one page of the user's budgets.
func (s *BudgetService) GetByUserIDPaged(ctx context.Context, userID, page, pageSize int) ([]BudgetDTO, error) {
	budgets, err := s.budgets.ListBudgetsByUserPaged(ctx, userID, page, pageSize)
	if err != nil {
		return nil, translate(err, EntityBudget, userID, "failed to list budgets")
	}
	return s.enrichAll(ctx, budgets, userID)
}

// GetByCategoryID returns the first budget of the category.
func (s *BudgetService) GetByCategoryID(ctx context.Context, categoryID int) (*BudgetDTO, error) {
	if err := requireID("category id", categoryID); err != nil {
		return nil, err
	}
	b, err := s.budgets.GetBudgetByCategory(ctx, categoryID)
	if err != nil {
		return nil, translate(err, EntityBudget, fmt.Sprintf("for category %d", categoryID), "failed to load budget")
	}
	return s.enrich(ctx, *b)
}

// Add creates a budget for the category.
func (s *BudgetService) Add(ctx context.Context, startDate, endDate time.Time, target float64, categoryID int) (*BudgetDTO, error) {
	b := models.Budget{
		StartDate:  models.Day(startDate),
		EndDate:    models.Day(endDate),
		Target:     target,
		CategoryID: categoryID,
	}
	if err := validateBudget(b); err != nil {
		return nil, err
	}
	if err := s.budgets.CreateBudget(ctx, &b); err != nil {
		return nil, translate(err, EntityBudget, categoryID, "could not add budget")
	}
	s.logger.Info("Budget added", "budget_id", b.ID, "category_id", categoryID)
	return s.enrich(ctx, b)
}

// Edit overwrites a budget. It reports false on any failure.
func (s *BudgetService) Edit(ctx context.Context, id int, startDate, endDate time.Time, target float64, categoryID int) bool {
	b := models.Budget{
		ID:         id,
		StartDate:  models.Day(startDate),
		EndDate:    models.Day(endDate),
		Target:     target,
		CategoryID: categoryID,
	}
	return succeeded(s.logger, "BudgetService.Edit", id, s.edit(ctx, b))
}

func (s *BudgetService) edit(ctx context.Context, b models.Budget) error {
	if err := requireID("budget id", b.ID); err != nil {
		return err
	}
	if err := validateBudget(b); err != nil {
		return err
	}
	if err := s.budgets.UpdateBudget(ctx, &b); err != nil {
		return translate(err, EntityBudget, b.ID, "could not edit budget")
	}
	return nil
}

// Delete removes a budget. It reports false on any failure.
func (s *BudgetService) Delete(ctx context.Context, id int) bool {
	var err error
	if err = requireID("budget id", id); err == nil {
		if err = s.budgets.DeleteBudget(ctx, id); err != nil {
			err = translate(err, EntityBudget, id, "could not delete budget")
		}
	}
	return succeeded(s.logger, "BudgetService.Delete", id, err)
}

func (s *BudgetService) enrichAll(ctx context.Context, budgets []models.Budget, userID int) ([]BudgetDTO, error) {
	if len(budgets) == 0 {
		return nil, noneFound(EntityBudget, userID)
	}
	out := make([]BudgetDTO, 0, len(budgets))
	for _, b := range budgets {
		dto, err := s.enrich(ctx, b)
		if err != nil {
			return nil, err
		}
		out = append(out, *dto)
	}
	return out, nil
}

// enrich attaches the category name and the spent amount: the negated sum
// of the category's transactions inside the budget window.
func (s *BudgetService) enrich(ctx context.Context, b models.Budget) (*BudgetDTO, error) {
	category, err := s.categories.GetByID(ctx, b.CategoryID)
	if err != nil {
		return nil, err
	}
	txs, err := s.categories.transactionsBetween(ctx, b.CategoryID, b.StartDate, b.EndDate)
	if err != nil {
		return nil, err
	}
	return &BudgetDTO{
		ID:           b.ID,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		Target:       b.Target,
		Spent:        calculator.Spent(txs),
		CategoryID:   b.CategoryID,
		CategoryName: category.Name,
		UserID:       category.UserID,
	}, nil
}

func validateBudget(b models.Budget) error {
	if err := requireOrdered(b.StartDate, b.EndDate); err != nil {
		return err
	}
	if err := requireNonNegative("target", b.Target); err != nil {
		return err
	}
	return requireID("category id", b.CategoryID)
}
