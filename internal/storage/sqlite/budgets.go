package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

const budgetColumns = "b.id, b.start_date, b.end_date, b.target, b.category_id"

func scanBudget(row scanner) (*models.Budget, error) {
	b := &models.Budget{}
	var start, end string
	if err := row.Scan(&b.ID, &start, &end, &b.Target, &b.CategoryID); err != nil {
		return nil, err
	}
	var err error
	if b.StartDate, err = parseDate(start); err != nil {
		return nil, err
	}
	if b.EndDate, err = parseDate(end); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBudgetByID retrieves a budget by its ID.
func (s *SQLiteStore) GetBudgetByID(ctx context.Context, id int) (*models.Budget, error) {
	b, err := scanBudget(s.db.QueryRowContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets b WHERE b.id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("budget %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return b, nil
}

// ListBudgetsByUser returns the budgets of every category the user owns.
func (s *SQLiteStore) ListBudgetsByUser(ctx context.Context, userID int) ([]models.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+budgetColumns+`
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE c.user_id = ?
		ORDER BY b.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return collect(rows, scanBudget)
}

func (s *SQLiteStore) ListBudgetsByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.Budget, error) {
	offset, err := storage.Offset(page, pageSize)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+budgetColumns+`
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE c.user_id = ?
		ORDER BY b.id
		LIMIT ? OFFSET ?
	`, userID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return collect(rows, scanBudget)
}

// GetBudgetByCategory returns the first budget defined for a category.
func (s *SQLiteStore) GetBudgetByCategory(ctx context.Context, categoryID int) (*models.Budget, error) {
	b, err := scanBudget(s.db.QueryRowContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets b WHERE b.category_id = ? ORDER BY b.id LIMIT 1", categoryID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("budget for category %d: %w", categoryID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget by category: %w", err)
	}
	return b, nil
}

func (s *SQLiteStore) CreateBudget(ctx context.Context, budget *models.Budget) error {
	if budget == nil {
		return fmt.Errorf("%w: nil budget", storage.ErrInvalidArgument)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO budgets (start_date, end_date, target, category_id) VALUES (?, ?, ?, ?)",
		formatDate(budget.StartDate), formatDate(budget.EndDate), budget.Target, budget.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", mapError(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read budget id: %w", err)
	}
	budget.ID = int(id)
	budget.StartDate = models.Day(budget.StartDate)
	budget.EndDate = models.Day(budget.EndDate)
	return nil
}

func (s *SQLiteStore) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	if budget == nil {
		return fmt.Errorf("%w: nil budget", storage.ErrInvalidArgument)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE budgets SET start_date = ?, end_date = ?, target = ?, category_id = ? WHERE id = ?",
		formatDate(budget.StartDate), formatDate(budget.EndDate), budget.Target, budget.CategoryID, budget.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", mapError(err))
	}
	return requireAffected(res, "budget", budget.ID)
}

func (s *SQLiteStore) DeleteBudget(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM budgets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", mapError(err))
	}
	return requireAffected(res, "budget", id)
}
