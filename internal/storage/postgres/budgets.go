package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

const budgetColumns = "b.id, b.start_date, b.end_date, b.target, b.category_id"

func scanBudget(row pgx.Row) (*models.Budget, error) {
	b := &models.Budget{}
	if err := row.Scan(&b.ID, &b.StartDate, &b.EndDate, &b.Target, &b.CategoryID); err != nil {
		return nil, err
	}
	b.StartDate = models.Day(b.StartDate)
	b.EndDate = models.Day(b.EndDate)
	return b, nil
}

func (s *PostgresStore) GetBudgetByID(ctx context.Context, id int) (*models.Budget, error) {
	b, err := scanBudget(s.pool.QueryRow(ctx, "SELECT "+budgetColumns+" FROM budgets b WHERE b.id = $1", id))
	if err != nil {
		return nil, notFoundOr(err, "budget", id, "get budget")
	}
	return b, nil
}

func (s *PostgresStore) ListBudgetsByUser(ctx context.Context, userID int) ([]models.Budget, error) {
	out, err := list(ctx, s.pool, scanBudget, `
		SELECT `+budgetColumns+`
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE c.user_id = $1
		ORDER BY b.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListBudgetsByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.Budget, error) {
	offset, err := storage.Offset(page, pageSize)
	if err != nil {
		return nil, err
	}
	out, err := list(ctx, s.pool, scanBudget, `
		SELECT `+budgetColumns+`
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE c.user_id = $1
		ORDER BY b.id
		LIMIT $2 OFFSET $3
	`, userID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) GetBudgetByCategory(ctx context.Context, categoryID int) (*models.Budget, error) {
	b, err := scanBudget(s.pool.QueryRow(ctx,
		"SELECT "+budgetColumns+" FROM budgets b WHERE b.category_id = $1 ORDER BY b.id LIMIT 1", categoryID))
	if err != nil {
		return nil, notFoundOr(err, "budget for category", categoryID, "get budget by category")
	}
	return b, nil
}

func (s *PostgresStore) CreateBudget(ctx context.Context, budget *models.Budget) error {
	if budget == nil {
		return fmt.Errorf("%w: nil budget", storage.ErrInvalidArgument)
	}
	budget.StartDate = models.Day(budget.StartDate)
	budget.EndDate = models.Day(budget.EndDate)
	err := s.pool.QueryRow(ctx, `
		INSERT INTO budgets (start_date, end_date, target, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, budget.StartDate, budget.EndDate, budget.Target, budget.CategoryID).Scan(&budget.ID)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", mapError(err))
	}
	return nil
}

func (s *PostgresStore) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	if budget == nil {
		return fmt.Errorf("%w: nil budget", storage.ErrInvalidArgument)
	}
	budget.StartDate = models.Day(budget.StartDate)
	budget.EndDate = models.Day(budget.EndDate)
	tag, err := s.pool.Exec(ctx,
		"UPDATE budgets SET start_date = $1, end_date = $2, target = $3, category_id = $4 WHERE id = $5",
		budget.StartDate, budget.EndDate, budget.Target, budget.CategoryID, budget.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", mapError(err))
	}
	return requireAffected(tag, "budget", budget.ID)
}

func (s *PostgresStore) DeleteBudget(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM budgets WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", mapError(err))
	}
	return requireAffected(tag, "budget", id)
}
