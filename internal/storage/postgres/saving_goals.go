package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

const savingGoalColumns = "id, name, target, deadline, user_id"

func scanSavingGoal(row pgx.Row) (*models.SavingGoal, error) {
	g := &models.SavingGoal{}
	if err := row.Scan(&g.ID, &g.Name, &g.Target, &g.Deadline, &g.UserID); err != nil {
		return nil, err
	}
	g.Deadline = models.Day(g.Deadline)
	return g, nil
}

func (s *PostgresStore) GetSavingGoalByID(ctx context.Context, id int) (*models.SavingGoal, error) {
	g, err := scanSavingGoal(s.pool.QueryRow(ctx, "SELECT "+savingGoalColumns+" FROM saving_goals WHERE id = $1", id))
	if err != nil {
		return nil, notFoundOr(err, "saving goal", id, "get saving goal")
	}
	return g, nil
}

func (s *PostgresStore) ListSavingGoalsByUser(ctx context.Context, userID int) ([]models.SavingGoal, error) {
	out, err := list(ctx, s.pool, scanSavingGoal,
		"SELECT "+savingGoalColumns+" FROM saving_goals WHERE user_id = $1 ORDER BY id", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saving goals: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListSavingGoalsByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.SavingGoal, error) {
	offset, err := storage.Offset(page, pageSize)
	if err != nil {
		return nil, err
	}
	out, err := list(ctx, s.pool, scanSavingGoal,
		"SELECT "+savingGoalColumns+" FROM saving_goals WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3",
		userID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list saving goals: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) CreateSavingGoal(ctx context.Context, goal *models.SavingGoal) error {
	if goal == nil {
		return fmt.Errorf("%w: nil saving goal", storage.ErrInvalidArgument)
	}
	goal.Deadline = models.Day(goal.Deadline)
	err := s.pool.QueryRow(ctx, `
		INSERT INTO saving_goals (name, target, deadline, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, goal.Name, goal.Target, goal.Deadline, goal.UserID).Scan(&goal.ID)
	if err != nil {
		return fmt.Errorf("failed to create saving goal: %w", mapError(err))
	}
	return nil
}

func (s *PostgresStore) UpdateSavingGoal(ctx context.Context, goal *models.SavingGoal) error {
	if goal == nil {
		return fmt.Errorf("%w: nil saving goal", storage.ErrInvalidArgument)
	}
	goal.Deadline = models.Day(goal.Deadline)
	tag, err := s.pool.Exec(ctx,
		"UPDATE saving_goals SET name = $1, target = $2, deadline = $3, user_id = $4 WHERE id = $5",
		goal.Name, goal.Target, goal.Deadline, goal.UserID, goal.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update saving goal: %w", mapError(err))
	}
	return requireAffected(tag, "saving goal", goal.ID)
}

func (s *PostgresStore) DeleteSavingGoal(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM saving_goals WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete saving goal: %w", mapError(err))
	}
	return requireAffected(tag, "saving goal", id)
}
