package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

const savingGoalColumns = "id, name, target, deadline, user_id"

func scanSavingGoal(row scanner) (*models.SavingGoal, error) {
	g := &models.SavingGoal{}
	var deadline string
	if err := row.Scan(&g.ID, &g.Name, &g.Target, &deadline, &g.UserID); err != nil {
		return nil, err
	}
	d, err := parseDate(deadline)
	if err != nil {
		return nil, err
	}
	g.Deadline = d
	return g, nil
}

// GetSavingGoalByID retrieves a saving goal by its ID.
func (s *SQLiteStore) GetSavingGoalByID(ctx context.Context, id int) (*models.SavingGoal, error) {
	g, err := scanSavingGoal(s.db.QueryRowContext(ctx,
		"SELECT "+savingGoalColumns+" FROM saving_goals WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("saving goal %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saving goal: %w", err)
	}
	return g, nil
}

func (s *SQLiteStore) ListSavingGoalsByUser(ctx context.Context, userID int) ([]models.SavingGoal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+savingGoalColumns+" FROM saving_goals WHERE user_id = ? ORDER BY id", userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list saving goals: %w", err)
	}
	return collect(rows, scanSavingGoal)
}

func (s *SQLiteStore) ListSavingGoalsByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.SavingGoal, error) {
	offset, err := storage.Offset(page, pageSize)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+savingGoalColumns+" FROM saving_goals WHERE user_id = ? ORDER BY id LIMIT ? OFFSET ?",
		userID, pageSize, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list saving goals: %w", err)
	}
	return collect(rows, scanSavingGoal)
}

func (s *SQLiteStore) CreateSavingGoal(ctx context.Context, goal *models.SavingGoal) error {
	if goal == nil {
		return fmt.Errorf("%w: nil saving goal", storage.ErrInvalidArgument)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO saving_goals (name, target, deadline, user_id) VALUES (?, ?, ?, ?)",
		goal.Name, goal.Target, formatDate(goal.Deadline), goal.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to create saving goal: %w", mapError(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read saving goal id: %w", err)
	}
	goal.ID = int(id)
	goal.Deadline = models.Day(goal.Deadline)
	return nil
}

func (s *SQLiteStore) UpdateSavingGoal(ctx context.Context, goal *models.SavingGoal) error {
	if goal == nil {
		return fmt.Errorf("%w: nil saving goal", storage.ErrInvalidArgument)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE saving_goals SET name = ?, target = ?, deadline = ?, user_id = ? WHERE id = ?",
		goal.Name, goal.Target, formatDate(goal.Deadline), goal.UserID, goal.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update saving goal: %w", mapError(err))
	}
	return requireAffected(res, "saving goal", goal.ID)
}

func (s *SQLiteStore) DeleteSavingGoal(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM saving_goals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete saving goal: %w", mapError(err))
	}
	return requireAffected(res, "saving goal", id)
}
