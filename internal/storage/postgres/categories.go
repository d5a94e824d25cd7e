package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

const categoryColumns = "id, name, color, user_id"

func scanCategory(row pgx.Row) (*models.Category, error) {
	c := &models.Category{}
	if err := row.Scan(&c.ID, &c.Name, &c.Color, &c.UserID); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *PostgresStore) GetCategoryByID(ctx context.Context, id int) (*models.Category, error) {
	c, err := scanCategory(s.pool.QueryRow(ctx, "SELECT "+categoryColumns+" FROM categories WHERE id = $1", id))
	if err != nil {
		return nil, notFoundOr(err, "category", id, "get category")
	}
	return c, nil
}

func (s *PostgresStore) ListCategoriesByUser(ctx context.Context, userID int) ([]models.Category, error) {
	out, err := list(ctx, s.pool, scanCategory,
		"SELECT "+categoryColumns+" FROM categories WHERE user_id = $1 ORDER BY id", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListCategoriesByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.Category, error) {
	offset, err := storage.Offset(page, pageSize)
	if err != nil {
		return nil, err
	}
	out, err := list(ctx, s.pool, scanCategory,
		"SELECT "+categoryColumns+" FROM categories WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3",
		userID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) CreateCategory(ctx context.Context, category *models.Category) error {
	if category == nil {
		return fmt.Errorf("%w: nil category", storage.ErrInvalidArgument)
	}
	err := s.pool.QueryRow(ctx,
		"INSERT INTO categories (name, color, user_id) VALUES ($1, $2, $3) RETURNING id",
		category.Name, category.Color, category.UserID,
	).Scan(&category.ID)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", mapError(err))
	}
	return nil
}

func (s *PostgresStore) UpdateCategory(ctx context.Context, category *models.Category) error {
	if category == nil {
		return fmt.Errorf("%w: nil category", storage.ErrInvalidArgument)
	}
	tag, err := s.pool.Exec(ctx,
		"UPDATE categories SET name = $1, color = $2, user_id = $3 WHERE id = $4",
		category.Name, category.Color, category.UserID, category.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", mapError(err))
	}
	return requireAffected(tag, "category", category.ID)
}

func (s *PostgresStore) DeleteCategory(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", mapError(err))
	}
	return requireAffected(tag, "category", id)
}
