package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

const categoryColumns = "id, name, color, user_id"

func scanCategory(row scanner) (*models.Category, error) {
	c := &models.Category{}
	if err := row.Scan(&c.ID, &c.Name, &c.Color, &c.UserID); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCategoryByID retrieves a category by its ID.
func (s *SQLiteStore) GetCategoryByID(ctx context.Context, id int) (*models.Category, error) {
	c, err := scanCategory(s.db.QueryRowContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// ListCategoriesByUser returns every category the user owns, ordered by ID.
func (s *SQLiteStore) ListCategoriesByUser(ctx context.Context, userID int) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE user_id = ? ORDER BY id", userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return collect(rows, scanCategory)
}

// ListCategoriesByUserPaged returns one page of the user's categories.
func (s *SQLiteStore) ListCategoriesByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.Category, error) {
	offset, err := storage.Offset(page, pageSize)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE user_id = ? ORDER BY id LIMIT ? OFFSET ?",
		userID, pageSize, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return collect(rows, scanCategory)
}

// CreateCategory inserts a new category.
func (s *SQLiteStore) CreateCategory(ctx context.Context, category *models.Category) error {
	if category == nil {
		return fmt.Errorf("%w: nil category", storage.ErrInvalidArgument)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (name, color, user_id) VALUES (?, ?, ?)",
		category.Name, category.Color, category.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", mapError(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read category id: %w", err)
	}
	category.ID = int(id)
	return nil
}

// UpdateCategory overwrites name, color and owner.
func (s *SQLiteStore) UpdateCategory(ctx context.Context, category *models.Category) error {
	if category == nil {
		return fmt.Errorf("%w: nil category", storage.ErrInvalidArgument)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE categories SET name = ?, color = ?, user_id = ? WHERE id = ?",
		category.Name, category.Color, category.UserID, category.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", mapError(err))
	}
	return requireAffected(res, "category", category.ID)
}

// DeleteCategory removes a category with its transactions and budgets.
func (s *SQLiteStore) DeleteCategory(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", mapError(err))
	}
	return requireAffected(res, "category", id)
}
