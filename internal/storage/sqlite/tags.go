package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

const tagColumns = "id, name, color, user_id"

func scanTag(row scanner) (*models.Tag, error) {
	t := &models.Tag{}
	if err := row.Scan(&t.ID, &t.Name, &t.Color, &t.UserID); err != nil {
		return nil, err
	}
	return t, nil
}

// GetTagByID retrieves a tag by its ID.
func (s *SQLiteStore) GetTagByID(ctx context.Context, id int) (*models.Tag, error) {
	t, err := scanTag(s.db.QueryRowContext(ctx,
		"SELECT "+tagColumns+" FROM tags WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tag %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return t, nil
}

func (s *SQLiteStore) ListTagsByUser(ctx context.Context, userID int) ([]models.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+tagColumns+" FROM tags WHERE user_id = ? ORDER BY id", userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return collect(rows, scanTag)
}

func (s *SQLiteStore) ListTagsByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.Tag, error) {
	offset, err := storage.Offset(page, pageSize)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+tagColumns+" FROM tags WHERE user_id = ? ORDER BY id LIMIT ? OFFSET ?",
		userID, pageSize, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return collect(rows, scanTag)
}

// ListTagsByTransaction returns the tags attached to a transaction.
func (s *SQLiteStore) ListTagsByTransaction(ctx context.Context, transactionID int) ([]models.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.color, t.user_id
		FROM tags t
		JOIN transaction_tags tt ON tt.tag_id = t.id
		WHERE tt.transaction_id = ?
		ORDER BY t.id
	`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction tags: %w", err)
	}
	return collect(rows, scanTag)
}

func (s *SQLiteStore) CreateTag(ctx context.Context, tag *models.Tag) error {
	if tag == nil {
		return fmt.Errorf("%w: nil tag", storage.ErrInvalidArgument)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO tags (name, color, user_id) VALUES (?, ?, ?)",
		tag.Name, tag.Color, tag.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", mapError(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read tag id: %w", err)
	}
	tag.ID = int(id)
	return nil
}

func (s *SQLiteStore) UpdateTag(ctx context.Context, tag *models.Tag) error {
	if tag == nil {
		return fmt.Errorf("%w: nil tag", storage.ErrInvalidArgument)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE tags SET name = ?, color = ?, user_id = ? WHERE id = ?",
		tag.Name, tag.Color, tag.UserID, tag.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tag: %w", mapError(err))
	}
	return requireAffected(res, "tag", tag.ID)
}

func (s *SQLiteStore) DeleteTag(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", mapError(err))
	}
	return requireAffected(res, "tag", id)
}

// AddTagsToTransaction links tags to a transaction in a single database
// transaction. Existing links are ignored.
func (s *SQLiteStore) AddTagsToTransaction(ctx context.Context, transactionID int, tagIDs []int) error {
	if len(tagIDs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, tagID := range tagIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO transaction_tags (transaction_id, tag_id) VALUES (?, ?)",
			transactionID, tagID,
		)
		if err != nil {
			return fmt.Errorf("failed to tag transaction: %w", mapError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RemoveTagsFromTransaction drops every tag link of a transaction.
func (s *SQLiteStore) RemoveTagsFromTransaction(ctx context.Context, transactionID int) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM transaction_tags WHERE transaction_id = ?", transactionID)
	if err != nil {
		return fmt.Errorf("failed to untag transaction: %w", err)
	}
	return nil
}
