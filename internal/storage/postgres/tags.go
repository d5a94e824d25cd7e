package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

const tagColumns = "id, name, color, user_id"

func scanTag(row pgx.Row) (*models.Tag, error) {
	t := &models.Tag{}
	if err := row.Scan(&t.ID, &t.Name, &t.Color, &t.UserID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *PostgresStore) GetTagByID(ctx context.Context, id int) (*models.Tag, error) {
	t, err := scanTag(s.pool.QueryRow(ctx, "SELECT "+tagColumns+" FROM tags WHERE id = $1", id))
	if err != nil {
		return nil, notFoundOr(err, "tag", id, "get tag")
	}
	return t, nil
}

func (s *PostgresStore) ListTagsByUser(ctx context.Context, userID int) ([]models.Tag, error) {
	out, err := list(ctx, s.pool, scanTag,
		"SELECT "+tagColumns+" FROM tags WHERE user_id = $1 ORDER BY id", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListTagsByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.Tag, error) {
	offset, err := storage.Offset(page, pageSize)
	if err != nil {
		return nil, err
	}
	out, err := list(ctx, s.pool, scanTag,
		"SELECT "+tagColumns+" FROM tags WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3",
		userID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListTagsByTransaction(ctx context.Context, transactionID int) ([]models.Tag, error) {
	out, err := list(ctx, s.pool, scanTag, `
		SELECT t.id, t.name, t.color, t.user_id
		FROM tags t
		JOIN transaction_tags tt ON tt.tag_id = t.id
		WHERE tt.transaction_id = $1
		ORDER BY t.id
	`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction tags: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) CreateTag(ctx context.Context, tag *models.Tag) error {
	if tag == nil {
		return fmt.Errorf("%w: nil tag", storage.ErrInvalidArgument)
	}
	err := s.pool.QueryRow(ctx,
		"INSERT INTO tags (name, color, user_id) VALUES ($1, $2, $3) RETURNING id",
		tag.Name, tag.Color, tag.UserID,
	).Scan(&tag.ID)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", mapError(err))
	}
	return nil
}

func (s *PostgresStore) UpdateTag(ctx context.Context, tag *models.Tag) error {
	if tag == nil {
		return fmt.Errorf("%w: nil tag", storage.ErrInvalidArgument)
	}
	cmd, err := s.pool.Exec(ctx,
		"UPDATE tags SET name = $1, color = $2, user_id = $3 WHERE id = $4",
		tag.Name, tag.Color, tag.UserID, tag.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tag: %w", mapError(err))
	}
	return requireAffected(cmd, "tag", tag.ID)
}

func (s *PostgresStore) DeleteTag(ctx context.Context, id int) error {
	cmd, err := s.pool.Exec(ctx, "DELETE FROM tags WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", mapError(err))
	}
	return requireAffected(cmd, "tag", id)
}

// AddTagsToTransaction links tags to a transaction in one batch.
func (s *PostgresStore) AddTagsToTransaction(ctx context.Context, transactionID int, tagIDs []int) error {
	if len(tagIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(
			"INSERT INTO transaction_tags (transaction_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			transactionID, tagID,
		)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to tag transaction: %w", mapError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) RemoveTagsFromTransaction(ctx context.Context, transactionID int) error {
	if _, err := s.pool.Exec(ctx, "DELETE FROM transaction_tags WHERE transaction_id = $1", transactionID); err != nil {
		return fmt.Errorf("failed to untag transaction: %w", err)
	}
	return nil
}
