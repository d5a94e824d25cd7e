package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

const (
	transactionColumns = "id, description, amount, date, user_id, category_id"
	newestFirst        = " ORDER BY date DESC, id DESC"
)

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	t := &models.Transaction{}
	if err := row.Scan(&t.ID, &t.Description, &t.Amount, &t.Date, &t.UserID, &t.CategoryID); err != nil {
		return nil, err
	}
	t.Date = models.Day(t.Date)
	return t, nil
}

func (s *PostgresStore) GetTransactionByID(ctx context.Context, id int) (*models.Transaction, error) {
	t, err := scanTransaction(s.pool.QueryRow(ctx, "SELECT "+transactionColumns+" FROM transactions WHERE id = $1", id))
	if err != nil {
		return nil, notFoundOr(err, "transaction", id, "get transaction")
	}
	return t, nil
}

func (s *PostgresStore) ListTransactionsByUser(ctx context.Context, userID int) ([]models.Transaction, error) {
	out, err := list(ctx, s.pool, scanTransaction,
		"SELECT "+transactionColumns+" FROM transactions WHERE user_id = $1"+newestFirst, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListTransactionsByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.Transaction, error) {
	offset, err := storage.Offset(page, pageSize)
	if err != nil {
		return nil, err
	}
	out, err := list(ctx, s.pool, scanTransaction,
		"SELECT "+transactionColumns+" FROM transactions WHERE user_id = $1"+newestFirst+" LIMIT $2 OFFSET $3",
		userID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListTransactionsByCategory(ctx context.Context, categoryID int) ([]models.Transaction, error) {
	out, err := list(ctx, s.pool, scanTransaction,
		"SELECT "+transactionColumns+" FROM transactions WHERE category_id = $1"+newestFirst, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions by category: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx == nil {
		return fmt.Errorf("%w: nil transaction", storage.ErrInvalidArgument)
	}
	tx.Date = models.Day(tx.Date)
	err := s.pool.QueryRow(ctx, `
		INSERT INTO transactions (description, amount, date, user_id, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, tx.Description, tx.Amount, tx.Date, tx.UserID, tx.CategoryID).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", mapError(err))
	}
	return nil
}

func (s *PostgresStore) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx == nil {
		return fmt.Errorf("%w: nil transaction", storage.ErrInvalidArgument)
	}
	tx.Date = models.Day(tx.Date)
	tag, err := s.pool.Exec(ctx,
		"UPDATE transactions SET description = $1, amount = $2, date = $3, user_id = $4, category_id = $5 WHERE id = $6",
		tx.Description, tx.Amount, tx.Date, tx.UserID, tx.CategoryID, tx.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", mapError(err))
	}
	return requireAffected(tag, "transaction", tx.ID)
}

func (s *PostgresStore) DeleteTransaction(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM transactions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", mapError(err))
	}
	return requireAffected(tag, "transaction", id)
}
