package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

const (
	transactionColumns = "id, description, amount, date, user_id, category_id"
	newestFirst        = " ORDER BY date DESC, id DESC"
)

func scanTransaction(row scanner) (*models.Transaction, error) {
	t := &models.Transaction{}
	var date string
	if err := row.Scan(&t.ID, &t.Description, &t.Amount, &date, &t.UserID, &t.CategoryID); err != nil {
		return nil, err
	}
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	t.Date = d
	return t, nil
}

// GetTransactionByID retrieves a transaction by its ID.
func (s *SQLiteStore) GetTransactionByID(ctx context.Context, id int) (*models.Transaction, error) {
	t, err := scanTransaction(s.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return t, nil
}

// ListTransactionsByUser returns all of a user's transactions, newest first.
func (s *SQLiteStore) ListTransactionsByUser(ctx context.Context, userID int) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE user_id = ?"+newestFirst, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return collect(rows, scanTransaction)
}

// ListTransactionsByUserPaged returns one page of a user's transactions.
func (s *SQLiteStore) ListTransactionsByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.Transaction, error) {
	offset, err := storage.Offset(page, pageSize)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE user_id = ?"+newestFirst+" LIMIT ? OFFSET ?",
		userID, pageSize, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return collect(rows, scanTransaction)
}

// ListTransactionsByCategory returns every transaction in a category.
func (s *SQLiteStore) ListTransactionsByCategory(ctx context.Context, categoryID int) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE category_id = ?"+newestFirst, categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions by category: %w", err)
	}
	return collect(rows, scanTransaction)
}

// CreateTransaction inserts a new transaction.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx == nil {
		return fmt.Errorf("%w: nil transaction", storage.ErrInvalidArgument)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO transactions (description, amount, date, user_id, category_id) VALUES (?, ?, ?, ?, ?)",
		tx.Description, tx.Amount, formatDate(tx.Date), tx.UserID, tx.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", mapError(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read transaction id: %w", err)
	}
	tx.ID = int(id)
	tx.Date = models.Day(tx.Date)
	return nil
}

// UpdateTransaction overwrites every field of an existing transaction.
func (s *SQLiteStore) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx == nil {
		return fmt.Errorf("%w: nil transaction", storage.ErrInvalidArgument)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE transactions SET description = ?, amount = ?, date = ?, user_id = ?, category_id = ? WHERE id = ?",
		tx.Description, tx.Amount, formatDate(tx.Date), tx.UserID, tx.CategoryID, tx.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", mapError(err))
	}
	tx.Date = models.Day(tx.Date)
	return requireAffected(res, "transaction", tx.ID)
}

// DeleteTransaction removes a transaction and its tag associations.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", mapError(err))
	}
	return requireAffected(res, "transaction", id)
}
