package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/youridegraef/qash-backend-sub000/internal/calculator"
	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

// TransactionService manages transactions and aggregates their signed
// amounts. A positive amount is income, a negative amount is an expense.
type TransactionService struct {
	transactions storage.TransactionRepository
	categories   *CategoryService
	tags         *TagService
	logger       *slog.Logger
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(transactions storage.TransactionRepository, categories *CategoryService, tags *TagService, logger *slog.Logger) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		categories:   categories,
		tags:         tags,
		logger:       logger,
	}
}

// GetByID returns the transaction enriched with its category and tags.
func (s *TransactionService) GetByID(ctx context.Context, id int) (*TransactionDTO, error) {
	if err := requireID("transaction id", id); err != nil {
		return nil, err
	}
	tx, err := s.transactions.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, translate(err, EntityTransaction, id, "failed to load transaction")
	}
	return s.enrich(ctx, *tx)
}

// GetByUserID returns every transaction of the user, newest first.
// An empty result is a NotFound error.
func (s *TransactionService) GetByUserID(ctx context.Context, userID int) ([]TransactionDTO, error) {
	txs, err := s.transactions.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, translate(err, EntityTransaction, userID, "failed to list transactions")
	}
	return s.enrichAll(ctx, txs, userID)
}

// GetByUserIDPaged returns one page of the user's transactions.
func (s *TransactionService) GetByUserIDPaged(ctx context.Context, userID, page, pageSize int) ([]TransactionDTO, error) {
	txs, err := s.transactions.ListTransactionsByUserPaged(ctx, userID, page, pageSize)
	if err != nil {
		return nil, translate(err, EntityTransaction, userID, "failed to list transactions")
	}
	return s.enrichAll(ctx, txs, userID)
}

// Add persists a transaction and then associates the tags with it. The two
// writes are independent: if tagging fails the transaction stays and the
// tagging error is returned.
func (s *TransactionService) Add(ctx context.Context, description string, amount float64, date time.Time, userID, categoryID int, tagIDs []int) (*TransactionDTO, error) {
	if err := validateTransaction(description, amount, userID, categoryID); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Date:        models.Day(date),
		UserID:      userID,
		CategoryID:  categoryID,
	}
	if err := s.transactions.CreateTransaction(ctx, tx); err != nil {
		return nil, translate(err, EntityTransaction, categoryID, "could not add transaction")
	}
	s.logger.Info("Transaction added", "transaction_id", tx.ID, "user_id", userID, "amount", amount)

	if len(tagIDs) > 0 {
		if err := s.tags.AddTagsToTransaction(ctx, tx.ID, tagIDs); err != nil {
			s.logger.Error("Tagging new transaction failed", "transaction_id", tx.ID, "error", err)
			return nil, err
		}
	}

	return s.enrich(ctx, *tx)
}

// Edit overwrites a transaction and replaces its tags with tagIDs. It
// reports false on any failure. A failure while re-tagging leaves the
// updated fields in place.
func (s *TransactionService) Edit(ctx context.Context, id int, amount float64, description string, date time.Time, userID, categoryID int, tagIDs []int) bool {
	return succeeded(s.logger, "TransactionService.Edit", id, s.edit(ctx, id, amount, description, date, userID, categoryID, tagIDs))
}

func (s *TransactionService) edit(ctx context.Context, id int, amount float64, description string, date time.Time, userID, categoryID int, tagIDs []int) error {
	if err := requireID("transaction id", id); err != nil {
		return err
	}
	if err := validateTransaction(description, amount, userID, categoryID); err != nil {
		return err
	}

	tx := &models.Transaction{
		ID:          id,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Date:        models.Day(date),
		UserID:      userID,
		CategoryID:  categoryID,
	}
	if err := s.transactions.UpdateTransaction(ctx, tx); err != nil {
		return translate(err, EntityTransaction, id, "could not edit transaction")
	}
	if err := s.tags.RemoveTagsFromTransaction(ctx, id); err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	return s.tags.AddTagsToTransaction(ctx, id, tagIDs)
}

// Delete removes a transaction. It reports false on any failure.
func (s *TransactionService) Delete(ctx context.Context, id int) bool {
	var err error
	if err = requireID("transaction id", id); err == nil {
		if err = s.transactions.DeleteTransaction(ctx, id); err != nil {
			err = translate(err, EntityTransaction, id, "could not delete transaction")
		}
	}
	return succeeded(s.logger, "TransactionService.Delete", id, err)
}

// GetBalance returns the signed sum of all the user's transactions.
func (s *TransactionService) GetBalance(ctx context.Context, userID int) (float64, error) {
	txs, err := s.userTransactions(ctx, userID)
	if err != nil {
		return 0, err
	}
	return calculator.Balance(txs), nil
}

// GetIncome returns the sum of the user's positive amounts.
func (s *TransactionService) GetIncome(ctx context.Context, userID int) (float64, error) {
	txs, err := s.userTransactions(ctx, userID)
	if err != nil {
		return 0, err
	}
	return calculator.Income(txs), nil
}

// GetExpenses returns the magnitude of the user's negative amounts. It is
// never negative.
func (s *TransactionService) GetExpenses(ctx context.Context, userID int) (float64, error) {
	txs, err := s.userTransactions(ctx, userID)
	if err != nil {
		return 0, err
	}
	return calculator.Expenses(txs), nil
}

// GetSummary returns balance, income and expenses from a single read.
func (s *TransactionService) GetSummary(ctx context.Context, userID int) (*SummaryDTO, error) {
	txs, err := s.userTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	t := calculator.Summarize(txs)
	return &SummaryDTO{Balance: t.Balance, Income: t.Income, Expenses: t.Expenses}, nil
}

func (s *TransactionService) userTransactions(ctx context.Context, userID int) ([]models.Transaction, error) {
	txs, err := s.transactions.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, translate(err, EntityTransaction, userID, "failed to load transactions")
	}
	return txs, nil
}

func (s *TransactionService) enrichAll(ctx context.Context, txs []models.Transaction, userID int) ([]TransactionDTO, error) {
	if len(txs) == 0 {
		return nil, noneFound(EntityTransaction, userID)
	}
	out := make([]TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		dto, err := s.enrich(ctx, tx)
		if err != nil {
			return nil, err
		}
		out = append(out, *dto)
	}
	return out, nil
}

func (s *TransactionService) enrich(ctx context.Context, tx models.Transaction) (*TransactionDTO, error) {
	category, err := s.categories.GetByID(ctx, tx.CategoryID)
	if err != nil {
		return nil, err
	}
	tags, err := s.tags.GetByTransactionID(ctx, tx.ID)
	if err != nil {
		return nil, err
	}
	return &TransactionDTO{
		ID:          tx.ID,
		Description: tx.Description,
		Amount:      tx.Amount,
		Date:        tx.Date,
		UserID:      tx.UserID,
		CategoryID:  tx.CategoryID,
		Category:    category,
		Tags:        tags,
	}, nil
}

func validateTransaction(description string, amount float64, userID, categoryID int) error {
	if err := requireText("description", description); err != nil {
		return err
	}
	if err := requireAmount("amount", amount); err != nil {
		return err
	}
	if err := requireID("user id", userID); err != nil {
		return err
	}
	return requireID("category id", categoryID)
}
