package rpc

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/youridegraef/qash-backend-sub000/internal/api"
	"github.com/youridegraef/qash-backend-sub000/internal/middleware"
	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
)

// LedgerServer implements qash.v1.LedgerService on top of the services.
type LedgerServer struct {
	svc    *service.Services
	tokens api.Tokens
}

// Register creates an account. It does not log the caller in.
func (s *LedgerServer) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	slog.Info("Register request received", "email", req.Msg.Email)

	var dob *time.Time
	if raw := strings.TrimSpace(req.Msg.DateOfBirth); raw != "" {
		t, err := models.ParseDay(raw)
		if err != nil {
			return nil, invalidArgument("invalid dateOfBirth %q: must be YYYY-MM-DD", raw)
		}
		dob = &t
	}

	user, err := s.svc.Users.Register(ctx, req.Msg.Name, req.Msg.Email, req.Msg.Password, dob)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&RegisterResponse{User: service.NewUserDTO(user)}), nil
}

// Login exchanges credentials for a bearer token.
func (s *LedgerServer) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[service.AuthResult], error) {
	res, err := s.svc.Users.Authenticate(ctx, req.Msg.Email, req.Msg.Password, s.tokens.Key, s.tokens.Issuer)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(res), nil
}

// GetSummary returns the caller's balance, income and expenses.
func (s *LedgerServer) GetSummary(ctx context.Context, _ *connect.Request[GetSummaryRequest]) (*connect.Response[service.SummaryDTO], error) {
	summary, err := s.svc.Transactions.GetSummary(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(summary), nil
}

// ListTransactions returns the caller's transactions, newest first.
func (s *LedgerServer) ListTransactions(ctx context.Context, req *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error) {
	userID := middleware.GetUserID(ctx)
	var (
		txs []service.TransactionDTO
		err error
	)
	if req.Msg.Page == 0 && req.Msg.PageSize == 0 {
		txs, err = s.svc.Transactions.GetByUserID(ctx, userID)
	} else {
		txs, err = s.svc.Transactions.GetByUserIDPaged(ctx, userID, req.Msg.Page, req.Msg.PageSize)
	}
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&ListTransactionsResponse{Transactions: txs}), nil
}

// AddTransaction records a transaction for the caller.
func (s *LedgerServer) AddTransaction(ctx context.Context, req *connect.Request[AddTransactionRequest]) (*connect.Response[TransactionResponse], error) {
	userID := middleware.GetUserID(ctx)
	slog.Info("AddTransaction request received",
		"user_id", userID,
		"category_id", req.Msg.CategoryID,
		"tags_count", len(req.Msg.TagIDs),
	)

	date, err := s.checkFields(ctx, userID, req.Msg.TransactionFields)
	if err != nil {
		return nil, err
	}
	f := req.Msg.TransactionFields
	tx, err := s.svc.Transactions.Add(ctx, f.Description, f.Amount, date, userID, f.CategoryID, f.TagIDs)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&TransactionResponse{Transaction: *tx}), nil
}

// EditTransaction replaces a transaction's fields and tags.
func (s *LedgerServer) EditTransaction(ctx context.Context, req *connect.Request[EditTransactionRequest]) (*connect.Response[TransactionResponse], error) {
	userID := middleware.GetUserID(ctx)
	id := req.Msg.ID
	if _, err := api.Owned(ctx, userID, id, service.EntityTransaction, s.svc.Transactions.GetByID, api.TransactionOwner); err != nil {
		return nil, connectError(err)
	}
	date, err := s.checkFields(ctx, userID, req.Msg.TransactionFields)
	if err != nil {
		return nil, err
	}

	f := req.Msg.TransactionFields
	if !s.svc.Transactions.Edit(ctx, id, f.Amount, f.Description, date, userID, f.CategoryID, f.TagIDs) {
		return nil, connect.NewError(connect.CodeNotFound, notChanged(id))
	}
	tx, err := s.svc.Transactions.GetByID(ctx, id)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&TransactionResponse{Transaction: *tx}), nil
}

// DeleteTransaction removes one of the caller's transactions.
func (s *LedgerServer) DeleteTransaction(ctx context.Context, req *connect.Request[DeleteTransactionRequest]) (*connect.Response[DeleteTransactionResponse], error) {
	id := req.Msg.ID
	if _, err := api.Owned(ctx, middleware.GetUserID(ctx), id, service.EntityTransaction, s.svc.Transactions.GetByID, api.TransactionOwner); err != nil {
		return nil, connectError(err)
	}
	if !s.svc.Transactions.Delete(ctx, id) {
		return nil, connect.NewError(connect.CodeNotFound, notChanged(id))
	}
	return connect.NewResponse(&DeleteTransactionResponse{}), nil
}

// ListBudgets returns the caller's budgets with their spent amounts.
func (s *LedgerServer) ListBudgets(ctx context.Context, _ *connect.Request[ListBudgetsRequest]) (*connect.Response[ListBudgetsResponse], error) {
	budgets, err := s.svc.Budgets.GetByUserID(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&ListBudgetsResponse{Budgets: budgets}), nil
}

// ListSavingGoals returns the caller's saving goals.
func (s *LedgerServer) ListSavingGoals(ctx context.Context, _ *connect.Request[ListSavingGoalsRequest]) (*connect.Response[ListSavingGoalsResponse], error) {
	goals, err := s.svc.SavingGoals.GetByUserID(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&ListSavingGoalsResponse{SavingGoals: goals}), nil
}

// checkFields parses the date and verifies the referenced category and
// tags belong to the caller.
func (s *LedgerServer) checkFields(ctx context.Context, userID int, f TransactionFields) (time.Time, error) {
	date, err := models.ParseDay(strings.TrimSpace(f.Date))
	if err != nil {
		return time.Time{}, invalidArgument("invalid date %q: must be YYYY-MM-DD", f.Date)
	}
	if err := api.CheckReferences(ctx, s.svc, userID, f.CategoryID, f.TagIDs); err != nil {
		return time.Time{}, connectError(err)
	}
	return date, nil
}
