package rpc

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/youridegraef/qash-backend-sub000/internal/api"
	"github.com/youridegraef/qash-backend-sub000/internal/auth"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
	"github.com/youridegraef/qash-backend-sub000/internal/storage/memory"
)

type testServer struct {
	t   *testing.T
	ctx context.Context
	svc *service.Services
	url string
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(memory.New(), hasher, time.Hour, logger)
	tokens := api.NewTokens("0123456789abcdef0123456789abcdef", "qash-test", time.Hour)

	path, handler := NewHandler(svc, tokens)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return &testServer{t: t, ctx: context.Background(), svc: svc, url: server.URL}
}

// call invokes one procedure, authenticating with token when it is set.
func call[Req, Res any](s *testServer, procedure, token string, msg *Req) (*Res, error) {
	client := connect.NewClient[Req, Res](http.DefaultClient, s.url+procedure, connect.WithCodec(Codec{}))
	req := connect.NewRequest(msg)
	if token != "" {
		req.Header().Set("Authorization", "Bearer "+token)
	}
	resp, err := client.CallUnary(s.ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (s *testServer) signup(name, email string) (int, string) {
	s.t.Helper()
	reg, err := call[RegisterRequest, RegisterResponse](s, RegisterProcedure, "", &RegisterRequest{
		Name: name, Email: email, Password: "s3cret",
	})
	require.NoError(s.t, err)
	login, err := call[LoginRequest, service.AuthResult](s, LoginProcedure, "", &LoginRequest{
		Email: email, Password: "s3cret",
	})
	require.NoError(s.t, err)
	require.NotEmpty(s.t, login.Token)
	return reg.User.ID, login.Token
}

func TestRegisterAndLogin(t *testing.T) {
	s := setupTestServer(t)

	reg, err := call[RegisterRequest, RegisterResponse](s, RegisterProcedure, "", &RegisterRequest{
		Name: "Ann", Email: "ann@example.com", Password: "s3cret", DateOfBirth: "1990-05-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann", reg.User.Name)
	require.NotNil(t, reg.User.DateOfBirth)
	assert.Equal(t, 1990, reg.User.DateOfBirth.Year())

	_, err = call[RegisterRequest, RegisterResponse](s, RegisterProcedure, "", &RegisterRequest{
		Name: "Ann", Email: "ann@example.com", Password: "x",
	})
	assert.Equal(t, connect.CodeAlreadyExists, connect.CodeOf(err))

	_, err = call[RegisterRequest, RegisterResponse](s, RegisterProcedure, "", &RegisterRequest{
		Name: "Bob", Email: "bob@example.com", Password: "x", DateOfBirth: "May 1st",
	})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = call[LoginRequest, service.AuthResult](s, LoginProcedure, "", &LoginRequest{
		Email: "ann@example.com", Password: "wrong",
	})
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	_, err = call[LoginRequest, service.AuthResult](s, LoginProcedure, "", &LoginRequest{
		Email: "nobody@example.com", Password: "s3cret",
	})
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestProceduresRequireToken(t *testing.T) {
	s := setupTestServer(t)

	_, err := call[GetSummaryRequest, service.SummaryDTO](s, GetSummaryProcedure, "", &GetSummaryRequest{})
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	_, err = call[ListBudgetsRequest, ListBudgetsResponse](s, ListBudgetsProcedure, "not-a-jwt", &ListBudgetsRequest{})
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestTransactionLifecycle(t *testing.T) {
	s := setupTestServer(t)
	userID, token := s.signup("Ann", "ann@example.com")

	food, err := s.svc.Categories.Add(s.ctx, "Food", "", userID)
	require.NoError(t, err)
	tag, err := s.svc.Tags.Add(s.ctx, "weekly", "", userID)
	require.NoError(t, err)

	_, err = call[ListTransactionsRequest, ListTransactionsResponse](s, ListTransactionsProcedure, token, &ListTransactionsRequest{})
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	added, err := call[AddTransactionRequest, TransactionResponse](s, AddTransactionProcedure, token, &AddTransactionRequest{
		TransactionFields: TransactionFields{
			Description: "groceries", Amount: -45.5, Date: "2024-03-01", CategoryID: food.ID, TagIDs: []int{tag.ID},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "groceries", added.Transaction.Description)
	require.Len(t, added.Transaction.Tags, 1)
	require.NotNil(t, added.Transaction.Category)
	assert.Equal(t, "Food", added.Transaction.Category.Name)

	_, err = call[AddTransactionRequest, TransactionResponse](s, AddTransactionProcedure, token, &AddTransactionRequest{
		TransactionFields: TransactionFields{Description: "salary", Amount: 1000, Date: "2024-03-02", CategoryID: food.ID},
	})
	require.NoError(t, err)

	summary, err := call[GetSummaryRequest, service.SummaryDTO](s, GetSummaryProcedure, token, &GetSummaryRequest{})
	require.NoError(t, err)
	assert.Equal(t, 954.5, summary.Balance)
	assert.Equal(t, 1000.0, summary.Income)
	assert.Equal(t, 45.5, summary.Expenses)

	page, err := call[ListTransactionsRequest, ListTransactionsResponse](s, ListTransactionsProcedure, token, &ListTransactionsRequest{Page: 1, PageSize: 1})
	require.NoError(t, err)
	require.Len(t, page.Transactions, 1)
	assert.Equal(t, "salary", page.Transactions[0].Description)

	_, err = call[ListTransactionsRequest, ListTransactionsResponse](s, ListTransactionsProcedure, token, &ListTransactionsRequest{Page: 0, PageSize: 5})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	edited, err := call[EditTransactionRequest, TransactionResponse](s, EditTransactionProcedure, token, &EditTransactionRequest{
		ID: added.Transaction.ID,
		TransactionFields: TransactionFields{
			Description: "market", Amount: -30, Date: "2024-03-03", CategoryID: food.ID,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "market", edited.Transaction.Description)
	assert.Equal(t, -30.0, edited.Transaction.Amount)
	assert.Empty(t, edited.Transaction.Tags)

	_, err = call[EditTransactionRequest, TransactionResponse](s, EditTransactionProcedure, token, &EditTransactionRequest{
		ID:                added.Transaction.ID,
		TransactionFields: TransactionFields{Description: "market", Amount: -30, Date: "03/03/2024", CategoryID: food.ID},
	})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = call[DeleteTransactionRequest, DeleteTransactionResponse](s, DeleteTransactionProcedure, token, &DeleteTransactionRequest{ID: added.Transaction.ID})
	require.NoError(t, err)

	_, err = call[DeleteTransactionRequest, DeleteTransactionResponse](s, DeleteTransactionProcedure, token, &DeleteTransactionRequest{ID: added.Transaction.ID})
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestForeignResourcesLookMissing(t *testing.T) {
	s := setupTestServer(t)
	annID, annToken := s.signup("Ann", "ann@example.com")
	_, bobToken := s.signup("Bob", "bob@example.com")

	food, err := s.svc.Categories.Add(s.ctx, "Food", "", annID)
	require.NoError(t, err)
	added, err := call[AddTransactionRequest, TransactionResponse](s, AddTransactionProcedure, annToken, &AddTransactionRequest{
		TransactionFields: TransactionFields{Description: "groceries", Amount: -10, Date: "2024-03-01", CategoryID: food.ID},
	})
	require.NoError(t, err)

	_, err = call[AddTransactionRequest, TransactionResponse](s, AddTransactionProcedure, bobToken, &AddTransactionRequest{
		TransactionFields: TransactionFields{Description: "sneaky", Amount: -1, Date: "2024-03-01", CategoryID: food.ID},
	})
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = call[DeleteTransactionRequest, DeleteTransactionResponse](s, DeleteTransactionProcedure, bobToken, &DeleteTransactionRequest{ID: added.Transaction.ID})
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = s.svc.Transactions.GetByID(s.ctx, added.Transaction.ID)
	assert.NoError(t, err)
}

func TestBudgetsAndSavingGoals(t *testing.T) {
	s := setupTestServer(t)
	userID, token := s.signup("Ann", "ann@example.com")

	_, err := call[ListBudgetsRequest, ListBudgetsResponse](s, ListBudgetsProcedure, token, &ListBudgetsRequest{})
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	food, err := s.svc.Categories.Add(s.ctx, "Food", "", userID)
	require.NoError(t, err)
	jan := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	_, err = s.svc.Transactions.Add(s.ctx, "groceries", -40, jan(5), userID, food.ID, nil)
	require.NoError(t, err)
	_, err = s.svc.Budgets.Add(s.ctx, jan(1), jan(31), 100, food.ID)
	require.NoError(t, err)
	_, err = s.svc.SavingGoals.Add(s.ctx, "Bike", 500, jan(31), userID)
	require.NoError(t, err)

	budgets, err := call[ListBudgetsRequest, ListBudgetsResponse](s, ListBudgetsProcedure, token, &ListBudgetsRequest{})
	require.NoError(t, err)
	require.Len(t, budgets.Budgets, 1)
	assert.Equal(t, 40.0, budgets.Budgets[0].Spent)
	assert.Equal(t, "Food", budgets.Budgets[0].CategoryName)

	goals, err := call[ListSavingGoalsRequest, ListSavingGoalsResponse](s, ListSavingGoalsProcedure, token, &ListSavingGoalsRequest{})
	require.NoError(t, err)
	require.Len(t, goals.SavingGoals, 1)
	assert.Equal(t, -40.0, goals.SavingGoals[0].AmountSaved)
}
