package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/youridegraef/qash-backend-sub000/internal/api"
	"github.com/youridegraef/qash-backend-sub000/internal/auth"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
	"github.com/youridegraef/qash-backend-sub000/internal/storage/memory"
)

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

type harness struct {
	t      *testing.T
	ctx    context.Context
	svc    *service.Services
	tokens api.Tokens
	server *httptest.Server
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(memory.New(), hasher, time.Hour, logger)
	tokens := api.NewTokens("0123456789abcdef0123456789abcdef", "qash-test", time.Hour)

	server := httptest.NewServer(NewHandler(svc, tokens))
	t.Cleanup(server.Close)
	return &harness{t: t, ctx: context.Background(), svc: svc, tokens: tokens, server: server}
}

// signup registers a user and returns its id and a bearer token.
func (h *harness) signup(name, email string) (int, string) {
	h.t.Helper()
	u, err := h.svc.Users.Register(h.ctx, name, email, "s3cret", nil)
	require.NoError(h.t, err)
	res, err := h.svc.Users.Authenticate(h.ctx, email, "s3cret", h.tokens.Key, h.tokens.Issuer)
	require.NoError(h.t, err)
	return u.ID, res.Token
}

func (h *harness) query(token, query string, variables map[string]any) (int, gqlResponse) {
	h.t.Helper()
	body, err := json.Marshal(map[string]any{"query": query, "variables": variables})
	require.NoError(h.t, err)
	req, err := http.NewRequest(http.MethodPost, h.server.URL, bytes.NewReader(body))
	require.NoError(h.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()

	var out gqlResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(h.t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRequiresBearerToken(t *testing.T) {
	h := newHarness(t)
	status, _ := h.query("", `{ me { id } }`, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = h.query("garbage", `{ me { id } }`, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLedgerQuery(t *testing.T) {
	h := newHarness(t)
	userID, token := h.signup("Ann", "ann@example.com")

	food, err := h.svc.Categories.Add(h.ctx, "Food", "#ff0000", userID)
	require.NoError(t, err)
	tag, err := h.svc.Tags.Add(h.ctx, "weekly", "#00ff00", userID)
	require.NoError(t, err)
	_, err = h.svc.Transactions.Add(h.ctx, "groceries", -45.5, day(2024, 3, 1), userID, food.ID, []int{tag.ID})
	require.NoError(t, err)
	_, err = h.svc.Transactions.Add(h.ctx, "salary", 1000, day(2024, 4, 2), userID, food.ID, nil)
	require.NoError(t, err)
	_, err = h.svc.Budgets.Add(h.ctx, day(2024, 3, 1), day(2024, 3, 31), 200, food.ID)
	require.NoError(t, err)
	_, err = h.svc.SavingGoals.Add(h.ctx, "Bike", 1500, day(2024, 12, 31), userID)
	require.NoError(t, err)

	status, resp := h.query(token, `{
		me { name email dateOfBirth }
		summary { balance income expenses }
		transactions { description amount date isIncome category { name } tags { name } }
		budgets { target spent category { name } }
		savingGoals { name amountSaved deadline }
		categories { name spendings march: spendings(start: "2024-03-01", end: "2024-03-01") }
	}`, nil)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, resp.Errors)

	var data struct {
		Me struct {
			Name        string
			Email       string
			DateOfBirth *string
		}
		Summary struct {
			Balance, Income, Expenses float64
		}
		Transactions []struct {
			Description string
			Amount      float64
			Date        string
			IsIncome    bool
			Category    struct{ Name string }
			Tags        []struct{ Name string }
		}
		Budgets []struct {
			Target, Spent float64
			Category      struct{ Name string }
		}
		SavingGoals []struct {
			Name        string
			AmountSaved float64
			Deadline    string
		}
		Categories []struct {
			Name      string
			Spendings float64
			March     float64
		}
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))

	assert.Equal(t, "Ann", data.Me.Name)
	assert.Nil(t, data.Me.DateOfBirth)
	assert.Equal(t, 954.5, data.Summary.Balance)
	assert.Equal(t, 1000.0, data.Summary.Income)
	assert.Equal(t, 45.5, data.Summary.Expenses)

	require.Len(t, data.Transactions, 2)
	assert.Equal(t, "salary", data.Transactions[0].Description)
	assert.True(t, data.Transactions[0].IsIncome)
	assert.Equal(t, "2024-03-01", data.Transactions[1].Date)
	assert.Equal(t, "Food", data.Transactions[1].Category.Name)
	require.Len(t, data.Transactions[1].Tags, 1)
	assert.Equal(t, "weekly", data.Transactions[1].Tags[0].Name)

	require.Len(t, data.Budgets, 1)
	assert.Equal(t, 45.5, data.Budgets[0].Spent)
	assert.Equal(t, "Food", data.Budgets[0].Category.Name)

	require.Len(t, data.SavingGoals, 1)
	assert.Equal(t, 954.5, data.SavingGoals[0].AmountSaved)
	assert.Equal(t, "2024-12-31", data.SavingGoals[0].Deadline)

	require.Len(t, data.Categories, 1)
	assert.Equal(t, 954.5, data.Categories[0].Spendings)
	assert.Equal(t, -45.5, data.Categories[0].March)
}

func TestPagedTransactions(t *testing.T) {
	h := newHarness(t)
	userID, token := h.signup("Ann", "ann@example.com")
	food, err := h.svc.Categories.Add(h.ctx, "Food", "", userID)
	require.NoError(t, err)
	for i := 1; i <= 3; i++ {
		_, err := h.svc.Transactions.Add(h.ctx, "tx", -float64(i), day(2024, 1, i), userID, food.ID, nil)
		require.NoError(t, err)
	}

	status, resp := h.query(token, `query($p: Int, $s: Int) { transactions(page: $p, pageSize: $s) { amount } }`,
		map[string]any{"p": 2, "s": 2})
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, resp.Errors)

	var data struct {
		Transactions []struct{ Amount float64 }
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data.Transactions, 1)
	assert.Equal(t, -1.0, data.Transactions[0].Amount)
}

func TestErrorsCarryCodes(t *testing.T) {
	h := newHarness(t)
	annID, _ := h.signup("Ann", "ann@example.com")
	_, bobToken := h.signup("Bob", "bob@example.com")

	food, err := h.svc.Categories.Add(h.ctx, "Food", "", annID)
	require.NoError(t, err)

	tests := []struct {
		name    string
		query   string
		vars    map[string]any
		code    string
		message string
	}{
		{
			name:    "someone else's category",
			query:   `query($id: Int!) { category(id: $id) { name } }`,
			vars:    map[string]any{"id": food.ID},
			code:    api.CodeNotFound,
			message: "category",
		},
		{
			name:    "empty collection",
			query:   `{ transactions { id } }`,
			code:    api.CodeNotFound,
			message: "no transactions found",
		},
		{
			name:    "missing budget",
			query:   `{ budget(id: 999) { id } }`,
			code:    api.CodeNotFound,
			message: "budget 999 not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, resp := h.query(bobToken, tt.query, tt.vars)
			require.Len(t, resp.Errors, 1)
			assert.Equal(t, tt.code, resp.Errors[0].Extensions["code"])
			assert.Contains(t, resp.Errors[0].Message, tt.message)
		})
	}
}

func TestSpendingsRangeValidation(t *testing.T) {
	h := newHarness(t)
	userID, token := h.signup("Ann", "ann@example.com")
	_, err := h.svc.Categories.Add(h.ctx, "Food", "", userID)
	require.NoError(t, err)

	_, resp := h.query(token, `{ categories { spendings(start: "2024-01-01") } }`, nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, api.CodeValidationFailed, resp.Errors[0].Extensions["code"])

	_, resp = h.query(token, `{ categories { spendings(start: "yesterday", end: "2024-01-01") } }`, nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, api.CodeValidationFailed, resp.Errors[0].Extensions["code"])
}
