package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/youridegraef/qash-backend-sub000/internal/auth"
	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage/memory"
)

const (
	testJWTKey    = "0123456789abcdef0123456789abcdef"
	testJWTIssuer = "qash-test"
)

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	svc      *Services
	user     *models.User
	category *CategoryDTO
}

// newFixture wires every service against a fresh memory store and seeds one
// user with one category.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	store := memory.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &fixture{
		ctx:   context.Background(),
		store: store,
		svc:   New(store, hasher, time.Hour, logger),
	}

	f.user, err = f.svc.Users.Register(f.ctx, "Alice", "alice@example.com", "s3cret", nil)
	require.NoError(t, err)

	f.category, err = f.svc.Categories.Add(f.ctx, "Groceries", "#00ff00", f.user.ID)
	require.NoError(t, err)

	return f
}

func (f *fixture) addTx(t *testing.T, amount float64, date time.Time) *TransactionDTO {
	t.Helper()
	tx, err := f.svc.Transactions.Add(f.ctx, "entry", amount, date, f.user.ID, f.category.ID, nil)
	require.NoError(t, err)
	return tx
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
