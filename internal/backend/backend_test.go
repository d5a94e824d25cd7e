package backend

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youridegraef/qash-backend-sub000/internal/config"
	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage/memory"
	"github.com/youridegraef/qash-backend-sub000/internal/storage/sqlite"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, err := Open(ctx, &config.Config{DBDriver: config.DriverMemory}, discard())
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &memory.Store{}, store)
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "qash.db")
		store, err := Open(ctx, &config.Config{DBDriver: config.DriverSQLite, DBPath: path}, discard())
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &sqlite.SQLiteStore{}, store)

		user := &models.User{Name: "Ann", Email: "ann@example.com", PasswordHash: "x"}
		require.NoError(t, store.CreateUser(ctx, user))
		assert.Positive(t, user.ID)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := Open(ctx, &config.Config{DBDriver: "mysql"}, discard())
		assert.ErrorContains(t, err, `unsupported storage driver: "mysql"`)
	})

	t.Run("unreachable postgres", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		_, err := Open(ctx, &config.Config{DBDriver: config.DriverPostgres, DatabaseURL: "postgres://qash@127.0.0.1:1/qash?connect_timeout=1"}, discard())
		assert.Error(t, err)
	})
}
