package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/youridegraef/qash-backend-sub000/internal/storage"
	"github.com/youridegraef/qash-backend-sub000/internal/storage/storagetest"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@localhost:5432/qash", migrateURL("postgres://u:p@localhost:5432/qash"))
	assert.Equal(t, "pgx5://localhost/qash?sslmode=disable", migrateURL("postgresql://localhost/qash?sslmode=disable"))
	assert.Equal(t, "pgx5://already", migrateURL("pgx5://already"))
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("QASH_POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("QASH_POSTGRES_TEST_URL not set")
	}

	suite.Run(t, &storagetest.Suite{
		NewStore: func(t *testing.T) storage.Store {
			ctx := context.Background()
			store, err := New(ctx, url)
			require.NoError(t, err)
			_, err = store.pool.Exec(ctx, "TRUNCATE users, categories, transactions, tags, transaction_tags, budgets, saving_goals RESTART IDENTITY CASCADE")
			require.NoError(t, err)
			return store
		},
	})
}
