// Package backend opens the storage backend selected in the configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/youridegraef/qash-backend-sub000/internal/config"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
	"github.com/youridegraef/qash-backend-sub000/internal/storage/memory"
	"github.com/youridegraef/qash-backend-sub000/internal/storage/postgres"
	"github.com/youridegraef/qash-backend-sub000/internal/storage/sqlite"
)

// Open creates the store for cfg.DBDriver. Migrations run as part of
// opening a SQL backend. The caller owns the returned store and must
// Close it.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.DBDriver {
	case config.DriverSQLite:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.DBPath)
		return store, nil

	case config.DriverPostgres:
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres store: %w", err)
		}
		logger.Info("Initialized Postgres backend")
		return store, nil

	case config.DriverMemory:
		logger.Warn("Initialized memory backend, data is lost on exit")
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.DBDriver)
	}
}
