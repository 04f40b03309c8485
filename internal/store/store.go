// Package store opens the configured persistence backend.
package store

import (
	"context"
	"fmt"
	"log/slog"

	dbfs "github.com/garnizeh/jobboard/db"
	"github.com/garnizeh/jobboard/internal/config"
	"github.com/garnizeh/jobboard/internal/db"
	"github.com/garnizeh/jobboard/internal/repository/postgres"
	"github.com/garnizeh/jobboard/internal/repository/sqlite"
	"github.com/garnizeh/jobboard/pkg/repository"
)

// Open connects to the database named by cfg. When migrate is true the
// embedded migrations for the driver are applied before returning.
func Open(ctx context.Context, cfg *config.Config, migrate bool, logger *slog.Logger) (repository.Store, error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		conn, err := db.New(ctx, cfg.DatabasePath, logger)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := db.Migrate(ctx, conn, dbfs.Migrations, dbfs.SQLiteDir); err != nil {
				conn.Close()
				return nil, fmt.Errorf("migrate sqlite: %w", err)
			}
		}
		return sqlite.New(conn, logger), nil

	case config.DriverPostgres:
		pool, err := postgres.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := postgres.Migrate(ctx, pool, dbfs.Migrations, dbfs.PostgresDir); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrate postgres: %w", err)
			}
		}
		return postgres.New(pool, logger), nil
	}

	return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
}
