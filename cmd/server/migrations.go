package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
)

// runMigrations executes a migration command against the configured
// database. SQLite schemas are managed by gorm and only support "up".
func runMigrations(ctx context.Context, cfg *config.Config, command string, log *slog.Logger) error {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := openPostgres(ctx, cfg.Database.URL, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("failed to close database", "error", err)
			}
		}()
		return postgres.Migrate(ctx, db, command, log)

	case config.DriverSQLite:
		if command != "up" {
			return fmt.Errorf("sqlite only supports the up migration, got %q", command)
		}
		db, err := sqlite.Open(cfg.Database.URL, log)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		log.Info("migration completed", "driver", config.DriverSQLite)
		return nil

	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
