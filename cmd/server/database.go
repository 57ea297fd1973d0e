package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/phrazzld/tasks-api/internal/store"
)

// storage bundles the stores of one backend with the function that
// releases its connections.
type storage struct {
	tasks store.TaskStore
	users store.UserStore
	close func() error
}

// openStorage connects to the backend named by cfg.Database.Driver.
func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (*storage, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := openPostgres(ctx, cfg.Database.URL, log)
		if err != nil {
			return nil, err
		}
		return &storage{
			tasks: postgres.NewPostgresTaskStore(db, log),
			users: postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost, log),
			close: db.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Database.URL, log)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite handle: %w", err)
		}
		log.Info("database connection established", "driver", config.DriverSQLite)
		return &storage{
			tasks: sqlite.NewTaskStore(db, log),
			users: sqlite.NewUserStore(db, cfg.Auth.BCryptCost, log),
			close: sqlDB.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// openPostgres opens a pgx-backed pool and checks it with a ping.
func openPostgres(ctx context.Context, url string, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established", "driver", config.DriverPostgres)
	return db, nil
}
