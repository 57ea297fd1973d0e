// Package main implements the entry point for the tasks API server, which
// stores users' tasks and forwards planning questions to an AI assistant.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		fmt.Sprintf("run a migration command and exit (%v)", postgres.MigrationCommands))
	flag.Parse()

	cfg, log, err := initializeApp()
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if *migrateCmd != "" {
		if err := runMigrations(ctx, cfg, *migrateCmd, log); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		return
	}

	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open storage", "error", err)
		os.Exit(1)
	}

	app, err := newApplication(ctx, cfg, log, st)
	if err != nil {
		log.Error("failed to build application", "error", err)
		_ = st.close()
		os.Exit(1)
	}

	os.Exit(app.Run(ctx))
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"timezone", cfg.Tasks.Timezone)
	log.Debug("optional configuration",
		"gemini_api_key_present", cfg.LLM.GeminiAPIKey != "")

	return cfg, log, nil
}
