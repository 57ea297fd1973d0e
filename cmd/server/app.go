package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/gemini"
	"github.com/phrazzld/tasks-api/internal/query"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/suggestion"
)

// application holds the shared dependencies of the server and releases
// them on shutdown.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	storage *storage

	jwtService  auth.JWTService
	tasks       service.TaskService
	users       service.UserService
	suggestions service.SuggestionService
}

// newApplication wires services on top of already opened storage.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger, st *storage) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  log,
		storage: st,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	log.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	compiler := query.NewCompiler(
		query.WithLocation(cfg.Tasks.Location()),
		query.WithPageSizes(cfg.Tasks.DefaultPageSize, cfg.Tasks.MaxPageSize),
	)

	app.tasks, err = service.NewTaskService(st.tasks, st.users, compiler, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.users, err = service.NewUserService(st.users, app.jwtService, auth.NewBcryptVerifier(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	suggester, err := newSuggester(ctx, cfg.LLM, log)
	if err != nil {
		return nil, err
	}
	app.suggestions = service.NewSuggestionService(suggester, cfg.LLM.Timeout(), log)

	log.Info("application initialized")
	return app, nil
}

// newSuggester returns nil without an API key, which turns the suggestion
// endpoint into a 503.
func newSuggester(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (suggestion.Suggester, error) {
	if cfg.GeminiAPIKey == "" {
		log.Warn("no Gemini API key configured, AI suggestions are disabled")
		return nil, nil
	}
	s, err := gemini.NewSuggester(ctx, log, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AI suggester: %w", err)
	}
	log.Info("AI suggester initialized", "model", cfg.ModelName)
	return s, nil
}

// cleanup releases the database connections.
func (app *application) cleanup(context.Context) error {
	if app.storage == nil || app.storage.close == nil {
		return nil
	}
	if err := app.storage.close(); err != nil {
		app.logger.Error("error closing database connection", "error", err)
		return err
	}
	app.logger.Info("database connections closed")
	return nil
}
