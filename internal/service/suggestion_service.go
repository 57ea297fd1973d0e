package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/suggestion"
)

// MaxPromptLength bounds the prompt forwarded to the assistant, in runes.
const MaxPromptLength = 4000

// SuggestionService asks the AI assistant for planning advice.
type SuggestionService interface {
	// Suggest returns advice for prompt. Upstream failures of any kind are
	// reported as ErrSuggestionFailed.
	Suggest(ctx context.Context, actorID int64, prompt string) (string, error)
}

type suggestionServiceImpl struct {
	suggester suggestion.Suggester
	timeout   time.Duration
	logger    *slog.Logger
}

// NewSuggestionService creates a SuggestionService. A nil suggester yields
// a service that always returns ErrSuggestionUnavailable.
func NewSuggestionService(s suggestion.Suggester, timeout time.Duration, logger *slog.Logger) SuggestionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &suggestionServiceImpl{
		suggester: s,
		timeout:   timeout,
		logger:    logger.With(slog.String("component", "suggestion_service")),
	}
}

// Suggest implements SuggestionService.
func (s *suggestionServiceImpl) Suggest(ctx context.Context, actorID int64, prompt string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", domain.NewValidationError("prompt", "prompt is required", nil)
	}
	if len([]rune(prompt)) > MaxPromptLength {
		return "", domain.NewValidationError("prompt", "prompt is too long", nil)
	}
	if s.suggester == nil {
		return "", ErrSuggestionUnavailable
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	advice, err := s.suggester.Suggest(ctx, prompt)
	if err != nil {
		level := slog.LevelError
		if errors.Is(err, suggestion.ErrContentBlocked) {
			level = slog.LevelWarn
		}
		log.Log(ctx, level, "AI suggestion failed",
			"actor_id", actorID,
			"duration", time.Since(start),
			"error", err)
		return "", ErrSuggestionFailed
	}

	log.Info("AI suggestion returned",
		"actor_id", actorID,
		"duration", time.Since(start),
		"response_length", len(advice))
	return advice, nil
}
