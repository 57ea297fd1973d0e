package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/suggestion"
	"google.golang.org/genai"
)

// Defaults applied when the retry settings are out of range.
const (
	defaultMaxRetries = 3
	defaultBaseDelay  = 2 * time.Second
)

// ContentGenerator is the slice of the genai client used here.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Suggester asks a Gemini model for task planning advice.
type Suggester struct {
	logger     *slog.Logger
	models     ContentGenerator
	model      string
	maxRetries int
	baseDelay  time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

var _ suggestion.Suggester = (*Suggester)(nil)

// Option customizes a Suggester.
type Option func(*Suggester)

// WithContentGenerator replaces the genai client, mainly for tests.
func WithContentGenerator(g ContentGenerator) Option {
	return func(s *Suggester) {
		s.models = g
	}
}

// WithBaseDelay overrides the configured backoff base.
func WithBaseDelay(d time.Duration) Option {
	return func(s *Suggester) {
		s.baseDelay = d
	}
}

// NewSuggester builds a Suggester from cfg. Unless a generator is supplied
// through WithContentGenerator a genai client is created, which requires
// an API key.
func NewSuggester(ctx context.Context, log *slog.Logger, cfg config.LLMConfig, opts ...Option) (*Suggester, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if strings.TrimSpace(cfg.ModelName) == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", suggestion.ErrInvalidConfig)
	}

	s := &Suggester{
		logger:     log.With(slog.String("component", "gemini_suggester")),
		model:      cfg.ModelName,
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.RetryDelay(),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.maxRetries < 0 {
		s.logger.Warn("invalid max retries value, using default", "max_retries", defaultMaxRetries)
		s.maxRetries = defaultMaxRetries
	}
	if s.baseDelay <= 0 {
		s.logger.Warn("invalid retry delay value, using default", "base_delay", defaultBaseDelay)
		s.baseDelay = defaultBaseDelay
	}

	if s.models == nil {
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("%w: gemini API key cannot be empty", suggestion.ErrInvalidConfig)
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create Gemini client: %v", suggestion.ErrInvalidConfig, err)
		}
		s.models = client.Models
	}

	return s, nil
}

// Suggest sends prompt under the task-assistant system instruction and
// returns the model's text.
func (s *Suggester) Suggest(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", suggestion.ErrEmptyPrompt
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: suggestion.SystemInstruction}},
		},
	}

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		attemptNum := attempt + 1
		log.DebugContext(ctx, "calling Gemini API",
			"attempt", attemptNum,
			"max_attempts", s.maxRetries+1,
			"prompt_length", len(prompt))

		resp, err := s.models.GenerateContent(ctx, s.model, contents, cfg)
		if err == nil {
			text, perr := extractText(resp)
			if perr != nil {
				log.WarnContext(ctx, "permanent Gemini failure, not retrying",
					"attempt", attemptNum,
					"error", perr)
				return "", perr
			}
			log.InfoContext(ctx, "Gemini API call succeeded",
				"attempt", attemptNum,
				"response_length", len(text))
			return text, nil
		}

		log.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		if attempt >= s.maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				suggestion.ErrUpstream, s.maxRetries, err)
		}

		delay := s.backoff(attempt)
		log.InfoContext(ctx, "retrying after delay",
			"attempt", attemptNum,
			"delay", delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			log.WarnContext(ctx, "Gemini call cancelled during retry delay",
				"attempt", attemptNum,
				"ctx_err", ctx.Err())
			return "", fmt.Errorf("%w: %v", suggestion.ErrUpstream, ctx.Err())
		}
	}

	// unreachable: the loop returns on its last attempt
	return "", fmt.Errorf("%w: no attempts made", suggestion.ErrUpstream)
}

// backoff returns base * 2^attempt scaled by a jitter factor in [0.5, 1.0).
func (s *Suggester) backoff(attempt int) time.Duration {
	s.mu.Lock()
	jitter := 0.5 + s.rng.Float64()*0.5
	s.mu.Unlock()
	scaled := float64(s.baseDelay) * math.Pow(2, float64(attempt)) * jitter
	return time.Duration(scaled)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", suggestion.ErrInvalidResponse)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked (%s)", suggestion.ErrContentBlocked, resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: no candidates", suggestion.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason %s", suggestion.ErrContentBlocked, candidate.FinishReason)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content", suggestion.ErrInvalidResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: no text in response", suggestion.ErrInvalidResponse)
	}
	return b.String(), nil
}
