package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/tasks-api/internal/suggestion"
)

// MockSuggester implements suggestion.Suggester for testing
type MockSuggester struct {
	// SuggestFn allows test cases to mock the Suggest behavior
	SuggestFn func(ctx context.Context, prompt string) (string, error)

	// Default response values
	Advice string
	Err    error

	mu      sync.Mutex
	prompts []string
}

var _ suggestion.Suggester = (*MockSuggester)(nil)

// Suggest implements the suggestion.Suggester interface
func (m *MockSuggester) Suggest(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.SuggestFn != nil {
		return m.SuggestFn(ctx, prompt)
	}
	return m.Advice, m.Err
}

// Prompts returns every prompt received so far.
func (m *MockSuggester) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}
