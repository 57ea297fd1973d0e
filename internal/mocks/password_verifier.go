package mocks

import (
	"strings"

	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// MockPasswordVerifier implements auth.PasswordVerifier against the fake
// hashes written by MockUserStore.
type MockPasswordVerifier struct {
	// CompareFn allows for custom comparison logic in tests
	CompareFn func(hashedPassword, password string) error

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCallCount++
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if strings.TrimPrefix(hashedPassword, HashPrefix) != password {
		return auth.ErrInvalidCredentials
	}
	return nil
}
