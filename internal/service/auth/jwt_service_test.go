package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 0})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 30})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, svc.TokenLifetime())
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc, err := newHMACJWTService(testSecret, time.Hour, fixedClock(issued))
	require.NoError(t, err)

	token, err := svc.GenerateToken(context.Background(), 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, issued.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, issued.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)

	_, err = svc.GenerateToken(context.Background(), 0)
	assert.Error(t, err)
}

func TestValidateToken_Failures(t *testing.T) {
	t.Parallel()
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := newHMACJWTService(testSecret, time.Hour, fixedClock(issued))
	require.NoError(t, err)
	token, err := issuer.GenerateToken(context.Background(), 7)
	require.NoError(t, err)

	tests := []struct {
		name    string
		secret  string
		now     time.Time
		token   string
		wantErr error
	}{
		{"expired", testSecret, issued.Add(2 * time.Hour), token, ErrExpiredToken},
		{"within clock skew", testSecret, issued.Add(time.Hour + time.Minute), token, nil},
		{"not yet valid", testSecret, issued.Add(-time.Hour), token, ErrTokenNotYetValid},
		{"wrong secret", "another-secret-that-is-long-enough-too", issued, token, ErrInvalidToken},
		{"malformed", testSecret, issued, "not.a.jwt", ErrInvalidToken},
		{"missing", testSecret, issued, "", ErrMissingToken},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, err := newHMACJWTService(tc.secret, time.Hour, fixedClock(tc.now))
			require.NoError(t, err)
			_, err = svc.ValidateToken(context.Background(), tc.token)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidateToken_RejectsOtherTokenTypes(t *testing.T) {
	t.Parallel()
	now := time.Now()
	claims := jwtCustomClaims{
		UserID:    7,
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	svc, err := newHMACJWTService(testSecret, time.Hour, time.Now)
	require.NoError(t, err)
	_, err = svc.ValidateToken(context.Background(), signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptVerifier(t *testing.T) {
	t.Parallel()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse battery"), bcrypt.MinCost)
	require.NoError(t, err)

	v := NewBcryptVerifier()
	assert.NoError(t, v.Compare(string(hash), "correct horse battery"))
	assert.ErrorIs(t, v.Compare(string(hash), "wrong password!!"), ErrInvalidCredentials)
	assert.Error(t, v.Compare("not-a-hash", "anything"))
}
