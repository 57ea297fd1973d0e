package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	jwtService := &mocks.MockJWTService{
		ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
			switch token {
			case "good":
				return &auth.Claims{UserID: 7}, nil
			case "expired":
				return nil, auth.ErrExpiredToken
			case "future":
				return nil, auth.ErrTokenNotYetValid
			case "broken":
				return nil, errors.New("keystore unavailable")
			default:
				return nil, auth.ErrInvalidToken
			}
		},
	}
	mw := middleware.NewAuthMiddleware(jwtService)

	var seenUser int64
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser, _ = shared.GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{"valid token", "Bearer good", http.StatusNoContent, ""},
		{"lowercase scheme", "bearer good", http.StatusNoContent, ""},
		{"missing header", "", http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "Invalid authorization format"},
		{"no token", "Bearer ", http.StatusUnauthorized, "Invalid authorization format"},
		{"expired", "Bearer expired", http.StatusUnauthorized, "Token expired"},
		{"not yet valid", "Bearer future", http.StatusUnauthorized, "Invalid token"},
		{"invalid", "Bearer garbage", http.StatusUnauthorized, "Invalid token"},
		{"unexpected failure", "Bearer broken", http.StatusInternalServerError, "Authentication error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seenUser = 0
			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantError == "" {
				assert.Equal(t, int64(7), seenUser)
				return
			}
			assert.Zero(t, seenUser)
			var body shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantError, body.Error)
		})
	}
}
