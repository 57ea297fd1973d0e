package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// UserService provides registration and login.
type UserService interface {
	// Register creates a user. The display name defaults to the username.
	Register(ctx context.Context, username, displayName, password string) (*domain.User, error)

	// Login verifies credentials and issues an access token.
	// Returns ErrInvalidCredentials for an unknown user or a wrong password.
	Login(ctx context.Context, username, password string) (*Session, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	tokens    auth.JWTService
	passwords auth.PasswordVerifier
	now       func() time.Time
	logger    *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	tokens auth.JWTService,
	passwords auth.PasswordVerifier,
	logger *slog.Logger,
) (*UserServiceImpl, error) {
	if userStore == nil || tokens == nil || passwords == nil {
		return nil, errors.New("user service dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		tokens:    tokens,
		passwords: passwords,
		now:       time.Now,
		logger:    logger.With(slog.String("component", "user_service")),
	}, nil
}

// Register implements UserService.
func (s *UserServiceImpl) Register(ctx context.Context, username, displayName, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(username, displayName, password)
	if err != nil {
		log.Debug("invalid registration", "username", username, "error", err)
		return nil, userValidationError(err)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			log.Debug("attempted to register existing username", "username", user.Username)
			return nil, ErrUsernameTaken
		}
		if errors.Is(err, store.ErrInvalidEntity) {
			return nil, userValidationError(err)
		}
		log.Error("failed to save user", "username", user.Username, "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login implements UserService.
func (s *UserServiceImpl) Login(ctx context.Context, username, password string) (*Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown username", "username", username)
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to load user for login", "username", username, "error", err)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.passwords.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error("failed to issue token", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info("user logged in", "user_id", user.ID)
	return &Session{
		Token:     token,
		ExpiresAt: s.now().Add(s.tokens.TokenLifetime()).UTC(),
		User:      user,
	}, nil
}

// userValidationError turns the plain domain user errors into field-level
// validation errors.
func userValidationError(err error) error {
	field := "username"
	switch {
	case errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrEmptyHashedPassword):
		field = "password"
	case errors.Is(err, domain.ErrDisplayNameTooLong):
		field = "displayName"
	}
	return domain.NewValidationError(field, err.Error(), nil)
}
