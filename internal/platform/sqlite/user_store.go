package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore implements store.UserStore on gorm.
type UserStore struct {
	db         *gorm.DB
	bcryptCost int
	logger     *slog.Logger
}

// NewUserStore creates a UserStore. A bcryptCost outside bcrypt's accepted
// range falls back to bcrypt.DefaultCost.
func NewUserStore(db *gorm.DB, bcryptCost int, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		db:         db,
		bcryptCost: bcryptCost,
		logger:     logger.With(slog.String("component", "sqlite_user_store")),
	}
}

var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	rec := &userRecord{
		Username:     user.Username,
		DisplayName:  user.DisplayName,
		PasswordHash: string(hash),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		if isDuplicate(err) {
			return store.ErrUsernameExists
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create user",
			slog.String("error", err.Error()))
		return fmt.Errorf("create user: %w", err)
	}

	user.ID = rec.ID
	user.HashedPassword = rec.PasswordHash
	user.Password = ""
	return nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GetByID implements store.UserStore.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.first(ctx, "id = ?", id)
}

// GetByUsername implements store.UserStore.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.first(ctx, "username = ?", username)
}

func (s *UserStore) first(ctx context.Context, where string, arg any) (*domain.User, error) {
	var rec userRecord
	if err := s.db.WithContext(ctx).Where(where, arg).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return rec.toDomain(), nil
}

// ResolveNames implements store.UserStore.
func (s *UserStore) ResolveNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var recs []userRecord
	if err := s.db.WithContext(ctx).Select("id", "display_name").Where("id IN ?", ids).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("resolve user names: %w", err)
	}
	for _, r := range recs {
		names[r.ID] = r.DisplayName
	}
	return names, nil
}
