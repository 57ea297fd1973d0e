package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// MockUserStore implements store.UserStore in memory for testing.
// Passwords are "hashed" by prefixing them with HashPrefix.
type MockUserStore struct {
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	ResolveNamesFn  func(ctx context.Context, ids []int64) (map[int64]string, error)

	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int64

	// ResolveNamesCalls records the ids of every ResolveNames call.
	ResolveNamesCalls [][]int64
}

// HashPrefix marks the fake hash produced by MockUserStore.Create.
const HashPrefix = "hashed:"

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates an empty mock store.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[string]*domain.User)}
}

// Seed adds users as-is, assigning ids to those without one.
func (m *MockUserStore) Seed(users ...*domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range users {
		if u.ID == 0 {
			m.nextID++
			u.ID = m.nextID
		} else if u.ID > m.nextID {
			m.nextID = u.ID
		}
		m.users[u.Username] = u
	}
}

// Create implements store.UserStore.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.Username]; exists {
		return store.ErrUsernameExists
	}
	m.nextID++
	user.ID = m.nextID
	user.HashedPassword = HashPrefix + user.Password
	user.Password = ""
	m.users[user.Username] = user
	return nil
}

// GetByID implements store.UserStore.
func (m *MockUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByUsername implements store.UserStore.
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

// ResolveNames implements store.UserStore.
func (m *MockUserStore) ResolveNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	m.mu.Lock()
	m.ResolveNamesCalls = append(m.ResolveNamesCalls, append([]int64(nil), ids...))
	m.mu.Unlock()

	if m.ResolveNamesFn != nil {
		return m.ResolveNamesFn(ctx, ids)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	names := make(map[int64]string, len(ids))
	for _, id := range ids {
		for _, u := range m.users {
			if u.ID == id {
				names[id] = u.Name()
			}
		}
	}
	return names, nil
}
