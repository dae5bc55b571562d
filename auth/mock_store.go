package auth

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MockUserStore simulates the users table for testing.
type MockUserStore struct {
	mu     sync.Mutex
	users  map[int]*User
	nextID int

	// FailWith, when set, is returned from every method.
	FailWith error
}

// NewMockUserStore initializes an empty mock store.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users:  make(map[int]*User),
		nextID: 1,
	}
}

func (m *MockUserStore) CreateUser(_ context.Context, user *User) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	// Mirror the real table's uniqueness constraints so the race backstop in
	// the service is exercisable.
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
		}
	}
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.nextID++
	stored := *user
	m.users[user.ID] = &stored
	return user, nil
}

func (m *MockUserStore) GetUserByUsername(_ context.Context, username string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	for _, u := range m.users {
		if u.Username == username {
			user := *u
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *MockUserStore) UserExists(_ context.Context, username, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return false, m.FailWith
	}
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// GetUserByID returns the stored user, pgx.ErrNoRows when absent. Kept on
// the mock so packages needing a user lookup by id can reuse it in tests.
func (m *MockUserStore) GetUserByID(_ context.Context, id int) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	user := *u
	return &user, nil
}
