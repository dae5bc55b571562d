package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserStore is the persistence boundary the auth service talks to.
// The pgx-backed implementation below is used in production; tests use the
// in-memory mock from mock_store.go.
type UserStore interface {
	// CreateUser inserts the user and fills in its store-generated id and
	// creation time.
	CreateUser(ctx context.Context, user *User) (*User, error)
	// GetUserByUsername returns pgx.ErrNoRows when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	// UserExists reports whether any user already holds the username or the
	// email.
	UserExists(ctx context.Context, username, email string) (bool, error)
}

// PgxUserStore implements UserStore against PostgreSQL.
type PgxUserStore struct {
	db *pgxpool.Pool
}

// NewPgxUserStore creates a UserStore backed by the given pool.
func NewPgxUserStore(db *pgxpool.Pool) *PgxUserStore {
	return &PgxUserStore{db: db}
}

func (s *PgxUserStore) CreateUser(ctx context.Context, user *User) (*User, error) {
	query := `INSERT INTO users (username, email, password_hash)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at`
	err := s.db.QueryRow(ctx, query, user.Username, user.Email, user.HashedPassword).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *PgxUserStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	query := `SELECT id, username, email, password_hash, created_at
	          FROM users WHERE username = $1`
	err := s.db.QueryRow(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PgxUserStore) UserExists(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)`
	err := s.db.QueryRow(ctx, query, username, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
