package users

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/lichen-go/auth"
)

// PgxUserStore implements UserStore against PostgreSQL.
type PgxUserStore struct {
	db *pgxpool.Pool
}

// NewPgxUserStore creates a UserStore backed by the given pool.
func NewPgxUserStore(db *pgxpool.Pool) *PgxUserStore {
	return &PgxUserStore{db: db}
}

func (s *PgxUserStore) GetUserByID(ctx context.Context, id int) (*auth.User, error) {
	var user auth.User
	query := `SELECT id, username, email, password_hash, created_at
	          FROM users WHERE id = $1`
	err := s.db.QueryRow(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
