// Package users exposes read access to the authenticated user's own profile.
// Accounts are immutable once registered, so the module is read-only.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/user/lichen-go/apperror"
	"github.com/user/lichen-go/auth"
)

// UserStore is the lookup this package needs from persistence. The auth
// package's mock store satisfies it in tests.
type UserStore interface {
	GetUserByID(ctx context.Context, id int) (*auth.User, error)
}

// UserProfileResponse represents the data returned for a user profile.
type UserProfileResponse struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserService provides user profile reads.
type UserService struct {
	store UserStore
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// GetUserProfile retrieves a user's profile by id. The session guard trusts
// tokens at face value, so a valid token can outlive its account; that case
// surfaces here as not-found.
func (s *UserService) GetUserProfile(ctx context.Context, userID int) (*UserProfileResponse, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with id %d not found", userID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user profile", err)
	}

	return &UserProfileResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}
