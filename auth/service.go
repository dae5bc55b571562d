package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/lichen-go/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// AuthService provides registration, login, and token issuance.
type AuthService struct {
	store UserStore
	codec *TokenCodec
}

// NewAuthService creates a new AuthService with its dependencies injected.
func NewAuthService(store UserStore, codec *TokenCodec) *AuthService {
	return &AuthService{
		store: store,
		codec: codec,
	}
}

// Codec exposes the token codec so the session middleware can share it.
func (s *AuthService) Codec() *TokenCodec {
	return s.codec
}

// Register creates a new user.
//
// The existence check and the insert are two separate statements; a race
// between concurrent registrations of the same name can pass both checks,
// so a unique violation on the insert is reported as the same conflict the
// pre-check would have produced. The database uniqueness constraints are
// the backstop.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	email := strings.ToLower(req.Email)

	exists, err := s.store.UserExists(ctx, req.Username, email)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to check existing users", err)
	}
	if exists {
		return nil, apperror.NewConflictError("user already exists", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Username:       req.Username,
		Email:          email,
		HashedPassword: string(hashedPassword),
	}

	createdUser, err := s.store.CreateUser(ctx, user)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("user already exists", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return createdUser, nil
}

// Login authenticates a user by username and password and returns a signed
// bearer token. Unknown usernames and wrong passwords produce the identical
// error so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewAuthError("invalid credentials", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}
