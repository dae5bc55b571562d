// Package auth is responsible for handling authentication and authorization
// logic: user registration, password login, bearer token issuance, and token
// verification for protected routes.
package auth

import "time"

// User represents a user account as stored in the database.
// The password hash is excluded from JSON so it can never leak through an
// API response.
type User struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
