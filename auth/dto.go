// Data Transfer Objects for the auth endpoints, with their validation rules.
package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	Username string `json:"username" example:"newuser"`
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"strongpassword123"`
}

// Validate checks the registration payload. All three fields are required;
// the email must at least look like an email.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginRequest represents the login credentials. The login endpoint is
// form-encoded in the OAuth2 password-grant style, so this struct is filled
// from form fields rather than a JSON body.
type LoginRequest struct {
	Username string
	Password string
}

// Validate checks that both credentials were supplied.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// TokenResponse is returned to the client upon successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"bearer"`
}

// MessageResponse is a plain acknowledgment payload.
type MessageResponse struct {
	Msg string `json:"msg" example:"user created"`
}
