package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{NewAuthError("no", nil), http.StatusUnauthorized},
		{NewConflictError("taken", nil), http.StatusBadRequest},
		{NewValidationError("bad", nil), http.StatusBadRequest},
		{NewBadRequestError("bad", nil), http.StatusBadRequest},
		{NewNotFoundError("gone", nil), http.StatusNotFound},
		{NewDatabaseError("down", nil), http.StatusInternalServerError},
		{NewInternalError("oops", nil), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.status, c.err.StatusCode())
	}
}

func TestResponseHidesUnderlyingError(t *testing.T) {
	underlying := errors.New("connection refused to 10.0.0.5:5432")
	err := NewDatabaseError("failed to create user", underlying)

	assert.Equal(t, "failed to create user", err.ToResponse().Error)
	// The wrapped error stays available server-side.
	assert.ErrorIs(t, err, underlying)
}

func TestFromError(t *testing.T) {
	appErr := NewConflictError("user already exists", nil)

	got, ok := FromError(appErr)
	assert.True(t, ok)
	assert.Same(t, appErr, got)

	// Wrapped AppErrors are still recognized.
	wrapped := fmt.Errorf("handler: %w", appErr)
	got, ok = FromError(wrapped)
	assert.True(t, ok)
	assert.Same(t, appErr, got)

	_, ok = FromError(errors.New("plain"))
	assert.False(t, ok)

	assert.True(t, IsConflictError(wrapped))
	assert.False(t, IsAuthError(wrapped))
}
