package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// guardedEcho wires the session guard in front of a handler that reports the
// user id it received from the context.
func guardedEcho(codec *TokenCodec) (http.Handler, *int) {
	var seenUserID int
	h := SessionGuard(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		seenUserID = id
		w.WriteHeader(http.StatusOK)
	}))
	return h, &seenUserID
}

func TestSessionGuardMissingHeader(t *testing.T) {
	h, _ := guardedEcho(testCodec(time.Minute))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionGuardWrongScheme(t *testing.T) {
	h, _ := guardedEcho(testCodec(time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionGuardInvalidToken(t *testing.T) {
	h, _ := guardedEcho(testCodec(time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionGuardExpiredToken(t *testing.T) {
	expired := testCodec(-time.Minute)
	token, err := expired.Issue(7)
	require.NoError(t, err)

	h, _ := guardedEcho(testCodec(time.Minute))
	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionGuardValidToken(t *testing.T) {
	codec := testCodec(time.Minute)
	token, err := codec.Issue(7)
	require.NoError(t, err)

	h, seen := guardedEcho(codec)
	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, *seen)
}
