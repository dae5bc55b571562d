// HTTP middleware guarding the authenticated routes. It turns a raw bearer
// token into a trusted user id in the request context, or rejects the
// request with a 401 before it reaches any handler.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/user/lichen-go/apperror"
)

// ContextKey is a type used for context keys to avoid collisions with keys
// set by other packages.
type ContextKey string

// UserIDKey is the key under which the authenticated user's id is stored in
// the request context.
const UserIDKey ContextKey = "userID"

// SessionGuard returns middleware that authenticates requests with the given
// codec. It is stateless and performs no store lookup: a valid signature and
// an unexpired exp claim are taken at face value. Any failure, missing
// header, wrong scheme, bad signature, expired token, unparsable subject,
// yields the same 401.
func SessionGuard(codec *TokenCodec) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("authorization header is missing", nil))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				WriteError(w, r, apperror.NewAuthError("authorization header format must be Bearer {token}", nil))
				return
			}

			userID, err := codec.Decode(parts[1])
			if err != nil {
				WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext retrieves the user id placed in the context by
// SessionGuard. Returns 0 and false when the request was not authenticated.
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}
