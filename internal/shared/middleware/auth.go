package middleware

import (
	"context"
	"net/http"
	"strings"

	"expensync/internal/shared/auth"
)

type ContextKey string

const (
	UserIDKey ContextKey = "user_id"
	EmailKey  ContextKey = "email"
)

// AccessValidator validates bearer access tokens.
type AccessValidator interface {
	ValidateAccess(token string) (*auth.Claims, error)
}

// Auth rejects requests without a valid access token and stores the caller's
// user ID and email in the request context.
func Auth(tokens AccessValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
					writeError(w, "Invalid authorization header format", http.StatusUnauthorized)
					return
				}
				token = parts[1]
			} else if cookie, err := r.Cookie("access_token"); err == nil {
				token = cookie.Value
			} else {
				writeError(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ValidateAccess(token)
			if err != nil {
				writeError(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user's ID from ctx.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok
}
