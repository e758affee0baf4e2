package api

import (
	"context"
	"net/http"
	"strings"
)

// UserIDHeader carries the caller's identity. It is trusted as-is; there is no
// authentication in front of this service.
const UserIDHeader = "x-user-id"

type contextKey string

const userIDKey contextKey = "userID"

// Identity resolves the caller from UserIDHeader, falling back to
// defaultUserID, and stores it in the request context.
func Identity(defaultUserID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
			if userID == "" {
				userID = defaultUserID
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the identity set by Identity, or "" when absent.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}
