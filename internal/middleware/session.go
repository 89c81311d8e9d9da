package middleware

import (
	"context"
	"net/http"

	"github.com/atinyakov/taskmaster/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

// SessionSource exposes the currently signed-in profile, if any.
type SessionSource interface {
	Current() *models.Profile
}

// RequireSession is a middleware that rejects requests when nobody is signed
// in. The application holds at most one active session, so there is no
// per-request credential: a request is authenticated exactly when a session
// is active.
//
// On success it stores the signed-in email in the request context, so it can
// be used downstream as the task-store owner.
func RequireSession(sessions SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile := sessions.Current()
			if profile == nil {
				http.Error(w, "no active session", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, profile.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetEmailFromContext extracts the signed-in email from the request context.
// Returns an empty string if not found.
func GetEmailFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
