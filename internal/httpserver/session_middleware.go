package httpserver

import (
	"context"
	"net/http"
	"strings"

	"medinbox/internal/domain"
	"medinbox/internal/service"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// sessionHeader selects the acting user for a request. It is identity
// selection within one session, not authentication.
const sessionHeader = "X-User-ID"

// WithUser returns a new context carrying the current user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// CurrentUser extracts the current user from context, if any.
func CurrentUser(r *http.Request) *domain.User {
	if v := r.Context().Value(userContextKey); v != nil {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

// SessionMiddleware attaches the acting user to the context. Ids missing
// from the directory resolve to an unknown-sender placeholder.
func SessionMiddleware(users *service.UserService, defaultUserID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(sessionHeader))
			if id == "" {
				id = defaultUserID
			}
			if id == "" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "no session user"})
				return
			}

			user, err := users.ResolveSender(r.Context(), id, id)
			if err != nil {
				writeError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
