package middleware

import (
	"net/http"

	"github.com/platewise/platewise/internal/auth"
)

// RequireAdmin returns middleware that restricts a route to admin actors.
// Must be applied after Auth middleware. Services still run their own
// policy checks; this guard keeps admin routes from reaching them at all.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := auth.ActorFromContext(r.Context())
			if !ok {
				writeRoleError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}

			if !actor.IsAdmin() {
				writeRoleError(w, http.StatusForbidden, "FORBIDDEN", "Admin role required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeRoleError writes a role-related error response.
func writeRoleError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":{"code":"` + code + `","message":"` + message + `"}}`))
}
