package middleware

import (
	"net/http"
	"strings"

	"greentasty-reservation-services/internal/auth"
)

// TaskAuth guards internal maintenance endpoints, like the manual
// reconcile trigger, with a shared bearer token. An empty configured token
// disables the endpoints entirely.
func TaskAuth(taskToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			secret := strings.TrimSpace(taskToken)
			if secret == "" {
				writeAuthError(w, http.StatusForbidden, "Internal task access is disabled")
				return
			}

			token := strings.TrimSpace(auth.ParseBearerToken(r.Header.Get("Authorization")))
			if token == "" || token != secret {
				writeAuthError(w, http.StatusUnauthorized, "Invalid task token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
