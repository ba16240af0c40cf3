package middleware

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/atinyakov/countrybook/internal/models"
)

// SessionChecker reports the currently active session. It is implemented by
// the session store and is only read here, never mutated.
type SessionChecker interface {
	CurrentSession() *models.Session
}

// RequireSession gates session-only routes.
//
// Browser routes are redirected to the login page with the originally
// requested location in the "next" query parameter, so a successful sign-in
// can return the user there. API routes receive a 401 JSON response instead.
func RequireSession(sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sessions.CurrentSession() != nil {
				next.ServeHTTP(w, r)
				return
			}

			if strings.HasPrefix(r.URL.Path, "/api/") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
				return
			}

			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
		})
	}
}
