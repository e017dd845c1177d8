package middleware

import (
	"crypto/subtle"
	"net/http"
)

// CSRFProtection rejects state-changing requests that do not echo the
// session's token, either in X-CSRF-Token or the csrf_token form field.
// LoadSession must run first.
func CSRFProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		sessionToken := CSRFToken(r.Context())

		requestToken := r.Header.Get("X-CSRF-Token")
		if requestToken == "" {
			requestToken = r.FormValue("csrf_token")
		}

		if sessionToken == "" || subtle.ConstantTimeCompare([]byte(requestToken), []byte(sessionToken)) != 1 {
			if IsHTMXRequest(r) {
				writeAlert(w, http.StatusForbidden, "Security token mismatch. Please refresh the page and try again.")
			} else {
				http.Error(w, "CSRF token mismatch", http.StatusForbidden)
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}
