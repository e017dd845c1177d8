package middleware

import (
	"html"
	"net/http"
)

// writeAlert answers with a small notification fragment. Middleware cannot
// use the templ components, which themselves read the session from here.
func writeAlert(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(`<div class="alert alert-danger" role="alert">` + html.EscapeString(message) + `</div>`))
}
