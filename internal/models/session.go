package models

import "net/http"

// Session is the identity the console holds for a signed in browser.
// Email and Role are display only; the backend makes every access decision.
type Session struct {
	UserID         int64
	Email          string
	Role           string
	Token          string
	BackendCookies []*http.Cookie
	CSRFToken      string
}

// Authenticated reports whether the session belongs to a signed in user
func (s *Session) Authenticated() bool {
	return s != nil && s.Email != ""
}

// IsAdmin reports whether the cached role names the admin role
func (s *Session) IsAdmin() bool {
	return s != nil && IsAdminRole(s.Role)
}

// DisplayName is shown in the top bar as "email • Role"
func (s *Session) DisplayName() string {
	if s == nil || s.Email == "" {
		return ""
	}
	if s.Role == "" {
		return s.Email
	}
	return s.Email + " • " + DisplayRole(s.Role)
}
