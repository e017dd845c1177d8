package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"lankarail-console/internal/auth"
	"lankarail-console/internal/logger"
	"lankarail-console/internal/models"
)

type contextKey string

const (
	SessionContextKey contextKey = "session"
)

// Where the console sends people
const (
	LoginPath              = "/login"
	AdminDashboardPath     = "/admin/dashboard"
	PassengerDashboardPath = "/passenger/dashboard"
)

// AuthMiddleware provides session loading and the auth guards
type AuthMiddleware struct {
	sessions *SessionManager
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(sessions *SessionManager, log *zap.Logger) *AuthMiddleware {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthMiddleware{sessions: sessions, logger: log}
}

// LoadSession puts the browser's session into the request context. Every
// session, signed in or not, leaves here with a CSRF token. A session whose
// backend token has expired is dropped before any backend call is made.
func (m *AuthMiddleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.sessions.Load(r)
		if err != nil {
			logger.For(r.Context(), m.logger).Debug("discarding unreadable session", zap.Error(err))
		}

		if sess.Authenticated() && auth.Expired(sess.Token, time.Now()) {
			logger.For(r.Context(), m.logger).Info("backend token expired, signing out", zap.String("email", sess.Email))
			sess = &models.Session{CSRFToken: sess.CSRFToken}
			if err := m.sessions.Save(w, r, sess); err != nil {
				logger.For(r.Context(), m.logger).Error("failed to save session", zap.Error(err))
			}
		}

		if sess.CSRFToken == "" {
			sess.CSRFToken = GenerateCSRFToken()
			if err := m.sessions.Save(w, r, sess); err != nil {
				logger.For(r.Context(), m.logger).Error("failed to save session", zap.Error(err))
			}
		}

		next.ServeHTTP(w, r.WithContext(SetSessionContext(r.Context(), sess)))
	})
}

// RequireAuth sends anonymous requests to the login page
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetSessionFromContext(r.Context()).Authenticated() {
			if IsHTMXRequest(r) {
				w.Header().Set("HX-Redirect", LoginPath)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, LoginPath+"?redirect="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin keeps non-admin sessions off the admin pages. It only decides
// which page to show; the backend still answers 403 for anything it refuses.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetSessionFromContext(r.Context()).IsAdmin() {
			Redirect(w, r, PassengerDashboardPath)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// RedirectIfAuthenticated skips the login and register pages for signed in users
func (m *AuthMiddleware) RedirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := GetSessionFromContext(r.Context())
		if r.Method == http.MethodGet && sess.Authenticated() {
			Redirect(w, r, DashboardPath(sess))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// DashboardPath picks the landing page for a role
func DashboardPath(sess *models.Session) string {
	if sess.IsAdmin() {
		return AdminDashboardPath
	}
	return PassengerDashboardPath
}

// Redirect sends HTMX requests an HX-Redirect and everything else a 303
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMXRequest(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// GetSessionFromContext retrieves the session from request context
func GetSessionFromContext(ctx context.Context) *models.Session {
	sess, ok := ctx.Value(SessionContextKey).(*models.Session)
	if !ok {
		return nil
	}
	return sess
}

// SetSessionContext sets the session in the context
func SetSessionContext(ctx context.Context, sess *models.Session) context.Context {
	return context.WithValue(ctx, SessionContextKey, sess)
}

// CSRFToken returns the token forms must echo back
func CSRFToken(ctx context.Context) string {
	if sess := GetSessionFromContext(ctx); sess != nil {
		return sess.CSRFToken
	}
	return ""
}

// IsHTMXRequest checks if the request is from HTMX
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// GenerateCSRFToken generates a CSRF token for the session
func GenerateCSRFToken() string {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(tokenBytes)
}
