package middleware

import (
	"crypto/sha256"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"

	"lankarail-console/internal/models"
)

// SessionName is the cookie holding the console session
const SessionName = "lankarail_session"

const (
	keyUserID         = "user_id"
	keyEmail          = "email"
	keyRole           = "role"
	keyToken          = "token"
	keyBackendCookies = "backend_cookies"
	keyCSRFToken      = "csrf_token"
)

// NewCookieStore creates the encrypted cookie store sessions live in. The
// secret signs the cookie and an AES-256 key derived from it encrypts it.
func NewCookieStore(secret string, maxAge int, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret), sessionBlockKey(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// sessionBlockKey keeps the encryption key distinct from the signing key
func sessionBlockKey(secret string) []byte {
	key := sha256.Sum256([]byte("lankarail-session-encryption:" + secret))
	return key[:]
}

// SessionManager maps between the cookie session and models.Session
type SessionManager struct {
	store sessions.Store
}

// NewSessionManager creates a new session manager
func NewSessionManager(store sessions.Store) *SessionManager {
	return &SessionManager{store: store}
}

// Load reads the session from the request. A cookie that cannot be decoded
// yields an empty session together with the decode error.
func (m *SessionManager) Load(r *http.Request) (*models.Session, error) {
	session, err := m.store.Get(r, SessionName)
	if err != nil {
		return &models.Session{}, err
	}

	sess := &models.Session{}
	if v, ok := session.Values[keyUserID].(int64); ok {
		sess.UserID = v
	}
	sess.Email, _ = session.Values[keyEmail].(string)
	sess.Role, _ = session.Values[keyRole].(string)
	sess.Token, _ = session.Values[keyToken].(string)
	sess.CSRFToken, _ = session.Values[keyCSRFToken].(string)
	if raw, ok := session.Values[keyBackendCookies].(string); ok {
		sess.BackendCookies = decodeCookies(raw)
	}
	return sess, nil
}

// Save writes sess to the response cookie
func (m *SessionManager) Save(w http.ResponseWriter, r *http.Request, sess *models.Session) error {
	session, _ := m.store.Get(r, SessionName)
	session.Values[keyUserID] = sess.UserID
	session.Values[keyEmail] = sess.Email
	session.Values[keyRole] = sess.Role
	session.Values[keyToken] = sess.Token
	session.Values[keyCSRFToken] = sess.CSRFToken
	session.Values[keyBackendCookies] = encodeCookies(sess.BackendCookies)
	return session.Save(r, w)
}

// Clear drops every identity value and expires the cookie
func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, SessionName)
	for k := range session.Values {
		delete(session.Values, k)
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

func encodeCookies(cookies []*http.Cookie) string {
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		if c == nil || c.Name == "" {
			continue
		}
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

func decodeCookies(raw string) []*http.Cookie {
	if raw == "" {
		return nil
	}
	cookies, err := http.ParseCookie(raw)
	if err != nil {
		return nil
	}
	return cookies
}

// SecureHeaders adds security headers to responses
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline' https://unpkg.com; style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; img-src 'self' data:;")

		if r.TLS != nil {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
