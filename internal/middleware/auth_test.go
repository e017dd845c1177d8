package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lankarail-console/internal/models"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("success"))
})

func withSession(req *http.Request, sess *models.Session) *http.Request {
	return req.WithContext(SetSessionContext(req.Context(), sess))
}

func TestLoadSession_IssuesCSRFToken(t *testing.T) {
	m := NewAuthMiddleware(newTestSessionManager(), nil)

	var seen *models.Session
	handler := m.LoadSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSessionFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.NotNil(t, seen)
	assert.False(t, seen.Authenticated())
	assert.Len(t, seen.CSRFToken, 64)
	assert.NotEmpty(t, rec.Result().Cookies(), "new token should be persisted")
}

func TestLoadSession_ReusesStoredSession(t *testing.T) {
	sm := newTestSessionManager()
	m := NewAuthMiddleware(sm, nil)

	saved := httptest.NewRecorder()
	require.NoError(t, sm.Save(saved, httptest.NewRequest(http.MethodGet, "/", nil), &models.Session{
		Email: "p@lankarail.lk", Role: "ROLE_MEMBER", CSRFToken: "kept",
	}))

	req := httptest.NewRequest(http.MethodGet, "/passenger/dashboard", nil)
	carryCookies(saved, req)

	var seen *models.Session
	rec := httptest.NewRecorder()
	m.LoadSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSessionFromContext(r.Context())
	})).ServeHTTP(rec, req)

	require.NotNil(t, seen)
	assert.Equal(t, "p@lankarail.lk", seen.Email)
	assert.Equal(t, "kept", seen.CSRFToken)
	assert.Empty(t, rec.Result().Cookies(), "nothing changed, nothing to save")
}

func TestLoadSession_DropsExpiredBackendToken(t *testing.T) {
	sm := newTestSessionManager()
	m := NewAuthMiddleware(sm, nil)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   "p@lankarail.lk",
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	saved := httptest.NewRecorder()
	require.NoError(t, sm.Save(saved, httptest.NewRequest(http.MethodGet, "/", nil), &models.Session{
		Email: "p@lankarail.lk", Role: "ROLE_MEMBER", Token: token, CSRFToken: "kept",
	}))

	req := httptest.NewRequest(http.MethodGet, "/passenger/dashboard", nil)
	carryCookies(saved, req)

	var seen *models.Session
	rec := httptest.NewRecorder()
	m.LoadSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSessionFromContext(r.Context())
	})).ServeHTTP(rec, req)

	require.NotNil(t, seen)
	assert.False(t, seen.Authenticated())
	assert.Empty(t, seen.Token)
	assert.Equal(t, "kept", seen.CSRFToken)
	assert.NotEmpty(t, rec.Result().Cookies(), "signed out session should be persisted")
}

func TestRequireAuth(t *testing.T) {
	m := NewAuthMiddleware(newTestSessionManager(), nil)
	handler := m.RequireAuth(okHandler)

	tests := []struct {
		name         string
		sess         *models.Session
		htmx         bool
		wantStatus   int
		wantLocation string
		wantHX       string
	}{
		{"anonymous page", nil, false, http.StatusSeeOther, "/login?redirect=%2Fadmin%2Fdashboard", ""},
		{"anonymous htmx", &models.Session{}, true, http.StatusUnauthorized, "", "/login"},
		{"signed in", &models.Session{Email: "a@b.lk"}, false, http.StatusOK, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}
			if tt.sess != nil {
				req = withSession(req, tt.sess)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			assert.Equal(t, tt.wantHX, rec.Header().Get("HX-Redirect"))
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	m := NewAuthMiddleware(newTestSessionManager(), nil)
	handler := m.RequireAdmin(okHandler)

	req := withSession(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil), &models.Session{Email: "p@lankarail.lk", Role: "ROLE_MEMBER"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PassengerDashboardPath, rec.Header().Get("Location"))

	req = withSession(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil), &models.Session{Email: "a@lankarail.lk", Role: "ROLE_MEMBER,ROLE_ADMIN"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRedirectIfAuthenticated(t *testing.T) {
	m := NewAuthMiddleware(newTestSessionManager(), nil)
	handler := m.RedirectIfAuthenticated(okHandler)

	req := withSession(httptest.NewRequest(http.MethodGet, "/login", nil), &models.Session{Email: "a@lankarail.lk", Role: "ROLE_ADMIN"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, AdminDashboardPath, rec.Header().Get("Location"))

	req = withSession(httptest.NewRequest(http.MethodGet, "/login", nil), &models.Session{})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRedirect_HTMX(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	Redirect(rec, req, "/login")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("HX-Redirect"))
}

func TestGenerateCSRFToken(t *testing.T) {
	token1 := GenerateCSRFToken()
	token2 := GenerateCSRFToken()

	if token1 == "" || token2 == "" {
		t.Error("CSRF tokens should not be empty")
	}
	if token1 == token2 {
		t.Error("CSRF tokens should be unique")
	}
	if len(token1) != 64 || len(token2) != 64 {
		t.Error("CSRF tokens should be 64 characters long")
	}
}
