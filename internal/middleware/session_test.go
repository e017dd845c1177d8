package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lankarail-console/internal/models"
)

func newTestSessionManager() *SessionManager {
	return NewSessionManager(NewCookieStore("test-secret-key", 3600, false))
}

// carryCookies copies Set-Cookie headers from a recorder into a new request
func carryCookies(rec *httptest.ResponseRecorder, req *http.Request) {
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
}

func TestSessionManager_SaveAndLoad(t *testing.T) {
	sm := newTestSessionManager()

	want := &models.Session{
		UserID:    7,
		Email:     "admin@lankarail.lk",
		Role:      "ROLE_ADMIN",
		Token:     "tok",
		CSRFToken: "csrf",
		BackendCookies: []*http.Cookie{
			{Name: "JSESSIONID", Value: "abc"},
			{Name: "XSRF-TOKEN", Value: "x1"},
		},
	}

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Save(rec, httptest.NewRequest(http.MethodGet, "/", nil), want))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	carryCookies(rec, req)

	got, err := sm.Load(req)
	require.NoError(t, err)
	assert.Equal(t, want.UserID, got.UserID)
	assert.Equal(t, want.Email, got.Email)
	assert.Equal(t, want.Role, got.Role)
	assert.Equal(t, want.Token, got.Token)
	assert.Equal(t, want.CSRFToken, got.CSRFToken)
	require.Len(t, got.BackendCookies, 2)
	assert.Equal(t, "JSESSIONID", got.BackendCookies[0].Name)
	assert.Equal(t, "abc", got.BackendCookies[0].Value)
	assert.Equal(t, "x1", got.BackendCookies[1].Value)
	assert.True(t, got.IsAdmin())
}

func TestSessionManager_CookieIsEncrypted(t *testing.T) {
	sm := newTestSessionManager()
	const token = "backend-bearer-token-4711"

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Save(rec, httptest.NewRequest(http.MethodGet, "/", nil), &models.Session{
		Email:          "nimal@example.lk",
		Token:          token,
		BackendCookies: []*http.Cookie{{Name: "JSESSIONID", Value: "jsession-secret"}},
	}))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	raw := cookies[0].Value
	assert.NotContains(t, raw, token)

	// date|payload|mac, where payload is the gob blob after encryption
	outer, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	parts := strings.SplitN(string(outer), "|", 3)
	require.Len(t, parts, 3)
	payload, err := base64.URLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.NotContains(t, string(payload), token)
	assert.NotContains(t, string(payload), "jsession-secret")
	assert.NotContains(t, string(payload), "nimal@example.lk")

	// a store that only knows the signing key cannot read it
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	carryCookies(rec, req)
	_, err = NewSessionManager(sessions.NewCookieStore([]byte("test-secret-key"))).Load(req)
	assert.Error(t, err)

	got, err := sm.Load(req)
	require.NoError(t, err)
	assert.Equal(t, token, got.Token)
}

func TestSessionManager_LoadAnonymous(t *testing.T) {
	sm := newTestSessionManager()

	sess, err := sm.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}

func TestSessionManager_LoadTamperedCookie(t *testing.T) {
	sm := newTestSessionManager()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionName, Value: "garbage"})

	sess, err := sm.Load(req)
	assert.Error(t, err)
	require.NotNil(t, sess)
	assert.False(t, sess.Authenticated())
}

func TestSessionManager_Clear(t *testing.T) {
	sm := newTestSessionManager()

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Save(rec, httptest.NewRequest(http.MethodGet, "/", nil), &models.Session{Email: "p@lankarail.lk"}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	carryCookies(rec, req)

	clearRec := httptest.NewRecorder()
	require.NoError(t, sm.Clear(clearRec, req))

	cookies := clearRec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionName, cookies[0].Name)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestEncodeDecodeCookies(t *testing.T) {
	raw := encodeCookies([]*http.Cookie{{Name: "a", Value: "1"}, nil, {Name: "b", Value: "2"}})
	if raw != "a=1; b=2" {
		t.Errorf("unexpected encoding %q", raw)
	}

	cookies := decodeCookies(raw)
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}
	if decodeCookies("") != nil {
		t.Error("empty string should decode to nil")
	}
}

func TestSecureHeaders(t *testing.T) {
	handler := SecureHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	expectedHeaders := map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}

	for header, expectedValue := range expectedHeaders {
		if got := w.Header().Get(header); got != expectedValue {
			t.Errorf("Expected header %s to be %s, got %s", header, expectedValue, got)
		}
	}

	if w.Header().Get("Content-Security-Policy") == "" {
		t.Error("Content-Security-Policy header should be set")
	}
	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS should only be set over TLS")
	}
}
