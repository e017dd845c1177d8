package server

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lankarail-console/internal/config"
	"lankarail-console/internal/metrics"
)

var csrfField = regexp.MustCompile(`name="csrf_token" value="([0-9a-f]+)"`)

// fakeBackend answers the handful of railway API calls these tests make
type fakeBackend struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	if r.URL.Path != "/api/auth/login" {
		if c, err := r.Cookie("JSESSIONID"); err != nil || c.Value != "sess-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
	}

	switch r.Method + " " + r.URL.Path {
	case "POST /api/auth/login":
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "sess-1", Path: "/"})
		w.Write([]byte(`{"message":"Login successful","email":"admin@lankarail.lk","role":"ROLE_ADMIN"}`))
	case "GET /api/users/me":
		w.Write([]byte(`{"id":1,"email":"admin@lankarail.lk","role":"ROLE_ADMIN","enabled":true}`))
	case "GET /api/admin/trains":
		w.Write([]byte(`[]`))
	case "DELETE /api/admin/trains/3":
		w.WriteHeader(http.StatusNoContent)
	case "GET /api/admin/stations":
		w.WriteHeader(http.StatusUnauthorized)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeBackend) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeBackend, *http.Client) {
	t.Helper()

	backend := &fakeBackend{}
	api := httptest.NewServer(backend)
	t.Cleanup(api.Close)

	cfg := &config.Config{
		Server:    config.ServerConfig{Env: "development"},
		Backend:   config.BackendConfig{BaseURL: api.URL},
		Session:   config.SessionConfig{Secret: "test-session-secret-0123456789abcdef", MaxAge: 3600},
		RateLimit: config.RateLimitConfig{LoginPerMinute: 0},
	}
	s := New(cfg, zap.NewNop(), metrics.New())
	t.Cleanup(s.Close)

	console := httptest.NewServer(s.Routes())
	t.Cleanup(console.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return console, backend, client
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func csrfToken(t *testing.T, client *http.Client, pageURL string) string {
	t.Helper()
	resp, err := client.Get(pageURL)
	require.NoError(t, err)
	m := csrfField.FindStringSubmatch(readBody(t, resp))
	require.Len(t, m, 2, "no csrf token on %s", pageURL)
	return m[1]
}

func htmx(t *testing.T, client *http.Client, method, target, token string, form url.Values) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, target, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("X-CSRF-Token", token)
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func login(t *testing.T, console *httptest.Server, client *http.Client) {
	t.Helper()
	token := csrfToken(t, client, console.URL+"/login")

	resp, err := client.PostForm(console.URL+"/login", url.Values{
		"email":      {"admin@lankarail.lk"},
		"password":   {"password1"},
		"csrf_token": {token},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/dashboard", resp.Header.Get("Location"))
}

func TestRoutes_Health(t *testing.T) {
	console, _, client := newTestServer(t)

	resp, err := client.Get(console.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", readBody(t, resp))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRoutes_AnonymousIsSentToLogin(t *testing.T) {
	console, backend, client := newTestServer(t)

	resp, err := client.Get(console.URL + "/admin/dashboard")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?redirect=%2Fadmin%2Fdashboard", resp.Header.Get("Location"))
	assert.Empty(t, backend.calls)
}

func TestRoutes_PostWithoutTokenIsRejected(t *testing.T) {
	console, _, client := newTestServer(t)

	resp, err := client.PostForm(console.URL+"/login", url.Values{"email": {"a@b.lk"}, "password": {"password1"}})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRoutes_AdminFlow(t *testing.T) {
	console, backend, client := newTestServer(t)
	login(t, console, client)
	assert.True(t, backend.called("GET /api/users/me"))

	token := csrfToken(t, client, console.URL+"/admin/dashboard")

	resp := htmx(t, client, http.MethodGet, console.URL+"/admin/panels/trains", "", url.Values{})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "No trains available.")

	resp = htmx(t, client, http.MethodPost, console.URL+"/admin/trains/3/delete", token, url.Values{})
	assert.Contains(t, readBody(t, resp), "Delete Train #3?")
	assert.False(t, backend.called("DELETE /api/admin/trains/3"))

	resp = htmx(t, client, http.MethodPost, console.URL+"/admin/trains/3/delete", token, url.Values{"confirmed": {"yes"}})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("HX-Trigger"), `"reload-trains":true`)
	assert.True(t, backend.called("DELETE /api/admin/trains/3"))
}

func TestRoutes_BackendRejectionEndsSession(t *testing.T) {
	console, _, client := newTestServer(t)
	login(t, console, client)

	resp := htmx(t, client, http.MethodGet, console.URL+"/admin/panels/stations", "", url.Values{})
	resp.Body.Close()
	assert.Equal(t, "/login", resp.Header.Get("HX-Redirect"))

	resp, err := client.Get(console.URL + "/admin/dashboard")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/login"))
}

func TestRoutes_Metrics(t *testing.T) {
	console, _, client := newTestServer(t)

	resp, err := client.Get(console.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = client.Get(console.URL + "/metrics")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, "lankarail_http_requests_total")
	assert.Contains(t, body, `path="/health"`)
}
