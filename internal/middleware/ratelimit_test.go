package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoginRateLimiter_IsAllowed(t *testing.T) {
	rl := NewLoginRateLimiter(3)
	defer rl.Stop()

	ip := "192.168.1.1"

	for i := 0; i < 3; i++ {
		if !rl.IsAllowed(ip) {
			t.Errorf("Attempt %d should be allowed", i+1)
		}
	}

	if rl.IsAllowed(ip) {
		t.Error("4th attempt should be blocked")
	}

	if !rl.IsAllowed("192.168.1.2") {
		t.Error("Different IP should be allowed")
	}
}

func TestLoginRateLimiter_Disabled(t *testing.T) {
	rl := NewLoginRateLimiter(0)
	defer rl.Stop()

	for i := 0; i < 100; i++ {
		if !rl.IsAllowed("192.168.1.1") {
			t.Fatalf("Attempt %d should be allowed when limiting is disabled", i+1)
		}
	}
}

func TestLoginRateLimiter_CleanupOnce(t *testing.T) {
	rl := NewLoginRateLimiter(1)
	defer rl.Stop()

	rl.IsAllowed("192.168.1.1")
	if rl.IsAllowed("192.168.1.1") {
		t.Fatal("Should be blocked")
	}

	rl.cleanupOnce(time.Now().Add(time.Hour))

	rl.mu.RLock()
	remaining := len(rl.clients)
	rl.mu.RUnlock()
	if remaining != 0 {
		t.Errorf("Expected idle clients to be removed, %d left", remaining)
	}

	if !rl.IsAllowed("192.168.1.1") {
		t.Error("Forgotten client should start with a fresh allowance")
	}
}

func TestLoginRateLimiter_StopTwice(t *testing.T) {
	rl := NewLoginRateLimiter(1)
	rl.Stop()
	rl.Stop()
}

func TestRateLimitLogin(t *testing.T) {
	rl := NewLoginRateLimiter(2)
	defer rl.Stop()

	handler := RateLimitLogin(rl)(okHandler)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Request %d should be allowed, got status %d", i+1, w.Code)
		}
	}

	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "192.168.1.1:54321"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("3rd request should be rate limited, got status %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Retry-After should be set")
	}

	req = httptest.NewRequest("GET", "/login", nil)
	req.RemoteAddr = "192.168.1.1:54321"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("GET request should not be rate limited, got status %d", w.Code)
	}
}
