package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

type loginClient struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// LoginRateLimiter throttles login and register attempts per client IP
type LoginRateLimiter struct {
	clients   map[string]*loginClient
	mu        sync.RWMutex
	limit     rate.Limit
	burst     int
	idleAfter time.Duration
	stopChan  chan struct{}
	stopOnce  sync.Once
}

// NewLoginRateLimiter allows perMinute attempts per IP, with bursts of the
// same size. perMinute <= 0 disables limiting.
func NewLoginRateLimiter(perMinute int) *LoginRateLimiter {
	limit := rate.Inf
	burst := 1
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
		burst = perMinute
	}

	rl := &LoginRateLimiter{
		clients:   make(map[string]*loginClient),
		limit:     limit,
		burst:     burst,
		idleAfter: 10 * time.Minute,
		stopChan:  make(chan struct{}),
	}

	go rl.cleanup(5 * time.Minute)

	return rl
}

// IsAllowed consumes one attempt for ip
func (rl *LoginRateLimiter) IsAllowed(ip string) bool {
	return rl.limiter(ip).Allow()
}

func (rl *LoginRateLimiter) limiter(ip string) *rate.Limiter {
	now := time.Now().UnixNano()

	rl.mu.RLock()
	if c, ok := rl.clients[ip]; ok {
		c.lastSeen.Store(now)
		rl.mu.RUnlock()
		return c.limiter
	}
	rl.mu.RUnlock()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if c, ok := rl.clients[ip]; ok {
		c.lastSeen.Store(now)
		return c.limiter
	}

	c := &loginClient{limiter: rate.NewLimiter(rl.limit, rl.burst)}
	c.lastSeen.Store(now)
	rl.clients[ip] = c
	return c.limiter
}

// cleanupOnce forgets clients idle for longer than idleAfter
func (rl *LoginRateLimiter) cleanupOnce(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, c := range rl.clients {
		if now.Sub(time.Unix(0, c.lastSeen.Load())) > rl.idleAfter {
			delete(rl.clients, ip)
		}
	}
}

func (rl *LoginRateLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupOnce(time.Now())
		case <-rl.stopChan:
			return
		}
	}
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (rl *LoginRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopChan) })
}

// RateLimitLogin limits POSTs only; the login page itself is always served
func RateLimitLogin(rl *LoginRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			if !rl.IsAllowed(getClientIP(r)) {
				w.Header().Set("Retry-After", strconv.Itoa(60))
				if IsHTMXRequest(r) {
					writeAlert(w, http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
				} else {
					http.Error(w, "Too many login attempts. Please try again later.", http.StatusTooManyRequests)
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
