// Package middleware provides the HTTP middleware chain for the API.
package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/skirmish/pkg/response"
)

// limiter tracks request timestamps per client within a sliding window.
type limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	clients map[string][]time.Time
}

func newLimiter(max int, window time.Duration) *limiter {
	l := &limiter{
		max:     max,
		window:  window,
		clients: make(map[string][]time.Time),
	}
	go l.sweep()
	return l
}

func (l *limiter) allow(key string) bool {
	now := time.Now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.clients[key][:0]
	for _, ts := range l.clients[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.max {
		l.clients[key] = recent
		return false
	}

	l.clients[key] = append(recent, now)
	return true
}

// sweep drops idle clients so the map stays bounded on long-running servers.
func (l *limiter) sweep() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for key, stamps := range l.clients {
			if len(stamps) == 0 || !stamps[len(stamps)-1].After(cutoff) {
				delete(l.clients, key)
			}
		}
		l.mu.Unlock()
	}
}

// clientKey prefers the first X-Forwarded-For hop, then the remote IP with
// the port stripped.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit caps each client at max requests per sliding window.
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	l := newLimiter(max, window)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientKey(r)) {
				response.Error(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
