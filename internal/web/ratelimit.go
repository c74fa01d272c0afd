package web

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// limiter is a fixed-window per-client rate limiter. Windows reset
// lazily when a client is next seen, and idle clients are swept whenever
// the map is touched past its high-water mark.
type limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	seen   map[string]*windowCount
}

type windowCount struct {
	start time.Time
	n     int
}

func newLimiter(limit int, window time.Duration) *limiter {
	return &limiter{
		limit:  limit,
		window: window,
		seen:   make(map[string]*windowCount),
	}
}

// allow reports whether the client may make another request now. A zero
// or negative limit disables limiting entirely.
func (l *limiter) allow(client string, now time.Time) bool {
	if l.limit <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.seen) > 10_000 {
		l.sweepLocked(now)
	}

	wc, ok := l.seen[client]
	if !ok || now.Sub(wc.start) >= l.window {
		l.seen[client] = &windowCount{start: now, n: 1}
		return true
	}
	wc.n++
	return wc.n <= l.limit
}

// sweepLocked drops entries whose window has long passed. Callers hold
// mu.
func (l *limiter) sweepLocked(now time.Time) {
	for client, wc := range l.seen {
		if now.Sub(wc.start) >= l.window {
			delete(l.seen, client)
		}
	}
}

// rateLimit wraps a handler with the per-IP limiter.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !s.limiter.allow(ip, time.Now()) {
			s.log.Warn("rate limit exceeded", "client", ip, "path", r.URL.Path)
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from the peer address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
