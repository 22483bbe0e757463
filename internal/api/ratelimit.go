package api

import (
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/ramonehamilton/helldivers-loadout/internal/api/response"
)

var errRateLimited = errors.New("rate limit exceeded, slow down")

// clientLimiter tracks one token bucket per client IP.
type clientLimiter struct {
	rps   rate.Limit
	burst int
	ttl   time.Duration

	mu        sync.Mutex
	clients   map[string]*visitor
	nextSweep time.Time
	now       func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
	return &clientLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		ttl:     3 * time.Minute,
		clients: make(map[string]*visitor),
		now:     time.Now,
	}
}

// allow reports whether the client may make a request now. Idle entries are
// swept at most once per ttl.
func (l *clientLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if !now.Before(l.nextSweep) {
		l.sweep(now)
	}

	v, ok := l.clients[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (l *clientLimiter) sweep(now time.Time) {
	for key, v := range l.clients {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.clients, key)
		}
	}
	l.nextSweep = now.Add(l.ttl)
}

func (l *clientLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// clientIP strips the port from RemoteAddr. That is the socket peer unless
// the server trusts a proxy, in which case middleware.RealIP has replaced it
// with the forwarded address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// rateLimitMiddleware rejects requests over the per-client budget with 429.
func (s *Server) rateLimitMiddleware(limiter *clientLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(clientIP(r)) {
				s.metrics.IncrementRateLimited()
				w.Header().Set("Retry-After", "1")
				response.TooManyRequests(w, errRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
