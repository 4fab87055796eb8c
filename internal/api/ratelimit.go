package api

import (
	"context"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Idle limiters are dropped after limiterIdleTTL, checked every limiterEvictInterval.
const (
	limiterIdleTTL       = 10 * time.Minute
	limiterEvictInterval = time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanoseconds
}

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	limiters sync.Map // map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewIPRateLimiter creates a limiter allowing limit requests per second with the given burst per IP.
func NewIPRateLimiter(limit rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{limit: limit, burst: burst, now: time.Now}
}

// Limiter returns or creates the limiter for ip and marks ip as seen.
func (l *IPRateLimiter) Limiter(ip string) *rate.Limiter {
	val, ok := l.limiters.Load(ip)
	if !ok {
		val, _ = l.limiters.LoadOrStore(ip, &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)})
	}
	entry := val.(*clientLimiter)
	entry.lastSeen.Store(l.now().UnixNano())
	return entry.limiter
}

// Evict drops limiters not used within idle and returns how many were removed.
// A client seen again after eviction starts with a full bucket.
func (l *IPRateLimiter) Evict(idle time.Duration) int {
	cutoff := l.now().Add(-idle).UnixNano()
	removed := 0
	l.limiters.Range(func(key, val any) bool {
		if val.(*clientLimiter).lastSeen.Load() < cutoff {
			l.limiters.CompareAndDelete(key, val)
			removed++
		}
		return true
	})
	return removed
}

// Len returns the number of tracked clients.
func (l *IPRateLimiter) Len() int {
	n := 0
	l.limiters.Range(func(any, any) bool { n++; return true })
	return n
}

// RunEviction calls Evict every interval until ctx is done.
func (l *IPRateLimiter) RunEviction(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Evict(idle)
		}
	}
}

// Allow reports whether a request from ip may proceed now.
func (l *IPRateLimiter) Allow(ip string) bool {
	return l.Limiter(ip).Allow()
}

// Middleware rejects requests over the per-IP budget with 429.
// onReject, when non-nil, is called for each rejected request.
func (l *IPRateLimiter) Middleware(onReject func(r *http.Request, ip string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !l.Allow(ip) {
				if onReject != nil {
					onReject(r, ip)
				}
				writeError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr; middleware.RealIP has already applied forwarding headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
