package middleware

import (
	"net/http"
	"sync"
	"time"
)

// Limit configures a per-client token bucket for one API surface. The agent
// endpoint and the capability endpoints carry separate limits because a
// single conversational request fans out into several capability calls.
type Limit struct {
	PerMinute int
	Burst     int // defaults to PerMinute when zero
}

const sweepInterval = 5 * time.Minute

type rateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	perSecond float64
	burst     float64
	lastSweep time.Time
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

func newRateLimiter(l Limit) *rateLimiter {
	burst := l.Burst
	if burst <= 0 {
		burst = l.PerMinute
	}
	return &rateLimiter{
		buckets:   make(map[string]*bucket),
		perSecond: float64(l.PerMinute) / 60.0,
		burst:     float64(burst),
		lastSweep: time.Now(),
	}
}

func (rl *rateLimiter) allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Sweep stale buckets inline instead of running a goroutine per
	// limiter; two sweep intervals of silence means the client is gone.
	if now.Sub(rl.lastSweep) >= sweepInterval {
		cutoff := now.Add(-2 * sweepInterval)
		for k, b := range rl.buckets {
			if b.lastSeen.Before(cutoff) {
				delete(rl.buckets, k)
			}
		}
		rl.lastSweep = now
	}

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.burst, lastSeen: now}
		rl.buckets[key] = b
	}

	b.tokens += now.Sub(b.lastSeen).Seconds() * rl.perSecond
	if b.tokens > rl.burst {
		b.tokens = rl.burst
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// RateLimit returns middleware enforcing the given per-client limit, keyed
// by client IP. A non-positive PerMinute disables the limiter entirely.
func RateLimit(l Limit) func(http.Handler) http.Handler {
	if l.PerMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	limiter := newRateLimiter(l)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr
			// Prefer X-Real-Ip set by chi's RealIP middleware.
			if xri := r.Header.Get("X-Real-Ip"); xri != "" {
				key = xri
			}
			if !limiter.allow(key, time.Now()) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
