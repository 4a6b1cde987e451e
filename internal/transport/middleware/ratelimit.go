package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter implements per-IP request limiting backed by token buckets.
type RateLimiter struct {
	visitors sync.Map // map[string]*visitor
	stop     chan struct{}
}

type visitor struct {
	limiter *rate.Limiter

	mu       sync.Mutex
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter with background cleanup of idle
// visitor buckets. Call Stop() on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{stop: make(chan struct{})}
	go rl.cleanup(cleanupInterval)
	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit returns middleware that rate-limits requests to maxPerMinute per IP.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v := rl.getVisitor(clientIP(r), maxPerMinute)
			if !v.limiter.Allow() {
				retryAfter := 60.0 / float64(maxPerMinute)
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter)+1))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// getVisitor returns the bucket for one client IP and one budget. The key
// includes the budget because a single RateLimiter serves route groups with
// different budgets; keying by IP alone would pin whichever budget the
// client happened to hit first onto every other route.
func (rl *RateLimiter) getVisitor(ip string, maxPerMinute int) *visitor {
	key := ip + "|" + strconv.Itoa(maxPerMinute)
	val, _ := rl.visitors.LoadOrStore(key, &visitor{
		limiter:  rate.NewLimiter(rate.Limit(float64(maxPerMinute)/60.0), maxPerMinute),
		lastSeen: time.Now(),
	})

	v := val.(*visitor)
	v.mu.Lock()
	v.lastSeen = time.Now()
	v.mu.Unlock()
	return v
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			now := time.Now()
			rl.visitors.Range(func(key, value any) bool {
				v := value.(*visitor)
				v.mu.Lock()
				idle := now.Sub(v.lastSeen)
				v.mu.Unlock()
				if idle > 10*time.Minute {
					rl.visitors.Delete(key)
				}
				return true
			})
		}
	}
}

// clientIP strips the port from RemoteAddr so one client maps to one bucket
// across connections.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
