package middleware

import (
	"net/http"
	"sync"
	"time"

	"auromart/internal/apierror"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipLimiter keeps one token bucket per client IP. Idle buckets are dropped
// lazily once ttl has passed since the last sweep.
type ipLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(perMinute, burst int) *ipLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	if burst <= 0 {
		burst = 1
	}
	return &ipLimiter{
		buckets:   make(map[string]*bucket),
		limit:     rate.Limit(float64(perMinute) / 60.0),
		burst:     burst,
		ttl:       5 * time.Minute,
		lastSweep: time.Now(),
	}
}

func (l *ipLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > l.ttl {
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) > l.ttl {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

func limitHandler(l *ipLimiter, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP(), time.Now()) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// RateLimiter limits every client IP to perMinute requests with the given burst.
func RateLimiter(perMinute, burst int) gin.HandlerFunc {
	return limitHandler(newIPLimiter(perMinute, burst), "too many requests, try again shortly")
}

// LoginRateLimiter allows 20 credential attempts per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return limitHandler(newIPLimiter(20, 5), "too many login attempts, try again in a minute")
}
