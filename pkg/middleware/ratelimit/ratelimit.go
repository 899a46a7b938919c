// Package ratelimit provides rate limiting middleware for form endpoints.
package ratelimit

import (
	"net/http"
	"strings"
	"sync"

	"github.com/pytogo/website/pkg/server/router"
	"golang.org/x/time/rate"
)

// RateLimiter defines the interface for rate limiting implementations.
// Implementations must be thread-safe and support per-key rate limiting.
type RateLimiter interface {
	// Allow checks if a request for the given key should be allowed.
	Allow(key string) bool
}

// TokenBucketLimiter implements the token bucket algorithm for rate limiting.
// It provides per-key rate limiting with configurable requests per second and
// burst capacity. The implementation is thread-safe using sync.Map.
type TokenBucketLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
}

// NewTokenBucketLimiter creates a new token bucket rate limiter.
// The burst parameter allows for temporary spikes: with requestsPerSecond=10
// and burst=20, a client can make 20 requests immediately, then 10 per second.
func NewTokenBucketLimiter(requestsPerSecond int, burst int) *TokenBucketLimiter {
	return &TokenBucketLimiter{
		rate:  rate.Limit(requestsPerSecond),
		burst: burst,
	}
}

// Allow checks if a request for the given key should be allowed.
// Each key maintains its own independent rate limiter.
func (l *TokenBucketLimiter) Allow(key string) bool {
	return l.getLimiter(key).Allow()
}

func (l *TokenBucketLimiter) getLimiter(key string) *rate.Limiter {
	if limiter, ok := l.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(l.rate, l.burst)
	actual, _ := l.limiters.LoadOrStore(key, limiter)
	return actual.(*rate.Limiter)
}

// Config defines the configuration for rate limiting middleware.
type Config struct {
	// RequestsPerSecond is the maximum average number of requests allowed per second.
	RequestsPerSecond int
	// Burst is the maximum number of requests allowed in a burst.
	Burst int
	// KeyFunc extracts the rate limiting key from the request context.
	KeyFunc func(router.Context) string
}

// RateLimit creates middleware that enforces rate limiting. It uses the
// configured KeyFunc to extract a rate limiting key (typically the client IP),
// and returns HTTP 429 with a Retry-After header when the limit is exceeded.
func RateLimit(limiter RateLimiter, cfg Config) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			key := cfg.KeyFunc(c)

			if !limiter.Allow(key) {
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error": "rate limit exceeded",
				})
			}

			return next(c)
		}
	}
}

// ExtractIPFromRequest extracts the client IP address from the HTTP request.
// It checks X-Forwarded-For and X-Real-IP headers first (for proxied requests),
// then falls back to RemoteAddr.
func ExtractIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "IP:port", strip the port.
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
