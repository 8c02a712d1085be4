package security

import (
	"fmt"
	"net"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a Redis fixed-window limiter applied to the public
// write endpoints (order creation, contact form).
type RateLimiter struct {
	redis    *redis.Client
	window   time.Duration
	requests int
}

func NewRateLimiter(redisClient *redis.Client, window time.Duration, requests int) *RateLimiter {
	if requests <= 0 {
		requests = 30
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		redis:    redisClient,
		window:   window,
		requests: requests,
	}
}

// Limit wraps a route handler with a per-IP fixed window counter.
func (r *RateLimiter) Limit(name string, next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ip := clientIP(e)
		key := fmt.Sprintf("ratelimit:%s:%s", name, ip)

		ctx := e.Request.Context()
		count, err := r.redis.Incr(ctx, key).Result()
		if err != nil {
			// Redis down must not take the API with it.
			return next(e)
		}
		if count == 1 {
			r.redis.Expire(ctx, key, r.window)
		}

		if count > int64(r.requests) {
			return apis.NewTooManyRequestsError("Rate limit exceeded. Please try again later.", nil)
		}

		return next(e)
	}
}

func clientIP(e *core.RequestEvent) string {
	if fwd := e.Request.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(e.Request.RemoteAddr)
	if err != nil {
		return e.Request.RemoteAddr
	}
	return host
}
