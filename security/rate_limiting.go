package security

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

// RateLimiter applies a Redis fixed-window limit to the analytics endpoints.
// The analytics computations are the most expensive calls in the service, so
// they get their own per-client budget.
type RateLimiter struct {
	redis  *redis.Client
	limit  int64
	window time.Duration
}

func NewRateLimiter(redisClient *redis.Client, perMinute int) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		limit:  int64(perMinute),
		window: time.Minute,
	}
}

// Middleware rejects over-limit clients and obvious scraper user agents.
func (r *RateLimiter) Middleware() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if isSuspiciousUserAgent(e.Request.Header.Get("User-Agent")) {
			return apis.NewForbiddenError("Access denied", nil)
		}

		allowed, err := r.allow(e.Request.Context(), e.RealIP())
		if err != nil {
			// A broken limiter must not take the API down with it.
			return e.Next()
		}
		if !allowed {
			return apis.NewApiError(429, "Too many requests. Please try again later.", nil)
		}

		return e.Next()
	}
}

// allow increments the caller's counter for the current window and reports
// whether it is still within the limit.
func (r *RateLimiter) allow(ctx context.Context, clientID string) (bool, error) {
	key := fmt.Sprintf("ratelimit:analytics:%s", clientID)

	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		r.redis.Expire(ctx, key, r.window)
	}

	return count <= r.limit, nil
}

func isSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	for _, pattern := range suspicious {
		if strings.Contains(strings.ToLower(ua), pattern) {
			return true
		}
	}
	return false
}
