package middleware

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/abisalde/inventory-service/internal/auth"
	customErrors "github.com/abisalde/inventory-service/internal/errors"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WindowCounter counts hits per key inside a fixed window. It returns the
// count including this hit and the time left in the window.
type WindowCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type RateLimitConfig struct {
	Requests  int           // requests allowed per window
	Window    time.Duration // fixed window length
	KeyPrefix string
}

type RateLimiter struct {
	counter WindowCounter
	config  RateLimitConfig
	logger  *zap.Logger
}

func NewRateLimiter(counter WindowCounter, config RateLimitConfig, logger *zap.Logger) *RateLimiter {
	if config.KeyPrefix == "" {
		config.KeyPrefix = "ratelimit"
	}
	return &RateLimiter{counter: counter, config: config, logger: logger}
}

// Handler rejects a client with 429 once it exceeds the per-route budget.
// Counter failures let the request through.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		clientIP := c.IP()
		key := fmt.Sprintf("%s:%s:%s", rl.config.KeyPrefix, c.Route().Path, clientIP)

		count, ttl, err := rl.counter.Incr(ctx, key, rl.config.Window)
		if err != nil {
			auth.Logger(ctx, rl.logger).Warn("rate limiter unavailable, allowing request", zap.Error(err))
			return c.Next()
		}

		remaining := int64(rl.config.Requests) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.config.Requests))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(rl.config.Requests) {
			retryAfter := int(math.Ceil(ttl.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))

			auth.Logger(ctx, rl.logger).Info("rate limit exceeded",
				zap.String("route", c.Route().Path),
				zap.Int64("count", count),
			)
			return customErrors.RateLimitExceeded
		}

		return c.Next()
	}
}
