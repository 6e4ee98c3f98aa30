package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/13roger10/Belezza.ai-sub001/cache"
)

// RateLimit counts requests per client IP in the shared TTL store and
// rejects requests past the limit within the window. With the no-op store
// every request passes.
func RateLimit(store cache.Store, limit int64, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("ratelimit:%s:%s", c.Path(), c.IP())
		count, err := store.Incr(c.UserContext(), key, window)
		if err != nil {
			// A rate-limit store outage should not take bookings down.
			return c.Next()
		}
		if count > limit {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
			})
		}
		return c.Next()
	}
}
