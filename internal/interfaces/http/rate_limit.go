package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/almacen-api/internal/application/dto"
)

// RateLimiter limita peticiones por IP usando Redis (INCR + EXPIRE).
// Con cliente nil el middleware deja pasar todo, igual que si Redis cae.
type RateLimiter struct {
	rdb    *redis.Client
	max    int64
	window time.Duration
}

// NewRateLimiter construye el limitador.
func NewRateLimiter(rdb *redis.Client, max int64, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, max: max, window: window}
}

// Middleware devuelve el handler de Fiber.
func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl.rdb == nil {
			return c.Next()
		}

		key := "rate_limit:" + c.IP()
		count, err := rl.rdb.Incr(c.UserContext(), key).Result()
		if err != nil {
			// Redis caído: preferimos servir sin límite antes que rechazar.
			return c.Next()
		}
		if count == 1 {
			rl.rdb.Expire(c.UserContext(), key, rl.window)
		}
		if count > rl.max {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.Fail("Demasiadas peticiones", "intente de nuevo más tarde"))
		}
		return c.Next()
	}
}
