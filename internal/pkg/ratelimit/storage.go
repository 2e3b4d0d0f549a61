package ratelimit

import (
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/ManuelReschke/LeadPay/internal/pkg/cache"
	"github.com/ManuelReschke/LeadPay/internal/pkg/env"
)

var storage fiber.Storage

// NewStorage returns a Redis-backed limiter storage on its own database.
func NewStorage() fiber.Storage {
	// Get Redis client configuration from existing cache setup
	cacheClient := cache.GetClient()
	host := "localhost"
	port := 6379
	password := env.GetEnv("CACHE_PASSWORD", "")
	if cacheClient != nil {
		addr := cacheClient.Options().Addr
		if h, p, err := net.SplitHostPort(addr); err == nil {
			host = h
			if v, err := strconv.Atoi(p); err == nil {
				port = v
			}
		}
		if p := cacheClient.Options().Password; p != "" {
			password = p
		}
	}

	storage = redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: password,
		Database: 2, // cache uses DB 0
		Reset:    false,
	})
	return storage
}

// New builds a limiter allowing max requests per window per client IP.
// name separates the counters of limiters sharing one storage.
// A nil storage keeps the counters in memory.
func New(store fiber.Storage, name string, max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    store,
		KeyGenerator: func(c *fiber.Ctx) string {
			return name + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests.",
			})
		},
	})
}
