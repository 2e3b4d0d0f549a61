package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// APIKeyConfig configures APIKeyAuthMiddleware.
type APIKeyConfig struct {
	// Key is the shared dashboard key. Empty disables the check.
	Key string
	// Prefix is the mount path of the protected group, e.g. "/api/v1".
	Prefix string
	// Public lists paths relative to Prefix that skip the check, matched exactly.
	Public []string
}

// APIKeyAuthMiddleware authenticates requests carrying the dashboard API key header.
func APIKeyAuthMiddleware(cfg APIKeyConfig) fiber.Handler {
	if cfg.Key == "" {
		log.Warn("[APIKey] API_KEY is not set, the read API is unauthenticated")
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	expected := sha256.Sum256([]byte(cfg.Key))

	return func(c *fiber.Ctx) error {
		if isPublicPath(c.Path(), cfg.Prefix, cfg.Public) {
			return c.Next()
		}

		apiKey := extractAPIKeyFromHeader(c)
		if apiKey == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Missing API key"})
		}

		got := sha256.Sum256([]byte(apiKey))
		if subtle.ConstantTimeCompare(got[:], expected[:]) != 1 {
			log.Warnf("[APIKey] Rejected key for %s %s from %s", c.Method(), c.Path(), c.IP())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid API key"})
		}

		return c.Next()
	}
}

func isPublicPath(path, prefix string, public []string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rel := strings.TrimRight(strings.TrimPrefix(path, prefix), "/")
	for _, p := range public {
		if rel == p {
			return true
		}
	}
	return false
}

func extractAPIKeyFromHeader(c *fiber.Ctx) string {
	apiKey := strings.TrimSpace(c.Get("X-API-Key"))
	if apiKey != "" {
		return apiKey
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
