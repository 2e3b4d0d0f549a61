package router

import (
	"time"

	apiv1 "github.com/ManuelReschke/LeadPay/internal/api/v1"
	"github.com/ManuelReschke/LeadPay/internal/pkg/env"
	"github.com/ManuelReschke/LeadPay/internal/pkg/middleware"
	"github.com/ManuelReschke/LeadPay/internal/pkg/ratelimit"

	"github.com/gofiber/fiber/v2"
)

type ApiRouter struct {
	limiterStorage fiber.Storage
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", ratelimit.New(h.limiterStorage, "api", env.GetEnvInt("API_RATE_LIMIT", 120), time.Minute))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes; gateway aliases stay public, the dashboard read API needs a key
	v1 := api.Group("/v1", middleware.APIKeyAuthMiddleware(middleware.APIKeyConfig{
		Key:    env.GetEnv("API_KEY", ""),
		Prefix: "/api/v1",
		Public: []string{"/ping", "/payments/initiate", "/payments/callback"},
	}))
	apiServer := apiv1.NewAPIServer()
	apiv1.RegisterHandlers(v1, apiServer)
}

func NewApiRouter(limiterStorage fiber.Storage) *ApiRouter {
	return &ApiRouter{limiterStorage: limiterStorage}
}
