package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/LeadPay/app/controllers"
	"github.com/ManuelReschke/LeadPay/internal/pkg/env"
	"github.com/ManuelReschke/LeadPay/internal/pkg/ratelimit"
)

func (h HttpRouter) registerGatewayRoutes(app *fiber.App) {
	limit := ratelimit.New(h.limiterStorage, "gateway", env.GetEnvInt("GATEWAY_RATE_LIMIT", 30), time.Minute)

	// Browser form post that starts a hosted page payment
	app.Post("/initiate", limit, controllers.HandleInitiatePayment)

	// Gateway server-to-server callback (no CSRF, checksum-verified in controller)
	app.Post("/callback", limit, controllers.HandlePaymentCallback)
}
