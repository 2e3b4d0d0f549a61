package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/LeadPay/app/controllers"
	"github.com/ManuelReschke/LeadPay/app/repository"
	"github.com/ManuelReschke/LeadPay/internal/pkg/database"
	"github.com/ManuelReschke/LeadPay/internal/pkg/ratelimit"
)

type HttpRouter struct {
	limiterStorage fiber.Storage
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// Initialize repositories shared by all controllers
	repository.InitializeFactory(database.GetDB())

	// Initialize payment controller (gateway config, counters, archive)
	controllers.InitializePaymentController()

	// Initialize comment and lead controllers with repositories
	controllers.InitializeCommentController()
	controllers.InitializeLeadController()

	h.registerGatewayRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{
		limiterStorage: ratelimit.NewStorage(),
	}
}
