package router

import (
	"github.com/gofiber/fiber/v2"
)

// Router installs a group of routes on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

func InstallRouter(app *fiber.App) {
	// HttpRouter initializes the shared controllers and the limiter storage
	// that the API routes reuse.
	httpRouter := NewHttpRouter()
	setup(app, httpRouter, NewApiRouter(httpRouter.limiterStorage))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
