package main

import (
	"fmt"
	"log"

	json "github.com/goccy/go-json"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	apiv1 "github.com/ManuelReschke/LeadPay/internal/api/v1"
	"github.com/ManuelReschke/LeadPay/internal/pkg/cache"
	"github.com/ManuelReschke/LeadPay/internal/pkg/database"
	"github.com/ManuelReschke/LeadPay/internal/pkg/env"
	"github.com/ManuelReschke/LeadPay/internal/pkg/router"
	"github.com/ManuelReschke/LeadPay/views"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName:     "LeadPay",
		Views:       views.Engine(),
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
		BodyLimit:   1 * 1024 * 1024, // gateway callbacks are small form posts
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// the JSON API is called from the lead dashboard on another origin
	app.Use("/api", cors.New(cors.Config{
		AllowOrigins: env.GetEnv("CORS_ALLOW_ORIGINS", "*"),
	}))

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	// SWAGGER / OPENAPI
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/docs/api/",
		FileContent: apiv1.OpenAPIDocument(),
		Path:        "v1",
		Title:       "LeadPay API",
	}))

	// ROUTER
	router.InstallRouter(app)

	return app
}
