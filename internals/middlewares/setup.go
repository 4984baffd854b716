package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global (urutan penting).
func SetupMiddlewares(app *fiber.App, metrics *Metrics) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.RequestID(15 * time.Second))
	app.Use(logger.LoggerMiddleware())
	if metrics != nil {
		app.Use(metrics.Handler())
	}
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use("/api", CorsMiddleware())
	app.Use(GlobalRateLimiter())
	app.Use(ViewLocals())
}

// ViewLocals: data umum untuk layout (PassLocalsToViews).
func ViewLocals() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("AppName", configs.AppName)
		c.Locals("CurrentPath", c.Path())
		c.Locals("Year", time.Now().Year())
		return c.Next()
	}
}
