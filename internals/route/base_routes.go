package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/helpers/dbtime"
)

func BaseRoutes(app *fiber.App, d Deps) {
	app.Static("/static", "./public", fiber.Static{Compress: true, MaxAge: 86400})
	if d.StorageRoot != "" {
		app.Static("/media/public", d.StorageRoot+"/public", fiber.Static{MaxAge: 3600})
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus, serverStatus, code := "Connected", "OK", fiber.StatusOK
		if err := database.Ping(c.UserContext(), d.DB); err != nil {
			dbStatus, serverStatus, code = "Database connection error", "DOWN", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"storage":        d.Store.Kind(),
			"mailer":         d.Mailer.Kind(),
			"server_time":    dbtime.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
		})
	})

	if d.Metrics != nil {
		app.Get("/metrics", d.Metrics.Endpoint())
	}
}
