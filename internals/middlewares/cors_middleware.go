// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"schoolku_backend/internals/configs"
)

// CorsMiddleware hanya relevan untuk endpoint /api yang dipanggil dari luar
// (kalender, ticker news). Origin diatur lewat CORS_ORIGINS.
func CorsMiddleware() fiber.Handler {
	origins := configs.GetEnv("CORS_ORIGINS", configs.AppBaseURL)
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(strings.Fields(strings.ReplaceAll(origins, ",", " ")), ", "),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	})
}
