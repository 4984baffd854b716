// file: internals/features/users/auth/route/auth_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "schoolku_backend/internals/features/users/auth/controller"
	rateLimiter "schoolku_backend/internals/middlewares"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func AuthRoutes(app fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	auth := app.Group("/auth")
	auth.Get("/login", authMiddleware.GuestOnly(), authController.LoginPage)
	auth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	auth.Get("/register", authMiddleware.GuestOnly(), authController.RegisterPage)
	auth.Post("/register", rateLimiter.PublicFormRateLimiter(), authController.Register)
	auth.Get("/logout", authController.Logout)

	profile := app.Group("/profil", authMiddleware.RequireLogin())
	profile.Get("/", authController.Profile)
	profile.Post("/mot-de-passe", authController.ChangePassword)
}
