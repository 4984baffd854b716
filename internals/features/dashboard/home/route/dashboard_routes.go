package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/dashboard/home/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func DashboardRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDashboardController(db)
	app.Get("/dashboard", authMiddleware.RequireLogin(), ctrl.Index)
}
