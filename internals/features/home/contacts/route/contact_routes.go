package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/home/contacts/controller"
	rateLimiter "schoolku_backend/internals/middlewares"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func ContactRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := controller.NewContactController(db)

	app.Get("/contact", ctrl.Page)
	app.Post("/contact", rateLimiter.PublicFormRateLimiter(), ctrl.Submit)

	admin := app.Group("/admin/contacts",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("les messages"), constants.StaffRoles...),
	)
	admin.Get("/", ctrl.Index)
	admin.Get("/:id", ctrl.Show)
	admin.Post("/:id/lu", ctrl.MarkRead)
	admin.Post("/:id/traiter", ctrl.MarkHandled)
	admin.Post("/:id/supprimer", ctrl.Delete)
}
