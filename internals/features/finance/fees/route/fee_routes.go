package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/finance/fees/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// FeeRoutes → /frais (direction).
func FeeRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := controller.NewFeeController(db)

	g := app.Group("/frais",
		authMiddleware.RequireLogin(),
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("les frais"), constants.StaffRoles...),
	)
	g.Get("/", ctrl.Index)
	g.Get("/nouveau", ctrl.New)
	g.Post("/", ctrl.Create)
	g.Get("/:id/modifier", ctrl.Edit)
	g.Post("/:id", ctrl.Update)
	g.Post("/:id/supprimer", ctrl.Delete)
}
