package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/users/user/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// UserAdminRoutes → /admin/utilisateurs (admin saja)
func UserAdminRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)

	g := app.Group("/admin/utilisateurs",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("la gestion des utilisateurs"), constants.AdminOnly...),
	)
	g.Get("/", ctrl.Index)
	g.Get("/nouveau", ctrl.New)
	g.Post("/", ctrl.Create)
	g.Get("/:id/modifier", ctrl.Edit)
	g.Post("/:id", ctrl.Update)
	g.Post("/:id/supprimer", ctrl.Delete)
}
