package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/home/news/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func NewsRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNewsController(db)

	g := app.Group("/admin/actualites",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("les actualités"), constants.StaffRoles...),
	)
	g.Get("/", ctrl.Index)
	g.Get("/nouveau", ctrl.New)
	g.Post("/", ctrl.Create)
	g.Get("/:id/modifier", ctrl.Edit)
	g.Post("/:id", ctrl.Update)
	g.Post("/:id/basculer", ctrl.Toggle)
	g.Post("/:id/supprimer", ctrl.Delete)
}

// NewsAPIRoutes: ticker publik.
func NewsAPIRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNewsController(db)
	api.Get("/news", ctrl.ActiveAPI)
}
