package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/home/articles/controller"
	"schoolku_backend/internals/helpers/storage"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func ArticleRoutes(app fiber.Router, db *gorm.DB, st storage.Store) {
	ctrl := controller.NewArticleController(db, st)

	app.Get("/articles", ctrl.PublicIndex)
	app.Get("/articles/:slug", ctrl.PublicShow)

	admin := app.Group("/admin/articles",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("les articles"), constants.StaffRoles...),
	)
	admin.Get("/", ctrl.Index)
	admin.Get("/nouveau", ctrl.New)
	admin.Post("/", ctrl.Create)
	admin.Get("/:id/modifier", ctrl.Edit)
	admin.Post("/:id", ctrl.Update)
	admin.Post("/:id/basculer", ctrl.Toggle)
	admin.Post("/:id/supprimer", ctrl.Delete)
}
