package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/archives/archive/controller"
	"schoolku_backend/internals/helpers/storage"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// ArchiveRoutes → /archives (direction). Suppression définitive: admin.
func ArchiveRoutes(app fiber.Router, db *gorm.DB, st storage.Store) {
	ctrl := controller.NewArchiveController(db, st)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("la suppression définitive"), constants.AdminOnly...)

	g := app.Group("/archives",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("les archives"), constants.StaffRoles...),
	)
	g.Get("/", ctrl.Index)
	g.Get("/export", ctrl.Export)
	g.Get("/nouveau", ctrl.New)
	g.Post("/", ctrl.Create)

	g.Get("/corbeille", ctrl.TrashIndex)
	g.Post("/corbeille/:id/restaurer", ctrl.Restore)
	g.Post("/corbeille/:id/supprimer", adminOnly, ctrl.Purge)

	g.Get("/fichiers/:fileID/telecharger", ctrl.Download)
	g.Post("/fichiers/:fileID/supprimer", ctrl.DeleteFile)

	g.Get("/:id", ctrl.Show)
	g.Post("/:id/deverrouiller", ctrl.Unlock)
	g.Get("/:id/modifier", ctrl.Edit)
	g.Post("/:id", ctrl.Update)
	g.Post("/:id/supprimer", ctrl.Trash)
	g.Post("/:id/fichiers", ctrl.Upload)
}
