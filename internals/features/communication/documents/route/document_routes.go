package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/communication/documents/controller"
	"schoolku_backend/internals/helpers/storage"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// DocumentRoutes → /documents. Upload & hapus: direction.
func DocumentRoutes(app fiber.Router, db *gorm.DB, st storage.Store) {
	ctrl := controller.NewDocumentController(db, st)
	staff := authMiddleware.OnlyRoles(constants.RoleErrorStaff("les documents"), constants.StaffRoles...)

	g := app.Group("/documents", authMiddleware.RequireLogin())
	g.Get("/", ctrl.Index)
	g.Get("/nouveau", staff, ctrl.New)
	g.Post("/", staff, ctrl.Create)
	g.Get("/:id/telecharger", ctrl.Download)
	g.Post("/:id/supprimer", staff, ctrl.Delete)
}
