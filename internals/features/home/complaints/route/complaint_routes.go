package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/home/complaints/controller"
	"schoolku_backend/internals/helpers/storage"
	rateLimiter "schoolku_backend/internals/middlewares"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func ComplaintRoutes(app fiber.Router, db *gorm.DB, st storage.Store) {
	ctrl := controller.NewComplaintController(db, st)

	app.Get("/doleances", ctrl.Page)
	app.Post("/doleances", rateLimiter.PublicFormRateLimiter(), ctrl.Submit)

	admin := app.Group("/admin/doleances",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("les doléances"), constants.StaffRoles...),
	)
	admin.Get("/", ctrl.Index)
	admin.Get("/:id", ctrl.Show)
	admin.Get("/:id/recu", ctrl.Receipt)
	admin.Post("/:id/traiter", ctrl.Treat)
	admin.Post("/:id/supprimer", ctrl.Delete)
}
