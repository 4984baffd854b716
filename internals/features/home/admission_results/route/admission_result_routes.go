package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/home/admission_results/controller"
	rateLimiter "schoolku_backend/internals/middlewares"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func AdmissionResultRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAdmissionResultController(db)

	app.Get("/resultats", ctrl.Lookup)
	app.Post("/resultats", rateLimiter.PublicFormRateLimiter(), ctrl.Lookup)

	admin := app.Group("/admin/resultats",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("les résultats d'admission"), constants.StaffRoles...),
	)
	admin.Get("/", ctrl.Index)
	admin.Get("/nouveau", ctrl.New)
	admin.Post("/", ctrl.Create)
	admin.Get("/importer", ctrl.ImportPage)
	admin.Post("/importer", ctrl.ImportNames)
	admin.Post("/importer-excel", ctrl.ImportSheet)
	admin.Post("/publier-lot", ctrl.PublishAll)
	admin.Get("/:id/modifier", ctrl.Edit)
	admin.Post("/:id", ctrl.Update)
	admin.Post("/:id/publier", ctrl.Toggle)
	admin.Post("/:id/supprimer", ctrl.Delete)
}
