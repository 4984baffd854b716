package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/admissions/controller"
	rateLimiter "schoolku_backend/internals/middlewares"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// AdmissionRoutes: formulir publik /inscriptions + pengelolaan /admin/inscriptions.
func AdmissionRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAdmissionController(db)

	pub := app.Group("/inscriptions")
	pub.Get("/", ctrl.Apply)
	pub.Post("/", rateLimiter.PublicFormRateLimiter(), ctrl.Submit)
	pub.Get("/suivi", ctrl.Track)
	pub.Get("/confirmation/:ref", ctrl.Confirmation)
	pub.Get("/:ref/qr.png", ctrl.QRCode)

	admin := app.Group("/admin/inscriptions",
		authMiddleware.RequireLogin(),
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("les inscriptions"), constants.StaffRoles...),
	)
	admin.Get("/", ctrl.Index)
	admin.Get("/:id", ctrl.Show)
	admin.Post("/:id/statut", ctrl.Review)
	admin.Post("/:id/convertir", ctrl.Convert)
	admin.Post("/:id/supprimer", ctrl.Delete)
}
