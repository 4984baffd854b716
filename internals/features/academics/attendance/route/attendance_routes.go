package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/academics/attendance/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// AttendanceRoutes → /presences (admin, directeur, professeur).
func AttendanceRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceController(db)

	g := app.Group("/presences",
		authMiddleware.RequireLogin(),
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("les présences"), constants.TeachingRoles...),
	)
	g.Get("/", ctrl.Index)
	g.Get("/saisie", ctrl.EntryPage)
	g.Post("/saisie", ctrl.SaveEntry)
	g.Get("/rapport", ctrl.Report)
	g.Post("/:id/supprimer", ctrl.Delete)
}
