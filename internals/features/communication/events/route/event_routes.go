package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/communication/events/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// EventRoutes → /evenements. Lecture: semua user login; écriture: personnel.
func EventRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := controller.NewEventController(db)
	writer := authMiddleware.OnlyRoles(constants.RoleErrorTeacher("les événements"), constants.TeachingRoles...)

	g := app.Group("/evenements", authMiddleware.RequireLogin())
	g.Get("/", ctrl.Index)
	g.Get("/calendrier", ctrl.Calendar)
	g.Get("/nouveau", writer, ctrl.New)
	g.Post("/", writer, ctrl.Create)
	g.Get("/:id", ctrl.Show)
	g.Get("/:id/modifier", writer, ctrl.Edit)
	g.Post("/:id", writer, ctrl.Update)
	g.Post("/:id/supprimer", writer, ctrl.Delete)
}

// EventAPIRoutes → /api/evenements (publik, dipakai kalender beranda).
func EventAPIRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewEventController(db)
	api.Get("/evenements", ctrl.CalendarAPI)
}
