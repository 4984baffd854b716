package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/classes/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// ClassRoutes → /classes. Baca: staff + professeur, tulis: staff.
func ClassRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := controller.NewClassController(db)

	read := app.Group("/classes",
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("les classes"), constants.TeachingRoles...),
	)
	staff := authMiddleware.OnlyRoles(constants.RoleErrorStaff("la gestion des classes"), constants.StaffRoles...)

	read.Get("/", ctrl.Index)
	read.Get("/nouvelle", staff, ctrl.New)
	read.Post("/", staff, ctrl.Create)
	read.Get("/:id", ctrl.Show)
	read.Get("/:id/modifier", staff, ctrl.Edit)
	read.Post("/:id", staff, ctrl.Update)
	read.Post("/:id/supprimer", staff, ctrl.Delete)
}
