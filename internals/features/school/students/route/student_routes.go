package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/students/controller"
	"schoolku_backend/internals/helpers/storage"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// StudentRoutes → /eleves. Parent boleh membuka daftar & fiche anaknya.
func StudentRoutes(app fiber.Router, db *gorm.DB, st storage.Store) {
	ctrl := controller.NewStudentController(db, st)
	staff := authMiddleware.OnlyRoles(constants.RoleErrorStaff("la gestion des élèves"), constants.StaffRoles...)

	g := app.Group("/eleves", authMiddleware.RequireLogin())
	g.Get("/", ctrl.Index)
	g.Get("/nouveau", staff, ctrl.New)
	g.Post("/", staff, ctrl.Create)
	g.Get("/:id", ctrl.Show)
	g.Get("/:id/modifier", staff, ctrl.Edit)
	g.Post("/:id", staff, ctrl.Update)
	g.Post("/:id/supprimer", staff, ctrl.Delete)
}

// StudentAPIRoutes → /api/classes/:id/students
func StudentAPIRoutes(api fiber.Router, db *gorm.DB, st storage.Store) {
	ctrl := controller.NewStudentController(db, st)
	api.Get("/classes/:id/students",
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("les élèves"), constants.TeachingRoles...),
		ctrl.ClassStudentsAPI,
	)
}
