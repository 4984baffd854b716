package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/subjects/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// SubjectRoutes → /cours & /enseignements
func SubjectRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSubjectController(db)
	teaching := authMiddleware.OnlyRoles(constants.RoleErrorTeacher("les cours"), constants.TeachingRoles...)
	staff := authMiddleware.OnlyRoles(constants.RoleErrorStaff("la gestion des cours"), constants.StaffRoles...)

	cours := app.Group("/cours", teaching)
	cours.Get("/", ctrl.Index)
	cours.Get("/nouveau", staff, ctrl.New)
	cours.Post("/", staff, ctrl.Create)
	cours.Get("/:id/modifier", staff, ctrl.Edit)
	cours.Post("/:id", staff, ctrl.Update)
	cours.Post("/:id/supprimer", staff, ctrl.Delete)

	ens := app.Group("/enseignements", teaching)
	ens.Get("/", ctrl.Teachings)
	ens.Post("/", staff, ctrl.CreateTeaching)
	ens.Post("/:id/supprimer", staff, ctrl.DeleteTeaching)
}

// SubjectAPIRoutes → /api/classes/:id/subjects
func SubjectAPIRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSubjectController(db)
	api.Get("/classes/:id/subjects",
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("les cours"), constants.TeachingRoles...),
		ctrl.ClassSubjectsAPI,
	)
}
