package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/academics/grades/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// GradeRoutes → /notes. Bulletin terbuka untuk parent (anak sendiri).
func GradeRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := controller.NewGradeController(db)
	teaching := authMiddleware.OnlyRoles(constants.RoleErrorTeacher("les notes"), constants.TeachingRoles...)

	g := app.Group("/notes", authMiddleware.RequireLogin())
	g.Get("/bulletin", ctrl.Bulletin)

	g.Get("/", teaching, ctrl.Index)
	g.Get("/saisie", teaching, ctrl.EntryPage)
	g.Post("/saisie", teaching, ctrl.SaveEntry)
	g.Get("/toutes", teaching, ctrl.All)
	g.Get("/:id/modifier", teaching, ctrl.Edit)
	g.Post("/:id", teaching, ctrl.Update)
	g.Post("/:id/supprimer", teaching, ctrl.Delete)
}
