package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/reports/report/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func ReportRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := controller.NewReportController(db)

	g := app.Group("/rapports",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("les rapports"), constants.StaffRoles...),
	)
	g.Get("/", ctrl.Statistics)
	g.Get("/academique", ctrl.Academic)
	g.Get("/presences", ctrl.Attendance)
	g.Get("/finances", ctrl.Finance)
	g.Get("/finances/export", ctrl.FinanceExport)
}

func ReportAPIRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewReportController(db)
	api.Get("/statistiques",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("les statistiques"), constants.StaffRoles...),
		ctrl.Statistics)
}
