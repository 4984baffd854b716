package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/communication/announcements/controller"
	"schoolku_backend/internals/features/communication/announcements/service"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// AnnouncementRoutes → /annonces + /communication/whatsapp
func AnnouncementRoutes(app fiber.Router, db *gorm.DB, n *service.Notifier) {
	ctrl := controller.NewAnnouncementController(db, n)
	writer := authMiddleware.OnlyRoles(constants.RoleErrorTeacher("les annonces"), constants.TeachingRoles...)

	g := app.Group("/annonces", authMiddleware.RequireLogin())
	g.Get("/", ctrl.Index)
	g.Get("/nouvelle", writer, ctrl.New)
	g.Post("/", writer, ctrl.Create)
	g.Get("/:id", ctrl.Show)
	g.Get("/:id/modifier", writer, ctrl.Edit)
	g.Post("/:id", writer, ctrl.Update)
	g.Post("/:id/supprimer", writer, ctrl.Delete)
	g.Post("/:id/whatsapp", writer, ctrl.Resend)

	wa := app.Group("/communication/whatsapp",
		authMiddleware.RequireLogin(),
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("les notifications WhatsApp"), constants.StaffRoles...),
	)
	wa.Get("/", ctrl.Recipients)
	wa.Post("/", ctrl.AddRecipient)
	wa.Post("/test", ctrl.TestSend)
	wa.Post("/:id/basculer", ctrl.ToggleRecipient)
	wa.Post("/:id/supprimer", ctrl.DeleteRecipient)
}

// AnnouncementAPIRoutes → /api/annonces/recentes (publik)
func AnnouncementAPIRoutes(api fiber.Router, db *gorm.DB, n *service.Notifier) {
	ctrl := controller.NewAnnouncementController(db, n)
	api.Get("/annonces/recentes", ctrl.RecentAPI)
}
