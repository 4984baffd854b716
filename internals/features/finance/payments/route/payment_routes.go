package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/finance/payments/controller"
	"schoolku_backend/internals/features/finance/payments/service"
	rateLimiter "schoolku_backend/internals/middlewares"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func newController(db *gorm.DB) *controller.PaymentController {
	return controller.NewPaymentController(db, service.GatewayFromConfig(configs.MidtransServerKey, configs.MidtransProduction))
}

// PaymentRoutes → /paiements. Paiement en ligne juga untuk parent (anak sendiri).
func PaymentRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := newController(db)
	staff := authMiddleware.OnlyRoles(constants.RoleErrorStaff("les paiements"), constants.StaffRoles...)

	g := app.Group("/paiements", authMiddleware.RequireLogin())
	g.Post("/:id/en-ligne", ctrl.StartOnline)

	g.Get("/", staff, ctrl.Index)
	g.Get("/nouveau", staff, ctrl.New)
	g.Post("/", staff, ctrl.Create)
	g.Post("/:id/supprimer", staff, ctrl.Delete)
}

// PaymentAPIRoutes → /api/eleves/:id/frais, /api/frais, notifikasi gateway.
func PaymentAPIRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := newController(db)

	api.Post("/paiements/notification", rateLimiter.WebhookRateLimiter(), ctrl.Notification)
	api.Get("/eleves/:id/frais", authMiddleware.RequireLogin(), ctrl.StudentFeesAPI)
	api.Get("/frais",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("les frais"), constants.StaffRoles...),
		ctrl.FeesAPI,
	)
	api.Post("/eleves/:id/paiement-en-ligne", authMiddleware.RequireLogin(), ctrl.StartOnline)
}
