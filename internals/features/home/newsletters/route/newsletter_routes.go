package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/home/newsletters/controller"
	"schoolku_backend/internals/helpers/mailer"
	rateLimiter "schoolku_backend/internals/middlewares"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func NewsletterRoutes(app fiber.Router, db *gorm.DB, m mailer.Sender) {
	ctrl := controller.NewNewsletterController(db, m)

	app.Post("/newsletter/inscription", rateLimiter.PublicFormRateLimiter(), ctrl.Subscribe)
	app.Get("/newsletter/desinscription", ctrl.UnsubscribePage)
	app.Post("/newsletter/desinscription", rateLimiter.PublicFormRateLimiter(), ctrl.Unsubscribe)

	admin := app.Group("/admin/newsletter",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("la lettre d'information"), constants.StaffRoles...),
	)
	admin.Get("/", ctrl.Index)
	admin.Get("/campagne", ctrl.CampaignPage)
	admin.Post("/campagne", ctrl.SendCampaign)
	admin.Post("/:id/basculer", ctrl.Toggle)
	admin.Post("/:id/supprimer", ctrl.Delete)
}

// NewsletterAPIRoutes: inscription JSON dari footer.
func NewsletterAPIRoutes(api fiber.Router, db *gorm.DB, m mailer.Sender) {
	ctrl := controller.NewNewsletterController(db, m)
	api.Post("/newsletter", rateLimiter.PublicFormRateLimiter(), ctrl.Subscribe)
}
