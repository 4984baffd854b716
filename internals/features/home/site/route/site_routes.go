package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/home/site/controller"
	"schoolku_backend/internals/helpers/storage"
)

func SiteRoutes(app fiber.Router, db *gorm.DB, st storage.Store) {
	ctrl := controller.NewSiteController(db, st)
	app.Get("/", ctrl.Home)
	app.Get("/a-propos", ctrl.About)
}
