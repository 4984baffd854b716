package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/features/home/site/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
	"schoolku_backend/internals/helpers/storage"
)

type SiteController struct {
	DB    *gorm.DB
	Store storage.Store
}

func NewSiteController(db *gorm.DB, st storage.Store) *SiteController {
	return &SiteController{DB: db, Store: st}
}

// GET /
func (sc *SiteController) Home(c *fiber.Ctx) error {
	home, err := service.LoadHome(c.UserContext(), sc.DB, dbtime.Now())
	if err != nil {
		log.Printf("[ERROR] halaman depan: %v", err)
		return err
	}
	for i := range home.Articles {
		home.Articles[i].SetCover(sc.Store.URL)
	}
	return helper.Render(c, "site/home", fiber.Map{
		"Title":         configs.AppName,
		"Announcements": home.Announcements,
		"News":          home.News,
		"Events":        home.Events,
		"Articles":      home.Articles,
	})
}

// GET /a-propos
func (sc *SiteController) About(c *fiber.Ctx) error {
	return helper.Render(c, "site/about", fiber.Map{"Title": "À propos"})
}
