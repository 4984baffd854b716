package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/home/news/dto"
	"schoolku_backend/internals/features/home/news/service"
	helper "schoolku_backend/internals/helpers"
)

type NewsController struct {
	DB *gorm.DB
}

func NewNewsController(db *gorm.DB) *NewsController {
	return &NewsController{DB: db}
}

// GET /admin/actualites
func (nc *NewsController) Index(c *fiber.Ctx) error {
	list, err := service.All(c.UserContext(), nc.DB)
	if err != nil {
		return err
	}
	return helper.Render(c, "news/index", fiber.Map{"Title": "Actualités (bandeau)", "News": list})
}

// GET /admin/actualites/nouveau
func (nc *NewsController) New(c *fiber.Ctx) error {
	return helper.Render(c, "news/form", fiber.Map{
		"Title": "Nouvelle actualité",
		"Form":  dto.NewsForm{IsActive: true},
		"IsNew": true,
	})
}

// POST /admin/actualites
func (nc *NewsController) Create(c *fiber.Ctx) error {
	var form dto.NewsForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, "/admin/actualites/nouveau", "Formulaire invalide")
	}
	form.IsActive = helper.FormBool(c, "news_is_active")
	if _, err := service.Create(c.UserContext(), nc.DB, form); err != nil {
		return helper.FailRedirect(c, "/admin/actualites/nouveau", err)
	}
	return helper.FlashSuccess(c, "/admin/actualites", "Actualité ajoutée.")
}

// GET /admin/actualites/:id/modifier
func (nc *NewsController) Edit(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := service.Get(c.UserContext(), nc.DB, id)
	if err != nil {
		return err
	}
	return helper.Render(c, "news/form", fiber.Map{
		"Title": "Modifier l'actualité",
		"News":  m,
		"Form":  dto.FromModel(m),
	})
}

// POST /admin/actualites/:id
func (nc *NewsController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := "/admin/actualites/" + id.String() + "/modifier"
	var form dto.NewsForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, back, "Formulaire invalide")
	}
	form.IsActive = helper.FormBool(c, "news_is_active")
	if _, err := service.Update(c.UserContext(), nc.DB, id, form); err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, "/admin/actualites", "Actualité mise à jour.")
}

// POST /admin/actualites/:id/basculer
func (nc *NewsController) Toggle(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := service.Toggle(c.UserContext(), nc.DB, id)
	if err != nil {
		return helper.FailRedirect(c, "/admin/actualites", err)
	}
	msg := "Actualité désactivée."
	if m.NewsIsActive {
		msg = "Actualité activée."
	}
	return helper.FlashSuccess(c, "/admin/actualites", msg)
}

// POST /admin/actualites/:id/supprimer
func (nc *NewsController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := service.Delete(c.UserContext(), nc.DB, id); err != nil {
		return helper.FailRedirect(c, "/admin/actualites", err)
	}
	return helper.FlashSuccess(c, "/admin/actualites", "Actualité supprimée.")
}

// GET /api/news
func (nc *NewsController) ActiveAPI(c *fiber.Ctx) error {
	list, err := service.Active(c.UserContext(), nc.DB)
	if err != nil {
		return helper.FailJSON(c, err)
	}
	return helper.JsonOK(c, "OK", dto.ToJSON(list))
}
