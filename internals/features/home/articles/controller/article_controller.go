package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/home/articles/dto"
	"schoolku_backend/internals/features/home/articles/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/storage"
)

type ArticleController struct {
	DB    *gorm.DB
	Store storage.Store
}

func NewArticleController(db *gorm.DB, st storage.Store) *ArticleController {
	return &ArticleController{DB: db, Store: st}
}

// GET /articles?categorie=
func (ac *ArticleController) PublicIndex(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.Options{DefaultPerPage: 9, MaxPerPage: 30})
	filter := service.ListFilter{Category: c.Query("categorie"), Search: c.Query("q"), ActiveOnly: true}
	rows, total, err := service.List(c.UserContext(), ac.DB, filter, p)
	if err != nil {
		return err
	}
	for i := range rows {
		rows[i].SetCover(ac.Store.URL)
	}
	return helper.Render(c, "articles/public_index", fiber.Map{
		"Title":      "Actualités de l'école",
		"Articles":   rows,
		"Filter":     filter,
		"Categories": constants.ArticleCategories,
		"Meta":       helper.BuildMetaFor(c, total, p),
	})
}

// GET /articles/:slug
func (ac *ArticleController) PublicShow(c *fiber.Ctx) error {
	ctx := c.UserContext()
	a, err := service.ViewBySlug(ctx, ac.DB, c.Params("slug"))
	if err != nil {
		return err
	}
	related, err := service.Related(ctx, ac.DB, &a.ArticleModel, 3)
	if err != nil {
		return err
	}
	a.SetCover(ac.Store.URL)
	for i := range related {
		related[i].SetCover(ac.Store.URL)
	}
	return helper.Render(c, "articles/public_show", fiber.Map{
		"Title":   a.ArticleTitle,
		"Article": a,
		"Related": related,
	})
}

// GET /admin/articles
func (ac *ArticleController) Index(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	filter := service.ListFilter{Category: c.Query("categorie"), Search: c.Query("q")}
	rows, total, err := service.List(c.UserContext(), ac.DB, filter, p)
	if err != nil {
		return err
	}
	return helper.Render(c, "articles/index", fiber.Map{
		"Title":      "Articles",
		"Articles":   rows,
		"Filter":     filter,
		"Categories": constants.ArticleCategories,
		"Meta":       helper.BuildMetaFor(c, total, p),
	})
}

func (ac *ArticleController) form(c *fiber.Ctx, data fiber.Map) error {
	data["Categories"] = constants.ArticleCategories
	return helper.Render(c, "articles/form", data)
}

// GET /admin/articles/nouveau
func (ac *ArticleController) New(c *fiber.Ctx) error {
	return ac.form(c, fiber.Map{
		"Title": "Nouvel article",
		"Form":  dto.ArticleForm{Category: "vie-scolaire", IsActive: true},
		"IsNew": true,
	})
}

// POST /admin/articles
func (ac *ArticleController) Create(c *fiber.Ctx) error {
	var form dto.ArticleForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, "/admin/articles/nouveau", "Formulaire invalide")
	}
	form.IsActive = helper.FormBool(c, "article_is_active")
	cover, _ := c.FormFile("article_cover")

	if _, err := service.Create(c.UserContext(), ac.DB, ac.Store, helper.CurrentUserPtr(c), form, cover); err != nil {
		if _, ok := helper.IsValidationError(err); ok {
			helper.SetFlash(c, "error", helper.Messages(err))
			return ac.form(c, fiber.Map{"Title": "Nouvel article", "Form": form, "IsNew": true})
		}
		return helper.FailRedirect(c, "/admin/articles/nouveau", err)
	}
	return helper.FlashSuccess(c, "/admin/articles", "Article publié.")
}

// GET /admin/articles/:id/modifier
func (ac *ArticleController) Edit(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := service.Get(c.UserContext(), ac.DB, id)
	if err != nil {
		return err
	}
	data := fiber.Map{"Title": "Modifier l'article", "Article": m, "Form": dto.FromModel(m)}
	if m.ArticleCoverKey != nil {
		data["CoverURL"] = ac.Store.URL(*m.ArticleCoverKey)
	}
	return ac.form(c, data)
}

// POST /admin/articles/:id
func (ac *ArticleController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := "/admin/articles/" + id.String() + "/modifier"
	var form dto.ArticleForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, back, "Formulaire invalide")
	}
	form.IsActive = helper.FormBool(c, "article_is_active")
	form.RemoveCover = helper.FormBool(c, "remove_cover")
	cover, _ := c.FormFile("article_cover")

	if _, err := service.Update(c.UserContext(), ac.DB, ac.Store, id, form, cover); err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, "/admin/articles", "Article mis à jour.")
}

// POST /admin/articles/:id/basculer
func (ac *ArticleController) Toggle(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := service.Toggle(c.UserContext(), ac.DB, id)
	if err != nil {
		return helper.FailRedirect(c, "/admin/articles", err)
	}
	msg := "Article masqué."
	if m.ArticleIsActive {
		msg = "Article publié."
	}
	return helper.FlashSuccess(c, "/admin/articles", msg)
}

// POST /admin/articles/:id/supprimer
func (ac *ArticleController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := service.Delete(c.UserContext(), ac.DB, ac.Store, id); err != nil {
		return helper.FailRedirect(c, "/admin/articles", err)
	}
	return helper.FlashSuccess(c, "/admin/articles", "Article supprimé.")
}
