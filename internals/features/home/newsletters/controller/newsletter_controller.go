package controller

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/features/home/newsletters/dto"
	"schoolku_backend/internals/features/home/newsletters/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/mailer"
)

type NewsletterController struct {
	DB     *gorm.DB
	Mailer mailer.Sender
}

func NewNewsletterController(db *gorm.DB, m mailer.Sender) *NewsletterController {
	return &NewsletterController{DB: db, Mailer: m}
}

// POST /newsletter/inscription
func (nc *NewsletterController) Subscribe(c *fiber.Ctx) error {
	var form dto.SubscribeForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, helper.BackOr(c, "/"), "Formulaire invalide")
	}
	res, err := service.Subscribe(c.UserContext(), nc.DB, form)
	if err != nil {
		if helper.IsAPI(c) {
			return helper.FailJSON(c, err)
		}
		return helper.FailRedirect(c, helper.BackOr(c, "/"), err)
	}
	msg := "Merci ! Vous êtes inscrit à notre lettre d'information."
	switch res {
	case service.Reactivated:
		msg = "Votre inscription à la lettre d'information a été réactivée."
	case service.AlreadySubscribed:
		msg = "Cette adresse est déjà inscrite."
	}
	if helper.IsAPI(c) {
		return helper.JsonOK(c, msg, nil)
	}
	return helper.FlashSuccess(c, helper.BackOr(c, "/"), msg)
}

// GET /newsletter/desinscription
func (nc *NewsletterController) UnsubscribePage(c *fiber.Ctx) error {
	return helper.Render(c, "newsletters/unsubscribe", fiber.Map{
		"Title": "Se désinscrire",
		"Email": c.Query("email"),
	})
}

// POST /newsletter/desinscription
func (nc *NewsletterController) Unsubscribe(c *fiber.Ctx) error {
	var form dto.SubscribeForm
	_ = c.BodyParser(&form)
	if err := service.Unsubscribe(c.UserContext(), nc.DB, form.Email); err != nil {
		return helper.FailRedirect(c, "/newsletter/desinscription", err)
	}
	return helper.FlashSuccess(c, "/", "Vous avez été désinscrit de la lettre d'information.")
}

// GET /admin/newsletter
func (nc *NewsletterController) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	list, total, err := service.List(ctx, nc.DB, c.Query("q"), p)
	if err != nil {
		return err
	}
	active, err := service.CountActive(ctx, nc.DB)
	if err != nil {
		return err
	}
	return helper.Render(c, "newsletters/index", fiber.Map{
		"Title":       "Lettre d'information",
		"Subscribers": list,
		"Active":      active,
		"Search":      c.Query("q"),
		"Sender":      nc.Mailer.Kind(),
		"Meta":        helper.BuildMetaFor(c, total, p),
	})
}

// POST /admin/newsletter/:id/basculer
func (nc *NewsletterController) Toggle(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if _, err := service.Toggle(c.UserContext(), nc.DB, id); err != nil {
		return helper.FailRedirect(c, "/admin/newsletter", err)
	}
	return helper.FlashSuccess(c, "/admin/newsletter", "Abonné mis à jour.")
}

// POST /admin/newsletter/:id/supprimer
func (nc *NewsletterController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := service.Delete(c.UserContext(), nc.DB, id); err != nil {
		return helper.FailRedirect(c, "/admin/newsletter", err)
	}
	return helper.FlashSuccess(c, "/admin/newsletter", "Abonné supprimé.")
}

// GET /admin/newsletter/campagne
func (nc *NewsletterController) CampaignPage(c *fiber.Ctx) error {
	active, err := service.CountActive(c.UserContext(), nc.DB)
	if err != nil {
		return err
	}
	return helper.Render(c, "newsletters/campaign", fiber.Map{
		"Title":  "Envoyer une campagne",
		"Form":   dto.CampaignForm{},
		"Active": active,
		"Sender": nc.Mailer.Kind(),
	})
}

// POST /admin/newsletter/campagne
func (nc *NewsletterController) SendCampaign(c *fiber.Ctx) error {
	var form dto.CampaignForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, "/admin/newsletter/campagne", "Formulaire invalide")
	}
	unsub := configs.AppBaseURL + "/newsletter/desinscription"
	rep, err := service.SendCampaign(c.UserContext(), nc.DB, nc.Mailer, form, unsub)
	if err != nil {
		return helper.FailRedirect(c, "/admin/newsletter/campagne", err)
	}
	log.Printf("[INFO] kampanye newsletter %q: %d penerima, %d gagal (%s)", form.Subject, rep.Recipients, rep.Failed, nc.Mailer.Kind())
	if rep.Failed > 0 {
		log.Printf("[WARN] kampanye newsletter: %v", rep.LastErr)
		return helper.FlashError(c, "/admin/newsletter",
			fmt.Sprintf("Campagne envoyée partiellement : %d/%d destinataires en échec.", rep.Failed, rep.Recipients))
	}
	return helper.FlashSuccess(c, "/admin/newsletter",
		fmt.Sprintf("Campagne envoyée à %d abonné(s).", rep.Recipients))
}
