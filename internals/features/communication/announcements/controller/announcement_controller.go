package controller

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/communication/announcements/dto"
	"schoolku_backend/internals/features/communication/announcements/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

type AnnouncementController struct {
	DB       *gorm.DB
	Notifier *service.Notifier
}

func NewAnnouncementController(db *gorm.DB, n *service.Notifier) *AnnouncementController {
	return &AnnouncementController{DB: db, Notifier: n}
}

func formData(title string, form dto.AnnouncementForm, isNew bool) fiber.Map {
	return fiber.Map{
		"Title": title,
		"Form":  form,
		"Roles": constants.AllRoles,
		"IsNew": isNew,
	}
}

// GET /annonces
func (ac *AnnouncementController) Index(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	filter := service.ListFilter{
		Role:          helper.CurrentRole(c),
		Search:        c.Query("q"),
		ActiveOnly:    c.Query("toutes") == "",
		ImportantOnly: c.Query("importantes") != "",
	}
	rows, total, err := service.List(c.UserContext(), ac.DB, filter, dbtime.Today(), p)
	if err != nil {
		return err
	}
	return helper.Render(c, "announcements/index", fiber.Map{
		"Title":         "Annonces",
		"Announcements": rows,
		"Filter":        filter,
		"Today":         dbtime.Today(),
		"CanWrite":      helper.IsRole(c, constants.TeachingRoles...),
		"Meta":          helper.BuildMetaFor(c, total, p),
	})
}

// GET /annonces/:id
func (ac *AnnouncementController) Show(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	a, err := service.Get(c.UserContext(), ac.DB, id)
	if err != nil {
		return err
	}
	role := helper.CurrentRole(c)
	if !constants.HasRole(role, constants.StaffRoles...) && !a.VisibleTo(role) {
		return fiber.NewError(fiber.StatusNotFound, "Annonce introuvable")
	}
	return helper.Render(c, "announcements/show", fiber.Map{
		"Title":        a.AnnouncementTitle,
		"Announcement": a,
		"Expired":      a.Expired(dbtime.Today()),
		"CanWrite":     helper.IsRole(c, constants.TeachingRoles...),
	})
}

// GET /annonces/nouvelle
func (ac *AnnouncementController) New(c *fiber.Ctx) error {
	return helper.Render(c, "announcements/form", formData("Nouvelle annonce", dto.AnnouncementForm{IsPublic: true}, true))
}

func readForm(c *fiber.Ctx) (dto.AnnouncementForm, error) {
	var form dto.AnnouncementForm
	if err := c.BodyParser(&form); err != nil {
		return form, err
	}
	form.IsPublic = helper.FormBool(c, "announcement_is_public")
	form.Important = helper.FormBool(c, "announcement_is_important")
	return form, nil
}

// POST /annonces
func (ac *AnnouncementController) Create(c *fiber.Ctx) error {
	form, err := readForm(c)
	if err != nil {
		return helper.FlashError(c, "/annonces/nouvelle", "Formulaire invalide")
	}
	res, err := service.Create(c.UserContext(), ac.DB, ac.Notifier, helper.CurrentUserPtr(c), form)
	if err != nil {
		if _, ok := helper.IsValidationError(err); ok {
			helper.SetFlash(c, "error", helper.Messages(err))
			return helper.Render(c, "announcements/form", formData("Nouvelle annonce", form, true))
		}
		return helper.FailRedirect(c, "/annonces", err)
	}
	a := res.Announcement
	log.Printf("[INFO] annonce %q dibuat (public=%t)", a.AnnouncementTitle, a.AnnouncementIsPublic)

	switch {
	case res.NotifyErr != nil:
		log.Printf("[WARN] notifikasi annonce %s: %v", a.AnnouncementID, res.NotifyErr)
		helper.SetFlash(c, "warning", "Annonce enregistrée, mais la notification WhatsApp a échoué : "+res.NotifyErr.Error())
	case res.Notified != nil && res.Notified.Failed() > 0:
		helper.SetFlash(c, "warning", fmt.Sprintf("Notification WhatsApp : %d envoyée(s), %d échec(s).", res.Notified.Sent(), res.Notified.Failed()))
	case res.Notified != nil:
		helper.SetFlash(c, "info", fmt.Sprintf("Notification WhatsApp envoyée à %d destinataire(s).", res.Notified.Sent()))
	}
	return helper.FlashSuccess(c, "/annonces/"+a.AnnouncementID.String(), "Annonce publiée.")
}

// GET /annonces/:id/modifier
func (ac *AnnouncementController) Edit(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	a, err := service.Get(c.UserContext(), ac.DB, id)
	if err != nil {
		return err
	}
	data := formData("Modifier l'annonce", dto.FromModel(a), false)
	data["Announcement"] = a
	return helper.Render(c, "announcements/form", data)
}

// POST /annonces/:id
func (ac *AnnouncementController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := "/annonces/" + id.String() + "/modifier"
	form, err := readForm(c)
	if err != nil {
		return helper.FlashError(c, back, "Formulaire invalide")
	}
	if _, err := service.Update(c.UserContext(), ac.DB, id, form); err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, "/annonces/"+id.String(), "Annonce mise à jour.")
}

// POST /annonces/:id/supprimer
func (ac *AnnouncementController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := service.Delete(c.UserContext(), ac.DB, id); err != nil {
		return helper.FailRedirect(c, "/annonces", err)
	}
	return helper.FlashSuccess(c, "/annonces", "Annonce supprimée.")
}

// POST /annonces/:id/whatsapp (kirim ulang)
func (ac *AnnouncementController) Resend(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := "/annonces/" + id.String()
	if !ac.Notifier.Enabled() {
		return helper.FlashError(c, back, "Le service WhatsApp n'est pas configuré.")
	}
	a, err := service.Get(c.UserContext(), ac.DB, id)
	if err != nil {
		return err
	}
	rep, err := service.Broadcast(c.UserContext(), ac.DB, ac.Notifier, a)
	if err != nil {
		return helper.FlashError(c, back, "Échec de l'envoi WhatsApp : "+err.Error())
	}
	return helper.FlashSuccess(c, back, fmt.Sprintf("WhatsApp : %d envoyée(s), %d échec(s).", rep.Sent(), rep.Failed()))
}

// GET /api/annonces/recentes
func (ac *AnnouncementController) RecentAPI(c *fiber.Ctx) error {
	rows, err := service.RecentPublic(c.UserContext(), ac.DB, dbtime.Today(), 5)
	if err != nil {
		return helper.FailJSON(c, err)
	}
	return helper.JsonOK(c, "Annonces récentes", dto.ToJSON(rows))
}
