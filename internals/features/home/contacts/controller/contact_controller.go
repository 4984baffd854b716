package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/home/contacts/dto"
	"schoolku_backend/internals/features/home/contacts/service"
	helper "schoolku_backend/internals/helpers"
)

type ContactController struct {
	DB *gorm.DB
}

func NewContactController(db *gorm.DB) *ContactController {
	return &ContactController{DB: db}
}

// GET /contact
func (cc *ContactController) Page(c *fiber.Ctx) error {
	return helper.Render(c, "contacts/page", fiber.Map{"Title": "Nous contacter", "Form": dto.ContactForm{}})
}

// POST /contact
func (cc *ContactController) Submit(c *fiber.Ctx) error {
	var form dto.ContactForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, "/contact", "Formulaire invalide")
	}
	m, err := service.Submit(c.UserContext(), cc.DB, form)
	if err != nil {
		if _, ok := helper.IsValidationError(err); ok {
			helper.SetFlash(c, "error", helper.Messages(err))
			return helper.Render(c, "contacts/page", fiber.Map{"Title": "Nous contacter", "Form": form})
		}
		return helper.FailRedirect(c, "/contact", err)
	}
	log.Printf("[INFO] pesan kontak baru dari %s", m.ContactEmail)
	return helper.FlashSuccess(c, "/contact", "Votre message a bien été envoyé. Nous vous répondrons rapidement.")
}

// GET /admin/contacts?etat=
func (cc *ContactController) Index(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	state := c.Query("etat")
	list, total, err := service.List(c.UserContext(), cc.DB, state, c.Query("q"), p)
	if err != nil {
		return err
	}
	unread, err := service.CountUnread(c.UserContext(), cc.DB)
	if err != nil {
		return err
	}
	return helper.Render(c, "contacts/index", fiber.Map{
		"Title":    "Messages de contact",
		"Contacts": list,
		"State":    state,
		"Unread":   unread,
		"Search":   c.Query("q"),
		"Meta":     helper.BuildMetaFor(c, total, p),
	})
}

// GET /admin/contacts/:id
func (cc *ContactController) Show(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := service.Open(c.UserContext(), cc.DB, id)
	if err != nil {
		return err
	}
	return helper.Render(c, "contacts/show", fiber.Map{"Title": m.ContactSubject, "Contact": m})
}

// POST /admin/contacts/:id/lu
func (cc *ContactController) MarkRead(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := service.MarkRead(c.UserContext(), cc.DB, id); err != nil {
		return helper.FailRedirect(c, "/admin/contacts", err)
	}
	return helper.FlashSuccess(c, "/admin/contacts", "Message marqué comme lu.")
}

// POST /admin/contacts/:id/traiter
func (cc *ContactController) MarkHandled(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := "/admin/contacts/" + id.String()
	var form dto.HandleForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, back, "Formulaire invalide")
	}
	if err := service.MarkHandled(c.UserContext(), cc.DB, id, helper.CurrentUserPtr(c), form); err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, back, "Message marqué comme traité.")
}

// POST /admin/contacts/:id/supprimer
func (cc *ContactController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := service.Delete(c.UserContext(), cc.DB, id); err != nil {
		return helper.FailRedirect(c, "/admin/contacts", err)
	}
	return helper.FlashSuccess(c, "/admin/contacts", "Message supprimé.")
}
