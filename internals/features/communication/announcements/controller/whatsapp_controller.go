package controller

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/features/communication/announcements/dto"
	"schoolku_backend/internals/features/communication/announcements/service"
	helper "schoolku_backend/internals/helpers"
)

const whatsappPage = "/communication/whatsapp"

// GET /communication/whatsapp
func (ac *AnnouncementController) Recipients(c *fiber.Ctx) error {
	rows, err := service.Recipients(c.UserContext(), ac.DB)
	if err != nil {
		return err
	}
	active := 0
	for _, r := range rows {
		if r.RecipientIsActive {
			active++
		}
	}
	return helper.Render(c, "announcements/whatsapp", fiber.Map{
		"Title":      "Destinataires WhatsApp",
		"Recipients": rows,
		"Active":     active,
		"Enabled":    ac.Notifier.Enabled(),
	})
}

// POST /communication/whatsapp
func (ac *AnnouncementController) AddRecipient(c *fiber.Ctx) error {
	var form dto.RecipientForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, whatsappPage, "Formulaire invalide")
	}
	r, err := service.AddRecipient(c.UserContext(), ac.DB, form)
	if err != nil {
		return helper.FailRedirect(c, whatsappPage, err)
	}
	return helper.FlashSuccess(c, whatsappPage, "Destinataire "+r.RecipientName+" ajouté.")
}

// POST /communication/whatsapp/:id/basculer
func (ac *AnnouncementController) ToggleRecipient(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	r, err := service.ToggleRecipient(c.UserContext(), ac.DB, id)
	if err != nil {
		return helper.FailRedirect(c, whatsappPage, err)
	}
	state := "désactivé"
	if r.RecipientIsActive {
		state = "activé"
	}
	return helper.FlashSuccess(c, whatsappPage, fmt.Sprintf("%s %s.", r.RecipientName, state))
}

// POST /communication/whatsapp/:id/supprimer
func (ac *AnnouncementController) DeleteRecipient(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := service.DeleteRecipient(c.UserContext(), ac.DB, id); err != nil {
		return helper.FailRedirect(c, whatsappPage, err)
	}
	return helper.FlashSuccess(c, whatsappPage, "Destinataire supprimé.")
}

// POST /communication/whatsapp/test
func (ac *AnnouncementController) TestSend(c *fiber.Ctx) error {
	if !ac.Notifier.Enabled() {
		return helper.FlashError(c, whatsappPage, "Le service WhatsApp n'est pas configuré (WHATSAPP_API_KEY).")
	}
	phones := []string{strings.TrimSpace(c.FormValue("phone"))}
	if phones[0] == "" {
		var err error
		if phones, err = service.ActivePhones(c.UserContext(), ac.DB); err != nil {
			return err
		}
	}
	if len(phones) == 0 {
		return helper.FlashError(c, whatsappPage, "Aucun destinataire actif.")
	}
	rep, err := ac.Notifier.Send(c.UserContext(), phones, "*TEST*\n\nCeci est un message de test du système de notifications de l'école.")
	if err != nil {
		return helper.FlashError(c, whatsappPage, err.Error())
	}
	for _, r := range rep.Results {
		if !r.OK {
			helper.SetFlash(c, "warning", r.Phone+" : "+r.Error)
		}
	}
	return helper.FlashSuccess(c, whatsappPage, fmt.Sprintf("Message de test envoyé à %d destinataire(s).", rep.Sent()))
}
