package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/admissions/dto"
	"schoolku_backend/internals/features/school/admissions/service"
	classService "schoolku_backend/internals/features/school/classes/service"
	helper "schoolku_backend/internals/helpers"
)

type AdmissionController struct {
	DB *gorm.DB
}

func NewAdmissionController(db *gorm.DB) *AdmissionController {
	return &AdmissionController{DB: db}
}

func (ac *AdmissionController) renderForm(c *fiber.Ctx, form dto.AdmissionForm) error {
	classes, err := classService.Options(c.UserContext(), ac.DB)
	if err != nil {
		return err
	}
	return helper.Render(c, "admissions/apply", fiber.Map{
		"Title":   "Demande d'inscription",
		"Form":    form,
		"Classes": classes,
	})
}

// GET /inscriptions
func (ac *AdmissionController) Apply(c *fiber.Ctx) error {
	return ac.renderForm(c, dto.AdmissionForm{})
}

// POST /inscriptions
func (ac *AdmissionController) Submit(c *fiber.Ctx) error {
	var form dto.AdmissionForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, "/inscriptions", "Formulaire invalide")
	}
	m, err := service.Submit(c.UserContext(), ac.DB, form)
	if err != nil {
		if _, ok := helper.IsValidationError(err); ok {
			helper.SetFlash(c, "error", helper.Messages(err))
			return ac.renderForm(c, form)
		}
		return helper.FailRedirect(c, "/inscriptions", err)
	}
	log.Printf("[INFO] inscription baru %s (%s)", m.AdmissionReference, m.FullName())
	return c.Redirect("/inscriptions/confirmation/"+m.AdmissionReference, fiber.StatusSeeOther)
}

// GET /inscriptions/confirmation/:ref
func (ac *AdmissionController) Confirmation(c *fiber.Ctx) error {
	m, err := service.GetByReference(c.UserContext(), ac.DB, c.Params("ref"))
	if err != nil {
		return err
	}
	return helper.Render(c, "admissions/confirmation", fiber.Map{
		"Title":     "Demande enregistrée",
		"Admission": m,
	})
}

// GET /inscriptions/suivi?ref=
func (ac *AdmissionController) Track(c *fiber.Ctx) error {
	ref := strings.TrimSpace(c.Query("ref"))
	data := fiber.Map{"Title": "Suivi d'inscription", "Ref": ref}
	if ref != "" {
		m, err := service.GetByReference(c.UserContext(), ac.DB, ref)
		if err == nil {
			data["Admission"] = m
		} else {
			data["NotFound"] = true
		}
	}
	return helper.Render(c, "admissions/track", data)
}

// GET /inscriptions/:ref/qr.png
func (ac *AdmissionController) QRCode(c *fiber.Ctx) error {
	m, err := service.GetByReference(c.UserContext(), ac.DB, c.Params("ref"))
	if err != nil {
		return err
	}
	target := strings.TrimRight(configs.AppBaseURL, "/") + "/inscriptions/suivi?ref=" + m.AdmissionReference
	png, err := qrcode.Encode(target, qrcode.Medium, 256)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(png)
}

// GET /admin/inscriptions
func (ac *AdmissionController) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	filter := service.ListFilter{Status: c.Query("statut"), Search: c.Query("q")}
	rows, total, err := service.List(ctx, ac.DB, filter, p)
	if err != nil {
		return err
	}
	counts, err := service.CountByStatus(ctx, ac.DB)
	if err != nil {
		return err
	}
	return helper.Render(c, "admissions/index", fiber.Map{
		"Title":      "Inscriptions",
		"Admissions": rows,
		"Counts":     counts,
		"Filter":     filter,
		"Statuses":   constants.AdmissionStatuses,
		"Meta":       helper.BuildMetaFor(c, total, p),
	})
}

// GET /admin/inscriptions/:id
func (ac *AdmissionController) Show(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := service.Get(ctx, ac.DB, id)
	if err != nil {
		return err
	}
	cls, _ := classService.Get(ctx, ac.DB, m.AdmissionClassID)
	return helper.Render(c, "admissions/show", fiber.Map{
		"Title":     "Inscription " + m.AdmissionReference,
		"Admission": m,
		"Class":     cls,
	})
}

// POST /admin/inscriptions/:id/statut
func (ac *AdmissionController) Review(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := "/admin/inscriptions/" + id.String()
	var form dto.ReviewForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, back, "Formulaire invalide")
	}
	m, err := service.Review(c.UserContext(), ac.DB, id, helper.CurrentUserPtr(c), form)
	if err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, back, "Statut mis à jour : "+constants.Label(m.AdmissionStatus)+".")
}

// POST /admin/inscriptions/:id/convertir
func (ac *AdmissionController) Convert(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := "/admin/inscriptions/" + id.String()
	res, err := service.Convert(c.UserContext(), ac.DB, id, helper.CurrentUserPtr(c))
	if err != nil {
		return helper.FailRedirect(c, back, err)
	}
	log.Printf("[INFO] inscription %s → élève %s", res.Admission.AdmissionReference, res.Matricule)

	msg := "Élève créé (matricule " + res.Matricule + ")."
	if res.Password != "" {
		msg += " Compte parent " + res.Parent.Email + " créé, mot de passe provisoire : " + res.Password
	}
	return helper.FlashSuccess(c, "/eleves/"+res.StudentID.String(), msg)
}

// POST /admin/inscriptions/:id/supprimer
func (ac *AdmissionController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := service.Delete(c.UserContext(), ac.DB, id); err != nil {
		return helper.FailRedirect(c, "/admin/inscriptions", err)
	}
	return helper.FlashSuccess(c, "/admin/inscriptions", "Inscription supprimée.")
}
