package controller

import (
	"log"
	"mime"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/home/complaints/dto"
	"schoolku_backend/internals/features/home/complaints/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/storage"
)

type ComplaintController struct {
	DB    *gorm.DB
	Store storage.Store
}

func NewComplaintController(db *gorm.DB, st storage.Store) *ComplaintController {
	return &ComplaintController{DB: db, Store: st}
}

// GET /doleances
func (cc *ComplaintController) Page(c *fiber.Ctx) error {
	return helper.Render(c, "complaints/page", fiber.Map{"Title": "Déposer une doléance", "Form": dto.ComplaintForm{}})
}

// POST /doleances
func (cc *ComplaintController) Submit(c *fiber.Ctx) error {
	var form dto.ComplaintForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, "/doleances", "Formulaire invalide")
	}
	receipt, _ := c.FormFile("complaint_receipt")
	m, err := service.Submit(c.UserContext(), cc.DB, cc.Store, form, receipt)
	if err != nil {
		if _, ok := helper.IsValidationError(err); ok {
			helper.SetFlash(c, "error", helper.Messages(err))
			return helper.Render(c, "complaints/page", fiber.Map{"Title": "Déposer une doléance", "Form": form})
		}
		return helper.FailRedirect(c, "/doleances", err)
	}
	log.Printf("[INFO] doléance baru untuk %s (%s)", m.ComplaintStudentName, m.ComplaintClass)
	return helper.FlashSuccess(c, "/doleances", "Votre doléance a été enregistrée. L'administration vous contactera.")
}

// GET /admin/doleances?statut=
func (cc *ComplaintController) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	status := c.Query("statut")
	rows, total, err := service.List(ctx, cc.DB, status, c.Query("q"), p)
	if err != nil {
		return err
	}
	counts, err := service.CountByStatus(ctx, cc.DB)
	if err != nil {
		return err
	}
	return helper.Render(c, "complaints/index", fiber.Map{
		"Title":      "Doléances",
		"Complaints": rows,
		"Status":     status,
		"Statuses":   constants.ComplaintStatuses,
		"Counts":     counts,
		"Search":     c.Query("q"),
		"Meta":       helper.BuildMetaFor(c, total, p),
	})
}

// GET /admin/doleances/:id
func (cc *ComplaintController) Show(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	row, err := service.Get(c.UserContext(), cc.DB, id)
	if err != nil {
		return err
	}
	return helper.Render(c, "complaints/show", fiber.Map{
		"Title":     "Doléance de " + row.ComplaintStudentName,
		"Complaint": row,
		"Statuses":  constants.ComplaintStatuses,
	})
}

// GET /admin/doleances/:id/recu
func (cc *ComplaintController) Receipt(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	row, err := service.Get(c.UserContext(), cc.DB, id)
	if err != nil {
		return err
	}
	r, err := service.OpenReceipt(c.UserContext(), cc.Store, &row.ComplaintModel)
	if err != nil {
		return err
	}
	if row.ComplaintReceiptName != nil {
		if ct := mime.TypeByExtension("." + constants.FileExt(*row.ComplaintReceiptName)); ct != "" {
			c.Set(fiber.HeaderContentType, ct)
		}
	}
	return c.SendStream(r)
}

// POST /admin/doleances/:id/traiter
func (cc *ComplaintController) Treat(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := "/admin/doleances/" + id.String()
	var form dto.TreatForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, back, "Formulaire invalide")
	}
	if err := service.Treat(c.UserContext(), cc.DB, id, helper.CurrentUserPtr(c), form); err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, back, "Doléance mise à jour : "+constants.Label(form.Status)+".")
}

// POST /admin/doleances/:id/supprimer
func (cc *ComplaintController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := service.Delete(c.UserContext(), cc.DB, cc.Store, id); err != nil {
		return helper.FailRedirect(c, "/admin/doleances", err)
	}
	return helper.FlashSuccess(c, "/admin/doleances", "Doléance supprimée.")
}
