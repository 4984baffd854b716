package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/finance/fees/dto"
	"schoolku_backend/internals/features/finance/fees/service"
	classService "schoolku_backend/internals/features/school/classes/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

type FeeController struct {
	DB *gorm.DB
}

func NewFeeController(db *gorm.DB) *FeeController {
	return &FeeController{DB: db}
}

func (fc *FeeController) formData(c *fiber.Ctx, title string, form dto.FeeForm, isNew bool) (fiber.Map, error) {
	classes, err := classService.Options(c.UserContext(), fc.DB)
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"Title":   title,
		"Form":    form,
		"Classes": classes,
		"Types":   constants.FeeTypes,
		"IsNew":   isNew,
	}, nil
}

// GET /frais
func (fc *FeeController) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()
	filter := service.ListFilter{
		AcademicYear: c.Query("annee", helper.AcademicYearOf(dbtime.Today())),
		ClassID:      helper.QueryUUID(c, "classe_id"),
	}
	if t := c.Query("type"); constants.In(t, constants.FeeTypes) {
		filter.Type = t
	}
	fees, err := service.List(ctx, fc.DB, filter)
	if err != nil {
		return err
	}
	classes, err := classService.Options(ctx, fc.DB)
	if err != nil {
		return err
	}
	years, err := classService.AcademicYears(ctx, fc.DB)
	if err != nil {
		return err
	}
	var total float64
	for _, f := range fees {
		total += f.FeeAmount
	}
	return helper.Render(c, "fees/index", fiber.Map{
		"Title":   "Frais scolaires",
		"Fees":    fees,
		"Total":   total,
		"Filter":  filter,
		"ClassID": c.Query("classe_id"),
		"Classes": classes,
		"Years":   years,
		"Types":   constants.FeeTypes,
		"Today":   dbtime.Today(),
	})
}

// GET /frais/nouveau
func (fc *FeeController) New(c *fiber.Ctx) error {
	data, err := fc.formData(c, "Nouveaux frais", dto.FeeForm{
		Type:         "scolarite",
		AcademicYear: helper.AcademicYearOf(dbtime.Today()),
	}, true)
	if err != nil {
		return err
	}
	return helper.Render(c, "fees/form", data)
}

// POST /frais
func (fc *FeeController) Create(c *fiber.Ctx) error {
	var form dto.FeeForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, "/frais/nouveau", "Formulaire invalide")
	}
	m, err := service.Create(c.UserContext(), fc.DB, form)
	if err != nil {
		if _, ok := helper.IsValidationError(err); ok {
			helper.SetFlash(c, "error", helper.Messages(err))
			data, derr := fc.formData(c, "Nouveaux frais", form, true)
			if derr != nil {
				return derr
			}
			return helper.Render(c, "fees/form", data)
		}
		return helper.FailRedirect(c, "/frais", err)
	}
	log.Printf("[INFO] frais %s (%s) %.2f dibuat", m.FeeName, m.FeeAcademicYear, m.FeeAmount)
	return helper.FlashSuccess(c, "/frais", "Frais créés avec succès.")
}

// GET /frais/:id/modifier
func (fc *FeeController) Edit(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := service.Get(c.UserContext(), fc.DB, id)
	if err != nil {
		return err
	}
	data, err := fc.formData(c, "Modifier "+m.FeeName, dto.FromModel(m), false)
	if err != nil {
		return err
	}
	data["Fee"] = m
	return helper.Render(c, "fees/form", data)
}

// POST /frais/:id
func (fc *FeeController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := "/frais/" + id.String() + "/modifier"
	var form dto.FeeForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, back, "Formulaire invalide")
	}
	if _, err := service.Update(c.UserContext(), fc.DB, id, form); err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, "/frais", "Frais mis à jour.")
}

// POST /frais/:id/supprimer
func (fc *FeeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := service.Delete(c.UserContext(), fc.DB, id); err != nil {
		return helper.FailRedirect(c, "/frais", err)
	}
	return helper.FlashSuccess(c, "/frais", "Frais supprimés.")
}
