package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/classes/dto"
	"schoolku_backend/internals/features/school/classes/service"
	subjectService "schoolku_backend/internals/features/school/subjects/service"
	userService "schoolku_backend/internals/features/users/user/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

// GET /classes
func (cc *ClassController) Index(c *fiber.Ctx) error {
	filter := service.ListFilter{
		AcademicYear: c.Query("annee"),
		Level:        c.Query("niveau"),
		Search:       c.Query("q"),
	}
	rows, err := service.List(c.UserContext(), cc.DB, filter)
	if err != nil {
		return err
	}
	years, err := service.AcademicYears(c.UserContext(), cc.DB)
	if err != nil {
		return err
	}
	return helper.Render(c, "classes/index", fiber.Map{
		"Title":   "Classes",
		"Classes": rows,
		"Filter":  filter,
		"Years":   years,
	})
}

// GET /classes/nouvelle
func (cc *ClassController) New(c *fiber.Ctx) error {
	return helper.Render(c, "classes/form", fiber.Map{
		"Title": "Nouvelle classe",
		"Form":  dto.ClassForm{Capacity: dto.DefaultCapacity, AcademicYear: helper.AcademicYearOf(dbtime.Today())},
		"IsNew": true,
	})
}

// POST /classes
func (cc *ClassController) Create(c *fiber.Ctx) error {
	var form dto.ClassForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, "/classes/nouvelle", "Formulaire invalide")
	}
	m, err := service.Create(c.UserContext(), cc.DB, form)
	if err != nil {
		if _, ok := helper.IsValidationError(err); ok {
			helper.SetFlash(c, "error", helper.Messages(err))
			return helper.Render(c, "classes/form", fiber.Map{"Title": "Nouvelle classe", "Form": form, "IsNew": true})
		}
		return helper.FailRedirect(c, "/classes", err)
	}
	log.Printf("[INFO] kelas %s dibuat", m.Label())
	return helper.FlashSuccess(c, "/classes/"+m.ClassID.String(), "Classe créée avec succès.")
}

// GET /classes/:id
func (cc *ClassController) Show(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	d, err := service.Show(c.UserContext(), cc.DB, id)
	if err != nil {
		return err
	}
	data := fiber.Map{
		"Title":     d.Class.Label(),
		"Class":     d.Class,
		"Students":  d.Students,
		"Teachings": d.Teachings,
	}
	// form affectation di halaman kelas hanya untuk staff
	if helper.IsRole(c, constants.StaffRoles...) {
		subjects, err := subjectService.Options(c.UserContext(), cc.DB)
		if err != nil {
			return err
		}
		teachers, err := userService.ByRole(c.UserContext(), cc.DB, constants.RoleTeacher)
		if err != nil {
			return err
		}
		data["Subjects"] = subjects
		data["Teachers"] = teachers
	}
	return helper.Render(c, "classes/show", data)
}

// GET /classes/:id/modifier
func (cc *ClassController) Edit(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := service.Get(c.UserContext(), cc.DB, id)
	if err != nil {
		return err
	}
	return helper.Render(c, "classes/form", fiber.Map{
		"Title": "Modifier " + m.ClassName,
		"Class": m,
		"Form":  dto.FromModel(m),
	})
}

// POST /classes/:id
func (cc *ClassController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := "/classes/" + id.String() + "/modifier"
	var form dto.ClassForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, back, "Formulaire invalide")
	}
	if _, err := service.Update(c.UserContext(), cc.DB, id, form); err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, "/classes/"+id.String(), "Classe mise à jour.")
}

// POST /classes/:id/supprimer
func (cc *ClassController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := service.Delete(c.UserContext(), cc.DB, id); err != nil {
		return helper.FailRedirect(c, "/classes", err)
	}
	return helper.FlashSuccess(c, "/classes", "Classe supprimée.")
}
