package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	classService "schoolku_backend/internals/features/school/classes/service"
	"schoolku_backend/internals/features/school/subjects/dto"
	"schoolku_backend/internals/features/school/subjects/service"
	userService "schoolku_backend/internals/features/users/user/service"
	helper "schoolku_backend/internals/helpers"
)

type SubjectController struct {
	DB *gorm.DB
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{DB: db}
}

// GET /cours
func (sc *SubjectController) Index(c *fiber.Ctx) error {
	rows, err := service.List(c.UserContext(), sc.DB, c.Query("q"))
	if err != nil {
		return err
	}
	return helper.Render(c, "subjects/index", fiber.Map{
		"Title":    "Cours",
		"Subjects": rows,
		"Search":   c.Query("q"),
	})
}

// GET /cours/nouveau
func (sc *SubjectController) New(c *fiber.Ctx) error {
	return helper.Render(c, "subjects/form", fiber.Map{
		"Title": "Nouveau cours",
		"Form":  dto.SubjectForm{Coefficient: 1},
		"IsNew": true,
	})
}

// POST /cours
func (sc *SubjectController) Create(c *fiber.Ctx) error {
	var form dto.SubjectForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, "/cours/nouveau", "Formulaire invalide")
	}
	if _, err := service.Create(c.UserContext(), sc.DB, form); err != nil {
		if _, ok := helper.IsValidationError(err); ok {
			helper.SetFlash(c, "error", helper.Messages(err))
			return helper.Render(c, "subjects/form", fiber.Map{"Title": "Nouveau cours", "Form": form, "IsNew": true})
		}
		return helper.FailRedirect(c, "/cours", err)
	}
	return helper.FlashSuccess(c, "/cours", "Cours créé avec succès.")
}

// GET /cours/:id/modifier
func (sc *SubjectController) Edit(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := service.Get(c.UserContext(), sc.DB, id)
	if err != nil {
		return err
	}
	return helper.Render(c, "subjects/form", fiber.Map{
		"Title":   "Modifier " + m.SubjectName,
		"Subject": m,
		"Form":    dto.FromModel(m),
	})
}

// POST /cours/:id
func (sc *SubjectController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := "/cours/" + id.String() + "/modifier"
	var form dto.SubjectForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, back, "Formulaire invalide")
	}
	if _, err := service.Update(c.UserContext(), sc.DB, id, form); err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, "/cours", "Cours mis à jour.")
}

// POST /cours/:id/supprimer
func (sc *SubjectController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := service.Delete(c.UserContext(), sc.DB, id); err != nil {
		return helper.FailRedirect(c, "/cours", err)
	}
	return helper.FlashSuccess(c, "/cours", "Cours supprimé.")
}

/* =========================
   Enseignements
   ========================= */

// GET /enseignements
func (sc *SubjectController) Teachings(c *fiber.Ctx) error {
	ctx := c.UserContext()
	filter := service.TeachingFilter{ClassID: helper.QueryUUID(c, "classe_id")}
	// professeur hanya melihat penugasannya sendiri
	if helper.CurrentRole(c) == constants.RoleTeacher {
		filter.TeacherID = helper.CurrentUserPtr(c)
	}
	rows, err := service.Teachings(ctx, sc.DB, filter)
	if err != nil {
		return err
	}
	classes, err := classService.Options(ctx, sc.DB)
	if err != nil {
		return err
	}
	data := fiber.Map{
		"Title":     "Enseignements",
		"Teachings": rows,
		"Classes":   classes,
		"ClassID":   c.Query("classe_id"),
	}
	if helper.IsRole(c, constants.StaffRoles...) {
		subjects, err := service.Options(ctx, sc.DB)
		if err != nil {
			return err
		}
		teachers, err := userService.ByRole(ctx, sc.DB, constants.RoleTeacher)
		if err != nil {
			return err
		}
		data["Subjects"] = subjects
		data["Teachers"] = teachers
	}
	return helper.Render(c, "subjects/teachings", data)
}

// POST /enseignements
func (sc *SubjectController) CreateTeaching(c *fiber.Ctx) error {
	var form dto.TeachingForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, helper.BackOr(c, "/enseignements"), "Formulaire invalide")
	}
	back := helper.BackOr(c, "/enseignements")
	if _, err := service.CreateTeaching(c.UserContext(), sc.DB, form); err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, back, "Enseignement attribué.")
}

// POST /enseignements/:id/supprimer
func (sc *SubjectController) DeleteTeaching(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := helper.BackOr(c, "/enseignements")
	if _, err := service.DeleteTeaching(c.UserContext(), sc.DB, id); err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, back, "Affectation retirée.")
}

// GET /api/classes/:id/subjects
func (sc *SubjectController) ClassSubjectsAPI(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Classe introuvable")
	}
	list, err := service.ForClass(c.UserContext(), sc.DB, id)
	if err != nil {
		return helper.FailJSON(c, err)
	}
	return helper.JsonOK(c, "OK", dto.ToOptions(list))
}
