package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/users/user/dto"
	"schoolku_backend/internals/features/users/user/service"
	helper "schoolku_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GET /admin/utilisateurs
func (uc *UserController) Index(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "name", "asc", helper.DefaultOpts)
	filter := service.ListFilter{Role: c.Query("role"), Search: c.Query("q")}

	users, total, err := service.List(c.UserContext(), uc.DB, filter, p)
	if err != nil {
		return err
	}
	counts, err := service.CountByRole(c.UserContext(), uc.DB)
	if err != nil {
		return err
	}
	return helper.Render(c, "users/index", fiber.Map{
		"Title":  "Utilisateurs",
		"Users":  users,
		"Counts": counts,
		"Filter": filter,
		"Roles":  constants.AllRoles,
		"Meta":   helper.BuildMetaFor(c, total, p),
	})
}

// GET /admin/utilisateurs/nouveau
func (uc *UserController) New(c *fiber.Ctx) error {
	return helper.Render(c, "users/form", fiber.Map{
		"Title": "Nouvel utilisateur",
		"Form":  dto.UserForm{Role: constants.RoleTeacher, IsActive: true},
		"Roles": constants.AllRoles,
		"IsNew": true,
	})
}

// POST /admin/utilisateurs
func (uc *UserController) Create(c *fiber.Ctx) error {
	var form dto.UserForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, "/admin/utilisateurs/nouveau", "Formulaire invalide")
	}
	form.IsActive = helper.FormBool(c, "is_active")

	u, err := service.Create(c.UserContext(), uc.DB, form)
	if err != nil {
		if _, ok := helper.IsValidationError(err); ok {
			helper.SetFlash(c, "error", helper.Messages(err))
			return helper.Render(c, "users/form", fiber.Map{
				"Title": "Nouvel utilisateur",
				"Form":  form,
				"Roles": constants.AllRoles,
				"IsNew": true,
			})
		}
		return helper.FailRedirect(c, "/admin/utilisateurs", err)
	}
	log.Printf("[INFO] user %s (%s) dibuat", u.Email, u.Role)
	return helper.FlashSuccess(c, "/admin/utilisateurs", "Utilisateur créé avec succès.")
}

// GET /admin/utilisateurs/:id/modifier
func (uc *UserController) Edit(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	u, err := service.Get(c.UserContext(), uc.DB, id)
	if err != nil {
		return err
	}
	return helper.Render(c, "users/form", fiber.Map{
		"Title": "Modifier " + u.FullName,
		"User":  u,
		"Form":  dto.FromModel(u),
		"Roles": constants.AllRoles,
	})
}

// POST /admin/utilisateurs/:id
func (uc *UserController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := "/admin/utilisateurs/" + id.String() + "/modifier"

	var form dto.UserForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, back, "Formulaire invalide")
	}
	form.IsActive = helper.FormBool(c, "is_active")

	actor, _ := helper.CurrentUserID(c)
	if _, err := service.Update(c.UserContext(), uc.DB, id, actor, form); err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, "/admin/utilisateurs", "Utilisateur mis à jour.")
}

// POST /admin/utilisateurs/:id/supprimer
func (uc *UserController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	actor, _ := helper.CurrentUserID(c)
	if err := service.Delete(c.UserContext(), uc.DB, id, actor); err != nil {
		return helper.FailRedirect(c, "/admin/utilisateurs", err)
	}
	return helper.FlashSuccess(c, "/admin/utilisateurs", "Utilisateur supprimé.")
}
