package controller

import (
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	attendanceService "schoolku_backend/internals/features/academics/attendance/service"
	gradeService "schoolku_backend/internals/features/academics/grades/service"
	paymentService "schoolku_backend/internals/features/finance/payments/service"
	classService "schoolku_backend/internals/features/school/classes/service"
	"schoolku_backend/internals/features/school/students/dto"
	"schoolku_backend/internals/features/school/students/service"
	userService "schoolku_backend/internals/features/users/user/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
	"schoolku_backend/internals/helpers/storage"
)

type StudentController struct {
	DB    *gorm.DB
	Store storage.Store
}

func NewStudentController(db *gorm.DB, st storage.Store) *StudentController {
	return &StudentController{DB: db, Store: st}
}

func photoFile(c *fiber.Ctx) *multipart.FileHeader {
	fh, err := c.FormFile("photo")
	if err != nil || fh == nil || fh.Size == 0 {
		return nil
	}
	return fh
}

func (sc *StudentController) formData(c *fiber.Ctx, data fiber.Map) (fiber.Map, error) {
	classes, err := classService.Options(c.UserContext(), sc.DB)
	if err != nil {
		return nil, err
	}
	parents, err := userService.ByRole(c.UserContext(), sc.DB, constants.RoleParent)
	if err != nil {
		return nil, err
	}
	data["Classes"] = classes
	data["Parents"] = parents
	return data, nil
}

// GET /eleves
func (sc *StudentController) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := helper.ParseFiber(c, "name", "asc", helper.DefaultOpts)
	filter := service.ListFilter{
		ClassID: helper.QueryUUID(c, "classe_id"),
		Search:  c.Query("q"),
		Status:  c.Query("statut"),
	}
	if helper.CurrentRole(c) == constants.RoleParent {
		filter.ParentID = helper.CurrentUserPtr(c)
		filter.ClassID = nil
	}

	rows, total, err := service.List(ctx, sc.DB, filter, p)
	if err != nil {
		return err
	}
	classes, err := classService.Options(ctx, sc.DB)
	if err != nil {
		return err
	}
	title := "Élèves"
	if filter.ParentID != nil {
		title = "Mes enfants"
	}
	return helper.Render(c, "students/index", fiber.Map{
		"Title":    title,
		"Students": rows,
		"Classes":  classes,
		"Filter":   filter,
		"ClassID":  c.Query("classe_id"),
		"Meta":     helper.BuildMetaFor(c, total, p),
	})
}

// GET /eleves/nouveau
func (sc *StudentController) New(c *fiber.Ctx) error {
	form := dto.StudentForm{IsActive: true, ClassID: c.Query("classe_id"), EnrolledAt: dbtime.Today().Format(helper.DateLayout)}
	data, err := sc.formData(c, fiber.Map{"Title": "Nouvel élève", "Form": form, "IsNew": true})
	if err != nil {
		return err
	}
	return helper.Render(c, "students/form", data)
}

// POST /eleves
func (sc *StudentController) Create(c *fiber.Ctx) error {
	var form dto.StudentForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, "/eleves/nouveau", "Formulaire invalide")
	}
	form.IsActive = helper.FormBool(c, "student_is_active")

	m, err := service.Create(c.UserContext(), sc.DB, sc.Store, form, photoFile(c))
	if err != nil {
		if m != nil {
			// élève tersimpan, hanya foto yang gagal
			return helper.FailRedirect(c, "/eleves/"+m.StudentID.String()+"/modifier", err)
		}
		if _, ok := helper.IsValidationError(err); ok {
			helper.SetFlash(c, "error", helper.Messages(err))
			data, ferr := sc.formData(c, fiber.Map{"Title": "Nouvel élève", "Form": form, "IsNew": true})
			if ferr != nil {
				return ferr
			}
			return helper.Render(c, "students/form", data)
		}
		return helper.FailRedirect(c, "/eleves/nouveau", err)
	}
	log.Printf("[INFO] élève %s (%s) dibuat", m.FullName(), m.StudentMatricule)
	return helper.FlashSuccess(c, "/eleves/"+m.StudentID.String(), "Élève "+m.StudentMatricule+" enregistré.")
}

// GET /eleves/:id
func (sc *StudentController) Show(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	row, err := service.GetRow(ctx, sc.DB, id)
	if err != nil {
		return err
	}
	if !service.CanView(helper.CurrentRole(c), helper.CurrentUserPtr(c), &row.StudentModel) {
		return fiber.NewError(fiber.StatusForbidden, "Vous ne pouvez consulter que la fiche de vos enfants.")
	}

	terms, err := gradeService.TermSummaries(ctx, sc.DB, &row.StudentModel)
	if err != nil {
		return err
	}
	att, err := attendanceService.StudentSummary(ctx, sc.DB, id, nil, nil)
	if err != nil {
		return err
	}
	situation, err := paymentService.Situation(ctx, sc.DB, &row.StudentModel)
	if err != nil {
		return err
	}
	return helper.Render(c, "students/show", fiber.Map{
		"Title":      row.FullName(),
		"Student":    row,
		"Age":        row.Age(dbtime.Today()),
		"Terms":      terms,
		"Attendance": att,
		"Situation":  situation,
	})
}

// GET /eleves/:id/modifier
func (sc *StudentController) Edit(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := service.Get(c.UserContext(), sc.DB, id)
	if err != nil {
		return err
	}
	data, err := sc.formData(c, fiber.Map{
		"Title":   "Modifier " + m.FullName(),
		"Student": m,
		"Form":    dto.FromModel(m),
	})
	if err != nil {
		return err
	}
	return helper.Render(c, "students/form", data)
}

// POST /eleves/:id
func (sc *StudentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := "/eleves/" + id.String() + "/modifier"
	var form dto.StudentForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, back, "Formulaire invalide")
	}
	form.IsActive = helper.FormBool(c, "student_is_active")

	if _, err := service.Update(c.UserContext(), sc.DB, sc.Store, id, form, photoFile(c)); err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, "/eleves/"+id.String(), "Fiche élève mise à jour.")
}

// POST /eleves/:id/supprimer
func (sc *StudentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := service.Delete(c.UserContext(), sc.DB, sc.Store, id); err != nil {
		return helper.FailRedirect(c, "/eleves/"+id.String(), err)
	}
	return helper.FlashSuccess(c, "/eleves", "Élève supprimé.")
}

// GET /api/classes/:id/students
func (sc *StudentController) ClassStudentsAPI(c *fiber.Ctx) error {
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
