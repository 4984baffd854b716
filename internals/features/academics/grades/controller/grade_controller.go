package controller

import (
	"bytes"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/academics/grades/dto"
	"schoolku_backend/internals/features/academics/grades/service"
	classModel "schoolku_backend/internals/features/school/classes/model"
	classService "schoolku_backend/internals/features/school/classes/service"
	studentService "schoolku_backend/internals/features/school/students/service"
	subjectService "schoolku_backend/internals/features/school/subjects/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

type GradeController struct {
	DB *gorm.DB
}

func NewGradeController(db *gorm.DB) *GradeController {
	return &GradeController{DB: db}
}

func (gc *GradeController) classOptions(c *fiber.Ctx) ([]classModel.ClassModel, error) {
	return classService.OptionsFor(c.UserContext(), gc.DB, helper.CurrentRole(c), helper.CurrentUserPtr(c))
}

func termParam(c *fiber.Ctx, name string, def int) int {
	t := helper.QueryInt(c, name, def)
	if !constants.IsTerm(t) {
		return def
	}
	return t
}

// GET /notes
func (gc *GradeController) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()
	filter := service.ListFilter{
		ClassID:   helper.QueryUUID(c, "classe_id"),
		SubjectID: helper.QueryUUID(c, "cours_id"),
		Term:      termParam(c, "trimestre", 0),
	}
	recent, err := service.Recent(ctx, gc.DB, filter, 30)
	if err != nil {
		return err
	}
	classes, err := gc.classOptions(c)
	if err != nil {
		return err
	}
	subjects, err := subjectService.Options(ctx, gc.DB)
	if err != nil {
		return err
	}
	return helper.Render(c, "grades/index", fiber.Map{
		"Title":      "Notes",
		"Grades":     recent,
		"Classes":    classes,
		"Subjects":   subjects,
		"ClassID":    c.Query("classe_id"),
		"SubjectID":  c.Query("cours_id"),
		"Term":       filter.Term,
		"Categories": constants.GradeCategories,
	})
}

// GET /notes/saisie
func (gc *GradeController) EntryPage(c *fiber.Ctx) error {
	ctx := c.UserContext()
	classes, err := gc.classOptions(c)
	if err != nil {
		return err
	}
	form := dto.EntryForm{
		ClassID:   c.Query("class_id"),
		SubjectID: c.Query("subject_id"),
		Term:      termParam(c, "term", 1),
		Category:  c.Query("category", constants.GradeHomework),
		Date:      dbtime.Today().Format(helper.DateLayout),
		OutOf:     constants.GradeScale,
	}
	if !constants.IsGradeCategory(form.Category) {
		form.Category = constants.GradeHomework
	}
	data := fiber.Map{
		"Title":      "Saisie des notes",
		"Classes":    classes,
		"Form":       form,
		"Categories": constants.GradeCategories,
	}

	classID := helper.QueryUUID(c, "class_id")
	subjectID := helper.QueryUUID(c, "subject_id")
	if classID != nil {
		subjects, err := subjectService.ForClass(ctx, gc.DB, *classID)
		if err != nil {
			return err
		}
		data["Subjects"] = subjects
	}
	if classID != nil && subjectID != nil {
		sheet, err := service.EntrySheet(ctx, gc.DB, *classID, *subjectID, form.Term, form.Category)
		if err != nil {
			return err
		}
		data["Sheet"] = sheet
		for _, g := range sheet.Existing {
			form.OutOf = g.GradeOutOf
			form.Date = g.GradeDate.Format(helper.DateLayout)
			data["Form"] = form
			break
		}
	}
	return helper.Render(c, "grades/entry", data)
}

// POST /notes/saisie
func (gc *GradeController) SaveEntry(c *fiber.Ctx) error {
	var form dto.EntryForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, "/notes/saisie", "Formulaire invalide")
	}
	back := fmt.Sprintf("/notes/saisie?class_id=%s&subject_id=%s&term=%d&category=%s",
		form.ClassID, form.SubjectID, form.Term, form.Category)

	res, err := service.SaveEntry(c.UserContext(), gc.DB, helper.CurrentUserPtr(c), form, func(k string) string {
		return c.FormValue(k)
	})
	if err != nil {
		return helper.FailRedirect(c, back, err)
	}
	for _, e := range res.Errors {
		helper.SetFlash(c, "warning", e)
	}
	log.Printf("[INFO] saisie notes class=%s subject=%s term=%d: %d disimpan, %d error",
		form.ClassID, form.SubjectID, form.Term, res.Saved, len(res.Errors))
	if res.Saved == 0 && len(res.Errors) == 0 {
		return helper.RedirectWithFlash(c, back, "info", "Aucune note saisie.")
	}
	return helper.FlashSuccess(c, back, fmt.Sprintf("%d note(s) enregistrée(s).", res.Saved))
}

// GET /notes/bulletin?eleve_id=&trimestre=[&format=pdf]
func (gc *GradeController) Bulletin(c *fiber.Ctx) error {
	ctx := c.UserContext()
	studentID := helper.QueryUUID(c, "eleve_id")
	term := termParam(c, "trimestre", 1)

	if studentID == nil {
		return gc.bulletinPicker(c, term)
	}
	st, err := studentService.Get(ctx, gc.DB, *studentID)
	if err != nil {
		return err
	}
	if !studentService.CanView(helper.CurrentRole(c), helper.CurrentUserPtr(c), st) {
		return fiber.NewError(fiber.StatusForbidden, "Vous ne pouvez consulter que le bulletin de vos enfants.")
	}
	view, err := service.Bulletin(ctx, gc.DB, *studentID, term)
	if err != nil {
		return err
	}

	if c.Query("format") == "pdf" {
		var buf bytes.Buffer
		if err := service.WriteBulletinPDF(&buf, configs.AppName, view); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="bulletin_%s_T%d.pdf"`, st.StudentMatricule, term))
		return c.Send(buf.Bytes())
	}
	return helper.Render(c, "grades/bulletin", fiber.Map{
		"Title":    "Bulletin de " + st.FullName(),
		"Bulletin": view,
		"Terms":    []int{1, 2, 3},
	})
}

func (gc *GradeController) bulletinPicker(c *fiber.Ctx, term int) error {
	ctx := c.UserContext()
	data := fiber.Map{"Title": "Bulletins", "Term": term, "Terms": []int{1, 2, 3}}
	if helper.CurrentRole(c) == constants.RoleParent {
		uid, _ := helper.CurrentUserID(c)
		children, err := studentService.ChildrenOf(ctx, gc.DB, uid)
		if err != nil {
			return err
		}
		data["Students"] = children
	} else {
		classes, err := gc.classOptions(c)
		if err != nil {
			return err
		}
		data["Classes"] = classes
		if classID := helper.QueryUUID(c, "classe_id"); classID != nil {
			students, err := studentService.ForClass(ctx, gc.DB, *classID)
			if err != nil {
				return err
			}
			data["Students"] = students
			data["ClassID"] = classID.String()
		}
	}
	return helper.Render(c, "grades/bulletin_picker", data)
}

// GET /notes/toutes
func (gc *GradeController) All(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := helper.ParseFiber(c, "date", "desc", helper.DefaultOpts)
	filter := service.ListFilter{
		ClassID:   helper.QueryUUID(c, "classe_id"),
		SubjectID: helper.QueryUUID(c, "cours_id"),
		Term:      termParam(c, "trimestre", 0),
		Category:  c.Query("type"),
		Search:    c.Query("q"),
	}
	if !constants.IsGradeCategory(filter.Category) {
		filter.Category = ""
	}
	rows, total, err := service.List(ctx, gc.DB, filter, p)
	if err != nil {
		return err
	}
	classes, err := gc.classOptions(c)
	if err != nil {
		return err
	}
	subjects, err := subjectService.Options(ctx, gc.DB)
	if err != nil {
		return err
	}
	return helper.Render(c, "grades/all", fiber.Map{
		"Title":      "Toutes les notes",
		"Grades":     rows,
		"Classes":    classes,
		"Subjects":   subjects,
		"Filter":     filter,
		"ClassID":    c.Query("classe_id"),
		"SubjectID":  c.Query("cours_id"),
		"Categories": constants.GradeCategories,
		"Meta":       helper.BuildMetaFor(c, total, p),
	})
}

// GET /notes/:id/modifier
func (gc *GradeController) Edit(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	g, err := service.Get(c.UserContext(), gc.DB, id)
	if err != nil {
		return err
	}
	return helper.Render(c, "grades/edit", fiber.Map{
		"Title":      "Modifier la note",
		"Grade":      g,
		"Form":       dto.FromModel(&g.GradeModel),
		"Categories": constants.GradeCategories,
	})
}

// POST /notes/:id
func (gc *GradeController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := "/notes/" + id.String() + "/modifier"
	var form dto.GradeForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, back, "Formulaire invalide")
	}
	if _, err := service.Update(c.UserContext(), gc.DB, id, form); err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, "/notes/toutes", "Note mise à jour.")
}

// POST /notes/:id/supprimer
func (gc *GradeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	g, err := service.Delete(c.UserContext(), gc.DB, id)
	if err != nil {
		return helper.FailRedirect(c, "/notes/toutes", err)
	}
	log.Printf("[INFO] nilai %s (élève %s, T%d) dihapus", g.GradeID, g.GradeStudentID, g.GradeTerm)
	return helper.FlashSuccess(c, helper.BackOr(c, "/notes/toutes"), "Note supprimée.")
}
