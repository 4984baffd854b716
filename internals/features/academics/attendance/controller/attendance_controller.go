package controller

import (
	"fmt"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/academics/attendance/dto"
	"schoolku_backend/internals/features/academics/attendance/service"
	classModel "schoolku_backend/internals/features/school/classes/model"
	classService "schoolku_backend/internals/features/school/classes/service"
	studentDTO "schoolku_backend/internals/features/school/students/dto"
	studentService "schoolku_backend/internals/features/school/students/service"
	subjectService "schoolku_backend/internals/features/school/subjects/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

func (ac *AttendanceController) classOptions(c *fiber.Ctx) ([]classModel.ClassModel, error) {
	return classService.OptionsFor(c.UserContext(), ac.DB, helper.CurrentRole(c), helper.CurrentUserPtr(c))
}

// GET /presences
func (ac *AttendanceController) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()
	filter := service.Filter{
		ClassID:   helper.QueryUUID(c, "classe_id"),
		SubjectID: helper.QueryUUID(c, "cours_id"),
	}
	if s := c.Query("statut"); constants.IsAttendanceStatus(s) {
		filter.Status = s
	}
	if d, err := helper.ParseDatePtr(c.Query("date")); err == nil && d != nil {
		filter.From, filter.To = d, d
	}

	records, err := service.Recent(ctx, ac.DB, filter, 50)
	if err != nil {
		return err
	}
	classes, err := ac.classOptions(c)
	if err != nil {
		return err
	}
	subjects, err := subjectService.Options(ctx, ac.DB)
	if err != nil {
		return err
	}
	return helper.Render(c, "attendance/index", fiber.Map{
		"Title":     "Présences",
		"Records":   records,
		"Classes":   classes,
		"Subjects":  subjects,
		"Statuses":  constants.AttendanceStatuses,
		"ClassID":   c.Query("classe_id"),
		"SubjectID": c.Query("cours_id"),
		"Status":    filter.Status,
		"Date":      c.Query("date"),
	})
}

// GET /presences/saisie
func (ac *AttendanceController) EntryPage(c *fiber.Ctx) error {
	ctx := c.UserContext()
	classes, err := ac.classOptions(c)
	if err != nil {
		return err
	}
	form := dto.EntryForm{
		ClassID:   c.Query("class_id"),
		SubjectID: c.Query("subject_id"),
		Date:      c.Query("date", dbtime.Today().Format(helper.DateLayout)),
	}
	date, err := helper.ParseDate(form.Date)
	if err != nil {
		date = dbtime.Today()
		form.Date = date.Format(helper.DateLayout)
	}
	data := fiber.Map{
		"Title":    "Saisie des présences",
		"Classes":  classes,
		"Form":     form,
		"Statuses": constants.AttendanceStatuses,
	}

	if classID := helper.QueryUUID(c, "class_id"); classID != nil {
		subjects, err := subjectService.ForClass(ctx, ac.DB, *classID)
		if err != nil {
			return err
		}
		sheet, err := service.EntrySheet(ctx, ac.DB, *classID, helper.QueryUUID(c, "subject_id"), date)
		if err != nil {
			return err
		}
		data["Subjects"] = subjects
		data["Sheet"] = sheet
	}
	return helper.Render(c, "attendance/entry", data)
}

// POST /presences/saisie
func (ac *AttendanceController) SaveEntry(c *fiber.Ctx) error {
	var form dto.EntryForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, "/presences/saisie", "Formulaire invalide")
	}
	back := fmt.Sprintf("/presences/saisie?class_id=%s&subject_id=%s&date=%s",
		url.QueryEscape(form.ClassID), url.QueryEscape(form.SubjectID), url.QueryEscape(form.Date))

	res, err := service.SaveEntry(c.UserContext(), ac.DB, helper.CurrentUserPtr(c), form, func(k string) string {
		return c.FormValue(k)
	})
	if err != nil {
		return helper.FailRedirect(c, back, err)
	}
	log.Printf("[INFO] saisie présence class=%s date=%s: %d baris, %d absent", form.ClassID, form.Date, res.Saved, res.Absents)
	return helper.FlashSuccess(c, back, fmt.Sprintf("Présences enregistrées (%d élève(s), %d absent(s)).", res.Saved, res.Absents))
}

// GET /presences/rapport
func (ac *AttendanceController) Report(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var q dto.ReportForm
	if err := c.QueryParser(&q); err != nil {
		return fiber.ErrBadRequest
	}
	filter := service.Filter{
		StudentID: helper.QueryUUID(c, "eleve_id"),
		ClassID:   helper.QueryUUID(c, "classe_id"),
		SubjectID: helper.QueryUUID(c, "cours_id"),
	}
	var err error
	if filter.From, err = helper.ParseDatePtr(q.From); err != nil {
		helper.SetFlash(c, "warning", "Date de début invalide, ignorée.")
		filter.From = nil
	}
	if filter.To, err = helper.ParseDatePtr(q.To); err != nil {
		helper.SetFlash(c, "warning", "Date de fin invalide, ignorée.")
		filter.To = nil
	}

	classes, err := ac.classOptions(c)
	if err != nil {
		return err
	}
	subjects, err := subjectService.Options(ctx, ac.DB)
	if err != nil {
		return err
	}
	data := fiber.Map{
		"Title":    "Rapport de présences",
		"Classes":  classes,
		"Subjects": subjects,
		"Query":    q,
	}
	if filter.ClassID != nil {
		students, err := studentService.ForClass(ctx, ac.DB, *filter.ClassID)
		if err != nil {
			return err
		}
		data["Students"] = studentDTO.ToOptions(students)
	}
	if filter.StudentID != nil || filter.ClassID != nil || filter.SubjectID != nil || filter.From != nil || filter.To != nil {
		report, err := service.BuildReport(ctx, ac.DB, filter)
		if err != nil {
			return err
		}
		data["Report"] = report
	}
	return helper.Render(c, "attendance/report", data)
}

// POST /presences/:id/supprimer
func (ac *AttendanceController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := helper.BackOr(c, "/presences")
	if err := service.Delete(c.UserContext(), ac.DB, id); err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, back, "Présence supprimée.")
}
