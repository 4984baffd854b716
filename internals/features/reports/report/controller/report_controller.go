package controller

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	attendanceService "schoolku_backend/internals/features/academics/attendance/service"
	gradeService "schoolku_backend/internals/features/academics/grades/service"
	"schoolku_backend/internals/features/reports/report/service"
	classService "schoolku_backend/internals/features/school/classes/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// GET /rapports
func (rc *ReportController) Statistics(c *fiber.Ctx) error {
	stats, err := service.LoadStatistics(c.UserContext(), rc.DB, dbtime.Now())
	if err != nil {
		return err
	}
	if helper.IsAPI(c) {
		return helper.JsonOK(c, "Statistiques", stats)
	}
	return helper.Render(c, "reports/statistics", fiber.Map{
		"Title": "Statistiques",
		"Stats": stats,
		"Month": helper.MonthName(int(dbtime.Now().Month())),
	})
}

// GET /rapports/academique?classe_id=&trimestre=
func (rc *ReportController) Academic(c *fiber.Ctx) error {
	ctx := c.UserContext()
	classes, err := classService.Options(ctx, rc.DB)
	if err != nil {
		return err
	}
	term := helper.QueryInt(c, "trimestre", constants.MinTerm)
	if term < constants.MinTerm || term > constants.MaxTerm {
		term = constants.MinTerm
	}
	data := fiber.Map{
		"Title":    "Rapport académique",
		"Classes":  classes,
		"Term":     term,
		"PassMark": constants.PassMark,
	}
	if classID := helper.QueryUUID(c, "classe_id"); classID != nil {
		ranking, err := gradeService.ClassRanking(ctx, rc.DB, *classID, term)
		if err != nil {
			return err
		}
		data["ClassID"] = classID.String()
		data["Ranking"] = ranking
	}
	return helper.Render(c, "reports/academic", data)
}

// GET /rapports/presences?classe_id=&du=&au=
func (rc *ReportController) Attendance(c *fiber.Ctx) error {
	ctx := c.UserContext()
	classes, err := classService.Options(ctx, rc.DB)
	if err != nil {
		return err
	}
	filter := attendanceService.Filter{ClassID: helper.QueryUUID(c, "classe_id")}
	if filter.From, err = helper.ParseDatePtr(c.Query("du")); err != nil {
		helper.SetFlash(c, "warning", "Date de début invalide, ignorée.")
		filter.From = nil
	}
	if filter.To, err = helper.ParseDatePtr(c.Query("au")); err != nil {
		helper.SetFlash(c, "warning", "Date de fin invalide, ignorée.")
		filter.To = nil
	}
	data := fiber.Map{
		"Title":   "Rapport de présences",
		"Classes": classes,
		"From":    c.Query("du"),
		"To":      c.Query("au"),
	}
	if filter.ClassID != nil {
		report, err := attendanceService.BuildReport(ctx, rc.DB, filter)
		if err != nil {
			return err
		}
		data["ClassID"] = filter.ClassID.String()
		data["Report"] = report
	}
	return helper.Render(c, "reports/attendance", data)
}

func financeParams(c *fiber.Ctx) (int, string) {
	now := dbtime.Now()
	year := helper.QueryInt(c, "annee", now.Year())
	if year < 2000 || year > 2100 {
		year = now.Year()
	}
	academic := c.Query("annee_scolaire")
	if !helper.IsAcademicYear(academic) {
		academic = helper.AcademicYearOf(now)
	}
	return year, academic
}

// GET /rapports/finances?annee=&annee_scolaire=
func (rc *ReportController) Finance(c *fiber.Ctx) error {
	year, academic := financeParams(c)
	fin, err := service.LoadFinance(c.UserContext(), rc.DB, year, academic)
	if err != nil {
		return err
	}
	years, err := classService.AcademicYears(c.UserContext(), rc.DB)
	if err != nil {
		return err
	}
	return helper.Render(c, "reports/finance", fiber.Map{
		"Title":         "Rapport financier",
		"Finance":       fin,
		"AcademicYears": years,
	})
}

// GET /rapports/finances/export
func (rc *ReportController) FinanceExport(c *fiber.Ctx) error {
	year, academic := financeParams(c)
	fin, err := service.LoadFinance(c.UserContext(), rc.DB, year, academic)
	if err != nil {
		return err
	}
	data, err := service.FinanceWorkbook(fin)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="rapport_financier_%s.xlsx"`, strconv.Itoa(year)))
	return c.Send(data)
}
