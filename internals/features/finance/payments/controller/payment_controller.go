package controller

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/constants"
	feeService "schoolku_backend/internals/features/finance/fees/service"
	"schoolku_backend/internals/features/finance/payments/dto"
	"schoolku_backend/internals/features/finance/payments/service"
	classService "schoolku_backend/internals/features/school/classes/service"
	studentService "schoolku_backend/internals/features/school/students/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

type PaymentController struct {
	DB      *gorm.DB
	Gateway service.Gateway
}

func NewPaymentController(db *gorm.DB, gw service.Gateway) *PaymentController {
	return &PaymentController{DB: db, Gateway: gw}
}

// GET /paiements
func (pc *PaymentController) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := helper.ParseFiber(c, "date", "desc", helper.DefaultOpts)
	filter := service.ListFilter{
		StudentID: helper.QueryUUID(c, "eleve_id"),
		ClassID:   helper.QueryUUID(c, "classe_id"),
		Search:    c.Query("q"),
	}
	if s := c.Query("statut"); constants.In(s, []string{constants.PaymentPending, constants.PaymentPaid, constants.PaymentFailed}) {
		filter.Status = s
	}
	if m := c.Query("mode"); constants.In(m, constants.PaymentMethods) {
		filter.Method = m
	}
	filter.From, _ = helper.ParseDatePtr(c.Query("debut"))
	filter.To, _ = helper.ParseDatePtr(c.Query("fin"))

	res, err := service.List(ctx, pc.DB, filter, p)
	if err != nil {
		return err
	}
	classes, err := classService.Options(ctx, pc.DB)
	if err != nil {
		return err
	}
	return helper.Render(c, "payments/index", fiber.Map{
		"Title":    "Paiements",
		"Payments": res.Rows,
		"Sum":      res.Sum,
		"Classes":  classes,
		"Methods":  constants.PaymentMethods,
		"Filter":   filter,
		"Query": fiber.Map{
			"classe_id": c.Query("classe_id"),
			"statut":    filter.Status,
			"mode":      filter.Method,
			"debut":     c.Query("debut"),
			"fin":       c.Query("fin"),
			"q":         filter.Search,
		},
		"Meta": helper.BuildMetaFor(c, res.Total, p),
	})
}

func (pc *PaymentController) formData(c *fiber.Ctx, form dto.PaymentForm) (fiber.Map, error) {
	ctx := c.UserContext()
	students, _, err := studentService.List(ctx, pc.DB, studentService.ListFilter{Status: "actif"}, helper.Params{Page: 1, PerPage: 1000, SortBy: "name", SortOrder: "asc"})
	if err != nil {
		return nil, err
	}
	data := fiber.Map{
		"Title":    "Nouveau paiement",
		"Form":     form,
		"Students": students,
		"Methods":  constants.PaymentMethods,
		"Statuses": []string{constants.PaymentPaid, constants.PaymentPending, constants.PaymentFailed},
	}
	if sid, err := uuid.Parse(form.StudentID); err == nil {
		st, err := studentService.Get(ctx, pc.DB, sid)
		if err != nil {
			return nil, err
		}
		sit, err := service.Situation(ctx, pc.DB, st)
		if err != nil {
			return nil, err
		}
		data["Student"] = st
		data["Situation"] = sit
	}
	return data, nil
}

// GET /paiements/nouveau[?eleve_id=]
func (pc *PaymentController) New(c *fiber.Ctx) error {
	form := dto.PaymentForm{
		StudentID: c.Query("eleve_id"),
		FeeID:     c.Query("frais_id"),
		Date:      dbtime.Today().Format(helper.DateLayout),
		Method:    constants.MethodCash,
		Status:    constants.PaymentPaid,
	}
	data, err := pc.formData(c, form)
	if err != nil {
		return err
	}
	return helper.Render(c, "payments/form", data)
}

// POST /paiements
func (pc *PaymentController) Create(c *fiber.Ctx) error {
	var form dto.PaymentForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, "/paiements/nouveau", "Formulaire invalide")
	}
	m, err := service.Create(c.UserContext(), pc.DB, helper.CurrentUserPtr(c), form)
	if err != nil {
		if _, ok := helper.IsValidationError(err); ok {
			helper.SetFlash(c, "error", helper.Messages(err))
			data, derr := pc.formData(c, form)
			if derr != nil {
				return derr
			}
			return helper.Render(c, "payments/form", data)
		}
		return helper.FailRedirect(c, "/paiements", err)
	}
	log.Printf("[INFO] paiement %.2f (%s) élève=%s", m.PaymentAmount, m.PaymentMethod, m.PaymentStudentID)
	return helper.FlashSuccess(c, "/eleves/"+m.PaymentStudentID.String(), "Paiement enregistré.")
}

// POST /paiements/:id/supprimer
func (pc *PaymentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := helper.BackOr(c, "/paiements")
	m, err := service.Delete(c.UserContext(), pc.DB, id)
	if err != nil {
		return helper.FailRedirect(c, back, err)
	}
	log.Printf("[INFO] paiement %s dihapus (%.2f)", m.PaymentID, m.PaymentAmount)
	return helper.FlashSuccess(c, back, "Paiement supprimé.")
}

// POST /paiements/:id/en-ligne  (:id = élève)
func (pc *PaymentController) StartOnline(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := "/eleves/" + id.String()
	st, err := studentService.Get(ctx, pc.DB, id)
	if err != nil {
		return err
	}
	if !studentService.CanView(helper.CurrentRole(c), helper.CurrentUserPtr(c), st) {
		return fiber.ErrForbidden
	}
	var form dto.OnlineForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, back, "Formulaire invalide")
	}

	var cust service.Customer
	if u := authMiddleware.CurrentUser(c); u != nil {
		first, last, _ := strings.Cut(u.FullName, " ")
		cust = service.Customer{FirstName: first, LastName: last, Email: u.Email}
		if u.Phone != nil {
			cust.Phone = *u.Phone
		}
	}
	m, err := service.StartOnline(ctx, pc.DB, pc.Gateway, st, cust, helper.CurrentUserPtr(c), form)
	if err != nil {
		if helper.IsAPI(c) {
			return helper.FailJSON(c, err)
		}
		return helper.FailRedirect(c, back, err)
	}
	if helper.IsAPI(c) {
		return helper.JsonCreated(c, "Transaction créée", fiber.Map{
			"payment_id":   m.PaymentID,
			"order_id":     m.PaymentOrderID,
			"snap_token":   m.PaymentSnapToken,
			"redirect_url": m.PaymentRedirectURL,
			"client_key":   configs.MidtransClientKey,
		})
	}
	return c.Redirect(*m.PaymentRedirectURL, fiber.StatusSeeOther)
}

// POST /api/paiements/notification
func (pc *PaymentController) Notification(c *fiber.Ctx) error {
	if err := service.HandleNotification(c.UserContext(), pc.DB, pc.Gateway, c.Body()); err != nil {
		return helper.FailJSON(c, err)
	}
	return helper.JsonOK(c, "ok", nil)
}

// GET /api/eleves/:id/frais
func (pc *PaymentController) StudentFeesAPI(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Élève introuvable")
	}
	st, err := studentService.Get(ctx, pc.DB, id)
	if err != nil {
		return helper.FailJSON(c, err)
	}
	if !studentService.CanView(helper.CurrentRole(c), helper.CurrentUserPtr(c), st) {
		return helper.JsonError(c, fiber.StatusForbidden, "Accès refusé")
	}
	sit, err := service.Situation(ctx, pc.DB, st)
	if err != nil {
		return helper.FailJSON(c, err)
	}
	return helper.JsonOK(c, fmt.Sprintf("Frais %s", sit.AcademicYear), fiber.Map{
		"student_id":    st.StudentID,
		"academic_year": sit.AcademicYear,
		"fees":          sit.Balances(),
		"total_due":     sit.TotalDue,
		"total_paid":    sit.TotalPaid,
		"balance":       sit.Balance,
	})
}

// GET /api/frais?classe_id=  (dropdown frais di form paiement)
func (pc *PaymentController) FeesAPI(c *fiber.Ctx) error {
	fees, err := feeService.List(c.UserContext(), pc.DB, feeService.ListFilter{
		AcademicYear: c.Query("annee", helper.AcademicYearOf(dbtime.Today())),
		ClassID:      helper.QueryUUID(c, "classe_id"),
	})
	if err != nil {
		return helper.FailJSON(c, err)
	}
	return helper.JsonOK(c, "Frais", fees)
}
