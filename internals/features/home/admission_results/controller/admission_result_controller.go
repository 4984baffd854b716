package controller

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/home/admission_results/dto"
	"schoolku_backend/internals/features/home/admission_results/model"
	"schoolku_backend/internals/features/home/admission_results/service"
	helper "schoolku_backend/internals/helpers"
)

const (
	adminBase      = "/admin/resultats"
	importMaxBytes = 5 * 1024 * 1024
)

type AdmissionResultController struct {
	DB *gorm.DB
}

func NewAdmissionResultController(db *gorm.DB) *AdmissionResultController {
	return &AdmissionResultController{DB: db}
}

// GET|POST /resultats
func (rc *AdmissionResultController) Lookup(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var form dto.LookupForm
	if c.Method() == fiber.MethodPost {
		_ = c.BodyParser(&form)
	} else {
		_ = c.QueryParser(&form)
	}
	form.Normalize()

	data := fiber.Map{"Title": "Résultats d'admission", "Form": form}
	promotions, err := service.Distinct(ctx, rc.DB, "result_promotion", true)
	if err != nil {
		return err
	}
	classes, err := service.Distinct(ctx, rc.DB, "result_class", true)
	if err != nil {
		return err
	}
	data["Promotions"], data["Classes"] = promotions, classes

	if form.Ready() {
		res, err := service.Lookup(ctx, rc.DB, form)
		if err != nil {
			return err
		}
		data["Searched"] = true
		data["Result"] = res
	} else if c.Method() == fiber.MethodPost {
		helper.SetFlash(c, "error", "Le nom, la classe et la promotion sont obligatoires.")
	}
	return helper.Render(c, "admission_results/lookup", data)
}

// GET /admin/resultats
func (rc *AdmissionResultController) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := helper.ParseFiber(c, "promotion", "desc", helper.AdminOpts)
	filter := service.ListFilter{Class: c.Query("classe"), Promotion: c.Query("promotion"), Search: c.Query("q")}
	rows, total, err := service.List(ctx, rc.DB, filter, p)
	if err != nil {
		return err
	}
	promotions, err := service.Distinct(ctx, rc.DB, "result_promotion", false)
	if err != nil {
		return err
	}
	classes, err := service.Distinct(ctx, rc.DB, "result_class", false)
	if err != nil {
		return err
	}
	return helper.Render(c, "admission_results/index", fiber.Map{
		"Title":      "Résultats d'admission",
		"Results":    rows,
		"Filter":     filter,
		"Promotions": promotions,
		"Classes":    classes,
		"Meta":       helper.BuildMetaFor(c, total, p),
	})
}

func (rc *AdmissionResultController) renderForm(c *fiber.Ctx, title string, form dto.ResultForm, res *model.AdmissionResultModel) error {
	return helper.Render(c, "admission_results/form", fiber.Map{
		"Title":    title,
		"Form":     form,
		"Result":   res,
		"Statuses": model.ResultStatuses,
	})
}

// GET /admin/resultats/nouveau
func (rc *AdmissionResultController) New(c *fiber.Ctx) error {
	return rc.renderForm(c, "Nouveau résultat", dto.ResultForm{Status: model.ResultAdmitted}, nil)
}

// POST /admin/resultats
func (rc *AdmissionResultController) Create(c *fiber.Ctx) error {
	var form dto.ResultForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, adminBase+"/nouveau", "Formulaire invalide")
	}
	form.Published = helper.FormBool(c, "result_published")
	if _, err := service.Create(c.UserContext(), rc.DB, form); err != nil {
		if _, ok := helper.IsValidationError(err); ok {
			helper.SetFlash(c, "error", helper.Messages(err))
			return rc.renderForm(c, "Nouveau résultat", form, nil)
		}
		return helper.FailRedirect(c, adminBase, err)
	}
	return helper.FlashSuccess(c, adminBase, "Résultat d'admission créé.")
}

// GET /admin/resultats/:id/modifier
func (rc *AdmissionResultController) Edit(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := service.Get(c.UserContext(), rc.DB, id)
	if err != nil {
		return err
	}
	return rc.renderForm(c, "Modifier "+m.FullName(), dto.FromModel(m), m)
}

// POST /admin/resultats/:id
func (rc *AdmissionResultController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := adminBase + "/" + id.String() + "/modifier"
	var form dto.ResultForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, back, "Formulaire invalide")
	}
	form.Published = helper.FormBool(c, "result_published")
	if _, err := service.Update(c.UserContext(), rc.DB, id, form); err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, adminBase, "Résultat mis à jour.")
}

// POST /admin/resultats/:id/publier
func (rc *AdmissionResultController) Toggle(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := service.TogglePublished(c.UserContext(), rc.DB, id)
	if err != nil {
		return helper.FailRedirect(c, adminBase, err)
	}
	msg := "Résultat retiré de la consultation publique."
	if m.ResultPublished {
		msg = "Résultat publié."
	}
	return helper.FlashSuccess(c, helper.BackOr(c, adminBase), msg)
}

// POST /admin/resultats/publier-lot
func (rc *AdmissionResultController) PublishAll(c *fiber.Ctx) error {
	class := strings.TrimSpace(c.FormValue("result_class"))
	promo := strings.TrimSpace(c.FormValue("result_promotion"))
	if class == "" || promo == "" {
		return helper.FlashError(c, adminBase, "Choisissez une classe et une promotion.")
	}
	publish := c.FormValue("action") != "retirer"
	n, err := service.PublishAll(c.UserContext(), rc.DB, class, promo, publish)
	if err != nil {
		return helper.FailRedirect(c, adminBase, err)
	}
	verb := "publié(s)"
	if !publish {
		verb = "retiré(s)"
	}
	return helper.FlashSuccess(c, adminBase+"?classe="+url.QueryEscape(class)+"&promotion="+url.QueryEscape(promo),
		fmt.Sprintf("%d résultat(s) %s.", n, verb))
}

// POST /admin/resultats/:id/supprimer
func (rc *AdmissionResultController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := service.Delete(c.UserContext(), rc.DB, id); err != nil {
		if helper.IsAPI(c) {
			return helper.FailJSON(c, err)
		}
		return helper.FailRedirect(c, adminBase, err)
	}
	if helper.IsAPI(c) {
		return helper.JsonDeleted(c, "Résultat supprimé", fiber.Map{"result_id": id})
	}
	return helper.FlashSuccess(c, helper.BackOr(c, adminBase), "Résultat supprimé.")
}

// GET /admin/resultats/importer
func (rc *AdmissionResultController) ImportPage(c *fiber.Ctx) error {
	return helper.Render(c, "admission_results/import", fiber.Map{
		"Title":    "Importer des résultats",
		"Form":     dto.BulkForm{Status: model.ResultAdmitted},
		"Statuses": model.ResultStatuses,
	})
}

// POST /admin/resultats/importer (textarea)
func (rc *AdmissionResultController) ImportNames(c *fiber.Ctx) error {
	var form dto.BulkForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, adminBase+"/importer", "Formulaire invalide")
	}
	form.Published = helper.FormBool(c, "result_published")
	n, err := service.ImportNames(c.UserContext(), rc.DB, form)
	if err != nil {
		if _, ok := helper.IsValidationError(err); ok {
			helper.SetFlash(c, "error", helper.Messages(err))
			return helper.Render(c, "admission_results/import", fiber.Map{
				"Title":    "Importer des résultats",
				"Form":     form,
				"Statuses": model.ResultStatuses,
			})
		}
		return helper.FailRedirect(c, adminBase+"/importer", err)
	}
	log.Printf("[INFO] import %d résultat(s) %s/%s", n, form.Class, form.Promotion)
	return helper.FlashSuccess(c, adminBase, fmt.Sprintf("%d résultat(s) d'admission importé(s).", n))
}

// POST /admin/resultats/importer-excel
func (rc *AdmissionResultController) ImportSheet(c *fiber.Ctx) error {
	back := adminBase + "/importer"
	fh, err := c.FormFile("fichier")
	if err != nil {
		return helper.FlashError(c, back, "Sélectionnez un fichier Excel.")
	}
	if constants.FileExt(fh.Filename) != "xlsx" {
		return helper.FlashError(c, back, "Seuls les fichiers .xlsx sont acceptés.")
	}
	if fh.Size > importMaxBytes {
		return helper.FlashError(c, back, "Fichier trop volumineux (5 Mo maximum).")
	}
	file, err := fh.Open()
	if err != nil {
		return helper.FailRedirect(c, back, err)
	}
	defer file.Close()

	parsed, err := service.ImportSheet(c.UserContext(), rc.DB, file, helper.FormBool(c, "result_published"))
	if err != nil {
		return helper.FailRedirect(c, back, err)
	}
	msg := fmt.Sprintf("%d résultat(s) importé(s).", len(parsed.Results))
	if len(parsed.Issues) > 0 {
		lines := make([]string, 0, len(parsed.Issues))
		for _, is := range parsed.Issues {
			lines = append(lines, fmt.Sprintf("ligne %d (%s)", is.Row, is.Reason))
		}
		helper.SetFlash(c, "warning", "Lignes ignorées : "+strings.Join(lines, "; "))
	}
	return helper.FlashSuccess(c, adminBase, msg)
}
