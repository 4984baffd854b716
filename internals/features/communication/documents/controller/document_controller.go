package controller

import (
	"fmt"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/communication/documents/dto"
	"schoolku_backend/internals/features/communication/documents/service"
	studentDTO "schoolku_backend/internals/features/school/students/dto"
	studentService "schoolku_backend/internals/features/school/students/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/storage"
)

type DocumentController struct {
	DB    *gorm.DB
	Store storage.Store
}

func NewDocumentController(db *gorm.DB, st storage.Store) *DocumentController {
	return &DocumentController{DB: db, Store: st}
}

// GET /documents
func (dc *DocumentController) Index(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	filter := service.ListFilter{Search: c.Query("q")}
	if cat := c.Query("categorie"); constants.In(cat, constants.DocumentTypes) {
		filter.Category = cat
	}
	if helper.CurrentRole(c) == constants.RoleParent {
		filter.ParentID = helper.CurrentUserPtr(c)
	}
	rows, total, err := service.List(c.UserContext(), dc.DB, filter, p)
	if err != nil {
		return err
	}
	return helper.Render(c, "documents/index", fiber.Map{
		"Title":      "Documents",
		"Documents":  rows,
		"Filter":     filter,
		"Categories": constants.DocumentTypes,
		"CanWrite":   helper.IsRole(c, constants.StaffRoles...),
		"Meta":       helper.BuildMetaFor(c, total, p),
	})
}

// GET /documents/nouveau
func (dc *DocumentController) New(c *fiber.Ctx) error {
	students, err := studentService.Active(c.UserContext(), dc.DB)
	if err != nil {
		return err
	}
	return helper.Render(c, "documents/form", fiber.Map{
		"Title":      "Nouveau document",
		"Form":       dto.DocumentForm{Category: "circulaire", StudentID: c.Query("eleve_id")},
		"Categories": constants.DocumentTypes,
		"Students":   studentDTO.ToOptions(students),
	})
}

// POST /documents
func (dc *DocumentController) Create(c *fiber.Ctx) error {
	var form dto.DocumentForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, "/documents/nouveau", "Formulaire invalide")
	}
	fh, _ := c.FormFile("fichier")
	d, err := service.Upload(c.UserContext(), dc.DB, dc.Store, helper.CurrentUserPtr(c), form, fh)
	if err != nil {
		return helper.FailRedirect(c, "/documents/nouveau", err)
	}
	log.Printf("[INFO] dokumen %q diupload (%s, %d B)", d.DocumentTitle, d.DocumentFileName, d.DocumentFileSize)
	return helper.FlashSuccess(c, "/documents", "Document ajouté.")
}

// GET /documents/:id/telecharger
func (dc *DocumentController) Download(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	d, err := service.Get(ctx, dc.DB, id)
	if err != nil {
		return err
	}
	ok, err := service.CanAccess(ctx, dc.DB, helper.CurrentRole(c), helper.CurrentUserPtr(c), d)
	if err != nil {
		return err
	}
	if !ok {
		return fiber.ErrForbidden
	}
	r, err := service.Open(ctx, dc.Store, d)
	if err != nil {
		return err
	}
	if d.DocumentContentType != "" {
		c.Set(fiber.HeaderContentType, d.DocumentContentType)
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(d.DocumentFileName)))
	return c.SendStream(r)
}

// POST /documents/:id/supprimer
func (dc *DocumentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := service.Delete(c.UserContext(), dc.DB, dc.Store, id); err != nil {
		return helper.FailRedirect(c, "/documents", err)
	}
	return helper.FlashSuccess(c, "/documents", "Document supprimé.")
}
