package controller

import (
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/archives/archive/dto"
	"schoolku_backend/internals/features/archives/archive/model"
	"schoolku_backend/internals/features/archives/archive/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
	"schoolku_backend/internals/helpers/storage"
)

type ArchiveController struct {
	DB    *gorm.DB
	Store storage.Store
}

func NewArchiveController(db *gorm.DB, st storage.Store) *ArchiveController {
	return &ArchiveController{DB: db, Store: st}
}

func (ac *ArchiveController) unlocked(c *fiber.Ctx, m *model.ArchiveFolderModel) bool {
	if !m.FolderConfidential {
		return true
	}
	uid, ok := helper.CurrentUserID(c)
	if !ok {
		return false
	}
	return service.VerifyUnlock(c.Cookies(service.UnlockCookieName(m.FolderID)), m.FolderID, uid, configs.JWTSecret)
}

func (ac *ArchiveController) folderParam(c *fiber.Ctx) (*model.ArchiveFolderModel, error) {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return nil, err
	}
	return service.Get(c.UserContext(), ac.DB, id)
}

// GET /archives?filtre=
func (ac *ArchiveController) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()
	now := dbtime.Now()
	filter := dto.NormalizeFilter(c.Query("filtre"))
	rows, err := service.List(ctx, ac.DB, filter, c.Query("q"), now)
	if err != nil {
		return err
	}
	counts, err := service.Counts(ctx, ac.DB, now)
	if err != nil {
		return err
	}
	return helper.Render(c, "archives/index", fiber.Map{
		"Title":   "Archives",
		"Folders": rows,
		"Filter":  filter,
		"Filters": dto.Filters,
		"Counts":  counts,
		"Search":  c.Query("q"),
	})
}

// GET /archives/nouveau
func (ac *ArchiveController) New(c *fiber.Ctx) error {
	return helper.Render(c, "archives/form", fiber.Map{
		"Title": "Nouveau dossier",
		"Form":  dto.FolderForm{},
		"IsNew": true,
	})
}

// POST /archives
func (ac *ArchiveController) Create(c *fiber.Ctx) error {
	var form dto.FolderForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, "/archives/nouveau", "Formulaire invalide")
	}
	form.Confidential = helper.FormBool(c, "folder_confidential")
	cover, _ := c.FormFile("folder_cover")

	m, err := service.Create(c.UserContext(), ac.DB, ac.Store, helper.CurrentUserPtr(c), form, cover)
	if err != nil {
		if _, ok := helper.IsValidationError(err); ok {
			helper.SetFlash(c, "error", helper.Messages(err))
			return helper.Render(c, "archives/form", fiber.Map{"Title": "Nouveau dossier", "Form": form, "IsNew": true})
		}
		return helper.FailRedirect(c, "/archives/nouveau", err)
	}
	return helper.FlashSuccess(c, "/archives/"+m.FolderID.String(), fmt.Sprintf("Le dossier « %s » a été créé.", m.FolderName))
}

// GET /archives/:id
func (ac *ArchiveController) Show(c *fiber.Ctx) error {
	m, err := ac.folderParam(c)
	if err != nil {
		return err
	}
	if !ac.unlocked(c, m) {
		return helper.Render(c, "archives/pin", fiber.Map{"Title": m.FolderName, "Folder": m})
	}
	files, err := service.Files(c.UserContext(), ac.DB, m.FolderID)
	if err != nil {
		return err
	}
	return helper.Render(c, "archives/show", fiber.Map{
		"Title":    m.FolderName,
		"Folder":   m,
		"Files":    files,
		"CoverURL": coverURL(ac.Store, m),
	})
}

func coverURL(st storage.Store, m *model.ArchiveFolderModel) string {
	if m.FolderCoverKey == nil {
		return ""
	}
	return st.URL(*m.FolderCoverKey)
}

// POST /archives/:id/deverrouiller
func (ac *ArchiveController) Unlock(c *fiber.Ctx) error {
	m, err := ac.folderParam(c)
	if err != nil {
		return err
	}
	back := "/archives/" + m.FolderID.String()
	if !m.FolderConfidential {
		return c.Redirect(back, fiber.StatusSeeOther)
	}
	var form dto.PinForm
	_ = c.BodyParser(&form)
	if !service.CheckPin(m.FolderPinHash, form.Pin) {
		log.Printf("[INFO] PIN arsip salah folder=%s ip=%s", m.FolderID, c.IP())
		return helper.FlashError(c, back, "Code PIN incorrect.")
	}
	uid, _ := helper.CurrentUserID(c)
	now := time.Now()
	tok, err := service.SignUnlock(m.FolderID, uid, configs.JWTSecret, now)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     service.UnlockCookieName(m.FolderID),
		Value:    tok,
		Path:     "/archives",
		Expires:  now.Add(service.UnlockTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.Redirect(back, fiber.StatusSeeOther)
}

// GET /archives/:id/modifier
func (ac *ArchiveController) Edit(c *fiber.Ctx) error {
	m, err := ac.folderParam(c)
	if err != nil {
		return err
	}
	if !ac.unlocked(c, m) {
		return c.Redirect("/archives/"+m.FolderID.String(), fiber.StatusSeeOther)
	}
	return helper.Render(c, "archives/form", fiber.Map{
		"Title":    "Modifier " + m.FolderName,
		"Folder":   m,
		"Form":     dto.FromModel(m),
		"CoverURL": coverURL(ac.Store, m),
	})
}

// POST /archives/:id
func (ac *ArchiveController) Update(c *fiber.Ctx) error {
	m, err := ac.folderParam(c)
	if err != nil {
		return err
	}
	back := "/archives/" + m.FolderID.String()
	if !ac.unlocked(c, m) {
		return c.Redirect(back, fiber.StatusSeeOther)
	}
	var form dto.FolderForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, back+"/modifier", "Formulaire invalide")
	}
	form.Confidential = helper.FormBool(c, "folder_confidential")
	form.RemoveCover = helper.FormBool(c, "remove_cover")
	cover, _ := c.FormFile("folder_cover")

	if _, err := service.Update(c.UserContext(), ac.DB, ac.Store, m.FolderID, form, cover); err != nil {
		return helper.FailRedirect(c, back+"/modifier", err)
	}
	return helper.FlashSuccess(c, back, "Dossier mis à jour.")
}

// POST /archives/:id/supprimer → corbeille
func (ac *ArchiveController) Trash(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := service.Trash(c.UserContext(), ac.DB, id)
	if err != nil {
		return helper.FailRedirect(c, "/archives", err)
	}
	return helper.FlashSuccess(c, "/archives",
		fmt.Sprintf("Le dossier « %s » a été déplacé dans la corbeille.", m.FolderName))
}

// POST /archives/:id/fichiers
func (ac *ArchiveController) Upload(c *fiber.Ctx) error {
	m, err := ac.folderParam(c)
	if err != nil {
		return err
	}
	back := "/archives/" + m.FolderID.String()
	if !ac.unlocked(c, m) {
		return c.Redirect(back, fiber.StatusSeeOther)
	}
	var form dto.FileForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, back, "Formulaire invalide")
	}
	fh, _ := c.FormFile("file")
	f, err := service.AddFile(c.UserContext(), ac.DB, ac.Store, m.FolderID, helper.CurrentUserPtr(c), form, fh)
	if err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, back, fmt.Sprintf("Fichier « %s » ajouté.", f.FileName))
}

func (ac *ArchiveController) fileParam(c *fiber.Ctx) (*model.ArchiveFileModel, *model.ArchiveFolderModel, error) {
	fid, err := helper.ParamUUID(c, "fileID")
	if err != nil {
		return nil, nil, err
	}
	f, err := service.GetFile(c.UserContext(), ac.DB, fid)
	if err != nil {
		return nil, nil, err
	}
	folder, err := service.Get(c.UserContext(), ac.DB, f.FileFolderID)
	if err != nil {
		return nil, nil, err
	}
	return f, folder, nil
}

// GET /archives/fichiers/:fileID/telecharger
func (ac *ArchiveController) Download(c *fiber.Ctx) error {
	f, folder, err := ac.fileParam(c)
	if err != nil {
		return err
	}
	if !ac.unlocked(c, folder) {
		return fiber.ErrForbidden
	}
	r, err := service.OpenFile(c.UserContext(), ac.Store, f)
	if err != nil {
		return err
	}
	name := f.FileName
	if f.FileType != "" && constants.FileExt(name) != f.FileType {
		name += "." + f.FileType
	}
	if f.FileContentType != "" {
		c.Set(fiber.HeaderContentType, f.FileContentType)
	}
	c.Set(fiber.HeaderContentDisposition, "attachment; filename*=UTF-8''"+url.PathEscape(name))
	return c.SendStream(r)
}

// POST /archives/fichiers/:fileID/supprimer
func (ac *ArchiveController) DeleteFile(c *fiber.Ctx) error {
	f, folder, err := ac.fileParam(c)
	if err != nil {
		return err
	}
	back := "/archives/" + folder.FolderID.String()
	if !ac.unlocked(c, folder) {
		return c.Redirect(back, fiber.StatusSeeOther)
	}
	if _, err := service.DeleteFile(c.UserContext(), ac.DB, ac.Store, f.FileID); err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, back, "Fichier supprimé.")
}

// GET /archives/corbeille
func (ac *ArchiveController) TrashIndex(c *fiber.Ctx) error {
	items, err := service.TrashList(c.UserContext(), ac.DB, dbtime.Now(), configs.TrashRetention)
	if err != nil {
		return err
	}
	return helper.Render(c, "archives/trash", fiber.Map{
		"Title":     "Corbeille",
		"Items":     items,
		"Retention": configs.TrashRetention,
	})
}

// POST /archives/corbeille/:id/restaurer
func (ac *ArchiveController) Restore(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := service.Restore(c.UserContext(), ac.DB, id)
	if err != nil {
		return ac.trashFail(c, err)
	}
	return ac.trashOK(c, fmt.Sprintf("Le dossier « %s » a été restauré.", m.FolderName))
}

// POST /archives/corbeille/:id/supprimer (admin)
func (ac *ArchiveController) Purge(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := service.Purge(c.UserContext(), ac.DB, ac.Store, id)
	if err != nil {
		return ac.trashFail(c, err)
	}
	log.Printf("[INFO] dossier arsip %s dihapus permanen", m.FolderID)
	return ac.trashOK(c, fmt.Sprintf("Le dossier « %s » a été supprimé définitivement.", m.FolderName))
}

func (ac *ArchiveController) trashOK(c *fiber.Ctx, msg string) error {
	if helper.IsAPI(c) {
		return helper.JsonOK(c, msg, nil)
	}
	return helper.FlashSuccess(c, "/archives/corbeille", msg)
}

func (ac *ArchiveController) trashFail(c *fiber.Ctx, err error) error {
	if helper.IsAPI(c) {
		return helper.FailJSON(c, err)
	}
	return helper.FailRedirect(c, "/archives/corbeille", err)
}

// GET /archives/export?filtre=
func (ac *ArchiveController) Export(c *fiber.Ctx) error {
	filter := dto.NormalizeFilter(c.Query("filtre"))
	rows, err := service.List(c.UserContext(), ac.DB, filter, "", dbtime.Now())
	if err != nil {
		return err
	}
	data, err := service.ExportFolders(rows)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="archives.xlsx"`)
	return c.Send(data)
}
