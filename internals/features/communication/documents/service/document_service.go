package service

import (
	"context"
	"io"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/communication/documents/dto"
	"schoolku_backend/internals/features/communication/documents/model"
	studentService "schoolku_backend/internals/features/school/students/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/storage"
)

const storageDir = "documents"

type ListFilter struct {
	Category string
	Search   string
	// ParentID: batasi ke dokumen umum + dokumen anak parent ini.
	ParentID *uuid.UUID
}

func List(ctx context.Context, db *gorm.DB, f ListFilter, p helper.Params) ([]model.DocumentRow, int64, error) {
	q := db.WithContext(ctx).Table("documents d").
		Joins("LEFT JOIN students s ON s.student_id = d.document_student_id")
	if f.Category != "" {
		q = q.Where("d.document_category = ?", f.Category)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("d.document_title ILIKE ? OR d.document_file_name ILIKE ?", like, like)
	}
	if f.ParentID != nil {
		q = q.Where("d.document_student_id IS NULL OR s.student_parent_id = ?", *f.ParentID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count documents")
	}
	var rows []model.DocumentRow
	err := q.Select("d.*, (s.student_last_name || ' ' || s.student_first_name) AS student_name").
		Order("d.document_created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).Scan(&rows).Error
	return rows, total, errors.Wrap(err, "list documents")
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.DocumentModel, error) {
	var m model.DocumentModel
	if err := db.WithContext(ctx).First(&m, "document_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Document")
	}
	return &m, nil
}

// CanAccess: personnel selalu; parent hanya dokumen umum atau milik anaknya.
func CanAccess(ctx context.Context, db *gorm.DB, role string, userID *uuid.UUID, d *model.DocumentModel) (bool, error) {
	if role != constants.RoleParent {
		return true, nil
	}
	if d.DocumentStudentID == nil {
		return true, nil
	}
	st, err := studentService.Get(ctx, db, *d.DocumentStudentID)
	if err != nil {
		return false, err
	}
	return studentService.CanView(role, userID, st), nil
}

func Upload(ctx context.Context, db *gorm.DB, st storage.Store, actor *uuid.UUID, form dto.DocumentForm, fh *multipart.FileHeader) (*model.DocumentModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	if fh == nil || fh.Size == 0 {
		return nil, helper.NewValidationError("Veuillez choisir un fichier.")
	}
	if !constants.IsArchiveFile(fh.Filename) {
		return nil, helper.NewValidationError("Type de fichier non autorisé.")
	}
	var studentID *uuid.UUID
	if form.StudentID != "" {
		id, _ := uuid.Parse(form.StudentID)
		if _, err := studentService.Get(ctx, db, id); err != nil {
			return nil, err
		}
		studentID = &id
	}

	stored, err := storage.SaveFormFile(ctx, st, storageDir, fh, int64(configs.MaxUploadMB)*1024*1024)
	if err != nil {
		return nil, err
	}
	m := &model.DocumentModel{
		DocumentTitle:       form.Title,
		DocumentDescription: helper.TrimPtr(form.Description),
		DocumentCategory:    form.Category,
		DocumentStudentID:   studentID,
		DocumentFileKey:     stored.Key,
		DocumentFileName:    stored.Name,
		DocumentFileSize:    stored.Size,
		DocumentContentType: stored.ContentType,
		DocumentUploadedBy:  actor,
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		storage.DeleteQuiet(ctx, st, stored.Key)
		return nil, errors.Wrap(err, "create document")
	}
	return m, nil
}

func Open(ctx context.Context, st storage.Store, d *model.DocumentModel) (io.ReadCloser, error) {
	r, err := st.Open(ctx, d.DocumentFileKey)
	if err != nil {
		if errors.Cause(err) == storage.ErrNotFound {
			return nil, helper.NotFound("Fichier introuvable sur le stockage")
		}
		return nil, err
	}
	return r, nil
}

func Delete(ctx context.Context, db *gorm.DB, st storage.Store, id uuid.UUID) error {
	d, err := Get(ctx, db, id)
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Delete(d).Error; err != nil {
		return errors.Wrap(err, "delete document")
	}
	storage.DeleteQuiet(ctx, st, d.DocumentFileKey)
	return nil
}
