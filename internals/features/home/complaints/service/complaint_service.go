package service

import (
	"context"
	"io"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/home/complaints/dto"
	"schoolku_backend/internals/features/home/complaints/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
	"schoolku_backend/internals/helpers/storage"
)

const (
	receiptDir      = "doleances"
	receiptMaxBytes = 5 * 1024 * 1024
)

// Submit: formulir publik. Photo du reçu opsional (pdf/gambar).
func Submit(ctx context.Context, db *gorm.DB, st storage.Store, form dto.ComplaintForm, receipt *multipart.FileHeader) (*model.ComplaintModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	m := form.ToModel()
	m.ComplaintStatus = constants.ComplaintPending

	if receipt != nil && receipt.Size > 0 {
		if !constants.IsAttachmentFile(receipt.Filename) {
			return nil, helper.NewValidationError("Le reçu doit être une image ou un PDF.")
		}
		stored, err := storage.SaveFormFile(ctx, st, receiptDir, receipt, receiptMaxBytes)
		if err != nil {
			return nil, err
		}
		m.ComplaintReceiptKey = &stored.Key
		m.ComplaintReceiptName = &stored.Name
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if m.ComplaintReceiptKey != nil {
			storage.DeleteQuiet(ctx, st, *m.ComplaintReceiptKey)
		}
		return nil, errors.Wrap(err, "create complaint")
	}
	return m, nil
}

func List(ctx context.Context, db *gorm.DB, status, search string, p helper.Params) ([]model.ComplaintRow, int64, error) {
	q := db.WithContext(ctx).Table("complaints d").
		Joins("LEFT JOIN users u ON u.id = d.complaint_handled_by")
	if constants.In(status, constants.ComplaintStatuses) {
		q = q.Where("d.complaint_status = ?", status)
	}
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + s + "%"
		q = q.Where("d.complaint_student_name ILIKE ? OR d.complaint_class ILIKE ? OR d.complaint_phone1 ILIKE ?", like, like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count complaints")
	}
	var rows []model.ComplaintRow
	err := q.Select("d.*, u.full_name AS handler_name").
		Order("d.complaint_created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).Scan(&rows).Error
	return rows, total, errors.Wrap(err, "list complaints")
}

func CountByStatus(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	if err := db.WithContext(ctx).Model(&model.ComplaintModel{}).
		Select("complaint_status AS status, COUNT(*) AS total").
		Group("complaint_status").Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "count complaints by status")
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Total
	}
	return out, nil
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.ComplaintRow, error) {
	var row model.ComplaintRow
	err := db.WithContext(ctx).Table("complaints d").
		Joins("LEFT JOIN users u ON u.id = d.complaint_handled_by").
		Select("d.*, u.full_name AS handler_name").
		Where("d.complaint_id = ?", id).Take(&row).Error
	if err != nil {
		return nil, helper.DBError(err, "Doléance")
	}
	return &row, nil
}

// Treat: ubah statut + réponse; treated-by / treated-at dicatat.
func Treat(ctx context.Context, db *gorm.DB, id uuid.UUID, actor *uuid.UUID, form dto.TreatForm) error {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return err
	}
	now := dbtime.Now()
	res := db.WithContext(ctx).Model(&model.ComplaintModel{}).Where("complaint_id = ?", id).
		Updates(map[string]any{
			"complaint_status":     form.Status,
			"complaint_response":   helper.TrimPtr(form.Response),
			"complaint_handled_by": actor,
			"complaint_handled_at": now,
		})
	if res.Error != nil {
		return errors.Wrap(res.Error, "treat complaint")
	}
	if res.RowsAffected == 0 {
		return helper.NotFound("Doléance introuvable")
	}
	return nil
}

func OpenReceipt(ctx context.Context, st storage.Store, m *model.ComplaintModel) (io.ReadCloser, error) {
	if m.ComplaintReceiptKey == nil {
		return nil, helper.NotFound("Aucun reçu joint")
	}
	r, err := st.Open(ctx, *m.ComplaintReceiptKey)
	if err != nil {
		if errors.Cause(err) == storage.ErrNotFound {
			return nil, helper.NotFound("Reçu introuvable sur le stockage")
		}
		return nil, err
	}
	return r, nil
}

func Delete(ctx context.Context, db *gorm.DB, st storage.Store, id uuid.UUID) error {
	var m model.ComplaintModel
	if err := db.WithContext(ctx).First(&m, "complaint_id = ?", id).Error; err != nil {
		return helper.DBError(err, "Doléance")
	}
	if err := db.WithContext(ctx).Delete(&m).Error; err != nil {
		return errors.Wrap(err, "delete complaint")
	}
	if m.ComplaintReceiptKey != nil {
		storage.DeleteQuiet(ctx, st, *m.ComplaintReceiptKey)
	}
	return nil
}
