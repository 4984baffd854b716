package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/home/contacts/dto"
	"schoolku_backend/internals/features/home/contacts/model"
	helper "schoolku_backend/internals/helpers"
)

const (
	StateUnread  = "non-lus"
	StatePending = "a-traiter"
	StateHandled = "traites"
)

func Submit(ctx context.Context, db *gorm.DB, form dto.ContactForm) (*model.ContactModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	m := form.ToModel()
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "create contact")
	}
	return m, nil
}

func List(ctx context.Context, db *gorm.DB, state, search string, p helper.Params) ([]model.ContactModel, int64, error) {
	q := db.WithContext(ctx).Model(&model.ContactModel{})
	switch state {
	case StateUnread:
		q = q.Where("contact_is_read = FALSE")
	case StatePending:
		q = q.Where("contact_is_handled = FALSE")
	case StateHandled:
		q = q.Where("contact_is_handled = TRUE")
	}
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + s + "%"
		q = q.Where("contact_name ILIKE ? OR contact_email ILIKE ? OR contact_subject ILIKE ?", like, like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count contacts")
	}
	var out []model.ContactModel
	err := q.Order("contact_created_at DESC").Limit(p.Limit()).Offset(p.Offset()).Find(&out).Error
	return out, total, errors.Wrap(err, "list contacts")
}

func CountUnread(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&model.ContactModel{}).Where("contact_is_read = FALSE").Count(&n).Error
	return n, errors.Wrap(err, "count unread contacts")
}

// Open: detail pesan; otomatis ditandai lu.
func Open(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.ContactModel, error) {
	var m model.ContactModel
	if err := db.WithContext(ctx).First(&m, "contact_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Message")
	}
	if !m.ContactIsRead {
		m.ContactIsRead = true
		if err := db.WithContext(ctx).Model(&m).UpdateColumn("contact_is_read", true).Error; err != nil {
			return nil, errors.Wrap(err, "mark read")
		}
	}
	return &m, nil
}

func MarkRead(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	res := db.WithContext(ctx).Model(&model.ContactModel{}).
		Where("contact_id = ?", id).UpdateColumn("contact_is_read", true)
	if res.Error != nil {
		return errors.Wrap(res.Error, "mark read")
	}
	if res.RowsAffected == 0 {
		return helper.NotFound("Message introuvable")
	}
	return nil
}

// MarkHandled: traité + note admin. Juga ditandai lu.
func MarkHandled(ctx context.Context, db *gorm.DB, id uuid.UUID, actor *uuid.UUID, form dto.HandleForm) error {
	form.Note = strings.TrimSpace(form.Note)
	if err := helper.ValidateStruct(&form); err != nil {
		return err
	}
	res := db.WithContext(ctx).Model(&model.ContactModel{}).Where("contact_id = ?", id).
		Updates(map[string]any{
			"contact_is_read":    true,
			"contact_is_handled": true,
			"contact_admin_note": helper.TrimPtr(form.Note),
			"contact_handled_by": actor,
		})
	if res.Error != nil {
		return errors.Wrap(res.Error, "mark handled")
	}
	if res.RowsAffected == 0 {
		return helper.NotFound("Message introuvable")
	}
	return nil
}

func Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	res := db.WithContext(ctx).Where("contact_id = ?", id).Delete(&model.ContactModel{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete contact")
	}
	if res.RowsAffected == 0 {
		return helper.NotFound("Message introuvable")
	}
	return nil
}
