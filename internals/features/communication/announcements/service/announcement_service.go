package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/communication/announcements/dto"
	"schoolku_backend/internals/features/communication/announcements/model"
	helper "schoolku_backend/internals/helpers"
)

type ListFilter struct {
	Role          string // kosong = tanpa batasan audience (direction)
	Search        string
	ActiveOnly    bool
	ImportantOnly bool
}

func List(ctx context.Context, db *gorm.DB, f ListFilter, today time.Time, p helper.Params) ([]model.AnnouncementModel, int64, error) {
	q := db.WithContext(ctx).Model(&model.AnnouncementModel{})
	if f.Role != "" && !constants.HasRole(f.Role, constants.StaffRoles...) {
		q = q.Where("announcement_is_public = ? OR cardinality(announcement_audience) = 0 OR ? = ANY(announcement_audience)", true, f.Role)
	}
	if f.ActiveOnly {
		q = q.Where("announcement_expires_at IS NULL OR announcement_expires_at >= ?", today.Format(helper.DateLayout))
	}
	if f.ImportantOnly {
		q = q.Where("announcement_is_important = ?", true)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("announcement_title ILIKE ? OR announcement_content ILIKE ?", like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count announcements")
	}
	var rows []model.AnnouncementModel
	err := q.Order("announcement_is_important DESC, announcement_created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error
	return rows, total, errors.Wrap(err, "list announcements")
}

// RecentPublic: publik & belum kedaluwarsa, terbaru dulu.
func RecentPublic(ctx context.Context, db *gorm.DB, today time.Time, limit int) ([]model.AnnouncementModel, error) {
	var rows []model.AnnouncementModel
	err := db.WithContext(ctx).
		Where("announcement_is_public = ?", true).
		Where("announcement_expires_at IS NULL OR announcement_expires_at >= ?", today.Format(helper.DateLayout)).
		Order("announcement_created_at DESC").Limit(limit).Find(&rows).Error
	return rows, errors.Wrap(err, "recent announcements")
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.AnnouncementModel, error) {
	var m model.AnnouncementModel
	if err := db.WithContext(ctx).First(&m, "announcement_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Annonce")
	}
	return &m, nil
}

func validate(form *dto.AnnouncementForm) error {
	form.Normalize()
	return helper.ValidateStruct(form)
}

// CreateResult: notifikasi tidak pernah membatalkan penyimpanan.
type CreateResult struct {
	Announcement *model.AnnouncementModel
	Notified     *Report
	NotifyErr    error
}

func Create(ctx context.Context, db *gorm.DB, n *Notifier, actor *uuid.UUID, form dto.AnnouncementForm) (*CreateResult, error) {
	if err := validate(&form); err != nil {
		return nil, err
	}
	m := &model.AnnouncementModel{AnnouncementCreatedBy: actor}
	form.ApplyTo(m)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "create announcement")
	}
	res := &CreateResult{Announcement: m}
	if !m.AnnouncementIsPublic || !n.Enabled() {
		return res, nil
	}
	rep, err := Broadcast(ctx, db, n, m)
	res.Notified, res.NotifyErr = rep, err
	return res, nil
}

// Broadcast mengirim annonce ke penerima aktif (fallback: daftar config).
func Broadcast(ctx context.Context, db *gorm.DB, n *Notifier, m *model.AnnouncementModel) (*Report, error) {
	phones, err := ActivePhones(ctx, db)
	if err != nil {
		return nil, err
	}
	if len(phones) == 0 {
		phones = n.ConfigRecipients()
	}
	if len(phones) == 0 {
		return nil, errors.New("aucun destinataire WhatsApp actif")
	}
	rep, err := n.Send(ctx, phones, n.FormatAnnouncement(m))
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func Update(ctx context.Context, db *gorm.DB, id uuid.UUID, form dto.AnnouncementForm) (*model.AnnouncementModel, error) {
	if err := validate(&form); err != nil {
		return nil, err
	}
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	form.ApplyTo(m)
	if err := db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, errors.Wrap(err, "update announcement")
	}
	return m, nil
}

func Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	res := db.WithContext(ctx).Delete(&model.AnnouncementModel{}, "announcement_id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete announcement")
	}
	if res.RowsAffected == 0 {
		return helper.NotFound("Annonce introuvable")
	}
	return nil
}
