package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/communication/events/dto"
	"schoolku_backend/internals/features/communication/events/model"
	helper "schoolku_backend/internals/helpers"
)

const (
	PeriodUpcoming = "a-venir"
	PeriodPast     = "passes"
)

type ListFilter struct {
	Type   string
	Period string
	Search string
}

func List(ctx context.Context, db *gorm.DB, f ListFilter, now time.Time, p helper.Params) ([]model.EventModel, int64, error) {
	q := db.WithContext(ctx).Model(&model.EventModel{})
	if f.Type != "" {
		q = q.Where("event_type = ?", f.Type)
	}
	switch f.Period {
	case PeriodUpcoming:
		q = q.Where("COALESCE(event_end, event_start) >= ?", now)
	case PeriodPast:
		q = q.Where("COALESCE(event_end, event_start) < ?", now)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("event_title ILIKE ? OR event_location ILIKE ?", like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count events")
	}
	order := "event_start DESC"
	if f.Period == PeriodUpcoming {
		order = "event_start ASC"
	}
	var rows []model.EventModel
	err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error
	return rows, total, errors.Wrap(err, "list events")
}

// Upcoming: event yang belum selesai, terdekat dulu.
func Upcoming(ctx context.Context, db *gorm.DB, now time.Time, limit int) ([]model.EventModel, error) {
	var rows []model.EventModel
	err := db.WithContext(ctx).
		Where("COALESCE(event_end, event_start) >= ?", now).
		Order("event_start ASC").Limit(limit).Find(&rows).Error
	return rows, errors.Wrap(err, "upcoming events")
}

// Between: event yang beririsan dengan [start, end); bound nil = terbuka.
func Between(ctx context.Context, db *gorm.DB, start, end *time.Time) ([]model.EventModel, error) {
	q := db.WithContext(ctx).Model(&model.EventModel{})
	if start != nil {
		q = q.Where("COALESCE(event_end, event_start) >= ?", *start)
	}
	if end != nil {
		q = q.Where("event_start < ?", *end)
	}
	var rows []model.EventModel
	err := q.Order("event_start").Find(&rows).Error
	return rows, errors.Wrap(err, "events between")
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.EventModel, error) {
	var m model.EventModel
	if err := db.WithContext(ctx).First(&m, "event_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Événement")
	}
	return &m, nil
}

func validate(form *dto.EventForm) (time.Time, *time.Time, error) {
	form.Normalize()
	if err := helper.ValidateStruct(form); err != nil {
		return time.Time{}, nil, err
	}
	return form.Times()
}

func Create(ctx context.Context, db *gorm.DB, actor *uuid.UUID, form dto.EventForm) (*model.EventModel, error) {
	start, end, err := validate(&form)
	if err != nil {
		return nil, err
	}
	m := &model.EventModel{EventCreatedBy: actor}
	form.ApplyTo(m, start, end)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "create event")
	}
	return m, nil
}

func Update(ctx context.Context, db *gorm.DB, id uuid.UUID, form dto.EventForm) (*model.EventModel, error) {
	start, end, err := validate(&form)
	if err != nil {
		return nil, err
	}
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	form.ApplyTo(m, start, end)
	if err := db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, errors.Wrap(err, "update event")
	}
	return m, nil
}

func Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	res := db.WithContext(ctx).Delete(&model.EventModel{}, "event_id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete event")
	}
	if res.RowsAffected == 0 {
		return helper.NotFound("Événement introuvable")
	}
	return nil
}
