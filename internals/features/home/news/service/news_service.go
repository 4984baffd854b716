package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/home/news/dto"
	"schoolku_backend/internals/features/home/news/model"
	helper "schoolku_backend/internals/helpers"
)

const order = "news_priority DESC, news_created_at DESC"

func All(ctx context.Context, db *gorm.DB) ([]model.NewsModel, error) {
	var out []model.NewsModel
	err := db.WithContext(ctx).Order(order).Find(&out).Error
	return out, errors.Wrap(err, "list news")
}

// Active: untuk ticker; prioritas tertinggi dulu.
func Active(ctx context.Context, db *gorm.DB) ([]model.NewsModel, error) {
	var out []model.NewsModel
	err := db.WithContext(ctx).Where("news_is_active = TRUE").Order(order).Find(&out).Error
	return out, errors.Wrap(err, "active news")
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.NewsModel, error) {
	var m model.NewsModel
	if err := db.WithContext(ctx).First(&m, "news_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Actualité")
	}
	return &m, nil
}

func Create(ctx context.Context, db *gorm.DB, form dto.NewsForm) (*model.NewsModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	m := &model.NewsModel{}
	form.ApplyTo(m)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "create news")
	}
	return m, nil
}

func Update(ctx context.Context, db *gorm.DB, id uuid.UUID, form dto.NewsForm) (*model.NewsModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	form.ApplyTo(m)
	if err := db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, errors.Wrap(err, "update news")
	}
	return m, nil
}

func Toggle(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.NewsModel, error) {
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	m.NewsIsActive = !m.NewsIsActive
	if err := db.WithContext(ctx).Model(m).Update("news_is_active", m.NewsIsActive).Error; err != nil {
		return nil, errors.Wrap(err, "toggle news")
	}
	return m, nil
}

func Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	res := db.WithContext(ctx).Where("news_id = ?", id).Delete(&model.NewsModel{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete news")
	}
	if res.RowsAffected == 0 {
		return helper.NotFound("Actualité introuvable")
	}
	return nil
}
