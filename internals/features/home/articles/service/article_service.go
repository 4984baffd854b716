package service

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/home/articles/dto"
	"schoolku_backend/internals/features/home/articles/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/storage"
)

const coverDir = storage.PublicPrefix + "articles"

type ListFilter struct {
	Category   string
	Search     string
	ActiveOnly bool
}

func List(ctx context.Context, db *gorm.DB, f ListFilter, p helper.Params) ([]model.ArticleRow, int64, error) {
	q := db.WithContext(ctx).Table("articles a").
		Joins("LEFT JOIN users u ON u.id = a.article_author_id")
	if constants.In(f.Category, constants.ArticleCategories) {
		q = q.Where("a.article_category = ?", f.Category)
	}
	if f.ActiveOnly {
		q = q.Where("a.article_is_active = TRUE")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("a.article_title ILIKE ? OR ? = ANY(a.article_tags)", like, strings.ToLower(s))
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count articles")
	}
	var rows []model.ArticleRow
	err := q.Select("a.*, u.full_name AS author_name").
		Order("a.article_created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).Scan(&rows).Error
	return rows, total, errors.Wrap(err, "list articles")
}

// Latest: artikel aktif terbaru (halaman depan).
func Latest(ctx context.Context, db *gorm.DB, limit int) ([]model.ArticleModel, error) {
	var out []model.ArticleModel
	err := db.WithContext(ctx).Where("article_is_active = TRUE").
		Order("article_created_at DESC").Limit(limit).Find(&out).Error
	return out, errors.Wrap(err, "latest articles")
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.ArticleModel, error) {
	var m model.ArticleModel
	if err := db.WithContext(ctx).First(&m, "article_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Article")
	}
	return &m, nil
}

// ViewBySlug: artikel aktif + increment compteur de vues.
func ViewBySlug(ctx context.Context, db *gorm.DB, slug string) (*model.ArticleRow, error) {
	var row model.ArticleRow
	err := db.WithContext(ctx).Table("articles a").
		Joins("LEFT JOIN users u ON u.id = a.article_author_id").
		Select("a.*, u.full_name AS author_name").
		Where("a.article_slug = ? AND a.article_is_active = TRUE", slug).
		Take(&row).Error
	if err != nil {
		return nil, helper.DBError(err, "Article")
	}
	if err := db.WithContext(ctx).Model(&model.ArticleModel{}).
		Where("article_id = ?", row.ArticleID).
		UpdateColumn("article_views", gorm.Expr("article_views + 1")).Error; err != nil {
		return nil, errors.Wrap(err, "increment views")
	}
	row.ArticleViews++
	return &row, nil
}

// Related: artikel lain dalam kategori yang sama.
func Related(ctx context.Context, db *gorm.DB, m *model.ArticleModel, limit int) ([]model.ArticleModel, error) {
	var out []model.ArticleModel
	err := db.WithContext(ctx).
		Where("article_is_active = TRUE AND article_category = ? AND article_id <> ?", m.ArticleCategory, m.ArticleID).
		Order("article_created_at DESC").Limit(limit).Find(&out).Error
	return out, errors.Wrap(err, "related articles")
}

func slugFor(ctx context.Context, db *gorm.DB, title string, exclude *uuid.UUID) (string, error) {
	s, err := helper.UniqueSlug(ctx, db, "articles", "article_slug", helper.Slugify(title, 200), exclude, "article_id")
	return s, errors.Wrap(err, "article slug")
}

func Create(ctx context.Context, db *gorm.DB, st storage.Store, actor *uuid.UUID, form dto.ArticleForm, cover *multipart.FileHeader) (*model.ArticleModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	m := &model.ArticleModel{ArticleAuthorID: actor}
	form.ApplyTo(m)
	slug, err := slugFor(ctx, db, form.Title, nil)
	if err != nil {
		return nil, err
	}
	m.ArticleSlug = slug
	if cover != nil {
		stored, err := storage.SaveImageAsWebP(ctx, st, coverDir, cover, storage.CoverOptions)
		if err != nil {
			return nil, err
		}
		m.ArticleCoverKey = &stored.Key
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if m.ArticleCoverKey != nil {
			storage.DeleteQuiet(ctx, st, *m.ArticleCoverKey)
		}
		return nil, errors.Wrap(err, "create article")
	}
	return m, nil
}

// Update: slug dibuat ulang hanya jika judul berubah.
func Update(ctx context.Context, db *gorm.DB, st storage.Store, id uuid.UUID, form dto.ArticleForm, cover *multipart.FileHeader) (*model.ArticleModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if form.Title != m.ArticleTitle {
		slug, err := slugFor(ctx, db, form.Title, &m.ArticleID)
		if err != nil {
			return nil, err
		}
		m.ArticleSlug = slug
	}
	form.ApplyTo(m)

	var oldCover string
	if m.ArticleCoverKey != nil && (cover != nil || form.RemoveCover) {
		oldCover = *m.ArticleCoverKey
		m.ArticleCoverKey = nil
	}
	if cover != nil {
		stored, err := storage.SaveImageAsWebP(ctx, st, coverDir, cover, storage.CoverOptions)
		if err != nil {
			return nil, err
		}
		m.ArticleCoverKey = &stored.Key
	}
	if err := db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, errors.Wrap(err, "update article")
	}
	storage.DeleteQuiet(ctx, st, oldCover)
	return m, nil
}

func Toggle(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.ArticleModel, error) {
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	m.ArticleIsActive = !m.ArticleIsActive
	if err := db.WithContext(ctx).Model(m).UpdateColumn("article_is_active", m.ArticleIsActive).Error; err != nil {
		return nil, errors.Wrap(err, "toggle article")
	}
	return m, nil
}

func Delete(ctx context.Context, db *gorm.DB, st storage.Store, id uuid.UUID) error {
	m, err := Get(ctx, db, id)
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Delete(m).Error; err != nil {
		return errors.Wrap(err, "delete article")
	}
	if m.ArticleCoverKey != nil {
		storage.DeleteQuiet(ctx, st, *m.ArticleCoverKey)
	}
	return nil
}
