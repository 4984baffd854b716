package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ArticleModel struct {
	ArticleID          uuid.UUID      `gorm:"column:article_id;type:uuid;default:gen_random_uuid();primaryKey" json:"article_id"`
	ArticleTitle       string         `gorm:"column:article_title;type:varchar(200);not null" json:"article_title"`
	ArticleSlug        string         `gorm:"column:article_slug;type:varchar(250);uniqueIndex;not null" json:"article_slug"`
	ArticleDescription *string        `gorm:"column:article_description;type:varchar(500)" json:"article_description,omitempty"`
	ArticleContent     string         `gorm:"column:article_content;type:text;not null" json:"article_content"`
	ArticleCoverKey    *string        `gorm:"column:article_cover_key;type:text" json:"article_cover_key,omitempty"`
	ArticleCategory    string         `gorm:"column:article_category;type:varchar(50);not null;index" json:"article_category"`
	ArticleEventDate   *time.Time     `gorm:"column:article_event_date;type:date" json:"article_event_date,omitempty"`
	ArticleAuthorID    *uuid.UUID     `gorm:"column:article_author_id;type:uuid" json:"article_author_id,omitempty"`
	ArticleIsActive    bool           `gorm:"column:article_is_active;not null;default:true;index" json:"article_is_active"`
	ArticleViews       int            `gorm:"column:article_views;not null;default:0" json:"article_views"`
	ArticleTags        pq.StringArray `gorm:"column:article_tags;type:text[]" json:"article_tags"`

	// CoverURL diisi controller dari storage, tidak disimpan.
	CoverURL string `gorm:"-" json:"cover_url,omitempty"`

	ArticleCreatedAt time.Time `gorm:"column:article_created_at;autoCreateTime" json:"article_created_at"`
	ArticleUpdatedAt time.Time `gorm:"column:article_updated_at;autoUpdateTime" json:"article_updated_at"`
}

func (ArticleModel) TableName() string { return "articles" }

func (m *ArticleModel) SetCover(url func(key string) string) {
	if m.ArticleCoverKey != nil && *m.ArticleCoverKey != "" {
		m.CoverURL = url(*m.ArticleCoverKey)
	}
}

// Summary: deskripsi pendek atau potongan konten untuk kartu.
func (m ArticleModel) Summary(max int) string {
	if m.ArticleDescription != nil && *m.ArticleDescription != "" {
		return *m.ArticleDescription
	}
	r := []rune(m.ArticleContent)
	if len(r) <= max {
		return m.ArticleContent
	}
	return strings.TrimSpace(string(r[:max])) + "…"
}

type ArticleRow struct {
	ArticleModel
	AuthorName *string `gorm:"column:author_name" json:"author_name,omitempty"`
}
