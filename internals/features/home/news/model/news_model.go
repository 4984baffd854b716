package model

import (
	"time"

	"github.com/google/uuid"
)

// NewsModel: item bandeau défilant (ticker) di halaman depan.
type NewsModel struct {
	NewsID        uuid.UUID `gorm:"column:news_id;type:uuid;default:gen_random_uuid();primaryKey" json:"news_id"`
	NewsContent   string    `gorm:"column:news_content;type:varchar(255);not null" json:"news_content"`
	NewsIsActive  bool      `gorm:"column:news_is_active;not null;default:true" json:"news_is_active"`
	NewsPriority  int       `gorm:"column:news_priority;not null;default:0" json:"news_priority"`
	NewsCreatedAt time.Time `gorm:"column:news_created_at;autoCreateTime" json:"news_created_at"`
	NewsUpdatedAt time.Time `gorm:"column:news_updated_at;autoUpdateTime" json:"news_updated_at"`
}

func (NewsModel) TableName() string { return "news" }
