package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type AnnouncementModel struct {
	AnnouncementID          uuid.UUID      `gorm:"column:announcement_id;type:uuid;default:gen_random_uuid();primaryKey" json:"announcement_id"`
	AnnouncementTitle       string         `gorm:"column:announcement_title;type:varchar(150);not null" json:"announcement_title"`
	AnnouncementContent     string         `gorm:"column:announcement_content;type:text;not null" json:"announcement_content"`
	AnnouncementIsPublic    bool           `gorm:"column:announcement_is_public;not null;default:true;index" json:"announcement_is_public"`
	AnnouncementIsImportant bool           `gorm:"column:announcement_is_important;not null;default:false" json:"announcement_is_important"`
	AnnouncementExpiresAt   *time.Time     `gorm:"column:announcement_expires_at;type:date" json:"announcement_expires_at,omitempty"`
	AnnouncementAudience    pq.StringArray `gorm:"column:announcement_audience;type:text[]" json:"announcement_audience"`
	AnnouncementCreatedBy   *uuid.UUID     `gorm:"column:announcement_created_by;type:uuid" json:"announcement_created_by,omitempty"`

	AnnouncementCreatedAt time.Time `gorm:"column:announcement_created_at;autoCreateTime;index" json:"announcement_created_at"`
	AnnouncementUpdatedAt time.Time `gorm:"column:announcement_updated_at;autoUpdateTime" json:"announcement_updated_at"`
}

func (AnnouncementModel) TableName() string { return "announcements" }

// Expired: tanggal kedaluwarsa sudah lewat (hari H masih berlaku).
func (a AnnouncementModel) Expired(today time.Time) bool {
	return a.AnnouncementExpiresAt != nil && a.AnnouncementExpiresAt.Before(today)
}

// VisibleTo: publik, tanpa audience, atau role ada di audience.
func (a AnnouncementModel) VisibleTo(role string) bool {
	if a.AnnouncementIsPublic || len(a.AnnouncementAudience) == 0 {
		return true
	}
	for _, r := range a.AnnouncementAudience {
		if r == role {
			return true
		}
	}
	return false
}

type WhatsAppRecipientModel struct {
	RecipientID        uuid.UUID `gorm:"column:recipient_id;type:uuid;default:gen_random_uuid();primaryKey" json:"recipient_id"`
	RecipientName      string    `gorm:"column:recipient_name;type:varchar(100);not null" json:"recipient_name"`
	RecipientPhone     string    `gorm:"column:recipient_phone;type:varchar(30);not null;uniqueIndex" json:"recipient_phone"`
	RecipientIsActive  bool      `gorm:"column:recipient_is_active;not null;default:true" json:"recipient_is_active"`
	RecipientNote      *string   `gorm:"column:recipient_note;type:varchar(255)" json:"recipient_note,omitempty"`
	RecipientCreatedAt time.Time `gorm:"column:recipient_created_at;autoCreateTime" json:"recipient_created_at"`
}

func (WhatsAppRecipientModel) TableName() string { return "whatsapp_recipients" }
