package model

import (
	"time"

	"github.com/google/uuid"
)

type ContactModel struct {
	ContactID        uuid.UUID  `gorm:"column:contact_id;type:uuid;default:gen_random_uuid();primaryKey" json:"contact_id"`
	ContactName      string     `gorm:"column:contact_name;type:varchar(100);not null" json:"contact_name"`
	ContactEmail     string     `gorm:"column:contact_email;type:varchar(255);not null" json:"contact_email"`
	ContactSubject   string     `gorm:"column:contact_subject;type:varchar(200);not null" json:"contact_subject"`
	ContactMessage   string     `gorm:"column:contact_message;type:text;not null" json:"contact_message"`
	ContactIsRead    bool       `gorm:"column:contact_is_read;not null;default:false;index" json:"contact_is_read"`
	ContactIsHandled bool       `gorm:"column:contact_is_handled;not null;default:false" json:"contact_is_handled"`
	ContactAdminNote *string    `gorm:"column:contact_admin_note;type:text" json:"contact_admin_note,omitempty"`
	ContactHandledBy *uuid.UUID `gorm:"column:contact_handled_by;type:uuid" json:"contact_handled_by,omitempty"`
	ContactCreatedAt time.Time  `gorm:"column:contact_created_at;autoCreateTime" json:"contact_created_at"`
}

func (ContactModel) TableName() string { return "contacts" }
