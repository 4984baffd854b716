package model

import (
	"time"

	"github.com/google/uuid"
)

type SubscriberModel struct {
	SubscriberID        uuid.UUID  `gorm:"column:subscriber_id;type:uuid;default:gen_random_uuid();primaryKey" json:"subscriber_id"`
	SubscriberEmail     string     `gorm:"column:subscriber_email;type:varchar(255);uniqueIndex;not null" json:"subscriber_email"`
	SubscriberIsActive  bool       `gorm:"column:subscriber_is_active;not null;default:true" json:"subscriber_is_active"`
	SubscriberCreatedAt time.Time  `gorm:"column:subscriber_created_at;autoCreateTime" json:"subscriber_created_at"`
	SubscriberLeftAt    *time.Time `gorm:"column:subscriber_left_at" json:"subscriber_left_at,omitempty"`
}

func (SubscriberModel) TableName() string { return "newsletter_subscribers" }
