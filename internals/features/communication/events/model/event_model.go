package model

import (
	"time"

	"github.com/google/uuid"
)

type EventModel struct {
	EventID          uuid.UUID  `gorm:"column:event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_id"`
	EventTitle       string     `gorm:"column:event_title;type:varchar(200);not null" json:"event_title"`
	EventDescription *string    `gorm:"column:event_description;type:text" json:"event_description,omitempty"`
	EventType        string     `gorm:"column:event_type;type:varchar(20);not null;default:'autre';index" json:"event_type"`
	EventStart       time.Time  `gorm:"column:event_start;not null;index" json:"event_start"`
	EventEnd         *time.Time `gorm:"column:event_end" json:"event_end,omitempty"`
	EventAllDay      bool       `gorm:"column:event_all_day;not null;default:false" json:"event_all_day"`
	EventLocation    *string    `gorm:"column:event_location;type:varchar(200)" json:"event_location,omitempty"`
	EventCreatedBy   *uuid.UUID `gorm:"column:event_created_by;type:uuid" json:"event_created_by,omitempty"`

	EventCreatedAt time.Time `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt time.Time `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at"`
}

func (EventModel) TableName() string { return "events" }

// EndOrStart: akhir efektif (start jika end kosong).
func (e EventModel) EndOrStart() time.Time {
	if e.EventEnd != nil {
		return *e.EventEnd
	}
	return e.EventStart
}
