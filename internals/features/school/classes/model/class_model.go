package model

import (
	"time"

	"github.com/google/uuid"
)

type ClassModel struct {
	ClassID           uuid.UUID `gorm:"column:class_id;type:uuid;default:gen_random_uuid();primaryKey" json:"class_id"`
	ClassName         string    `gorm:"column:class_name;type:varchar(50);not null;uniqueIndex:uq_classes_name_year" json:"class_name"`
	ClassLevel        string    `gorm:"column:class_level;type:varchar(20);not null;index" json:"class_level"`
	ClassAcademicYear string    `gorm:"column:class_academic_year;type:varchar(9);not null;uniqueIndex:uq_classes_name_year" json:"class_academic_year"`
	ClassCapacity     int       `gorm:"column:class_capacity;not null" json:"class_capacity"`
	ClassRoom         *string   `gorm:"column:class_room;type:varchar(20)" json:"class_room,omitempty"`

	ClassCreatedAt time.Time `gorm:"column:class_created_at;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time `gorm:"column:class_updated_at;autoUpdateTime" json:"class_updated_at"`
}

func (ClassModel) TableName() string { return "classes" }

// Label: "6e A (2024-2025)"
func (m ClassModel) Label() string {
	return m.ClassName + " (" + m.ClassAcademicYear + ")"
}
