package model

import (
	"time"

	"github.com/google/uuid"
)

type SubjectModel struct {
	SubjectID          uuid.UUID `gorm:"column:subject_id;type:uuid;default:gen_random_uuid();primaryKey" json:"subject_id"`
	SubjectCode        string    `gorm:"column:subject_code;type:varchar(10);not null;uniqueIndex" json:"subject_code"`
	SubjectName        string    `gorm:"column:subject_name;type:varchar(100);not null" json:"subject_name"`
	SubjectDescription *string   `gorm:"column:subject_description;type:text" json:"subject_description,omitempty"`
	SubjectCoefficient float64   `gorm:"column:subject_coefficient;not null" json:"subject_coefficient"`

	SubjectCreatedAt time.Time `gorm:"column:subject_created_at;autoCreateTime" json:"subject_created_at"`
	SubjectUpdatedAt time.Time `gorm:"column:subject_updated_at;autoUpdateTime" json:"subject_updated_at"`
}

func (SubjectModel) TableName() string { return "subjects" }
