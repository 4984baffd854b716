package model

import (
	"time"

	"github.com/google/uuid"
)

// FeeModel: frais yang berlaku untuk satu kelas, atau seluruh sekolah jika FeeClassID nil.
type FeeModel struct {
	FeeID           uuid.UUID  `gorm:"column:fee_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_id"`
	FeeName         string     `gorm:"column:fee_name;type:varchar(120);not null" json:"fee_name"`
	FeeType         string     `gorm:"column:fee_type;type:varchar(20);not null;index" json:"fee_type"`
	FeeAmount       float64    `gorm:"column:fee_amount;type:numeric(12,2);not null" json:"fee_amount"`
	FeeAcademicYear string     `gorm:"column:fee_academic_year;type:varchar(9);not null;index" json:"fee_academic_year"`
	FeeClassID      *uuid.UUID `gorm:"column:fee_class_id;type:uuid;index" json:"fee_class_id,omitempty"`
	FeeDueDate      *time.Time `gorm:"column:fee_due_date;type:date" json:"fee_due_date,omitempty"`
	FeeDescription  *string    `gorm:"column:fee_description;type:text" json:"fee_description,omitempty"`

	FeeCreatedAt time.Time `gorm:"column:fee_created_at;autoCreateTime" json:"fee_created_at"`
	FeeUpdatedAt time.Time `gorm:"column:fee_updated_at;autoUpdateTime" json:"fee_updated_at"`
}

func (FeeModel) TableName() string { return "fees" }

func (f FeeModel) IsOverdue(today time.Time) bool {
	return f.FeeDueDate != nil && f.FeeDueDate.Before(today)
}

type FeeRow struct {
	FeeModel
	ClassName *string `gorm:"column:class_name" json:"class_name,omitempty"`
}
