package model

import (
	"time"

	"github.com/google/uuid"
)

type ComplaintModel struct {
	ComplaintID          uuid.UUID  `gorm:"column:complaint_id;type:uuid;default:gen_random_uuid();primaryKey" json:"complaint_id"`
	ComplaintStudentName string     `gorm:"column:complaint_student_name;type:varchar(200);not null" json:"complaint_student_name"`
	ComplaintClass       string     `gorm:"column:complaint_class;type:varchar(50);not null" json:"complaint_class"`
	ComplaintPhone1      string     `gorm:"column:complaint_phone1;type:varchar(20);not null" json:"complaint_phone1"`
	ComplaintPhone2      *string    `gorm:"column:complaint_phone2;type:varchar(20)" json:"complaint_phone2,omitempty"`
	ComplaintEmail       *string    `gorm:"column:complaint_email;type:varchar(255)" json:"complaint_email,omitempty"`
	ComplaintReceiptKey  *string    `gorm:"column:complaint_receipt_key;type:text" json:"-"`
	ComplaintReceiptName *string    `gorm:"column:complaint_receipt_name;type:varchar(255)" json:"complaint_receipt_name,omitempty"`
	ComplaintDescription string     `gorm:"column:complaint_description;type:text;not null" json:"complaint_description"`
	ComplaintStatus      string     `gorm:"column:complaint_status;type:varchar(20);not null;default:'en_attente';index" json:"complaint_status"`
	ComplaintResponse    *string    `gorm:"column:complaint_response;type:text" json:"complaint_response,omitempty"`
	ComplaintHandledBy   *uuid.UUID `gorm:"column:complaint_handled_by;type:uuid" json:"complaint_handled_by,omitempty"`
	ComplaintHandledAt   *time.Time `gorm:"column:complaint_handled_at" json:"complaint_handled_at,omitempty"`
	ComplaintCreatedAt   time.Time  `gorm:"column:complaint_created_at;autoCreateTime" json:"complaint_created_at"`
}

func (ComplaintModel) TableName() string { return "complaints" }

type ComplaintRow struct {
	ComplaintModel
	HandlerName *string `gorm:"column:handler_name" json:"handler_name,omitempty"`
}
