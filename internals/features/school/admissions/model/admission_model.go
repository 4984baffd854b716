package model

import (
	"time"

	"github.com/google/uuid"
)

type AdmissionModel struct {
	AdmissionID        uuid.UUID `gorm:"column:admission_id;type:uuid;default:gen_random_uuid();primaryKey" json:"admission_id"`
	AdmissionReference string    `gorm:"column:admission_reference;type:varchar(20);uniqueIndex;not null" json:"admission_reference"`

	AdmissionLastName       string    `gorm:"column:admission_last_name;type:varchar(100);not null" json:"admission_last_name"`
	AdmissionFirstName      string    `gorm:"column:admission_first_name;type:varchar(100);not null" json:"admission_first_name"`
	AdmissionBirthDate      time.Time `gorm:"column:admission_birth_date;type:date;not null" json:"admission_birth_date"`
	AdmissionBirthPlace     string    `gorm:"column:admission_birth_place;type:varchar(100);not null" json:"admission_birth_place"`
	AdmissionGender         string    `gorm:"column:admission_gender;type:varchar(1);not null" json:"admission_gender"`
	AdmissionAddress        string    `gorm:"column:admission_address;type:varchar(255);not null" json:"admission_address"`
	AdmissionPreviousSchool *string   `gorm:"column:admission_previous_school;type:varchar(150)" json:"admission_previous_school,omitempty"`
	AdmissionClassID        uuid.UUID `gorm:"column:admission_class_id;type:uuid;not null;index" json:"admission_class_id"`

	AdmissionParentName  string `gorm:"column:admission_parent_name;type:varchar(150);not null" json:"admission_parent_name"`
	AdmissionParentEmail string `gorm:"column:admission_parent_email;type:varchar(255);not null" json:"admission_parent_email"`
	AdmissionParentPhone string `gorm:"column:admission_parent_phone;type:varchar(30);not null" json:"admission_parent_phone"`

	AdmissionStatus     string     `gorm:"column:admission_status;type:varchar(20);not null;default:'en_attente';index" json:"admission_status"`
	AdmissionComment    *string    `gorm:"column:admission_comment;type:text" json:"admission_comment,omitempty"`
	AdmissionReviewedBy *uuid.UUID `gorm:"column:admission_reviewed_by;type:uuid" json:"admission_reviewed_by,omitempty"`
	AdmissionReviewedAt *time.Time `gorm:"column:admission_reviewed_at" json:"admission_reviewed_at,omitempty"`
	AdmissionStudentID  *uuid.UUID `gorm:"column:admission_student_id;type:uuid" json:"admission_student_id,omitempty"`

	AdmissionCreatedAt time.Time `gorm:"column:admission_created_at;autoCreateTime" json:"admission_created_at"`
	AdmissionUpdatedAt time.Time `gorm:"column:admission_updated_at;autoUpdateTime" json:"admission_updated_at"`
}

func (AdmissionModel) TableName() string { return "admissions" }

func (m AdmissionModel) FullName() string { return m.AdmissionLastName + " " + m.AdmissionFirstName }

type AdmissionRow struct {
	AdmissionModel
	ClassName *string `gorm:"column:class_name" json:"class_name,omitempty"`
}
