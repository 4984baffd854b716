package model

import (
	"time"

	"github.com/google/uuid"
)

type StudentModel struct {
	StudentID         uuid.UUID  `gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_id"`
	StudentMatricule  string     `gorm:"column:student_matricule;type:varchar(20);not null;uniqueIndex" json:"student_matricule"`
	StudentLastName   string     `gorm:"column:student_last_name;type:varchar(100);not null;index" json:"student_last_name"`
	StudentFirstName  string     `gorm:"column:student_first_name;type:varchar(100);not null" json:"student_first_name"`
	StudentBirthDate  time.Time  `gorm:"column:student_birth_date;type:date;not null" json:"student_birth_date"`
	StudentBirthPlace string     `gorm:"column:student_birth_place;type:varchar(100);not null" json:"student_birth_place"`
	StudentGender     string     `gorm:"column:student_gender;type:varchar(1);not null" json:"student_gender"`
	StudentAddress    string     `gorm:"column:student_address;type:varchar(255);not null" json:"student_address"`
	StudentPhone      *string    `gorm:"column:student_phone;type:varchar(20)" json:"student_phone,omitempty"`
	StudentEmail      *string    `gorm:"column:student_email;type:varchar(120)" json:"student_email,omitempty"`
	StudentClassID    uuid.UUID  `gorm:"column:student_class_id;type:uuid;not null;index" json:"student_class_id"`
	StudentParentID   *uuid.UUID `gorm:"column:student_parent_id;type:uuid;index" json:"student_parent_id,omitempty"`
	StudentPhotoKey   *string    `gorm:"column:student_photo_key;type:varchar(255)" json:"-"`
	StudentPhotoURL   *string    `gorm:"column:student_photo_url;type:text" json:"student_photo_url,omitempty"`
	StudentEnrolledAt time.Time  `gorm:"column:student_enrolled_at;type:date;not null" json:"student_enrolled_at"`
	StudentIsActive   bool       `gorm:"column:student_is_active;not null" json:"student_is_active"`

	StudentCreatedAt time.Time `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`
}

func (StudentModel) TableName() string { return "students" }

func (m StudentModel) FullName() string {
	return m.StudentFirstName + " " + m.StudentLastName
}

// Age dihitung pada tanggal ref.
func (m StudentModel) Age(ref time.Time) int {
	b := m.StudentBirthDate
	years := ref.Year() - b.Year()
	if ref.Month() < b.Month() || (ref.Month() == b.Month() && ref.Day() < b.Day()) {
		years--
	}
	return years
}

// StudentRow: élève + nama kelas & parent untuk daftar.
type StudentRow struct {
	StudentModel
	ClassName  string  `gorm:"column:class_name" json:"class_name"`
	ParentName *string `gorm:"column:parent_name" json:"parent_name,omitempty"`
}
