package model

import (
	"time"

	"github.com/google/uuid"
)

// TeachingModel: penugasan kelas × mapel × professeur (satu guru per mapel per kelas).
type TeachingModel struct {
	TeachingID           uuid.UUID `gorm:"column:teaching_id;type:uuid;default:gen_random_uuid();primaryKey" json:"teaching_id"`
	TeachingClassID      uuid.UUID `gorm:"column:teaching_class_id;type:uuid;not null;uniqueIndex:uq_teachings_class_subject" json:"teaching_class_id"`
	TeachingSubjectID    uuid.UUID `gorm:"column:teaching_subject_id;type:uuid;not null;uniqueIndex:uq_teachings_class_subject;index" json:"teaching_subject_id"`
	TeachingTeacherID    uuid.UUID `gorm:"column:teaching_teacher_id;type:uuid;not null;index" json:"teaching_teacher_id"`
	TeachingAcademicYear string    `gorm:"column:teaching_academic_year;type:varchar(9);not null" json:"teaching_academic_year"`

	TeachingCreatedAt time.Time `gorm:"column:teaching_created_at;autoCreateTime" json:"teaching_created_at"`
}

func (TeachingModel) TableName() string { return "teachings" }

// TeachingView: baris join untuk tampilan (nama mapel & guru).
type TeachingView struct {
	TeachingID         uuid.UUID `gorm:"column:teaching_id" json:"teaching_id"`
	TeachingClassID    uuid.UUID `gorm:"column:teaching_class_id" json:"teaching_class_id"`
	ClassName          string    `gorm:"column:class_name" json:"class_name"`
	SubjectID          uuid.UUID `gorm:"column:subject_id" json:"subject_id"`
	SubjectCode        string    `gorm:"column:subject_code" json:"subject_code"`
	SubjectName        string    `gorm:"column:subject_name" json:"subject_name"`
	SubjectCoefficient float64   `gorm:"column:subject_coefficient" json:"subject_coefficient"`
	TeacherID          uuid.UUID `gorm:"column:teacher_id" json:"teacher_id"`
	TeacherName        string    `gorm:"column:teacher_name" json:"teacher_name"`
	AcademicYear       string    `gorm:"column:teaching_academic_year" json:"academic_year"`
}
