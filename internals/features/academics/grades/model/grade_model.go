package model

import (
	"time"

	"github.com/google/uuid"
)

// GradeModel: satu nilai. value <= out_of tidak dipaksa di DB.
type GradeModel struct {
	GradeID         uuid.UUID  `gorm:"column:grade_id;type:uuid;default:gen_random_uuid();primaryKey" json:"grade_id"`
	GradeStudentID  uuid.UUID  `gorm:"column:grade_student_id;type:uuid;not null;uniqueIndex:uq_grades_entry,priority:1" json:"grade_student_id"`
	GradeSubjectID  uuid.UUID  `gorm:"column:grade_subject_id;type:uuid;not null;uniqueIndex:uq_grades_entry,priority:2;index" json:"grade_subject_id"`
	GradeTerm       int        `gorm:"column:grade_term;not null;uniqueIndex:uq_grades_entry,priority:3" json:"grade_term"`
	GradeCategory   string     `gorm:"column:grade_category;type:varchar(20);not null;uniqueIndex:uq_grades_entry,priority:4" json:"grade_category"`
	GradeValue      float64    `gorm:"column:grade_value;not null" json:"grade_value"`
	GradeOutOf      float64    `gorm:"column:grade_out_of;not null;default:20" json:"grade_out_of"`
	GradeDate       time.Time  `gorm:"column:grade_date;type:date;not null" json:"grade_date"`
	GradeComment    *string    `gorm:"column:grade_comment;type:text" json:"grade_comment,omitempty"`
	GradeRecordedBy *uuid.UUID `gorm:"column:grade_recorded_by;type:uuid" json:"grade_recorded_by,omitempty"`

	GradeCreatedAt time.Time `gorm:"column:grade_created_at;autoCreateTime" json:"grade_created_at"`
	GradeUpdatedAt time.Time `gorm:"column:grade_updated_at;autoUpdateTime" json:"grade_updated_at"`
}

func (GradeModel) TableName() string { return "grades" }

// GradeView: baris daftar "toutes les notes".
type GradeView struct {
	GradeModel
	StudentMatricule string `gorm:"column:student_matricule" json:"student_matricule"`
	StudentName      string `gorm:"column:student_name" json:"student_name"`
	ClassName        string `gorm:"column:class_name" json:"class_name"`
	SubjectName      string `gorm:"column:subject_name" json:"subject_name"`
}

// Over20 nilai pada skala 20 untuk tampilan.
func (g GradeModel) Over20() float64 {
	if g.GradeOutOf <= 0 {
		return 0
	}
	return g.GradeValue / g.GradeOutOf * 20
}
