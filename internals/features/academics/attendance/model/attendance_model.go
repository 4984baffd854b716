package model

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceModel struct {
	AttendanceID         uuid.UUID  `gorm:"column:attendance_id;type:uuid;default:gen_random_uuid();primaryKey" json:"attendance_id"`
	AttendanceStudentID  uuid.UUID  `gorm:"column:attendance_student_id;type:uuid;not null;index:idx_attendances_student_date,priority:1" json:"attendance_student_id"`
	AttendanceSubjectID  *uuid.UUID `gorm:"column:attendance_subject_id;type:uuid;index" json:"attendance_subject_id,omitempty"`
	AttendanceDate       time.Time  `gorm:"column:attendance_date;type:date;not null;index:idx_attendances_student_date,priority:2" json:"attendance_date"`
	AttendanceStatus     string     `gorm:"column:attendance_status;type:varchar(10);not null" json:"attendance_status"`
	AttendanceComment    *string    `gorm:"column:attendance_comment;type:text" json:"attendance_comment,omitempty"`
	AttendanceRecordedBy *uuid.UUID `gorm:"column:attendance_recorded_by;type:uuid" json:"attendance_recorded_by,omitempty"`

	AttendanceCreatedAt time.Time `gorm:"column:attendance_created_at;autoCreateTime" json:"attendance_created_at"`
}

func (AttendanceModel) TableName() string { return "attendances" }

type AttendanceView struct {
	AttendanceModel
	StudentMatricule string  `gorm:"column:student_matricule" json:"student_matricule"`
	StudentName      string  `gorm:"column:student_name" json:"student_name"`
	ClassName        string  `gorm:"column:class_name" json:"class_name"`
	SubjectName      *string `gorm:"column:subject_name" json:"subject_name,omitempty"`
}
