package dto

import (
	"strings"

	"schoolku_backend/internals/features/school/classes/model"
	helper "schoolku_backend/internals/helpers"
)

const DefaultCapacity = 30

type ClassForm struct {
	Name         string `form:"class_name" validate:"required,notblank,max=50" label:"Nom"`
	Level        string `form:"class_level" validate:"required,notblank,max=20" label:"Niveau"`
	AcademicYear string `form:"class_academic_year" validate:"required,academic_year" label:"Année scolaire"`
	Capacity     int    `form:"class_capacity" validate:"gte=0,lte=200" label:"Capacité"`
	Room         string `form:"class_room" validate:"omitempty,max=20" label:"Salle"`
}

func (f *ClassForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Level = strings.TrimSpace(f.Level)
	f.AcademicYear = strings.TrimSpace(f.AcademicYear)
	f.Room = strings.TrimSpace(f.Room)
	if f.Capacity == 0 {
		f.Capacity = DefaultCapacity
	}
}

func (f *ClassForm) ToModel() *model.ClassModel {
	m := &model.ClassModel{}
	f.ApplyTo(m)
	return m
}

func (f *ClassForm) ApplyTo(m *model.ClassModel) {
	m.ClassName = f.Name
	m.ClassLevel = f.Level
	m.ClassAcademicYear = f.AcademicYear
	m.ClassCapacity = f.Capacity
	m.ClassRoom = helper.TrimPtr(f.Room)
}

func FromModel(m *model.ClassModel) ClassForm {
	f := ClassForm{
		Name:         m.ClassName,
		Level:        m.ClassLevel,
		AcademicYear: m.ClassAcademicYear,
		Capacity:     m.ClassCapacity,
	}
	if m.ClassRoom != nil {
		f.Room = *m.ClassRoom
	}
	return f
}

// ClassRow untuk tabel daftar (dengan jumlah élève).
type ClassRow struct {
	model.ClassModel
	StudentCount int64 `gorm:"column:student_count" json:"student_count"`
}

// Fill persentase isi kelas terhadap kapasitas.
func (r ClassRow) Fill() float64 {
	if r.ClassCapacity <= 0 {
		return 0
	}
	return float64(r.StudentCount) / float64(r.ClassCapacity) * 100
}
