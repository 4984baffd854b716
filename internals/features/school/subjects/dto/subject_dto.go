package dto

import (
	"strings"

	"schoolku_backend/internals/features/school/subjects/model"
	helper "schoolku_backend/internals/helpers"
)

type SubjectForm struct {
	Code        string  `form:"subject_code" validate:"required,notblank,max=10" label:"Code"`
	Name        string  `form:"subject_name" validate:"required,notblank,max=100" label:"Nom"`
	Description string  `form:"subject_description" validate:"omitempty,max=2000" label:"Description"`
	Coefficient float64 `form:"subject_coefficient" validate:"gt=0,lte=20" label:"Coefficient"`
}

func (f *SubjectForm) Normalize() {
	f.Code = strings.ToUpper(strings.TrimSpace(f.Code))
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
}

func (f *SubjectForm) ApplyTo(m *model.SubjectModel) {
	m.SubjectCode = f.Code
	m.SubjectName = f.Name
	m.SubjectDescription = helper.TrimPtr(f.Description)
	m.SubjectCoefficient = f.Coefficient
}

func FromModel(m *model.SubjectModel) SubjectForm {
	f := SubjectForm{Code: m.SubjectCode, Name: m.SubjectName, Coefficient: m.SubjectCoefficient}
	if m.SubjectDescription != nil {
		f.Description = *m.SubjectDescription
	}
	return f
}

// SubjectRow: mapel + jumlah kelas yang mengajarkannya.
type SubjectRow struct {
	model.SubjectModel
	ClassCount int64 `gorm:"column:class_count" json:"class_count"`
}

type TeachingForm struct {
	ClassID   string `form:"class_id" validate:"required,uuid" label:"Classe"`
	SubjectID string `form:"subject_id" validate:"required,uuid" label:"Cours"`
	TeacherID string `form:"teacher_id" validate:"required,uuid" label:"Professeur"`
}

// SubjectOption: payload JSON dropdown berantai.
type SubjectOption struct {
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Coefficient float64 `json:"coefficient"`
}

func ToOptions(list []model.SubjectModel) []SubjectOption {
	out := make([]SubjectOption, 0, len(list))
	for _, s := range list {
		out = append(out, SubjectOption{
			ID:          s.SubjectID.String(),
			Code:        s.SubjectCode,
			Name:        s.SubjectName,
			Coefficient: s.SubjectCoefficient,
		})
	}
	return out
}
