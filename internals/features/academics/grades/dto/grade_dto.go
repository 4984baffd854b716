package dto

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/academics/grades/model"
	helper "schoolku_backend/internals/helpers"
)

// EntryForm: header saisie massal (satu nilai per élève).
type EntryForm struct {
	ClassID   string  `form:"class_id" validate:"required,uuid" label:"Classe"`
	SubjectID string  `form:"subject_id" validate:"required,uuid" label:"Cours"`
	Term      int     `form:"term" validate:"required,min=1,max=3" label:"Trimestre"`
	Category  string  `form:"category" validate:"required,oneof=devoir examen projet" label:"Type"`
	Date      string  `form:"date" validate:"required,datetime=2006-01-02" label:"Date"`
	OutOf     float64 `form:"out_of" validate:"gt=0,lte=1000" label:"Sur"`
}

func (f *EntryForm) Normalize() {
	f.Category = strings.TrimSpace(f.Category)
	f.Date = strings.TrimSpace(f.Date)
	if f.OutOf == 0 {
		f.OutOf = constants.GradeScale
	}
}

// Entry: satu nilai hasil parse form.
type Entry struct {
	StudentID uuid.UUID
	Value     float64
	Comment   *string
}

// StudentLabel dipakai untuk pesan error per baris.
type StudentLabel struct {
	ID   uuid.UUID
	Name string
}

func ValueKey(id uuid.UUID) string   { return "note_" + id.String() }
func CommentKey(id uuid.UUID) string { return "commentaire_" + id.String() }

// ParseEntries membaca nilai per élève. Kosong → dilewati, tidak valid → pesan error.
// Nilai > outOf diterima (tidak dipaksa), nilai negatif ditolak.
func ParseEntries(students []StudentLabel, get func(key string) string) ([]Entry, []string) {
	var out []Entry
	var errs []string
	for _, s := range students {
		raw := strings.TrimSpace(get(ValueKey(s.ID)))
		if raw == "" {
			continue
		}
		v, err := helper.ParseDecimal(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s : « %s » n'est pas une note valide", s.Name, raw))
			continue
		}
		if v < 0 {
			errs = append(errs, fmt.Sprintf("%s : la note ne peut pas être négative", s.Name))
			continue
		}
		out = append(out, Entry{StudentID: s.ID, Value: v, Comment: helper.TrimPtr(get(CommentKey(s.ID)))})
	}
	return out, errs
}

// GradeForm: edit satu nilai.
type GradeForm struct {
	Value    string  `form:"grade_value" validate:"required" label:"Note"`
	OutOf    float64 `form:"grade_out_of" validate:"gt=0,lte=1000" label:"Sur"`
	Category string  `form:"grade_category" validate:"required,oneof=devoir examen projet" label:"Type"`
	Term     int     `form:"grade_term" validate:"required,min=1,max=3" label:"Trimestre"`
	Date     string  `form:"grade_date" validate:"required,datetime=2006-01-02" label:"Date"`
	Comment  string  `form:"grade_comment" validate:"omitempty,max=2000" label:"Commentaire"`
}

func FromModel(m *model.GradeModel) GradeForm {
	f := GradeForm{
		Value:    helper.FormatScore(m.GradeValue),
		OutOf:    m.GradeOutOf,
		Category: m.GradeCategory,
		Term:     m.GradeTerm,
		Date:     m.GradeDate.Format(helper.DateLayout),
	}
	if m.GradeComment != nil {
		f.Comment = *m.GradeComment
	}
	return f
}

// ApplyTo: form sudah tervalidasi.
func (f *GradeForm) ApplyTo(m *model.GradeModel) error {
	v, err := helper.ParseDecimal(f.Value)
	if err != nil || v < 0 {
		return helper.NewValidationError("La note saisie n'est pas valide.")
	}
	d, err := helper.ParseDate(f.Date)
	if err != nil {
		return helper.NewValidationError("Date invalide.")
	}
	m.GradeValue = v
	m.GradeOutOf = f.OutOf
	m.GradeCategory = f.Category
	m.GradeTerm = f.Term
	m.GradeDate = d
	m.GradeComment = helper.TrimPtr(f.Comment)
	return nil
}
