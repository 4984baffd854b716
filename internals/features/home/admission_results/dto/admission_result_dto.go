package dto

import (
	"strings"

	"schoolku_backend/internals/features/home/admission_results/model"
)

type ResultForm struct {
	LastName  string `form:"result_last_name" validate:"required,notblank,max=100" label:"Nom"`
	FirstName string `form:"result_first_name" validate:"max=100" label:"Prénom"`
	Class     string `form:"result_class" validate:"required,notblank,max=50" label:"Classe"`
	Promotion string `form:"result_promotion" validate:"required,notblank,max=20" label:"Promotion"`
	Status    string `form:"result_status" validate:"required,oneof=admis ajourne" label:"Statut"`
	Published bool   `form:"-"`
}

func (f *ResultForm) Normalize() {
	f.LastName = strings.TrimSpace(f.LastName)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.Class = strings.TrimSpace(f.Class)
	f.Promotion = strings.TrimSpace(f.Promotion)
	f.Status = strings.TrimSpace(f.Status)
	if f.Status == "" {
		f.Status = model.ResultAdmitted
	}
}

func (f *ResultForm) ApplyTo(m *model.AdmissionResultModel) {
	m.ResultLastName = f.LastName
	m.ResultFirstName = f.FirstName
	m.ResultClass = f.Class
	m.ResultPromotion = f.Promotion
	m.ResultStatus = f.Status
	m.ResultPublished = f.Published
}

func FromModel(m *model.AdmissionResultModel) ResultForm {
	return ResultForm{
		LastName:  m.ResultLastName,
		FirstName: m.ResultFirstName,
		Class:     m.ResultClass,
		Promotion: m.ResultPromotion,
		Status:    m.ResultStatus,
		Published: m.ResultPublished,
	}
}

// LookupForm: pencarian publik. Prénom opsional.
type LookupForm struct {
	LastName  string `form:"nom" query:"nom"`
	FirstName string `form:"prenom" query:"prenom"`
	Class     string `form:"classe" query:"classe"`
	Promotion string `form:"promotion" query:"promotion"`
}

func (f *LookupForm) Normalize() {
	f.LastName = strings.TrimSpace(f.LastName)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.Class = strings.TrimSpace(f.Class)
	f.Promotion = strings.TrimSpace(f.Promotion)
}

func (f LookupForm) Ready() bool {
	return f.LastName != "" && f.Class != "" && f.Promotion != ""
}

// BulkForm: satu "Nom Prénom" per baris untuk classe + promotion yang sama.
type BulkForm struct {
	Class     string `form:"result_class" validate:"required,notblank,max=50" label:"Classe"`
	Promotion string `form:"result_promotion" validate:"required,notblank,max=20" label:"Promotion"`
	Status    string `form:"result_status" validate:"required,oneof=admis ajourne" label:"Statut"`
	Names     string `form:"result_names" validate:"required,notblank" label:"Liste des élèves"`
	Published bool   `form:"-"`
}

func (f *BulkForm) Normalize() {
	f.Class = strings.TrimSpace(f.Class)
	f.Promotion = strings.TrimSpace(f.Promotion)
	f.Status = strings.TrimSpace(f.Status)
	if f.Status == "" {
		f.Status = model.ResultAdmitted
	}
}

// SplitName: kata pertama = nom, sisanya = prénom.
func SplitName(line string) (last, first string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// ParseNames memecah textarea; baris kosong dilewati.
func ParseNames(text string) [][2]string {
	var out [][2]string
	for _, line := range strings.Split(text, "\n") {
		last, first := SplitName(line)
		if last == "" {
			continue
		}
		out = append(out, [2]string{last, first})
	}
	return out
}
