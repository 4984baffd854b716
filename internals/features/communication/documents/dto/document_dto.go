package dto

import "strings"

type DocumentForm struct {
	Title       string `form:"document_title" validate:"required,notblank,max=150" label:"Titre"`
	Description string `form:"document_description" validate:"omitempty,max=2000" label:"Description"`
	Category    string `form:"document_category" validate:"required,oneof=bulletin certificat reglement circulaire autre" label:"Catégorie"`
	StudentID   string `form:"document_student_id" validate:"omitempty,uuid" label:"Élève"`
}

func (f *DocumentForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Category = strings.TrimSpace(f.Category)
	f.StudentID = strings.TrimSpace(f.StudentID)
	if f.Category == "" {
		f.Category = "autre"
	}
}
