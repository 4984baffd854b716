package dto

import (
	"strings"

	"schoolku_backend/internals/features/home/complaints/model"
	helper "schoolku_backend/internals/helpers"
)

type ComplaintForm struct {
	StudentName string `form:"complaint_student_name" validate:"required,notblank,max=200" label:"Nom complet de l'élève"`
	Class       string `form:"complaint_class" validate:"required,notblank,max=50" label:"Classe"`
	Phone1      string `form:"complaint_phone1" validate:"required,notblank,max=20" label:"Téléphone 1"`
	Phone2      string `form:"complaint_phone2" validate:"omitempty,max=20" label:"Téléphone 2"`
	Email       string `form:"complaint_email" validate:"omitempty,email,max=255" label:"Email"`
	Description string `form:"complaint_description" validate:"required,notblank,max=5000" label:"Description"`
}

func (f *ComplaintForm) Normalize() {
	f.StudentName = strings.TrimSpace(f.StudentName)
	f.Class = strings.TrimSpace(f.Class)
	f.Phone1 = strings.TrimSpace(f.Phone1)
	f.Phone2 = strings.TrimSpace(f.Phone2)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Description = strings.TrimSpace(f.Description)
}

func (f *ComplaintForm) ToModel() *model.ComplaintModel {
	return &model.ComplaintModel{
		ComplaintStudentName: f.StudentName,
		ComplaintClass:       f.Class,
		ComplaintPhone1:      f.Phone1,
		ComplaintPhone2:      helper.TrimPtr(f.Phone2),
		ComplaintEmail:       helper.TrimPtr(f.Email),
		ComplaintDescription: f.Description,
	}
}

type TreatForm struct {
	Status   string `form:"complaint_status" validate:"required,oneof=en_attente en_cours resolu rejete" label:"Statut"`
	Response string `form:"complaint_response" validate:"omitempty,max=5000" label:"Réponse"`
}

func (f *TreatForm) Normalize() {
	f.Status = strings.TrimSpace(f.Status)
	f.Response = strings.TrimSpace(f.Response)
}
