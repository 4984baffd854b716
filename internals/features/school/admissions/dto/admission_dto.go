package dto

import (
	"strings"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/admissions/model"
	studentDTO "schoolku_backend/internals/features/school/students/dto"
	helper "schoolku_backend/internals/helpers"
)

// AdmissionForm: formulir publik /inscriptions.
type AdmissionForm struct {
	LastName       string `form:"admission_last_name" validate:"required,notblank,max=100" label:"Nom"`
	FirstName      string `form:"admission_first_name" validate:"required,notblank,max=100" label:"Prénom"`
	BirthDate      string `form:"admission_birth_date" validate:"required,datetime=2006-01-02" label:"Date de naissance"`
	BirthPlace     string `form:"admission_birth_place" validate:"required,notblank,max=100" label:"Lieu de naissance"`
	Gender         string `form:"admission_gender" validate:"required,oneof=M F" label:"Sexe"`
	Address        string `form:"admission_address" validate:"required,notblank,max=255" label:"Adresse"`
	PreviousSchool string `form:"admission_previous_school" validate:"omitempty,max=150" label:"École précédente"`
	ClassID        string `form:"admission_class_id" validate:"required,uuid" label:"Classe souhaitée"`
	ParentName     string `form:"admission_parent_name" validate:"required,notblank,max=150" label:"Nom du parent"`
	ParentEmail    string `form:"admission_parent_email" validate:"required,email,max=255" label:"Email du parent"`
	ParentPhone    string `form:"admission_parent_phone" validate:"required,notblank,max=30" label:"Téléphone du parent"`
}

func (f *AdmissionForm) Normalize() {
	f.LastName = strings.ToUpper(strings.TrimSpace(f.LastName))
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.BirthDate = strings.TrimSpace(f.BirthDate)
	f.BirthPlace = strings.TrimSpace(f.BirthPlace)
	f.Gender = strings.ToUpper(strings.TrimSpace(f.Gender))
	f.Address = strings.TrimSpace(f.Address)
	f.PreviousSchool = strings.TrimSpace(f.PreviousSchool)
	f.ClassID = strings.TrimSpace(f.ClassID)
	f.ParentName = strings.TrimSpace(f.ParentName)
	f.ParentEmail = strings.ToLower(strings.TrimSpace(f.ParentEmail))
	f.ParentPhone = strings.TrimSpace(f.ParentPhone)
}

func (f *AdmissionForm) ToModel(reference string) *model.AdmissionModel {
	m := &model.AdmissionModel{
		AdmissionReference:      reference,
		AdmissionLastName:       f.LastName,
		AdmissionFirstName:      f.FirstName,
		AdmissionBirthPlace:     f.BirthPlace,
		AdmissionGender:         f.Gender,
		AdmissionAddress:        f.Address,
		AdmissionPreviousSchool: helper.TrimPtr(f.PreviousSchool),
		AdmissionParentName:     f.ParentName,
		AdmissionParentEmail:    f.ParentEmail,
		AdmissionParentPhone:    f.ParentPhone,
	}
	m.AdmissionBirthDate, _ = helper.ParseDate(f.BirthDate)
	m.AdmissionClassID, _ = uuid.Parse(f.ClassID)
	return m
}

// ReviewForm: keputusan admin (approuvee / rejetee).
type ReviewForm struct {
	Status  string `form:"admission_status" validate:"required,oneof=en_attente approuvee rejetee" label:"Statut"`
	Comment string `form:"admission_comment" validate:"omitempty,max=2000" label:"Commentaire"`
}

// ToStudentForm: data inscription → formulir élève (kelas tujuan, parent terhubung).
func ToStudentForm(m *model.AdmissionModel, parentID uuid.UUID) studentDTO.StudentForm {
	f := studentDTO.StudentForm{
		LastName:   m.AdmissionLastName,
		FirstName:  m.AdmissionFirstName,
		BirthDate:  m.AdmissionBirthDate.Format(helper.DateLayout),
		BirthPlace: m.AdmissionBirthPlace,
		Gender:     m.AdmissionGender,
		Address:    m.AdmissionAddress,
		Phone:      m.AdmissionParentPhone,
		ClassID:    m.AdmissionClassID.String(),
		ParentID:   parentID.String(),
		IsActive:   true,
	}
	if len(f.Phone) > 20 {
		f.Phone = f.Phone[:20]
	}
	f.Normalize()
	return f
}
