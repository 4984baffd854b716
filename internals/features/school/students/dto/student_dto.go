package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/students/model"
	helper "schoolku_backend/internals/helpers"
)

type StudentForm struct {
	Matricule  string `form:"student_matricule" validate:"omitempty,max=20" label:"Matricule"`
	LastName   string `form:"student_last_name" validate:"required,notblank,max=100" label:"Nom"`
	FirstName  string `form:"student_first_name" validate:"required,notblank,max=100" label:"Prénom"`
	BirthDate  string `form:"student_birth_date" validate:"required,datetime=2006-01-02" label:"Date de naissance"`
	BirthPlace string `form:"student_birth_place" validate:"required,notblank,max=100" label:"Lieu de naissance"`
	Gender     string `form:"student_gender" validate:"required,oneof=M F" label:"Sexe"`
	Address    string `form:"student_address" validate:"required,notblank,max=255" label:"Adresse"`
	Phone      string `form:"student_phone" validate:"omitempty,max=20" label:"Téléphone"`
	Email      string `form:"student_email" validate:"omitempty,email,max=120" label:"Email"`
	ClassID    string `form:"student_class_id" validate:"required,uuid" label:"Classe"`
	ParentID   string `form:"student_parent_id" validate:"omitempty,uuid" label:"Parent"`
	EnrolledAt string `form:"student_enrolled_at" validate:"omitempty,datetime=2006-01-02" label:"Date d'inscription"`
	IsActive   bool   `form:"-"`
}

func (f *StudentForm) Normalize() {
	f.Matricule = strings.ToUpper(strings.TrimSpace(f.Matricule))
	f.LastName = strings.TrimSpace(f.LastName)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.BirthDate = strings.TrimSpace(f.BirthDate)
	f.BirthPlace = strings.TrimSpace(f.BirthPlace)
	f.Gender = strings.ToUpper(strings.TrimSpace(f.Gender))
	f.Address = strings.TrimSpace(f.Address)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.ClassID = strings.TrimSpace(f.ClassID)
	f.ParentID = strings.TrimSpace(f.ParentID)
	f.EnrolledAt = strings.TrimSpace(f.EnrolledAt)
}

// ApplyTo dipanggil setelah ValidateStruct, jadi parse tanggal & uuid aman.
func (f *StudentForm) ApplyTo(m *model.StudentModel, today time.Time) {
	m.StudentLastName = f.LastName
	m.StudentFirstName = f.FirstName
	m.StudentBirthDate, _ = helper.ParseDate(f.BirthDate)
	m.StudentBirthPlace = f.BirthPlace
	m.StudentGender = f.Gender
	m.StudentAddress = f.Address
	m.StudentPhone = helper.TrimPtr(f.Phone)
	m.StudentEmail = helper.TrimPtr(f.Email)
	m.StudentClassID, _ = uuid.Parse(f.ClassID)
	m.StudentParentID, _ = helper.ParseUUIDPtr(f.ParentID)
	m.StudentIsActive = f.IsActive
	if d, err := helper.ParseDatePtr(f.EnrolledAt); err == nil && d != nil {
		m.StudentEnrolledAt = *d
	} else if m.StudentEnrolledAt.IsZero() {
		m.StudentEnrolledAt = today
	}
	if f.Matricule != "" {
		m.StudentMatricule = f.Matricule
	}
}

func FromModel(m *model.StudentModel) StudentForm {
	f := StudentForm{
		Matricule:  m.StudentMatricule,
		LastName:   m.StudentLastName,
		FirstName:  m.StudentFirstName,
		BirthDate:  m.StudentBirthDate.Format(helper.DateLayout),
		BirthPlace: m.StudentBirthPlace,
		Gender:     m.StudentGender,
		Address:    m.StudentAddress,
		ClassID:    m.StudentClassID.String(),
		EnrolledAt: m.StudentEnrolledAt.Format(helper.DateLayout),
		IsActive:   m.StudentIsActive,
	}
	if m.StudentPhone != nil {
		f.Phone = *m.StudentPhone
	}
	if m.StudentEmail != nil {
		f.Email = *m.StudentEmail
	}
	if m.StudentParentID != nil {
		f.ParentID = m.StudentParentID.String()
	}
	return f
}

// StudentOption: payload JSON /api/classes/:id/students.
type StudentOption struct {
	ID        string `json:"id"`
	Matricule string `json:"matricule"`
	Name      string `json:"name"`
}

func ToOptions(list []model.StudentModel) []StudentOption {
	out := make([]StudentOption, 0, len(list))
	for _, s := range list {
		out = append(out, StudentOption{
			ID:        s.StudentID.String(),
			Matricule: s.StudentMatricule,
			Name:      s.StudentLastName + " " + s.StudentFirstName,
		})
	}
	return out
}
