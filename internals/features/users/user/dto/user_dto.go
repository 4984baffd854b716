package dto

import (
	"strings"

	uModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
)

// UserForm dipakai create & edit (admin). Password boleh kosong saat edit.
type UserForm struct {
	FullName string `form:"full_name" validate:"required,notblank,max=150" label:"Nom complet"`
	Email    string `form:"email" validate:"required,email,max=255" label:"Email"`
	Role     string `form:"role" validate:"required,oneof=admin directeur professeur parent" label:"Rôle"`
	Phone    string `form:"phone" validate:"omitempty,max=30" label:"Téléphone"`
	Password string `form:"password" validate:"omitempty,min=8" label:"Mot de passe"`
	IsActive bool   `form:"-"` // checkbox, diisi dari helper.FormBool
}

func (r *UserForm) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.TrimSpace(r.Role)
	r.Phone = strings.TrimSpace(r.Phone)
}

// ToModel: password di-hash di service
func (r *UserForm) ToModel() *uModel.UserModel {
	return &uModel.UserModel{
		FullName: r.FullName,
		Email:    r.Email,
		Role:     r.Role,
		Phone:    helper.TrimPtr(r.Phone),
		IsActive: r.IsActive,
	}
}

func (r *UserForm) ApplyTo(m *uModel.UserModel) {
	m.FullName = r.FullName
	m.Email = r.Email
	m.Role = r.Role
	m.Phone = helper.TrimPtr(r.Phone)
	m.IsActive = r.IsActive
}

// FromModel untuk prefill form edit.
func FromModel(m *uModel.UserModel) UserForm {
	f := UserForm{
		FullName: m.FullName,
		Email:    m.Email,
		Role:     m.Role,
		IsActive: m.IsActive,
	}
	if m.Phone != nil {
		f.Phone = *m.Phone
	}
	return f
}
