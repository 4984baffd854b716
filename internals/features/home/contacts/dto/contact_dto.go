package dto

import (
	"strings"

	"schoolku_backend/internals/features/home/contacts/model"
)

type ContactForm struct {
	Name    string `form:"contact_name" validate:"required,notblank,max=100" label:"Nom"`
	Email   string `form:"contact_email" validate:"required,email,max=255" label:"Email"`
	Subject string `form:"contact_subject" validate:"required,notblank,max=200" label:"Sujet"`
	Message string `form:"contact_message" validate:"required,notblank,max=5000" label:"Message"`
}

func (f *ContactForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)
}

func (f *ContactForm) ToModel() *model.ContactModel {
	return &model.ContactModel{
		ContactName:    f.Name,
		ContactEmail:   f.Email,
		ContactSubject: f.Subject,
		ContactMessage: f.Message,
	}
}

type HandleForm struct {
	Note string `form:"contact_admin_note" validate:"omitempty,max=2000" label:"Note"`
}
