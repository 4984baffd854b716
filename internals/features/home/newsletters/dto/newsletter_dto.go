package dto

import "strings"

type SubscribeForm struct {
	Email string `form:"email" json:"email" validate:"required,email,max=255" label:"Email"`
}

func (f *SubscribeForm) Normalize() { f.Email = strings.ToLower(strings.TrimSpace(f.Email)) }

type CampaignForm struct {
	Subject string `form:"subject" validate:"required,notblank,max=150" label:"Objet"`
	Body    string `form:"body" validate:"required,notblank" label:"Message"`
}

func (f *CampaignForm) Normalize() {
	f.Subject = strings.TrimSpace(f.Subject)
	f.Body = strings.TrimSpace(f.Body)
}
