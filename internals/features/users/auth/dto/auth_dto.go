package dto

import "strings"

type LoginRequest struct {
	Email    string `form:"email" validate:"required,email" label:"Email"`
	Password string `form:"password" validate:"required" label:"Mot de passe"`
	Next     string `form:"next" validate:"-"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// SafeNext hanya menerima path lokal.
func (r *LoginRequest) SafeNext(fallback string) string {
	n := strings.TrimSpace(r.Next)
	if n == "" || !strings.HasPrefix(n, "/") || strings.HasPrefix(n, "//") {
		return fallback
	}
	return n
}

type RegisterRequest struct {
	FullName        string `form:"full_name" validate:"required,notblank,max=150" label:"Nom complet"`
	Email           string `form:"email" validate:"required,email,max=255" label:"Email"`
	Phone           string `form:"phone" validate:"omitempty,max=30" label:"Téléphone"`
	Password        string `form:"password" validate:"required,min=8" label:"Mot de passe"`
	PasswordConfirm string `form:"password_confirm" validate:"required,eqfield=Password" label:"Confirmation"`
}

func (r *RegisterRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
}

type ChangePasswordRequest struct {
	CurrentPassword string `form:"current_password" validate:"required" label:"Mot de passe actuel"`
	NewPassword     string `form:"new_password" validate:"required,min=8" label:"Nouveau mot de passe"`
	Confirm         string `form:"confirm" validate:"required,eqfield=NewPassword" label:"Confirmation"`
}
