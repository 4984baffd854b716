package dto

import (
	"strings"

	"github.com/lib/pq"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/communication/announcements/model"
	helper "schoolku_backend/internals/helpers"
)

type AnnouncementForm struct {
	Title     string   `form:"announcement_title" validate:"required,notblank,max=150" label:"Titre"`
	Content   string   `form:"announcement_content" validate:"required,notblank" label:"Contenu"`
	IsPublic  bool     `form:"-"`
	Important bool     `form:"-"`
	ExpiresAt string   `form:"announcement_expires_at" validate:"omitempty,datetime=2006-01-02" label:"Date d'expiration"`
	Audience  []string `form:"announcement_audience" validate:"dive,oneof=admin directeur professeur parent" label:"Destinataires"`
}

func (f *AnnouncementForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Content = strings.TrimSpace(f.Content)
	f.ExpiresAt = strings.TrimSpace(f.ExpiresAt)
	seen := map[string]bool{}
	out := f.Audience[:0]
	for _, r := range f.Audience {
		r = strings.TrimSpace(r)
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	f.Audience = out
}

func (f *AnnouncementForm) ApplyTo(m *model.AnnouncementModel) {
	m.AnnouncementTitle = f.Title
	m.AnnouncementContent = f.Content
	m.AnnouncementIsPublic = f.IsPublic
	m.AnnouncementIsImportant = f.Important
	m.AnnouncementExpiresAt, _ = helper.ParseDatePtr(f.ExpiresAt)
	m.AnnouncementAudience = pq.StringArray(append([]string{}, f.Audience...))
}

func FromModel(m *model.AnnouncementModel) AnnouncementForm {
	f := AnnouncementForm{
		Title:     m.AnnouncementTitle,
		Content:   m.AnnouncementContent,
		IsPublic:  m.AnnouncementIsPublic,
		Important: m.AnnouncementIsImportant,
		Audience:  []string(m.AnnouncementAudience),
	}
	if m.AnnouncementExpiresAt != nil {
		f.ExpiresAt = m.AnnouncementExpiresAt.Format(helper.DateLayout)
	}
	return f
}

// HasAudience untuk checkbox di template.
func (f AnnouncementForm) HasAudience(role string) bool {
	return constants.HasRole(role, f.Audience...)
}

type RecipientForm struct {
	Name  string `form:"recipient_name" validate:"required,notblank,max=100" label:"Nom"`
	Phone string `form:"recipient_phone" validate:"required,min=6,max=30" label:"Téléphone"`
	Note  string `form:"recipient_note" validate:"omitempty,max=255" label:"Note"`
}

func (f *RecipientForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.Join(strings.Fields(f.Phone), "")
	f.Note = strings.TrimSpace(f.Note)
}

// AnnouncementJSON untuk /api/annonces/recentes.
type AnnouncementJSON struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Important bool    `json:"important"`
	Date      string  `json:"date"`
	ExpiresAt *string `json:"expires_at,omitempty"`
}

func ToJSON(list []model.AnnouncementModel) []AnnouncementJSON {
	out := make([]AnnouncementJSON, 0, len(list))
	for _, a := range list {
		j := AnnouncementJSON{
			ID:        a.AnnouncementID.String(),
			Title:     a.AnnouncementTitle,
			Content:   a.AnnouncementContent,
			Important: a.AnnouncementIsImportant,
			Date:      a.AnnouncementCreatedAt.Format(helper.DateLayout),
		}
		if a.AnnouncementExpiresAt != nil {
			d := a.AnnouncementExpiresAt.Format(helper.DateLayout)
			j.ExpiresAt = &d
		}
		out = append(out, j)
	}
	return out
}
