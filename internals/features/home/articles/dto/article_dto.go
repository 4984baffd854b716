package dto

import (
	"strings"

	"schoolku_backend/internals/features/home/articles/model"
	helper "schoolku_backend/internals/helpers"
)

type ArticleForm struct {
	Title       string `form:"article_title" validate:"required,notblank,max=200" label:"Titre"`
	Description string `form:"article_description" validate:"omitempty,max=500" label:"Description courte"`
	Content     string `form:"article_content" validate:"required,notblank" label:"Contenu"`
	Category    string `form:"article_category" validate:"required,oneof=vie-scolaire annonces culture celebrations" label:"Catégorie"`
	EventDate   string `form:"article_event_date" validate:"omitempty,datetime=2006-01-02" label:"Date de l'événement"`
	TagsRaw     string `form:"article_tags" validate:"omitempty,max=500" label:"Mots-clés"`
	IsActive    bool   `form:"-"`
	RemoveCover bool   `form:"-"`
}

func (f *ArticleForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Content = strings.TrimSpace(f.Content)
	f.Category = strings.TrimSpace(f.Category)
	f.EventDate = strings.TrimSpace(f.EventDate)
	f.TagsRaw = strings.TrimSpace(f.TagsRaw)
}

// ParseTags: "Sport, fête ,sport" → ["sport","fête"] (lowercase, unik, urutan dijaga).
func ParseTags(raw string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, t := range strings.Split(raw, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func (f *ArticleForm) ApplyTo(m *model.ArticleModel) {
	m.ArticleTitle = f.Title
	m.ArticleDescription = helper.TrimPtr(f.Description)
	m.ArticleContent = f.Content
	m.ArticleCategory = f.Category
	m.ArticleEventDate, _ = helper.ParseDatePtr(f.EventDate)
	m.ArticleTags = ParseTags(f.TagsRaw)
	m.ArticleIsActive = f.IsActive
}

func FromModel(m *model.ArticleModel) ArticleForm {
	f := ArticleForm{
		Title:    m.ArticleTitle,
		Content:  m.ArticleContent,
		Category: m.ArticleCategory,
		TagsRaw:  strings.Join(m.ArticleTags, ", "),
		IsActive: m.ArticleIsActive,
	}
	if m.ArticleDescription != nil {
		f.Description = *m.ArticleDescription
	}
	if m.ArticleEventDate != nil {
		f.EventDate = m.ArticleEventDate.Format(helper.DateLayout)
	}
	return f
}

// Excerpt: lihat ArticleModel.Summary.
func Excerpt(m *model.ArticleModel, max int) string {
	return m.Summary(max)
}
