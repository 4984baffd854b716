package dto

import (
	"strings"

	"schoolku_backend/internals/features/home/news/model"
)

type NewsForm struct {
	Content  string `form:"news_content" validate:"required,notblank,max=255" label:"Contenu"`
	Priority int    `form:"news_priority" validate:"min=0,max=100" label:"Priorité"`
	IsActive bool   `form:"-"`
}

func (f *NewsForm) Normalize() { f.Content = strings.TrimSpace(f.Content) }

func (f *NewsForm) ApplyTo(m *model.NewsModel) {
	m.NewsContent = f.Content
	m.NewsPriority = f.Priority
	m.NewsIsActive = f.IsActive
}

func FromModel(m *model.NewsModel) NewsForm {
	return NewsForm{Content: m.NewsContent, Priority: m.NewsPriority, IsActive: m.NewsIsActive}
}

// NewsJSON: payload /api/news.
type NewsJSON struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Priority int    `json:"priority"`
}

func ToJSON(list []model.NewsModel) []NewsJSON {
	out := make([]NewsJSON, 0, len(list))
	for _, n := range list {
		out = append(out, NewsJSON{ID: n.NewsID.String(), Content: n.NewsContent, Priority: n.NewsPriority})
	}
	return out
}
