package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/home/articles/model"
	helper "schoolku_backend/internals/helpers"
)

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"sport", "fête"}, ParseTags("Sport, fête ,sport,, "))
	assert.Empty(t, ParseTags(""))
}

func TestArticleFormApplyTo(t *testing.T) {
	f := ArticleForm{
		Title:     " Journée culturelle ",
		Content:   "Programme de la journée",
		Category:  "culture",
		EventDate: "2026-05-14",
		TagsRaw:   "Danse, Musique",
		IsActive:  true,
	}
	f.Normalize()
	require.NoError(t, helper.ValidateStruct(&f))

	var m model.ArticleModel
	f.ApplyTo(&m)
	assert.Equal(t, "Journée culturelle", m.ArticleTitle)
	require.NotNil(t, m.ArticleEventDate)
	assert.Equal(t, 14, m.ArticleEventDate.Day())
	assert.Equal(t, []string{"danse", "musique"}, []string(m.ArticleTags))
	assert.Nil(t, m.ArticleDescription)

	back := FromModel(&m)
	assert.Equal(t, "danse, musique", back.TagsRaw)
	assert.Equal(t, "2026-05-14", back.EventDate)
}

func TestArticleFormRejectsCategory(t *testing.T) {
	f := ArticleForm{Title: "X", Content: "Y", Category: "sport"}
	_, ok := helper.IsValidationError(helper.ValidateStruct(&f))
	assert.True(t, ok)
}

func TestExcerpt(t *testing.T) {
	m := model.ArticleModel{ArticleContent: strings.Repeat("é", 30)}
	assert.Equal(t, strings.Repeat("é", 10)+"…", Excerpt(&m, 10))
	desc := "Résumé"
	m.ArticleDescription = &desc
	assert.Equal(t, "Résumé", Excerpt(&m, 10))
}
