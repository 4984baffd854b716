package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetCover(t *testing.T) {
	url := func(key string) string { return "/media/" + key }

	var m ArticleModel
	m.SetCover(url)
	assert.Empty(t, m.CoverURL)

	key := "public/articles/a.webp"
	m.ArticleCoverKey = &key
	m.SetCover(url)
	assert.Equal(t, "/media/public/articles/a.webp", m.CoverURL)
}

func TestSummary(t *testing.T) {
	m := ArticleModel{ArticleContent: "Kermesse de fin d'année"}
	assert.Equal(t, "Kermesse de fin d'année", m.Summary(50))
	assert.Equal(t, "Kermesse…", m.Summary(9))

	desc := "Résumé"
	m.ArticleDescription = &desc
	assert.Equal(t, "Résumé", m.Summary(3))
}
