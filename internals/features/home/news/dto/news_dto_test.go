package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"schoolku_backend/internals/features/home/news/model"
	helper "schoolku_backend/internals/helpers"
)

func TestNewsFormLimits(t *testing.T) {
	f := NewsForm{Content: "  Rentrée le 2 septembre  ", Priority: 5, IsActive: true}
	f.Normalize()
	assert.NoError(t, helper.ValidateStruct(&f))

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	f.Content = string(long)
	_, ok := helper.IsValidationError(helper.ValidateStruct(&f))
	assert.True(t, ok)
}

func TestNewsToJSON(t *testing.T) {
	id := uuid.New()
	out := ToJSON([]model.NewsModel{{NewsID: id, NewsContent: "Kermesse samedi", NewsPriority: 3}})
	assert.Equal(t, []NewsJSON{{ID: id.String(), Content: "Kermesse samedi", Priority: 3}}, out)
}
