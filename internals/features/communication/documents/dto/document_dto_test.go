package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	helper "schoolku_backend/internals/helpers"
)

func TestDocumentFormNormalize(t *testing.T) {
	f := DocumentForm{Title: "  Règlement intérieur ", StudentID: " "}
	f.Normalize()
	assert.Equal(t, "Règlement intérieur", f.Title)
	assert.Equal(t, "autre", f.Category)
	assert.Empty(t, f.StudentID)
	assert.NoError(t, helper.ValidateStruct(&f))
}

func TestDocumentFormRejectsUnknownCategory(t *testing.T) {
	f := DocumentForm{Title: "Note", Category: "facture"}
	f.Normalize()
	err := helper.ValidateStruct(&f)
	_, ok := helper.IsValidationError(err)
	assert.True(t, ok)
}
