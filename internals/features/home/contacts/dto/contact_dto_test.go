package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "schoolku_backend/internals/helpers"
)

func TestContactForm(t *testing.T) {
	f := ContactForm{Name: " Fatou ", Email: " FATOU@Mail.test ", Subject: "Horaires", Message: " Bonjour "}
	f.Normalize()
	require.NoError(t, helper.ValidateStruct(&f))

	m := f.ToModel()
	assert.Equal(t, "fatou@mail.test", m.ContactEmail)
	assert.Equal(t, "Bonjour", m.ContactMessage)
	assert.False(t, m.ContactIsRead)

	f.Message = "   "
	_, ok := helper.IsValidationError(helper.ValidateStruct(&f))
	assert.True(t, ok)
}
