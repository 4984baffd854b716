package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "schoolku_backend/internals/helpers"
)

func validForm() AdmissionForm {
	return AdmissionForm{
		LastName:    " diallo ",
		FirstName:   "Aminata",
		BirthDate:   "2014-03-09",
		BirthPlace:  "Dakar",
		Gender:      "f",
		Address:     "12 rue des Écoles",
		ClassID:     uuid.NewString(),
		ParentName:  "Moussa Diallo",
		ParentEmail: " Moussa@Example.COM ",
		ParentPhone: "+221 77 000 00 00",
	}
}

func TestAdmissionFormNormalizeAndValidate(t *testing.T) {
	f := validForm()
	f.Normalize()
	assert.Equal(t, "DIALLO", f.LastName)
	assert.Equal(t, "F", f.Gender)
	assert.Equal(t, "moussa@example.com", f.ParentEmail)
	require.NoError(t, helper.ValidateStruct(&f))

	m := f.ToModel("INS-2026-ABC123")
	assert.Equal(t, "INS-2026-ABC123", m.AdmissionReference)
	assert.Equal(t, time.March, m.AdmissionBirthDate.Month())
	assert.Nil(t, m.AdmissionPreviousSchool)
}

func TestAdmissionFormMissingParentEmail(t *testing.T) {
	f := validForm()
	f.ParentEmail = "pas-un-email"
	f.Normalize()
	_, ok := helper.IsValidationError(helper.ValidateStruct(&f))
	assert.True(t, ok)
}

func TestToStudentForm(t *testing.T) {
	f := validForm()
	f.Normalize()
	m := f.ToModel("INS-1")
	parent := uuid.New()

	sf := ToStudentForm(m, parent)
	assert.Equal(t, "DIALLO", sf.LastName)
	assert.Equal(t, parent.String(), sf.ParentID)
	assert.Equal(t, "2014-03-09", sf.BirthDate)
	assert.True(t, sf.IsActive)
	assert.LessOrEqual(t, len(sf.Phone), 20)
	assert.NoError(t, helper.ValidateStruct(&sf))
}
