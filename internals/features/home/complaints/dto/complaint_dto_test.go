package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "schoolku_backend/internals/helpers"
)

func TestComplaintFormToModel(t *testing.T) {
	f := ComplaintForm{
		StudentName: " Ibrahima Sow ",
		Class:       "CM2",
		Phone1:      "770000000",
		Email:       "",
		Description: "Reçu de paiement non pris en compte",
	}
	f.Normalize()
	require.NoError(t, helper.ValidateStruct(&f))
	m := f.ToModel()
	assert.Equal(t, "Ibrahima Sow", m.ComplaintStudentName)
	assert.Nil(t, m.ComplaintPhone2)
	assert.Nil(t, m.ComplaintEmail)
}

func TestTreatFormStatus(t *testing.T) {
	ok := TreatForm{Status: " resolu "}
	ok.Normalize()
	assert.NoError(t, helper.ValidateStruct(&ok))

	bad := TreatForm{Status: "ferme"}
	_, isVal := helper.IsValidationError(helper.ValidateStruct(&bad))
	assert.True(t, isVal)
}
