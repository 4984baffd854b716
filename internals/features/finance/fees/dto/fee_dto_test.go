package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/finance/fees/model"
	helper "schoolku_backend/internals/helpers"
)

func TestFeeFormNormalizeAndApply(t *testing.T) {
	f := FeeForm{
		Name:         "  Scolarité T1 ",
		Type:         "scolarite",
		AmountRaw:    "1 500,50",
		AcademicYear: "2024-2025",
		DueDate:      "2024-10-15",
	}
	f.Normalize()
	require.NoError(t, helper.ValidateStruct(&f))
	assert.InDelta(t, 1500.50, f.Amount, 0.001)

	var m model.FeeModel
	f.ApplyTo(&m)
	assert.Equal(t, "Scolarité T1", m.FeeName)
	assert.Nil(t, m.FeeClassID)
	require.NotNil(t, m.FeeDueDate)
	assert.Equal(t, "2024-10-15", m.FeeDueDate.Format(helper.DateLayout))

	back := FromModel(&m)
	assert.Equal(t, "1500.50", back.AmountRaw)
}

func TestFeeFormRejectsBadAmount(t *testing.T) {
	f := FeeForm{Name: "Cantine", Type: "cantine", AmountRaw: "abc", AcademicYear: "2024-2025"}
	f.Normalize()
	assert.Error(t, helper.ValidateStruct(&f))

	f = FeeForm{Name: "Cantine", Type: "piscine", AmountRaw: "10", AcademicYear: "2024-2025"}
	f.Normalize()
	assert.Error(t, helper.ValidateStruct(&f))
}
