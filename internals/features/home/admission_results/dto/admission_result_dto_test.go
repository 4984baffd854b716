package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "schoolku_backend/internals/helpers"
)

func TestParseNames(t *testing.T) {
	got := ParseNames("DIALLO Aminata\r\n\n  FALL   Moussa Ibrahima \nNDIAYE\n")
	require.Len(t, got, 3)
	assert.Equal(t, [2]string{"DIALLO", "Aminata"}, got[0])
	assert.Equal(t, [2]string{"FALL", "Moussa Ibrahima"}, got[1])
	assert.Equal(t, [2]string{"NDIAYE", ""}, got[2])
}

func TestResultFormDefaults(t *testing.T) {
	f := ResultForm{LastName: " Sarr ", Class: "6e", Promotion: "2025"}
	f.Normalize()
	require.NoError(t, helper.ValidateStruct(&f))
	assert.Equal(t, "admis", f.Status)
	assert.Equal(t, "Sarr", f.LastName)

	bad := ResultForm{LastName: "Sarr", Class: "6e", Promotion: "2025", Status: "recale"}
	assert.Error(t, helper.ValidateStruct(&bad))
}

func TestLookupReady(t *testing.T) {
	f := LookupForm{LastName: "Sarr", Class: " ", Promotion: "2025"}
	f.Normalize()
	assert.False(t, f.Ready())
	f.Class = "6e"
	assert.True(t, f.Ready())
}
