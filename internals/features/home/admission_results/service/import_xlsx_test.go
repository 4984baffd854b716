package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	helper "schoolku_backend/internals/helpers"
)

func buildSheet(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestParseSheet(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"Nom", "Prénom", "Classe", "Promotion", "Statut"},
		{"diallo", "Aminata", "6e A", "2025", "Admis"},
		{"Fall", "Moussa", "6e A", "2025", "Ajourné"},
		{"", "", "", "", ""},
		{"Sow", "Awa", "", "2025", ""},
		{"Ba", "Oumar", "6e A", "2025", "recalé"},
	})

	parsed, err := ParseSheet(buf, true)
	require.NoError(t, err)
	require.Len(t, parsed.Results, 2)

	assert.Equal(t, "DIALLO", parsed.Results[0].ResultLastName)
	assert.Equal(t, "admis", parsed.Results[0].ResultStatus)
	assert.True(t, parsed.Results[0].ResultPublished)
	assert.Contains(t, string(parsed.Results[0].ResultSource), `"ligne":2`)
	assert.Equal(t, "ajourne", parsed.Results[1].ResultStatus)

	require.Len(t, parsed.Issues, 2)
	assert.Equal(t, 5, parsed.Issues[0].Row)
	assert.Equal(t, 6, parsed.Issues[1].Row)
}

func TestParseSheetMissingColumns(t *testing.T) {
	buf := buildSheet(t, [][]any{{"Nom", "Classe"}, {"Sarr", "CM2"}})
	_, err := ParseSheet(buf, false)
	ve, ok := helper.IsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Error(), "prenom")
	assert.Contains(t, ve.Error(), "promotion")
}

func TestParseSheetDefaultStatus(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"nom", "prenom", "classe", "promotion"},
		{"Ndiaye", "Fatou", "CM2", "2024"},
	})
	parsed, err := ParseSheet(buf, false)
	require.NoError(t, err)
	require.Len(t, parsed.Results, 1)
	assert.Equal(t, "admis", parsed.Results[0].ResultStatus)
	assert.False(t, parsed.Results[0].ResultPublished)
}
