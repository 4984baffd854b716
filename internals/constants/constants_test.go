package constants

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTermRange(t *testing.T) {
	from, to, ok := TermRange("2024-2025", 1, time.UTC)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), to)

	from, to, ok = TermRange("2024-2025", 3, time.UTC)
	assert.True(t, ok)
	assert.Equal(t, time.April, from.Month())
	assert.Equal(t, 2025, to.Year())
	assert.Equal(t, time.August, to.Month())

	_, _, ok = TermRange("2024-2025", 4, time.UTC)
	assert.False(t, ok)
	_, _, ok = TermRange("bad", 1, time.UTC)
	assert.False(t, ok)
}

func TestRoleHelpers(t *testing.T) {
	assert.True(t, HasRole(RoleDirector, StaffRoles...))
	assert.False(t, HasRole(RoleParent, TeachingRoles...))
	assert.True(t, IsRole(RoleTeacher))
	assert.False(t, IsRole("owner"))
}

func TestLabelsAndFiles(t *testing.T) {
	assert.Equal(t, "Espèces", Label(MethodCash))
	assert.Equal(t, "inconnu", Label("inconnu"))
	assert.Equal(t, "En retard", AttendanceLabel(AttendanceLate))
	assert.True(t, In("culture", ArticleCategories))
	assert.Equal(t, "pdf", FileExt("Rapport.PDF"))
	assert.True(t, IsArchiveFile("notes.docx"))
	assert.False(t, IsArchiveFile("script.exe"))
	assert.True(t, IsImageFile("photo.JPG"))
}
