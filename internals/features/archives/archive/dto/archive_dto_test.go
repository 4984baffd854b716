package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/archives/archive/model"
	helper "schoolku_backend/internals/helpers"
)

func TestDaysLeft(t *testing.T) {
	now := time.Date(2026, 10, 31, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name    string
		deleted time.Time
		want    int
	}{
		{"today", now.Add(-2 * time.Hour), 30},
		{"ten days", now.AddDate(0, 0, -10), 20},
		{"almost expired", now.AddDate(0, 0, -29).Add(-time.Hour), 1},
		{"expired", now.AddDate(0, 0, -45), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaysLeft(tc.deleted, now, 30))
		})
	}
}

func TestToTrashItems(t *testing.T) {
	now := time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)
	list := []model.ArchiveFolderModel{
		{FolderName: "Examens 2024", FolderDeletedAt: gorm.DeletedAt{Time: now.AddDate(0, 0, -5), Valid: true}},
		{FolderName: "Sans date"},
	}
	items := ToTrashItems(list, now, 30)
	assert.Len(t, items, 2)
	assert.Equal(t, 25, items[0].DaysLeft)
	assert.Equal(t, 0, items[1].DaysLeft)
}

func TestNormalizeFilter(t *testing.T) {
	assert.Equal(t, FilterRecent, NormalizeFilter("recent"))
	assert.Equal(t, FilterAll, NormalizeFilter(""))
	assert.Equal(t, FilterAll, NormalizeFilter("supprimes"))
}

func TestFolderFormPin(t *testing.T) {
	f := FolderForm{Name: " Conseil de classe ", Pin: " 12a4 "}
	f.Normalize()
	assert.Equal(t, "Conseil de classe", f.Name)
	_, ok := helper.IsValidationError(helper.ValidateStruct(&f))
	assert.True(t, ok)

	f.Pin = "1234"
	assert.NoError(t, helper.ValidateStruct(&f))
}
