package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"schoolku_backend/internals/features/archives/archive/model"
)

func TestUnlockToken(t *testing.T) {
	folder, user := uuid.New(), uuid.New()
	now := time.Now()

	tok, err := SignUnlock(folder, user, "secret", now)
	require.NoError(t, err)

	assert.True(t, VerifyUnlock(tok, folder, user, "secret"))
	assert.False(t, VerifyUnlock(tok, uuid.New(), user, "secret"), "other folder")
	assert.False(t, VerifyUnlock(tok, folder, uuid.New(), "secret"), "other user")
	assert.False(t, VerifyUnlock(tok, folder, user, "wrong"), "bad secret")
	assert.False(t, VerifyUnlock("", folder, user, "secret"))
}

func TestUnlockTokenExpires(t *testing.T) {
	folder, user := uuid.New(), uuid.New()
	tok, err := SignUnlock(folder, user, "secret", time.Now().Add(-2*UnlockTTL))
	require.NoError(t, err)
	assert.False(t, VerifyUnlock(tok, folder, user, "secret"))
}

func TestPin(t *testing.T) {
	h, err := HashPin("4821")
	require.NoError(t, err)
	assert.True(t, CheckPin(&h, "4821"))
	assert.False(t, CheckPin(&h, "1111"))
	assert.False(t, CheckPin(nil, "4821"))
	assert.False(t, CheckPin(&h, ""))
}

func TestExportFolders(t *testing.T) {
	creator := "Awa Ndiaye"
	info := "Procès-verbaux"
	rows := []model.ArchiveFolderRow{
		{
			ArchiveFolderModel: model.ArchiveFolderModel{
				FolderName:         "Conseils 2025",
				FolderFileCount:    3,
				FolderConfidential: true,
				FolderInformation:  &info,
				FolderCreatedAt:    time.Date(2025, 6, 30, 10, 0, 0, 0, time.UTC),
			},
			CreatorName: &creator,
		},
		{ArchiveFolderModel: model.ArchiveFolderModel{FolderName: "Divers"}},
	}

	data, err := ExportFolders(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, _ := f.GetCellValue(exportSheet, "A1")
	assert.Equal(t, "Nom du dossier", got)
	got, _ = f.GetCellValue(exportSheet, "A2")
	assert.Equal(t, "Conseils 2025", got)
	got, _ = f.GetCellValue(exportSheet, "C2")
	assert.Equal(t, "3", got)
	got, _ = f.GetCellValue(exportSheet, "D2")
	assert.Equal(t, "Oui", got)
	got, _ = f.GetCellValue(exportSheet, "E3")
	assert.Equal(t, "N/A", got)
}
