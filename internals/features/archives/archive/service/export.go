package service

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"schoolku_backend/internals/features/archives/archive/model"
	helper "schoolku_backend/internals/helpers"
)

const exportSheet = "Archives"

var exportHeaders = []string{"Nom du dossier", "Date de création", "Nombre de fichiers", "Confidentiel", "Créé par", "Informations"}

// ExportFolders: daftar dossier → xlsx.
func ExportFolders(rows []model.ArchiveFolderRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, errors.Wrap(err, "rename sheet")
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00AEEF"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, errors.Wrap(err, "header style")
	}
	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}
	_ = f.SetCellStyle(exportSheet, "A1", "F1", header)

	for i, r := range rows {
		row := i + 2
		creator, info := "N/A", ""
		if r.CreatorName != nil {
			creator = *r.CreatorName
		}
		if r.FolderInformation != nil {
			info = *r.FolderInformation
		}
		confidential := "Non"
		if r.FolderConfidential {
			confidential = "Oui"
		}
		f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), r.FolderName)
		f.SetCellValue(exportSheet, fmt.Sprintf("B%d", row), helper.FormatDateTime(r.FolderCreatedAt))
		f.SetCellValue(exportSheet, fmt.Sprintf("C%d", row), r.FolderFileCount)
		f.SetCellValue(exportSheet, fmt.Sprintf("D%d", row), confidential)
		f.SetCellValue(exportSheet, fmt.Sprintf("E%d", row), creator)
		f.SetCellValue(exportSheet, fmt.Sprintf("F%d", row), info)
	}
	_ = f.SetColWidth(exportSheet, "A", "A", 32)
	_ = f.SetColWidth(exportSheet, "B", "E", 18)
	_ = f.SetColWidth(exportSheet, "F", "F", 48)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "write xlsx")
	}
	return buf.Bytes(), nil
}
