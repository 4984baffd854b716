package service

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"schoolku_backend/internals/constants"
)

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E79"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}

func writeTable(f *excelize.File, sheet string, style int, headers []string, rows [][]any) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	return f.SetColWidth(sheet, "A", lastCol, 20)
}

// FinanceWorkbook: tiga sheet (par type, par classe, par mois).
func FinanceWorkbook(fin *Finance) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	style, err := headerStyle(f)
	if err != nil {
		return nil, errors.Wrap(err, "header style")
	}

	if err := f.SetSheetName("Sheet1", "Par type"); err != nil {
		return nil, errors.Wrap(err, "rename sheet")
	}
	typeRows := make([][]any, 0, len(fin.ByType)+1)
	for _, l := range fin.ByType {
		typeRows = append(typeRows, []any{constants.Label(l.FeeType), l.Expected, l.Paid, fmt.Sprintf("%.1f %%", l.Rate())})
	}
	typeRows = append(typeRows, []any{"Total", fin.TotalDue, fin.TotalPaid, ""})
	if err := writeTable(f, "Par type", style, []string{"Type de frais", "Attendu (" + fin.AcademicYear + ")", fmt.Sprintf("Encaissé (%d)", fin.Year), "Taux"}, typeRows); err != nil {
		return nil, errors.Wrap(err, "sheet by type")
	}

	if _, err := f.NewSheet("Par classe"); err != nil {
		return nil, errors.Wrap(err, "new sheet")
	}
	classRows := make([][]any, 0, len(fin.ByClass))
	for _, l := range fin.ByClass {
		classRows = append(classRows, []any{l.ClassName, l.Payments, l.Paid})
	}
	if err := writeTable(f, "Par classe", style, []string{"Classe", "Paiements", "Encaissé"}, classRows); err != nil {
		return nil, errors.Wrap(err, "sheet by class")
	}

	if _, err := f.NewSheet("Par mois"); err != nil {
		return nil, errors.Wrap(err, "new sheet")
	}
	monthRows := make([][]any, 0, len(fin.ByMonth))
	for _, l := range fin.ByMonth {
		monthRows = append(monthRows, []any{l.Label, l.Paid})
	}
	if err := writeTable(f, "Par mois", style, []string{"Mois", "Encaissé"}, monthRows); err != nil {
		return nil, errors.Wrap(err, "sheet by month")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "write xlsx")
	}
	return buf.Bytes(), nil
}
