package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/home/admission_results/model"
	helper "schoolku_backend/internals/helpers"
)

var requiredColumns = []string{"nom", "prenom", "classe", "promotion"}

// RowIssue: baris sheet yang dilewati beserta alasannya (nomor baris 1-based).
type RowIssue struct {
	Row    int
	Reason string
}

type ParsedSheet struct {
	Results []model.AdmissionResultModel
	Issues  []RowIssue
}

// ParseSheet membaca sheet pertama. Header (baris 1) dicocokkan tanpa
// aksen/kapital: nom, prenom, classe, promotion, statut (opsional).
func ParseSheet(r io.Reader, published bool) (*ParsedSheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, helper.NewValidationError("Fichier Excel illisible.")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, helper.NewValidationError("Le classeur ne contient aucune feuille.")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "read sheet")
	}
	if len(rows) == 0 {
		return nil, helper.NewValidationError("La feuille est vide.")
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		key := strings.ReplaceAll(helper.Slugify(h, 30), "-", "")
		if _, seen := cols[key]; !seen {
			cols[key] = i
		}
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, helper.NewValidationError("Colonnes manquantes : " + strings.Join(missing, ", "))
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := &ParsedSheet{}
	for n, row := range rows[1:] {
		line := n + 2
		last, first := cell(row, "nom"), cell(row, "prenom")
		class, promo := cell(row, "classe"), cell(row, "promotion")
		if last == "" && first == "" && class == "" && promo == "" {
			continue
		}
		if last == "" || class == "" || promo == "" {
			out.Issues = append(out.Issues, RowIssue{Row: line, Reason: "nom, classe ou promotion manquant"})
			continue
		}
		status := strings.ReplaceAll(helper.Slugify(cell(row, "statut"), 20), "-", "")
		if status == "item" {
			status = model.ResultAdmitted
		}
		if !constants.In(status, model.ResultStatuses) {
			out.Issues = append(out.Issues, RowIssue{Row: line, Reason: fmt.Sprintf("statut inconnu %q", cell(row, "statut"))})
			continue
		}

		raw := map[string]string{}
		for name, i := range cols {
			if i < len(row) {
				raw[name] = row[i]
			}
		}
		src, _ := json.Marshal(map[string]any{"ligne": line, "cellules": raw})

		out.Results = append(out.Results, model.AdmissionResultModel{
			ResultLastName:  strings.ToUpper(last),
			ResultFirstName: first,
			ResultClass:     class,
			ResultPromotion: promo,
			ResultStatus:    status,
			ResultPublished: published,
			ResultSource:    datatypes.JSON(src),
		})
	}
	return out, nil
}
