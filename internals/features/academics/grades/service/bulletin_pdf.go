package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/academics/aggregation"
	helper "schoolku_backend/internals/helpers"
)

// WriteBulletinPDF menulis rapor (A4 portrait) ke w.
func WriteBulletinPDF(w io.Writer, schoolName string, b *BulletinView) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle("Bulletin", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("") // cp1252 → aksen Prancis

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, tr(schoolName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Bulletin scolaire - Trimestre %d - %s", b.Term, b.Class.ClassAcademicYear)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	info := [][2]string{
		{"Élève", b.Student.StudentLastName + " " + b.Student.StudentFirstName},
		{"Matricule", b.Student.StudentMatricule},
		{"Classe", b.Class.ClassName},
		{"Date de naissance", helper.FormatDate(b.Student.StudentBirthDate)},
	}
	for _, kv := range info {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, 6, tr(kv[0]+" :"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr(kv[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	widths := []float64{70, 25, 30, 25, 30}
	headers := []string{"Matière", "Coef.", "Moyenne /20", "Notes", "Points"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 236, 245)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	var totalCoef, totalPoints float64
	for _, l := range b.Lines {
		name := l.Name
		if name == "" {
			name = l.Code
		}
		avg, points := "-", "-"
		if l.Graded() {
			avg = helper.FormatScore(l.Average)
			points = helper.FormatScore(l.Average * l.Coefficient)
			totalCoef += l.Coefficient
			totalPoints += l.Average * l.Coefficient
		}
		pdf.CellFormat(widths[0], 7, tr(name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, strings.TrimSuffix(helper.FormatScore(l.Coefficient), ".00"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 7, avg, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 7, fmt.Sprintf("%d", l.GradeCount), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 7, points, "1", 1, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(widths[0], 8, tr("Total"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(widths[1], 8, strings.TrimSuffix(helper.FormatScore(totalCoef), ".00"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(widths[2]+widths[3], 8, "", "1", 0, "C", true, 0, "")
	pdf.CellFormat(widths[4], 8, helper.FormatScore(totalPoints), "1", 1, "C", true, 0, "")
	pdf.Ln(5)

	summary := [][2]string{
		{"Moyenne générale", helper.FormatScore(aggregation.Round2(b.Average)) + " / 20"},
		{"Rang", fmt.Sprintf("%d / %d notés (%d inscrits)", b.Rank, b.GradedSize, b.ClassSize)},
		{"Moyenne de la classe", helper.FormatScore(aggregation.Round2(b.ClassAvg)) + " / 20"},
		{"Assiduité", fmt.Sprintf("%.1f %% (%d absence(s) sur %d séance(s))", b.Attendance.Rate, b.Attendance.Absent, b.Attendance.Total)},
	}
	for _, kv := range summary {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(55, 7, tr(kv[0]+" :"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, tr(kv[1]), "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 10)
	decision := "Résultats insuffisants"
	if b.Passed() {
		decision = "Résultats satisfaisants"
	}
	pdf.CellFormat(0, 7, tr("Appréciation : "+decision), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Seuil de réussite : %s / %.0f", helper.FormatScore(b.PassMark), constants.GradeScale)), "", 1, "L", false, 0, "")

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
