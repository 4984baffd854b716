// Package aggregation menghitung rata-rata nilai, peringkat kelas dan tingkat
// kehadiran dari baris-baris yang sudah diambil dari database.
package aggregation

import (
	"math"

	"github.com/google/uuid"

	"schoolku_backend/internals/constants"
)

// GradeRow adalah satu nilai mentah (valeur / sur).
type GradeRow struct {
	StudentID uuid.UUID
	SubjectID uuid.UUID
	Value     float64
	OutOf     float64
}

// SubjectInfo membawa bobot (coefficient) sebuah mata pelajaran.
type SubjectInfo struct {
	ID          uuid.UUID
	Code        string
	Name        string
	Coefficient float64
}

type SubjectAverage struct {
	SubjectID   uuid.UUID
	Code        string
	Name        string
	Coefficient float64
	Average     float64
	GradeCount  int
}

// Graded true jika ada minimal satu nilai untuk mapel ini.
func (s SubjectAverage) Graded() bool { return s.GradeCount > 0 }

// Rescale mengubah value/outOf ke skala 20. ok=false jika penyebut <= 0.
func Rescale(value, outOf float64) (float64, bool) {
	if outOf <= 0 {
		return 0, false
	}
	return value / outOf * constants.GradeScale, true
}

// SubjectAverages menghitung rata-rata per mapel untuk satu siswa.
// Urutan hasil mengikuti subjects; mapel yang punya nilai tapi tidak ada di
// subjects ditambahkan di akhir dengan coefficient 1.
func SubjectAverages(grades []GradeRow, subjects []SubjectInfo) []SubjectAverage {
	type acc struct {
		sum float64
		n   int
	}
	sums := make(map[uuid.UUID]*acc, len(subjects))
	var extra []uuid.UUID

	known := make(map[uuid.UUID]bool, len(subjects))
	for _, s := range subjects {
		known[s.ID] = true
	}

	for _, g := range grades {
		v, ok := Rescale(g.Value, g.OutOf)
		if !ok {
			continue
		}
		a, exists := sums[g.SubjectID]
		if !exists {
			a = &acc{}
			sums[g.SubjectID] = a
			if !known[g.SubjectID] {
				extra = append(extra, g.SubjectID)
			}
		}
		a.sum += v
		a.n++
	}

	out := make([]SubjectAverage, 0, len(subjects)+len(extra))
	for _, s := range subjects {
		row := SubjectAverage{
			SubjectID:   s.ID,
			Code:        s.Code,
			Name:        s.Name,
			Coefficient: s.Coefficient,
		}
		if a, ok := sums[s.ID]; ok && a.n > 0 {
			row.Average = a.sum / float64(a.n)
			row.GradeCount = a.n
		}
		out = append(out, row)
	}
	for _, id := range extra {
		a := sums[id]
		out = append(out, SubjectAverage{
			SubjectID:   id,
			Coefficient: 1,
			Average:     a.sum / float64(a.n),
			GradeCount:  a.n,
		})
	}
	return out
}

// OverallAverage = Σ(avg × coef) / Σ(coef), hanya mapel yang sudah dinilai.
// Tanpa mapel bernilai hasilnya 0.
func OverallAverage(avgs []SubjectAverage) float64 {
	var num, den float64
	for _, a := range avgs {
		if !a.Graded() || a.Coefficient <= 0 {
			continue
		}
		num += a.Average * a.Coefficient
		den += a.Coefficient
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// StudentAverage = OverallAverage(SubjectAverages(...)).
func StudentAverage(grades []GradeRow, subjects []SubjectInfo) float64 {
	return OverallAverage(SubjectAverages(grades, subjects))
}

// Round2 membulatkan ke dua desimal untuk tampilan.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
