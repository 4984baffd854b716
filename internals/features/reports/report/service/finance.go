package service

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	feeService "schoolku_backend/internals/features/finance/fees/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

type TypeLine struct {
	FeeType  string
	Expected float64
	Paid     float64
}

func (l TypeLine) Rate() float64 {
	if l.Expected <= 0 {
		return 0
	}
	return l.Paid * 100 / l.Expected
}

type ClassLine struct {
	ClassName string  `gorm:"column:class_name"`
	Paid      float64 `gorm:"column:paid"`
	Payments  int64   `gorm:"column:payments"`
}

type MonthLine struct {
	Month int
	Label string
	Paid  float64
}

type Finance struct {
	Year         int
	AcademicYear string
	ByType       []TypeLine
	ByClass      []ClassLine
	ByMonth      []MonthLine
	TotalPaid    float64
	TotalDue     float64
}

type typeMonthRow struct {
	FeeType string  `gorm:"column:fee_type"`
	Month   int     `gorm:"column:month"`
	Paid    float64 `gorm:"column:paid"`
}

// MergeTypes menggabungkan montant attendu per type dengan yang sudah dibayar.
// Urutan mengikuti FeeTypes; type di luar daftar ditaruh di akhir (alfabetis).
func MergeTypes(expected, paid map[string]float64) []TypeLine {
	seen := map[string]bool{}
	var out []TypeLine
	for _, t := range constants.FeeTypes {
		if expected[t] == 0 && paid[t] == 0 {
			continue
		}
		seen[t] = true
		out = append(out, TypeLine{FeeType: t, Expected: expected[t], Paid: paid[t]})
	}
	var extra []string
	for _, m := range []map[string]float64{expected, paid} {
		for t := range m {
			if !seen[t] {
				seen[t] = true
				extra = append(extra, t)
			}
		}
	}
	sort.Strings(extra)
	for _, t := range extra {
		out = append(out, TypeLine{FeeType: t, Expected: expected[t], Paid: paid[t]})
	}
	return out
}

// MonthSeries: 12 bulan selalu ada, bulan kosong bernilai 0.
func MonthSeries(paid map[int]float64) []MonthLine {
	out := make([]MonthLine, 12)
	for m := 1; m <= 12; m++ {
		out[m-1] = MonthLine{Month: m, Label: helper.MonthName(m), Paid: paid[m]}
	}
	return out
}

// LoadFinance: paiements "paid" selama tahun kalender year; montant attendu dari
// frais tahun ajaran academicYear.
func LoadFinance(ctx context.Context, db *gorm.DB, year int, academicYear string) (*Finance, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, dbtime.SchoolLocation())
	to := from.AddDate(1, 0, 0)

	expected, err := feeService.TotalsByType(ctx, db, academicYear)
	if err != nil {
		return nil, err
	}

	var rows []typeMonthRow
	if err := db.WithContext(ctx).Table("payments p").
		Select("COALESCE(f.fee_type, 'autre') AS fee_type, EXTRACT(MONTH FROM p.payment_date)::int AS month, SUM(p.payment_amount) AS paid").
		Joins("LEFT JOIN fees f ON f.fee_id = p.payment_fee_id").
		Where("p.payment_status = ? AND p.payment_date >= ? AND p.payment_date < ?",
			constants.PaymentPaid, from.Format(helper.DateLayout), to.Format(helper.DateLayout)).
		Group("1, 2").Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "paid by type and month")
	}

	paidByType := map[string]float64{}
	paidByMonth := map[int]float64{}
	var total float64
	for _, r := range rows {
		paidByType[r.FeeType] += r.Paid
		paidByMonth[r.Month] += r.Paid
		total += r.Paid
	}

	var byClass []ClassLine
	if err := db.WithContext(ctx).Table("payments p").
		Select("c.class_name, SUM(p.payment_amount) AS paid, COUNT(*) AS payments").
		Joins("JOIN students s ON s.student_id = p.payment_student_id").
		Joins("JOIN classes c ON c.class_id = s.student_class_id").
		Where("p.payment_status = ? AND p.payment_date >= ? AND p.payment_date < ?",
			constants.PaymentPaid, from.Format(helper.DateLayout), to.Format(helper.DateLayout)).
		Group("c.class_name").Order("paid DESC").Scan(&byClass).Error; err != nil {
		return nil, errors.Wrap(err, "paid by class")
	}

	var due float64
	for _, v := range expected {
		due += v
	}
	return &Finance{
		Year:         year,
		AcademicYear: academicYear,
		ByType:       MergeTypes(expected, paidByType),
		ByClass:      byClass,
		ByMonth:      MonthSeries(paidByMonth),
		TotalPaid:    total,
		TotalDue:     due,
	}, nil
}
