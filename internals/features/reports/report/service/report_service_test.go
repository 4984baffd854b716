package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestMergeTypes(t *testing.T) {
	lines := MergeTypes(
		map[string]float64{"inscription": 100, "scolarite": 500},
		map[string]float64{"scolarite": 250, "zzz": 10},
	)
	require.Len(t, lines, 3)
	assert.Equal(t, "scolarite", lines[0].FeeType)
	assert.InDelta(t, 50.0, lines[0].Rate(), 0.001)
	assert.Equal(t, "inscription", lines[1].FeeType)
	assert.Equal(t, 0.0, lines[1].Paid)
	assert.Equal(t, "zzz", lines[2].FeeType)
	assert.Equal(t, 0.0, lines[2].Rate())
}

func TestMonthSeries(t *testing.T) {
	s := MonthSeries(map[int]float64{3: 120, 12: 5})
	require.Len(t, s, 12)
	assert.Equal(t, 1, s[0].Month)
	assert.Equal(t, 0.0, s[0].Paid)
	assert.Equal(t, 120.0, s[2].Paid)
	assert.Equal(t, 5.0, s[11].Paid)
}

func TestClassHeadcountFillRate(t *testing.T) {
	assert.Equal(t, 0.0, ClassHeadcount{Students: 3}.FillRate())
	assert.InDelta(t, 75.0, ClassHeadcount{Capacity: 40, Students: 30}.FillRate(), 0.001)
}

func TestFinanceWorkbook(t *testing.T) {
	fin := &Finance{
		Year:         2025,
		AcademicYear: "2024-2025",
		ByType:       MergeTypes(map[string]float64{"scolarite": 1000}, map[string]float64{"scolarite": 400}),
		ByClass:      []ClassLine{{ClassName: "6e A", Paid: 400, Payments: 2}},
		ByMonth:      MonthSeries(map[int]float64{1: 400}),
		TotalPaid:    400,
		TotalDue:     1000,
	}
	data, err := FinanceWorkbook(fin)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Par type", "Par classe", "Par mois"}, f.GetSheetList())

	v, err := f.GetCellValue("Par classe", "A2")
	require.NoError(t, err)
	assert.Equal(t, "6e A", v)

	rows, err := f.GetRows("Par mois")
	require.NoError(t, err)
	assert.Len(t, rows, 13)
}
