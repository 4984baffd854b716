package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(time.Date(2025, 2, 17, 13, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), end)

	start, end = MonthRange(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 1, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(a, time.Date(2025, 1, 2, 0, 10, 0, 0, time.UTC)))
	assert.Equal(t, 30, DaysBetween(a, a.AddDate(0, 0, 30)))
	assert.Equal(t, -2, DaysBetween(a, a.AddDate(0, 0, -2)))
}

func TestStartOfDay(t *testing.T) {
	got := StartOfDay(time.Date(2025, 5, 5, 18, 4, 3, 9, time.UTC))
	assert.Equal(t, time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC), got)
}
