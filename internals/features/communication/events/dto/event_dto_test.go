package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/communication/events/model"
	helper "schoolku_backend/internals/helpers"
)

func TestTypeColor(t *testing.T) {
	assert.Equal(t, "#4285F4", TypeColor("academique"))
	assert.Equal(t, "#9C27B0", TypeColor("religieux"))
	assert.Equal(t, "#757575", TypeColor("inconnu"))
}

func TestToCalendarAllDay(t *testing.T) {
	start := time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 22, 0, 0, 0, 0, time.UTC)
	ev := ToCalendar(model.EventModel{
		EventID: uuid.New(), EventTitle: "Fête", EventType: "culturel",
		EventStart: start, EventEnd: &end, EventAllDay: true,
	})
	assert.Equal(t, "2024-12-20", ev.Start)
	assert.Equal(t, "2024-12-23", ev.End)
	assert.Equal(t, "#FBBC05", ev.Color)
	assert.True(t, ev.AllDay)
}

func TestToCalendarTimedWithoutEnd(t *testing.T) {
	start := time.Date(2024, 10, 3, 14, 30, 0, 0, time.UTC)
	ev := ToCalendar(model.EventModel{EventID: uuid.New(), EventTitle: "Match", EventType: "sportif", EventStart: start})
	assert.Equal(t, "2024-10-03T14:30:00Z", ev.Start)
	assert.Empty(t, ev.End)
	assert.Equal(t, "/evenements/"+ev.ID.String(), ev.URL)
}

func TestEventFormTimes(t *testing.T) {
	f := EventForm{Title: "Réunion", Start: "2024-10-03T18:00", End: "2024-10-03T17:00"}
	f.Normalize()
	_, _, err := f.Times()
	_, ok := helper.IsValidationError(err)
	assert.True(t, ok)

	f.End = ""
	start, end, err := f.Times()
	require.NoError(t, err)
	assert.Nil(t, end)
	assert.Equal(t, 18, start.Hour())
	assert.Equal(t, "autre", f.Type)
}

func TestParseCalendarBound(t *testing.T) {
	got, err := ParseCalendarBound("2024-09-01T00:00:00+02:00")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2024, got.Year())

	got, err = ParseCalendarBound("2024-09-30")
	require.NoError(t, err)
	assert.Equal(t, time.September, got.Month())

	got, err = ParseCalendarBound("")
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseCalendarBound("demain")
	assert.Error(t, err)
}
