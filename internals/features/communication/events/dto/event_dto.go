package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/communication/events/model"
	helper "schoolku_backend/internals/helpers"
)

type EventForm struct {
	Title       string `form:"event_title" validate:"required,notblank,max=200" label:"Titre"`
	Description string `form:"event_description" validate:"omitempty,max=5000" label:"Description"`
	Type        string `form:"event_type" validate:"required,oneof=academique sportif culturel religieux administratif autre" label:"Type"`
	Start       string `form:"event_start" validate:"required" label:"Début"`
	End         string `form:"event_end" label:"Fin"`
	AllDay      bool   `form:"-"`
	Location    string `form:"event_location" validate:"omitempty,max=200" label:"Lieu"`
}

func (f *EventForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Type = strings.TrimSpace(f.Type)
	f.Start = strings.TrimSpace(f.Start)
	f.End = strings.TrimSpace(f.End)
	f.Location = strings.TrimSpace(f.Location)
	if f.Type == "" {
		f.Type = "autre"
	}
}

// Times mem-parse start/end; end sebelum start → error validasi.
func (f *EventForm) Times() (time.Time, *time.Time, error) {
	start, err := helper.ParseDateTime(f.Start)
	if err != nil {
		return time.Time{}, nil, helper.NewValidationError("Date de début invalide.")
	}
	if f.End == "" {
		return start, nil, nil
	}
	end, err := helper.ParseDateTime(f.End)
	if err != nil {
		return time.Time{}, nil, helper.NewValidationError("Date de fin invalide.")
	}
	if end.Before(start) {
		return time.Time{}, nil, helper.NewValidationError("La date de fin doit être postérieure au début.")
	}
	return start, &end, nil
}

func (f *EventForm) ApplyTo(m *model.EventModel, start time.Time, end *time.Time) {
	m.EventTitle = f.Title
	m.EventDescription = helper.TrimPtr(f.Description)
	m.EventType = f.Type
	m.EventStart = start
	m.EventEnd = end
	m.EventAllDay = f.AllDay
	m.EventLocation = helper.TrimPtr(f.Location)
}

func FromModel(m *model.EventModel) EventForm {
	f := EventForm{
		Title:  m.EventTitle,
		Type:   m.EventType,
		Start:  m.EventStart.Format(helper.DateTimeLayout),
		AllDay: m.EventAllDay,
	}
	if m.EventDescription != nil {
		f.Description = *m.EventDescription
	}
	if m.EventEnd != nil {
		f.End = m.EventEnd.Format(helper.DateTimeLayout)
	}
	if m.EventLocation != nil {
		f.Location = *m.EventLocation
	}
	return f
}

/* =========================
   FullCalendar
   ========================= */

var typeColors = map[string]string{
	"academique":    "#4285F4",
	"sportif":       "#34A853",
	"culturel":      "#FBBC05",
	"religieux":     "#9C27B0",
	"administratif": "#EA4335",
	"autre":         "#757575",
}

func TypeColor(t string) string {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return typeColors["autre"]
}

type CalendarProps struct {
	Type        string  `json:"type"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
}

type CalendarEvent struct {
	ID            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Start         string        `json:"start"`
	End           string        `json:"end,omitempty"`
	AllDay        bool          `json:"allDay"`
	Color         string        `json:"color"`
	URL           string        `json:"url"`
	ExtendedProps CalendarProps `json:"extendedProps"`
}

// ToCalendar: all-day memakai tanggal saja dengan end eksklusif (+1 hari).
func ToCalendar(m model.EventModel) CalendarEvent {
	ev := CalendarEvent{
		ID:     m.EventID,
		Title:  m.EventTitle,
		AllDay: m.EventAllDay,
		Color:  TypeColor(m.EventType),
		URL:    "/evenements/" + m.EventID.String(),
		ExtendedProps: CalendarProps{
			Type:        m.EventType,
			Location:    m.EventLocation,
			Description: m.EventDescription,
		},
	}
	if m.EventAllDay {
		ev.Start = m.EventStart.Format(helper.DateLayout)
		ev.End = m.EndOrStart().AddDate(0, 0, 1).Format(helper.DateLayout)
		return ev
	}
	ev.Start = m.EventStart.Format(time.RFC3339)
	if m.EventEnd != nil {
		ev.End = m.EventEnd.Format(time.RFC3339)
	}
	return ev
}

func ToCalendarList(list []model.EventModel) []CalendarEvent {
	out := make([]CalendarEvent, 0, len(list))
	for _, m := range list {
		out = append(out, ToCalendar(m))
	}
	return out
}

// ParseCalendarBound menerima ISO-8601 dari FullCalendar atau tanggal saja.
func ParseCalendarBound(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return &t, nil
	}
	return helper.ParseDatePtr(s)
}
