package dto

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"schoolku_backend/internals/constants"
	helper "schoolku_backend/internals/helpers"
)

type EntryForm struct {
	ClassID   string `form:"class_id" validate:"required,uuid" label:"Classe"`
	SubjectID string `form:"subject_id" validate:"omitempty,uuid" label:"Cours"`
	Date      string `form:"date" validate:"required,datetime=2006-01-02" label:"Date"`
}

type Entry struct {
	StudentID uuid.UUID
	Status    string
	Comment   *string
}

type StudentLabel struct {
	ID   uuid.UUID
	Name string
}

func StatusKey(id uuid.UUID) string  { return "statut_" + id.String() }
func CommentKey(id uuid.UUID) string { return "commentaire_" + id.String() }

// ParseEntries: setiap élève kelas mendapat satu baris; status kosong → present.
func ParseEntries(students []StudentLabel, get func(string) string) ([]Entry, []string) {
	out := make([]Entry, 0, len(students))
	var errs []string
	for _, s := range students {
		status := strings.TrimSpace(get(StatusKey(s.ID)))
		if status == "" {
			status = constants.AttendancePresent
		}
		if !constants.IsAttendanceStatus(status) {
			errs = append(errs, fmt.Sprintf("%s : statut « %s » inconnu", s.Name, status))
			continue
		}
		out = append(out, Entry{StudentID: s.ID, Status: status, Comment: helper.TrimPtr(get(CommentKey(s.ID)))})
	}
	return out, errs
}

// ReportForm: filter rapport présence (semua opsional).
type ReportForm struct {
	StudentID string `query:"eleve_id"`
	ClassID   string `query:"classe_id"`
	SubjectID string `query:"cours_id"`
	From      string `query:"debut"`
	To        string `query:"fin"`
}
