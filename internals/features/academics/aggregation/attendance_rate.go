package aggregation

import (
	"github.com/google/uuid"

	"schoolku_backend/internals/constants"
)

type AttendanceRow struct {
	StudentID uuid.UUID
	Status    string
}

type AttendanceSummary struct {
	Total       int
	Present     int
	Absent      int
	Late        int
	Excused     int
	Rate        float64
	AbsenceRate float64
}

func (s *AttendanceSummary) add(status string) {
	s.Total++
	switch status {
	case constants.AttendancePresent:
		s.Present++
	case constants.AttendanceAbsent:
		s.Absent++
	case constants.AttendanceLate:
		s.Late++
	case constants.AttendanceExcused:
		s.Excused++
	}
}

// finalize: retard & excusé dihitung hadir, hanya absent yang mengurangi.
func (s *AttendanceSummary) finalize() {
	if s.Total == 0 {
		s.Rate, s.AbsenceRate = 0, 0
		return
	}
	t := float64(s.Total)
	s.Rate = float64(s.Present+s.Late+s.Excused) / t * 100
	s.AbsenceRate = float64(s.Absent) / t * 100
}

// SummarizeAttendance menghitung jumlah per status dan tingkat kehadiran.
func SummarizeAttendance(statuses []string) AttendanceSummary {
	var s AttendanceSummary
	for _, st := range statuses {
		s.add(st)
	}
	s.finalize()
	return s
}

// SummarizeByStudent sama dengan SummarizeAttendance, dipecah per siswa.
func SummarizeByStudent(rows []AttendanceRow) map[uuid.UUID]AttendanceSummary {
	acc := make(map[uuid.UUID]*AttendanceSummary)
	for _, r := range rows {
		s, ok := acc[r.StudentID]
		if !ok {
			s = &AttendanceSummary{}
			acc[r.StudentID] = s
		}
		s.add(r.Status)
	}
	out := make(map[uuid.UUID]AttendanceSummary, len(acc))
	for id, s := range acc {
		s.finalize()
		out[id] = *s
	}
	return out
}

// Totals menjumlahkan beberapa ringkasan lalu menghitung ulang tingkatnya.
func Totals(parts ...AttendanceSummary) AttendanceSummary {
	var s AttendanceSummary
	for _, p := range parts {
		s.Total += p.Total
		s.Present += p.Present
		s.Absent += p.Absent
		s.Late += p.Late
		s.Excused += p.Excused
	}
	s.finalize()
	return s
}
