package constants

import (
	"strconv"
	"time"
)

// Status presensi
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "retard"
	AttendanceExcused = "excuse"
)

var AttendanceStatuses = []string{
	AttendancePresent,
	AttendanceAbsent,
	AttendanceLate,
	AttendanceExcused,
}

// Kategori nilai
const (
	GradeHomework = "devoir"
	GradeExam     = "examen"
	GradeProject  = "projet"
)

var GradeCategories = []string{GradeHomework, GradeExam, GradeProject}

const (
	// GradeScale adalah skala nilai rapor (sur 20).
	GradeScale = 20.0
	// PassMark batas moyenne untuk dianggap lulus.
	PassMark = 10.0
	MinTerm  = 1
	MaxTerm  = 3
)

func IsAttendanceStatus(s string) bool {
	for _, v := range AttendanceStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func IsGradeCategory(s string) bool {
	for _, v := range GradeCategories {
		if v == s {
			return true
		}
	}
	return false
}

var attendanceLabels = map[string]string{
	AttendancePresent: "Présent",
	AttendanceAbsent:  "Absent",
	AttendanceLate:    "En retard",
	AttendanceExcused: "Excusé",
}

func AttendanceLabel(s string) string {
	if l, ok := attendanceLabels[s]; ok {
		return l
	}
	return s
}

// TermRange: periode trimestre dalam tahun ajaran "2024-2025".
// T1 sept–déc, T2 janv–mars, T3 avr–juil. to bersifat eksklusif.
func TermRange(academicYear string, term int, loc *time.Location) (from, to time.Time, ok bool) {
	if len(academicYear) != 9 {
		return from, to, false
	}
	start, err := strconv.Atoi(academicYear[:4])
	if err != nil {
		return from, to, false
	}
	if loc == nil {
		loc = time.Local
	}
	d := func(y int, m time.Month) time.Time { return time.Date(y, m, 1, 0, 0, 0, 0, loc) }
	switch term {
	case 1:
		return d(start, time.September), d(start+1, time.January), true
	case 2:
		return d(start+1, time.January), d(start+1, time.April), true
	case 3:
		return d(start+1, time.April), d(start+1, time.August), true
	}
	return from, to, false
}

func IsTerm(t int) bool { return t >= MinTerm && t <= MaxTerm }
