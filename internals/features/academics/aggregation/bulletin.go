package aggregation

import "github.com/google/uuid"

// Bulletin adalah ringkasan rapor satu siswa untuk satu trimestre.
type Bulletin struct {
	StudentID  uuid.UUID
	Subjects   []SubjectAverage
	Average    float64
	Rank       int
	ClassSize  int
	GradedSize int
	ClassAvg   float64
	Attendance AttendanceSummary
}

// BuildBulletin memakai nilai seluruh kelas (satu trimestre) untuk menghitung
// rata-rata siswa sekaligus peringkatnya.
func BuildBulletin(studentID uuid.UUID, classmates []Candidate, classGrades []GradeRow, subjects []SubjectInfo, attendance []string) Bulletin {
	own := make([]GradeRow, 0, len(classGrades))
	for _, g := range classGrades {
		if g.StudentID == studentID {
			own = append(own, g)
		}
	}
	subs := SubjectAverages(own, subjects)

	ranking := RankClass(classmates, classGrades, subjects)
	rank, size, _ := RankOf(ranking, studentID)

	return Bulletin{
		StudentID:  studentID,
		Subjects:   subs,
		Average:    OverallAverage(subs),
		Rank:       rank,
		ClassSize:  size,
		GradedSize: GradedCount(ranking),
		ClassAvg:   ClassAverage(ranking),
		Attendance: SummarizeAttendance(attendance),
	}
}
