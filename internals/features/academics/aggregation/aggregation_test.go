package aggregation

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/constants"
)

var (
	mathSubj    = SubjectInfo{ID: uuid.New(), Code: "MATH", Name: "Mathématiques", Coefficient: 2}
	frenchSubj  = SubjectInfo{ID: uuid.New(), Code: "FR", Name: "Français", Coefficient: 1}
	scienceSubj = SubjectInfo{ID: uuid.New(), Code: "SCI", Name: "Sciences", Coefficient: 3}
)

func TestRescale(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		outOf  float64
		want   float64
		wantOK bool
	}{
		{"sur 20", 15, 20, 15, true},
		{"sur 10", 7, 10, 14, true},
		{"sur 100", 55, 100, 11, true},
		{"above denominator kept", 25, 20, 25, true},
		{"zero denominator", 5, 0, 0, false},
		{"negative denominator", 5, -10, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Rescale(tt.value, tt.outOf)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSubjectAverages_SingleGrade(t *testing.T) {
	sid := uuid.New()
	avgs := SubjectAverages([]GradeRow{{StudentID: sid, SubjectID: mathSubj.ID, Value: 15, OutOf: 20}}, []SubjectInfo{mathSubj})

	require.Len(t, avgs, 1)
	assert.InDelta(t, 15.0, avgs[0].Average, 1e-9)
	assert.Equal(t, 1, avgs[0].GradeCount)
}

func TestSubjectAverages_MeanOfRescaled(t *testing.T) {
	sid := uuid.New()
	grades := []GradeRow{
		{StudentID: sid, SubjectID: mathSubj.ID, Value: 8, OutOf: 10},  // 16
		{StudentID: sid, SubjectID: mathSubj.ID, Value: 30, OutOf: 50}, // 12
		{StudentID: sid, SubjectID: mathSubj.ID, Value: 17, OutOf: 20}, // 17
		{StudentID: sid, SubjectID: mathSubj.ID, Value: 3, OutOf: 0},   // skipped
	}
	avgs := SubjectAverages(grades, []SubjectInfo{mathSubj, frenchSubj})

	require.Len(t, avgs, 2)
	assert.InDelta(t, 15.0, avgs[0].Average, 1e-9)
	assert.Equal(t, 3, avgs[0].GradeCount)
	assert.False(t, avgs[1].Graded())
}

func TestSubjectAverages_UnknownSubjectGetsCoefficientOne(t *testing.T) {
	sid := uuid.New()
	other := uuid.New()
	avgs := SubjectAverages([]GradeRow{{StudentID: sid, SubjectID: other, Value: 10, OutOf: 20}}, []SubjectInfo{mathSubj})

	require.Len(t, avgs, 2)
	assert.Equal(t, other, avgs[1].SubjectID)
	assert.Equal(t, 1.0, avgs[1].Coefficient)
}

func TestOverallAverage_ExcludesUngradedSubjects(t *testing.T) {
	sid := uuid.New()
	m := mathSubj
	f := frenchSubj
	f.Coefficient = 2
	grades := []GradeRow{
		{StudentID: sid, SubjectID: m.ID, Value: 14, OutOf: 20},
		{StudentID: sid, SubjectID: f.ID, Value: 10, OutOf: 20},
	}

	got := StudentAverage(grades, []SubjectInfo{m, f, scienceSubj})

	// Science (coef 3) tidak punya nilai -> tidak masuk pembilang maupun penyebut.
	assert.InDelta(t, 12.0, got, 1e-9)
}

func TestOverallAverage_NoGrades(t *testing.T) {
	assert.Equal(t, 0.0, StudentAverage(nil, []SubjectInfo{mathSubj, frenchSubj}))
	assert.Equal(t, 0.0, OverallAverage(nil))
}

func TestEndToEndScenario(t *testing.T) {
	s := uuid.New()
	grades := []GradeRow{
		{StudentID: s, SubjectID: mathSubj.ID, Value: 18, OutOf: 20},
		{StudentID: s, SubjectID: mathSubj.ID, Value: 14, OutOf: 20},
		{StudentID: s, SubjectID: frenchSubj.ID, Value: 12, OutOf: 20},
	}
	avgs := SubjectAverages(grades, []SubjectInfo{mathSubj, frenchSubj})

	require.Len(t, avgs, 2)
	assert.InDelta(t, 16.0, avgs[0].Average, 1e-9)
	assert.InDelta(t, 12.0, avgs[1].Average, 1e-9)
	assert.Equal(t, 14.67, Round2(OverallAverage(avgs)))
}

func classFixture() ([]Candidate, []GradeRow) {
	a := Candidate{StudentID: uuid.New(), SortKey: "ECL-2025-0001", Label: "A"}
	b := Candidate{StudentID: uuid.New(), SortKey: "ECL-2025-0002", Label: "B"}
	c := Candidate{StudentID: uuid.New(), SortKey: "ECL-2025-0003", Label: "C"}
	d := Candidate{StudentID: uuid.New(), SortKey: "ECL-2025-0004", Label: "D"}

	grades := []GradeRow{
		{StudentID: a.StudentID, SubjectID: mathSubj.ID, Value: 12, OutOf: 20},
		{StudentID: a.StudentID, SubjectID: frenchSubj.ID, Value: 12, OutOf: 20},
		{StudentID: b.StudentID, SubjectID: mathSubj.ID, Value: 18, OutOf: 20},
		{StudentID: b.StudentID, SubjectID: frenchSubj.ID, Value: 9, OutOf: 20},
		{StudentID: c.StudentID, SubjectID: mathSubj.ID, Value: 6, OutOf: 10},
		{StudentID: c.StudentID, SubjectID: frenchSubj.ID, Value: 12, OutOf: 20},
		// d tidak punya nilai
	}
	return []Candidate{a, b, c, d}, grades
}

func TestRankClass_WeightedAndTies(t *testing.T) {
	students, grades := classFixture()
	ranking := RankClass(students, grades, []SubjectInfo{mathSubj, frenchSubj})

	require.Len(t, ranking, 4)
	// b: (18*2+9)/3 = 15 ; a dan c: 12 ; d: 0
	assert.Equal(t, students[1].StudentID, ranking[0].StudentID)
	assert.Equal(t, 1, ranking[0].Rank)
	assert.Equal(t, students[0].StudentID, ranking[1].StudentID)
	assert.Equal(t, 2, ranking[1].Rank)
	assert.Equal(t, students[2].StudentID, ranking[2].StudentID)
	assert.Equal(t, 2, ranking[2].Rank)
	assert.Equal(t, students[3].StudentID, ranking[3].StudentID)
	assert.Equal(t, 4, ranking[3].Rank)

	rank, size, ok := RankOf(ranking, students[2].StudentID)
	assert.True(t, ok)
	assert.Equal(t, 2, rank)
	assert.Equal(t, 4, size)

	_, _, ok = RankOf(ranking, uuid.New())
	assert.False(t, ok)
}

func TestRankClass_OrderIndependent(t *testing.T) {
	students, grades := classFixture()
	subjects := []SubjectInfo{mathSubj, frenchSubj}
	base := RankClass(students, grades, subjects)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		s := append([]Candidate(nil), students...)
		g := append([]GradeRow(nil), grades...)
		r.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		r.Shuffle(len(g), func(i, j int) { g[i], g[j] = g[j], g[i] })

		got := RankClass(s, g, subjects)
		require.Len(t, got, len(base))
		for k := range base {
			assert.Equal(t, base[k].StudentID, got[k].StudentID)
			assert.Equal(t, base[k].Rank, got[k].Rank)
		}
	}
}

func TestRankClass_DuplicateCandidates(t *testing.T) {
	students, grades := classFixture()
	ranking := RankClass(append(students, students[0]), grades, []SubjectInfo{mathSubj, frenchSubj})
	assert.Len(t, ranking, 4)
}

func TestRankedGraded(t *testing.T) {
	students, grades := classFixture()
	ranking := RankClass(students, grades, []SubjectInfo{mathSubj, frenchSubj})
	require.Len(t, ranking, 4)
	assert.True(t, ranking[0].Graded())
	assert.False(t, ranking[3].Graded())
	assert.Equal(t, 3, GradedCount(ranking))
	assert.Equal(t, 0, GradedCount(nil))
}

func TestClassAverageAndPassRate(t *testing.T) {
	students, grades := classFixture()
	ranking := RankClass(students, grades, []SubjectInfo{mathSubj, frenchSubj})

	// d tidak dinilai -> tidak dihitung
	assert.InDelta(t, 13.0, ClassAverage(ranking), 1e-9)
	assert.InDelta(t, 100.0, PassRate(ranking, constants.PassMark), 1e-9)
	assert.InDelta(t, 100.0/3, PassRate(ranking, 13), 1e-9)
	assert.Equal(t, 0.0, ClassAverage(nil))
	assert.Equal(t, 0.0, PassRate(nil, constants.PassMark))
}

func TestSummarizeAttendance(t *testing.T) {
	statuses := make([]string, 0, 10)
	for i := 0; i < 8; i++ {
		statuses = append(statuses, constants.AttendancePresent)
	}
	statuses = append(statuses, constants.AttendanceAbsent, constants.AttendanceAbsent)

	s := SummarizeAttendance(statuses)
	assert.Equal(t, 10, s.Total)
	assert.Equal(t, 8, s.Present)
	assert.Equal(t, 2, s.Absent)
	assert.InDelta(t, 80.0, s.Rate, 1e-9)
	assert.InDelta(t, 20.0, s.AbsenceRate, 1e-9)
}

func TestSummarizeAttendance_LateAndExcusedCountAsAttended(t *testing.T) {
	s := SummarizeAttendance([]string{
		constants.AttendancePresent,
		constants.AttendanceLate,
		constants.AttendanceExcused,
		constants.AttendanceAbsent,
	})
	assert.InDelta(t, 75.0, s.Rate, 1e-9)
	assert.InDelta(t, 25.0, s.AbsenceRate, 1e-9)
	assert.Equal(t, 1, s.Late)
	assert.Equal(t, 1, s.Excused)
}

func TestSummarizeAttendance_Empty(t *testing.T) {
	s := SummarizeAttendance(nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0.0, s.Rate)
	assert.Equal(t, 0.0, s.AbsenceRate)
}

func TestSummarizeByStudentAndTotals(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	rows := []AttendanceRow{
		{StudentID: a, Status: constants.AttendancePresent},
		{StudentID: a, Status: constants.AttendanceAbsent},
		{StudentID: b, Status: constants.AttendanceLate},
	}
	per := SummarizeByStudent(rows)
	require.Len(t, per, 2)
	assert.InDelta(t, 50.0, per[a].Rate, 1e-9)
	assert.InDelta(t, 100.0, per[b].Rate, 1e-9)

	total := Totals(per[a], per[b])
	assert.Equal(t, 3, total.Total)
	assert.InDelta(t, 200.0/3, total.Rate, 1e-9)
}

func TestBuildBulletin(t *testing.T) {
	students, grades := classFixture()
	b := BuildBulletin(students[0].StudentID, students, grades, []SubjectInfo{mathSubj, frenchSubj},
		[]string{constants.AttendancePresent, constants.AttendanceAbsent})

	assert.InDelta(t, 12.0, b.Average, 1e-9)
	assert.Equal(t, 2, b.Rank)
	assert.Equal(t, 4, b.ClassSize)
	assert.Equal(t, 3, b.GradedSize)
	assert.InDelta(t, 13.0, b.ClassAvg, 1e-9)
	assert.InDelta(t, 50.0, b.Attendance.Rate, 1e-9)
	require.Len(t, b.Subjects, 2)
}
