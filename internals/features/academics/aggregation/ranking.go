package aggregation

import (
	"sort"

	"github.com/google/uuid"
)

// Candidate adalah siswa di kelas yang ikut diperingkat.
// SortKey (biasanya matricule) dipakai sebagai urutan kedua saat rata-rata sama.
type Candidate struct {
	StudentID uuid.UUID
	SortKey   string
	Label     string
}

type Ranked struct {
	StudentID uuid.UUID
	SortKey   string
	Label     string
	Average   float64
	Subjects  []SubjectAverage
	Rank      int
}

// RankClass mengurutkan siswa berdasarkan rata-rata berbobot (sama dengan
// OverallAverage), menurun. Rata-rata sama berbagi peringkat (1,2,2,4).
// Hasil tidak bergantung pada urutan grades maupun students.
func RankClass(students []Candidate, grades []GradeRow, subjects []SubjectInfo) []Ranked {
	byStudent := make(map[uuid.UUID][]GradeRow, len(students))
	for _, g := range grades {
		byStudent[g.StudentID] = append(byStudent[g.StudentID], g)
	}

	out := make([]Ranked, 0, len(students))
	seen := make(map[uuid.UUID]bool, len(students))
	for _, s := range students {
		if seen[s.StudentID] {
			continue
		}
		seen[s.StudentID] = true
		subs := SubjectAverages(byStudent[s.StudentID], subjects)
		out = append(out, Ranked{
			StudentID: s.StudentID,
			SortKey:   s.SortKey,
			Label:     s.Label,
			Average:   OverallAverage(subs),
			Subjects:  subs,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		ai, aj := Round2(out[i].Average), Round2(out[j].Average)
		if ai != aj {
			return ai > aj
		}
		if out[i].SortKey != out[j].SortKey {
			return out[i].SortKey < out[j].SortKey
		}
		return out[i].StudentID.String() < out[j].StudentID.String()
	})

	for i := range out {
		if i > 0 && Round2(out[i].Average) == Round2(out[i-1].Average) {
			out[i].Rank = out[i-1].Rank
			continue
		}
		out[i].Rank = i + 1
	}
	return out
}

// RankOf mengembalikan peringkat (1-based) dan jumlah siswa di kelas.
func RankOf(ranking []Ranked, studentID uuid.UUID) (rank, size int, ok bool) {
	for _, r := range ranking {
		if r.StudentID == studentID {
			return r.Rank, len(ranking), true
		}
	}
	return 0, len(ranking), false
}

// GradedCount jumlah siswa yang punya minimal satu nilai (effectif noté).
func GradedCount(ranking []Ranked) int {
	n := 0
	for _, r := range ranking {
		if r.Graded() {
			n++
		}
	}
	return n
}

// ClassAverage adalah rata-rata dari rata-rata siswa yang punya nilai.
func ClassAverage(ranking []Ranked) float64 {
	var sum float64
	n := 0
	for _, r := range ranking {
		if !hasGrades(r.Subjects) {
			continue
		}
		sum += r.Average
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// PassRate persentase siswa bernilai dengan rata-rata >= passMark.
func PassRate(ranking []Ranked, passMark float64) float64 {
	graded, passed := 0, 0
	for _, r := range ranking {
		if !hasGrades(r.Subjects) {
			continue
		}
		graded++
		if r.Average >= passMark {
			passed++
		}
	}
	if graded == 0 {
		return 0
	}
	return float64(passed) / float64(graded) * 100
}

func hasGrades(subs []SubjectAverage) bool {
	for _, s := range subs {
		if s.Graded() {
			return true
		}
	}
	return false
}

func (r Ranked) Graded() bool { return hasGrades(r.Subjects) }
