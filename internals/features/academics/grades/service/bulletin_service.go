package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/academics/aggregation"
	attendanceService "schoolku_backend/internals/features/academics/attendance/service"
	"schoolku_backend/internals/features/academics/grades/model"
	classModel "schoolku_backend/internals/features/school/classes/model"
	classService "schoolku_backend/internals/features/school/classes/service"
	studentModel "schoolku_backend/internals/features/school/students/model"
	studentService "schoolku_backend/internals/features/school/students/service"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
	subjectService "schoolku_backend/internals/features/school/subjects/service"
	"schoolku_backend/internals/helpers/dbtime"
)

// ClassTermGrades: semua nilai satu kelas untuk satu trimestre.
func ClassTermGrades(ctx context.Context, db *gorm.DB, classID uuid.UUID, term int) ([]model.GradeModel, error) {
	var out []model.GradeModel
	err := db.WithContext(ctx).
		Joins("JOIN students s ON s.student_id = grades.grade_student_id").
		Where("s.student_class_id = ? AND grades.grade_term = ?", classID, term).
		Order("grades.grade_date").
		Find(&out).Error
	return out, errors.Wrap(err, "class term grades")
}

func toRows(grades []model.GradeModel) []aggregation.GradeRow {
	out := make([]aggregation.GradeRow, 0, len(grades))
	for _, g := range grades {
		out = append(out, aggregation.GradeRow{
			StudentID: g.GradeStudentID,
			SubjectID: g.GradeSubjectID,
			Value:     g.GradeValue,
			OutOf:     g.GradeOutOf,
		})
	}
	return out
}

func toCandidates(students []studentModel.StudentModel) []aggregation.Candidate {
	out := make([]aggregation.Candidate, 0, len(students))
	for _, s := range students {
		out = append(out, aggregation.Candidate{
			StudentID: s.StudentID,
			SortKey:   s.StudentMatricule,
			Label:     s.StudentLastName + " " + s.StudentFirstName,
		})
	}
	return out
}

// subjectInfos: mapel kelas + mapel lain yang kebetulan punya nilai (agar
// coefficient & nama tetap benar).
func subjectInfos(ctx context.Context, db *gorm.DB, classID uuid.UUID, grades []model.GradeModel) ([]aggregation.SubjectInfo, error) {
	subjects, err := subjectService.ForClass(ctx, db, classID)
	if err != nil {
		return nil, err
	}
	known := make(map[uuid.UUID]bool, len(subjects))
	for _, s := range subjects {
		known[s.SubjectID] = true
	}
	var missing []uuid.UUID
	for _, g := range grades {
		if !known[g.GradeSubjectID] {
			known[g.GradeSubjectID] = true
			missing = append(missing, g.GradeSubjectID)
		}
	}
	if len(missing) > 0 {
		var extra []subjectModel.SubjectModel
		if err := db.WithContext(ctx).Where("subject_id IN ?", missing).Order("subject_name").Find(&extra).Error; err != nil {
			return nil, errors.Wrap(err, "extra subjects")
		}
		subjects = append(subjects, extra...)
	}
	out := make([]aggregation.SubjectInfo, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, aggregation.SubjectInfo{
			ID:          s.SubjectID,
			Code:        s.SubjectCode,
			Name:        s.SubjectName,
			Coefficient: s.SubjectCoefficient,
		})
	}
	return out, nil
}

// classmates: élève aktif di kelas + siswa target (meski tidak aktif).
func classmates(ctx context.Context, db *gorm.DB, classID uuid.UUID, target *studentModel.StudentModel) ([]studentModel.StudentModel, error) {
	list, err := studentService.ForClass(ctx, db, classID)
	if err != nil {
		return nil, err
	}
	if target != nil {
		for _, s := range list {
			if s.StudentID == target.StudentID {
				return list, nil
			}
		}
		list = append(list, *target)
	}
	return list, nil
}

// Ranking: peringkat kelas untuk satu trimestre (rapport académique).
type Ranking struct {
	Class    *classModel.ClassModel
	Term     int
	Subjects []aggregation.SubjectInfo
	Rows     []aggregation.Ranked
	Average  float64
	PassRate float64
}

func ClassRanking(ctx context.Context, db *gorm.DB, classID uuid.UUID, term int) (*Ranking, error) {
	cls, err := classService.Get(ctx, db, classID)
	if err != nil {
		return nil, err
	}
	students, err := classmates(ctx, db, classID, nil)
	if err != nil {
		return nil, err
	}
	grades, err := ClassTermGrades(ctx, db, classID, term)
	if err != nil {
		return nil, err
	}
	subjects, err := subjectInfos(ctx, db, classID, grades)
	if err != nil {
		return nil, err
	}
	rows := aggregation.RankClass(toCandidates(students), toRows(grades), subjects)
	return &Ranking{
		Class:    cls,
		Term:     term,
		Subjects: subjects,
		Rows:     rows,
		Average:  aggregation.ClassAverage(rows),
		PassRate: aggregation.PassRate(rows, constants.PassMark),
	}, nil
}

// BulletinLine: satu mapel di rapor + nilai-nilai mentahnya.
type BulletinLine struct {
	aggregation.SubjectAverage
	Grades []model.GradeModel
}

type BulletinView struct {
	Student *studentModel.StudentRow
	Class   *classModel.ClassModel
	Term    int
	From    time.Time
	To      time.Time
	Lines   []BulletinLine
	aggregation.Bulletin
	PassMark float64
}

func (b BulletinView) Passed() bool { return b.Average >= b.PassMark }

// Bulletin: rata-rata per mapel, rata-rata umum, peringkat & kehadiran trimestre.
func Bulletin(ctx context.Context, db *gorm.DB, studentID uuid.UUID, term int) (*BulletinView, error) {
	row, err := studentService.GetRow(ctx, db, studentID)
	if err != nil {
		return nil, err
	}
	cls, err := classService.Get(ctx, db, row.StudentClassID)
	if err != nil {
		return nil, err
	}
	mates, err := classmates(ctx, db, cls.ClassID, &row.StudentModel)
	if err != nil {
		return nil, err
	}
	grades, err := ClassTermGrades(ctx, db, cls.ClassID, term)
	if err != nil {
		return nil, err
	}
	subjects, err := subjectInfos(ctx, db, cls.ClassID, grades)
	if err != nil {
		return nil, err
	}

	from, to, ok := constants.TermRange(cls.ClassAcademicYear, term, dbtime.SchoolLocation())
	var statuses []string
	if ok {
		last := to.AddDate(0, 0, -1)
		statuses, err = attendanceService.StatusesFor(ctx, db, studentID, &from, &last)
		if err != nil {
			return nil, err
		}
	}

	b := aggregation.BuildBulletin(studentID, toCandidates(mates), toRows(grades), subjects, statuses)

	own := map[uuid.UUID][]model.GradeModel{}
	for _, g := range grades {
		if g.GradeStudentID == studentID {
			own[g.GradeSubjectID] = append(own[g.GradeSubjectID], g)
		}
	}
	lines := make([]BulletinLine, 0, len(b.Subjects))
	for _, s := range b.Subjects {
		lines = append(lines, BulletinLine{SubjectAverage: s, Grades: own[s.SubjectID]})
	}

	return &BulletinView{
		Student:  row,
		Class:    cls,
		Term:     term,
		From:     from,
		To:       to,
		Lines:    lines,
		Bulletin: b,
		PassMark: constants.PassMark,
	}, nil
}

// TermSummary: ringkasan per trimestre di fiche élève.
type TermSummary struct {
	Term      int
	Average   float64
	Rank      int
	ClassSize  int
	GradedSize int
	Graded     bool
}

func TermSummaries(ctx context.Context, db *gorm.DB, st *studentModel.StudentModel) ([]TermSummary, error) {
	mates, err := classmates(ctx, db, st.StudentClassID, st)
	if err != nil {
		return nil, err
	}
	cands := toCandidates(mates)
	out := make([]TermSummary, 0, constants.MaxTerm)
	for term := constants.MinTerm; term <= constants.MaxTerm; term++ {
		grades, err := ClassTermGrades(ctx, db, st.StudentClassID, term)
		if err != nil {
			return nil, err
		}
		subjects, err := subjectInfos(ctx, db, st.StudentClassID, grades)
		if err != nil {
			return nil, err
		}
		b := aggregation.BuildBulletin(st.StudentID, cands, toRows(grades), subjects, nil)
		graded := false
		for _, s := range b.Subjects {
			if s.Graded() {
				graded = true
				break
			}
		}
		out = append(out, TermSummary{
			Term:       term,
			Average:    b.Average,
			Rank:       b.Rank,
			ClassSize:  b.ClassSize,
			GradedSize: b.GradedSize,
			Graded:     graded,
		})
	}
	return out, nil
}
