package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/academics/grades/dto"
	"schoolku_backend/internals/features/academics/grades/model"
	studentModel "schoolku_backend/internals/features/school/students/model"
	studentService "schoolku_backend/internals/features/school/students/service"
	subjectService "schoolku_backend/internals/features/school/subjects/service"
	helper "schoolku_backend/internals/helpers"
)

type ListFilter struct {
	ClassID   *uuid.UUID
	SubjectID *uuid.UUID
	StudentID *uuid.UUID
	Term      int
	Category  string
	Search    string
}

func listQuery(db *gorm.DB, f ListFilter) *gorm.DB {
	q := db.Table("grades g").
		Joins("JOIN students s ON s.student_id = g.grade_student_id").
		Joins("JOIN classes c ON c.class_id = s.student_class_id").
		Joins("JOIN subjects sub ON sub.subject_id = g.grade_subject_id")
	if f.ClassID != nil {
		q = q.Where("s.student_class_id = ?", *f.ClassID)
	}
	if f.SubjectID != nil {
		q = q.Where("g.grade_subject_id = ?", *f.SubjectID)
	}
	if f.StudentID != nil {
		q = q.Where("g.grade_student_id = ?", *f.StudentID)
	}
	if f.Term > 0 {
		q = q.Where("g.grade_term = ?", f.Term)
	}
	if f.Category != "" {
		q = q.Where("g.grade_category = ?", f.Category)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("s.student_last_name ILIKE ? OR s.student_first_name ILIKE ? OR s.student_matricule ILIKE ?", like, like, like)
	}
	return q
}

const gradeViewSelect = `g.*, s.student_matricule, (s.student_last_name || ' ' || s.student_first_name) AS student_name,
	c.class_name, sub.subject_name`

// List: "toutes les notes" (paginated).
func List(ctx context.Context, db *gorm.DB, f ListFilter, p helper.Params) ([]model.GradeView, int64, error) {
	q := listQuery(db.WithContext(ctx), f)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count grades")
	}
	order := p.OrderClause(map[string]string{
		"date":    "g.grade_date",
		"student": "s.student_last_name",
		"subject": "sub.subject_name",
		"value":   "g.grade_value",
	}, "date")

	var rows []model.GradeView
	err := q.Select(gradeViewSelect).Order(order).Order("s.student_last_name").
		Limit(p.Limit()).Offset(p.Offset()).Scan(&rows).Error
	return rows, total, errors.Wrap(err, "list grades")
}

// Recent: nilai terbaru untuk halaman index.
func Recent(ctx context.Context, db *gorm.DB, f ListFilter, limit int) ([]model.GradeView, error) {
	var rows []model.GradeView
	err := listQuery(db.WithContext(ctx), f).Select(gradeViewSelect).
		Order("g.grade_updated_at DESC").Limit(limit).Scan(&rows).Error
	return rows, errors.Wrap(err, "recent grades")
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.GradeView, error) {
	var row model.GradeView
	res := listQuery(db.WithContext(ctx), ListFilter{}).Select(gradeViewSelect).
		Where("g.grade_id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "get grade")
	}
	if res.RowsAffected == 0 {
		return nil, helper.NotFound("Note introuvable")
	}
	return &row, nil
}

/* =========================
   Saisie massal
   ========================= */

// Sheet: data form saisie (élève + nilai yang sudah ada).
type Sheet struct {
	Students []studentModel.StudentModel
	Existing map[string]model.GradeModel // key: student id
}

// Value: nilai tersimpan untuk prefill form, "" jika belum ada.
func (s *Sheet) Value(id uuid.UUID) string {
	g, ok := s.Existing[id.String()]
	if !ok {
		return ""
	}
	return strconv.FormatFloat(g.GradeValue, 'f', -1, 64)
}

func (s *Sheet) Comment(id uuid.UUID) string {
	if g, ok := s.Existing[id.String()]; ok && g.GradeComment != nil {
		return *g.GradeComment
	}
	return ""
}

func EntrySheet(ctx context.Context, db *gorm.DB, classID, subjectID uuid.UUID, term int, category string) (*Sheet, error) {
	students, err := studentService.ForClass(ctx, db, classID)
	if err != nil {
		return nil, err
	}
	sheet := &Sheet{Students: students, Existing: map[string]model.GradeModel{}}
	if len(students) == 0 {
		return sheet, nil
	}
	ids := make([]uuid.UUID, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.StudentID)
	}
	var grades []model.GradeModel
	if err := db.WithContext(ctx).
		Where("grade_student_id IN ? AND grade_subject_id = ? AND grade_term = ? AND grade_category = ?",
			ids, subjectID, term, category).
		Find(&grades).Error; err != nil {
		return nil, errors.Wrap(err, "existing grades")
	}
	for _, g := range grades {
		sheet.Existing[g.GradeStudentID.String()] = g
	}
	return sheet, nil
}

// SaveResult ringkasan saisie.
type SaveResult struct {
	Saved  int
	Errors []string
}

// SaveEntry upsert per (élève, cours, trimestre, type) dalam satu transaksi.
// Baris kosong dilewati; baris tidak valid dilaporkan tanpa membatalkan yang lain.
func SaveEntry(ctx context.Context, db *gorm.DB, actor *uuid.UUID, form dto.EntryForm, get func(string) string) (*SaveResult, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	classID, _ := uuid.Parse(form.ClassID)
	subjectID, _ := uuid.Parse(form.SubjectID)
	date, _ := helper.ParseDate(form.Date)
	if _, err := subjectService.Get(ctx, db, subjectID); err != nil {
		return nil, err
	}

	students, err := studentService.ForClass(ctx, db, classID)
	if err != nil {
		return nil, err
	}
	labels := make([]dto.StudentLabel, 0, len(students))
	for _, s := range students {
		labels = append(labels, dto.StudentLabel{ID: s.StudentID, Name: s.FullName()})
	}
	entries, parseErrs := dto.ParseEntries(labels, get)
	res := &SaveResult{Errors: parseErrs}
	if len(entries) == 0 {
		return res, nil
	}

	rows := make([]model.GradeModel, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, model.GradeModel{
			GradeStudentID:  e.StudentID,
			GradeSubjectID:  subjectID,
			GradeTerm:       form.Term,
			GradeCategory:   form.Category,
			GradeValue:      e.Value,
			GradeOutOf:      form.OutOf,
			GradeDate:       date,
			GradeComment:    e.Comment,
			GradeRecordedBy: actor,
		})
	}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "grade_student_id"}, {Name: "grade_subject_id"},
				{Name: "grade_term"}, {Name: "grade_category"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"grade_value", "grade_out_of", "grade_date", "grade_comment", "grade_recorded_by", "grade_updated_at",
			}),
		}).Create(&rows).Error
	})
	if err != nil {
		return nil, errors.Wrap(err, "upsert grades")
	}
	res.Saved = len(rows)
	return res, nil
}

func Update(ctx context.Context, db *gorm.DB, id uuid.UUID, form dto.GradeForm) (*model.GradeModel, error) {
	form.Category = strings.TrimSpace(form.Category)
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	var m model.GradeModel
	if err := db.WithContext(ctx).First(&m, "grade_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Note")
	}
	if err := form.ApplyTo(&m); err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Save(&m).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, helper.NewValidationError("Une note de ce type existe déjà pour ce trimestre.")
		}
		return nil, errors.Wrap(err, "update grade")
	}
	return &m, nil
}

func Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.GradeModel, error) {
	var m model.GradeModel
	if err := db.WithContext(ctx).First(&m, "grade_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Note")
	}
	if err := db.WithContext(ctx).Delete(&m).Error; err != nil {
		return nil, errors.Wrap(err, "delete grade")
	}
	return &m, nil
}

func Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&model.GradeModel{}).Count(&n).Error
	return n, errors.Wrap(err, "count grades")
}
