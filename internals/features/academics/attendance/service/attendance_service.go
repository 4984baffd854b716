package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/academics/aggregation"
	"schoolku_backend/internals/features/academics/attendance/dto"
	"schoolku_backend/internals/features/academics/attendance/model"
	studentModel "schoolku_backend/internals/features/school/students/model"
	studentService "schoolku_backend/internals/features/school/students/service"
	subjectService "schoolku_backend/internals/features/school/subjects/service"
	helper "schoolku_backend/internals/helpers"
)

// Filter dipakai index, rapport, dan ringkasan per élève.
type Filter struct {
	StudentID *uuid.UUID
	ClassID   *uuid.UUID
	SubjectID *uuid.UUID
	From      *time.Time
	To        *time.Time // inklusif
	Status    string
}

func filterQuery(db *gorm.DB, f Filter) *gorm.DB {
	q := db.Table("attendances a").
		Joins("JOIN students s ON s.student_id = a.attendance_student_id").
		Joins("JOIN classes c ON c.class_id = s.student_class_id").
		Joins("LEFT JOIN subjects sub ON sub.subject_id = a.attendance_subject_id")
	if f.StudentID != nil {
		q = q.Where("a.attendance_student_id = ?", *f.StudentID)
	}
	if f.ClassID != nil {
		q = q.Where("s.student_class_id = ?", *f.ClassID)
	}
	if f.SubjectID != nil {
		q = q.Where("a.attendance_subject_id = ?", *f.SubjectID)
	}
	if f.From != nil {
		q = q.Where("a.attendance_date >= ?", f.From.Format(helper.DateLayout))
	}
	if f.To != nil {
		q = q.Where("a.attendance_date <= ?", f.To.Format(helper.DateLayout))
	}
	if f.Status != "" {
		q = q.Where("a.attendance_status = ?", f.Status)
	}
	return q
}

const viewSelect = `a.*, s.student_matricule, (s.student_last_name || ' ' || s.student_first_name) AS student_name,
	c.class_name, sub.subject_name`

func Recent(ctx context.Context, db *gorm.DB, f Filter, limit int) ([]model.AttendanceView, error) {
	var rows []model.AttendanceView
	err := filterQuery(db.WithContext(ctx), f).Select(viewSelect).
		Order("a.attendance_date DESC").Order("s.student_last_name").
		Limit(limit).Scan(&rows).Error
	return rows, errors.Wrap(err, "recent attendances")
}

// StatusesFor: status mentah satu élève dalam rentang tanggal (nil = tanpa batas).
func StatusesFor(ctx context.Context, db *gorm.DB, studentID uuid.UUID, from, to *time.Time) ([]string, error) {
	var statuses []string
	err := filterQuery(db.WithContext(ctx), Filter{StudentID: &studentID, From: from, To: to}).
		Pluck("a.attendance_status", &statuses).Error
	return statuses, errors.Wrap(err, "attendance statuses")
}

func StudentSummary(ctx context.Context, db *gorm.DB, studentID uuid.UUID, from, to *time.Time) (aggregation.AttendanceSummary, error) {
	statuses, err := StatusesFor(ctx, db, studentID, from, to)
	if err != nil {
		return aggregation.AttendanceSummary{}, err
	}
	return aggregation.SummarizeAttendance(statuses), nil
}

/* =========================
   Saisie
   ========================= */

type Sheet struct {
	Students []studentModel.StudentModel
	Existing map[string]model.AttendanceModel // key: student id
}

// Status: status tersimpan, default présent untuk saisie baru.
func (s *Sheet) Status(id uuid.UUID) string {
	if a, ok := s.Existing[id.String()]; ok {
		return a.AttendanceStatus
	}
	return constants.AttendancePresent
}

func (s *Sheet) Comment(id uuid.UUID) string {
	if a, ok := s.Existing[id.String()]; ok && a.AttendanceComment != nil {
		return *a.AttendanceComment
	}
	return ""
}

func subjectClause(q *gorm.DB, subjectID *uuid.UUID) *gorm.DB {
	if subjectID == nil {
		return q.Where("attendance_subject_id IS NULL")
	}
	return q.Where("attendance_subject_id = ?", *subjectID)
}

func studentIDs(students []studentModel.StudentModel) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.StudentID)
	}
	return ids
}

func EntrySheet(ctx context.Context, db *gorm.DB, classID uuid.UUID, subjectID *uuid.UUID, date time.Time) (*Sheet, error) {
	students, err := studentService.ForClass(ctx, db, classID)
	if err != nil {
		return nil, err
	}
	sheet := &Sheet{Students: students, Existing: map[string]model.AttendanceModel{}}
	if len(students) == 0 {
		return sheet, nil
	}
	var rows []model.AttendanceModel
	q := db.WithContext(ctx).Where("attendance_student_id IN ? AND attendance_date = ?",
		studentIDs(students), date.Format(helper.DateLayout))
	if err := subjectClause(q, subjectID).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "existing attendances")
	}
	for _, r := range rows {
		sheet.Existing[r.AttendanceStudentID.String()] = r
	}
	return sheet, nil
}

type SaveResult struct {
	Saved   int
	Absents int
}

// entryRows mengubah saisie jadi baris présence. Satu statut tidak dikenal
// membatalkan seluruh saisie supaya baris lama tidak ikut terhapus.
func entryRows(labels []dto.StudentLabel, get func(string) string, subjectID, actor *uuid.UUID, date time.Time) ([]model.AttendanceModel, error) {
	entries, parseErrs := dto.ParseEntries(labels, get)
	if len(parseErrs) > 0 {
		flds := make([]helper.FieldError, 0, len(parseErrs))
		for _, e := range parseErrs {
			flds = append(flds, helper.FieldError{Field: "statut", Error: e})
		}
		return nil, helper.NewValidationError(parseErrs[0], flds...)
	}

	rows := make([]model.AttendanceModel, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, model.AttendanceModel{
			AttendanceStudentID:  e.StudentID,
			AttendanceSubjectID:  subjectID,
			AttendanceDate:       date,
			AttendanceStatus:     e.Status,
			AttendanceComment:    e.Comment,
			AttendanceRecordedBy: actor,
		})
	}
	return rows, nil
}

// rowStudentIDs: hanya élève yang barisnya ditulis ulang yang dibersihkan.
func rowStudentIDs(rows []model.AttendanceModel) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.AttendanceStudentID)
	}
	return ids
}

// SaveEntry mengganti baris (élève kelas, cours, tanggal) dalam satu transaksi.
func SaveEntry(ctx context.Context, db *gorm.DB, actor *uuid.UUID, form dto.EntryForm, get func(string) string) (*SaveResult, error) {
	form.ClassID = strings.TrimSpace(form.ClassID)
	form.SubjectID = strings.TrimSpace(form.SubjectID)
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	classID, _ := uuid.Parse(form.ClassID)
	date, _ := helper.ParseDate(form.Date)
	subjectID, _ := helper.ParseUUIDPtr(form.SubjectID)
	if subjectID != nil {
		if _, err := subjectService.Get(ctx, db, *subjectID); err != nil {
			return nil, err
		}
	}

	students, err := studentService.ForClass(ctx, db, classID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, helper.NewValidationError("Aucun élève actif dans cette classe.")
	}
	labels := make([]dto.StudentLabel, 0, len(students))
	for _, s := range students {
		labels = append(labels, dto.StudentLabel{ID: s.StudentID, Name: s.FullName()})
	}
	rows, err := entryRows(labels, get, subjectID, actor, date)
	if err != nil {
		return nil, err
	}

	res := &SaveResult{Saved: len(rows)}
	for _, r := range rows {
		if r.AttendanceStatus == constants.AttendanceAbsent {
			res.Absents++
		}
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx.Where("attendance_student_id IN ? AND attendance_date = ?",
			rowStudentIDs(rows), date.Format(helper.DateLayout))
		if err := subjectClause(del, subjectID).Delete(&model.AttendanceModel{}).Error; err != nil {
			return errors.Wrap(err, "clear attendances")
		}
		return errors.Wrap(tx.Create(&rows).Error, "insert attendances")
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	res := db.WithContext(ctx).Delete(&model.AttendanceModel{}, "attendance_id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete attendance")
	}
	if res.RowsAffected == 0 {
		return helper.NotFound("Présence introuvable")
	}
	return nil
}

/* =========================
   Rapport
   ========================= */

type StudentLine struct {
	StudentID uuid.UUID
	Matricule string
	Name      string
	ClassName string
	Summary   aggregation.AttendanceSummary
}

type Report struct {
	Filter  Filter
	Summary aggregation.AttendanceSummary
	Lines   []StudentLine
}

// BuildReport: hitungan per status, taux, dan rincian per élève untuk filter.
func BuildReport(ctx context.Context, db *gorm.DB, f Filter) (*Report, error) {
	type row struct {
		StudentID uuid.UUID `gorm:"column:attendance_student_id"`
		Status    string    `gorm:"column:attendance_status"`
		Matricule string    `gorm:"column:student_matricule"`
		Name      string    `gorm:"column:student_name"`
		ClassName string    `gorm:"column:class_name"`
	}
	var rows []row
	if err := filterQuery(db.WithContext(ctx), f).
		Select(`a.attendance_student_id, a.attendance_status, s.student_matricule,
			(s.student_last_name || ' ' || s.student_first_name) AS student_name, c.class_name`).
		Order("s.student_last_name").Order("s.student_first_name").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "attendance report")
	}

	aggRows := make([]aggregation.AttendanceRow, 0, len(rows))
	statuses := make([]string, 0, len(rows))
	var lines []StudentLine
	seen := map[uuid.UUID]bool{}
	for _, r := range rows {
		aggRows = append(aggRows, aggregation.AttendanceRow{StudentID: r.StudentID, Status: r.Status})
		statuses = append(statuses, r.Status)
		if !seen[r.StudentID] {
			seen[r.StudentID] = true
			lines = append(lines, StudentLine{StudentID: r.StudentID, Matricule: r.Matricule, Name: r.Name, ClassName: r.ClassName})
		}
	}
	per := aggregation.SummarizeByStudent(aggRows)
	for i := range lines {
		lines[i].Summary = per[lines[i].StudentID]
	}
	return &Report{Filter: f, Summary: aggregation.SummarizeAttendance(statuses), Lines: lines}, nil
}

func CountOn(ctx context.Context, db *gorm.DB, day time.Time, status string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&model.AttendanceModel{}).
		Where("attendance_date = ? AND attendance_status = ?", day.Format(helper.DateLayout), status).
		Count(&n).Error
	return n, errors.Wrap(err, "count attendances")
}
