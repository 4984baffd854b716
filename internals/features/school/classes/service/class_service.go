package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/classes/dto"
	"schoolku_backend/internals/features/school/classes/model"
	studentModel "schoolku_backend/internals/features/school/students/model"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
	subjectService "schoolku_backend/internals/features/school/subjects/service"
	helper "schoolku_backend/internals/helpers"
)

type ListFilter struct {
	AcademicYear string
	Level        string
	Search       string
}

// List: semua kelas + jumlah élève aktif.
func List(ctx context.Context, db *gorm.DB, f ListFilter) ([]dto.ClassRow, error) {
	q := db.WithContext(ctx).
		Table("classes AS c").
		Select("c.*, COUNT(s.student_id) AS student_count").
		Joins("LEFT JOIN students s ON s.student_class_id = c.class_id AND s.student_is_active = TRUE").
		Group("c.class_id")

	if y := strings.TrimSpace(f.AcademicYear); y != "" {
		q = q.Where("c.class_academic_year = ?", y)
	}
	if l := strings.TrimSpace(f.Level); l != "" {
		q = q.Where("c.class_level = ?", l)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where("c.class_name ILIKE ?", "%"+s+"%")
	}

	var rows []dto.ClassRow
	err := q.Order("c.class_academic_year DESC, c.class_level, c.class_name").Scan(&rows).Error
	return rows, errors.Wrap(err, "list classes")
}

// Options untuk dropdown.
func Options(ctx context.Context, db *gorm.DB) ([]model.ClassModel, error) {
	var out []model.ClassModel
	err := db.WithContext(ctx).Order("class_academic_year DESC, class_name").Find(&out).Error
	return out, errors.Wrap(err, "class options")
}

// OptionsFor: professeur hanya mendapat kelas yang diajarnya.
func OptionsFor(ctx context.Context, db *gorm.DB, role string, userID *uuid.UUID) ([]model.ClassModel, error) {
	all, err := Options(ctx, db)
	if err != nil || role != constants.RoleTeacher || userID == nil {
		return all, err
	}
	ids, err := subjectService.TeacherClassIDs(ctx, db, *userID)
	if err != nil {
		return nil, err
	}
	allowed := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		allowed[id] = true
	}
	out := make([]model.ClassModel, 0, len(ids))
	for _, cl := range all {
		if allowed[cl.ClassID] {
			out = append(out, cl)
		}
	}
	return out, nil
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.ClassModel, error) {
	var m model.ClassModel
	if err := db.WithContext(ctx).First(&m, "class_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Classe")
	}
	return &m, nil
}

// AcademicYears: tahun ajaran yang ada (untuk filter).
func AcademicYears(ctx context.Context, db *gorm.DB) ([]string, error) {
	var years []string
	err := db.WithContext(ctx).Model(&model.ClassModel{}).
		Distinct("class_academic_year").
		Order("class_academic_year DESC").
		Pluck("class_academic_year", &years).Error
	return years, errors.Wrap(err, "academic years")
}

func nameTaken(ctx context.Context, db *gorm.DB, name, year string, exclude *uuid.UUID) (bool, error) {
	q := db.WithContext(ctx).Model(&model.ClassModel{}).
		Where("LOWER(class_name) = LOWER(?) AND class_academic_year = ?", name, year)
	if exclude != nil {
		q = q.Where("class_id <> ?", *exclude)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, errors.Wrap(err, "check class name")
	}
	return n > 0, nil
}

func Create(ctx context.Context, db *gorm.DB, form dto.ClassForm) (*model.ClassModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	if taken, err := nameTaken(ctx, db, form.Name, form.AcademicYear, nil); err != nil {
		return nil, err
	} else if taken {
		return nil, helper.NewValidationError("Une classe portant ce nom existe déjà pour cette année scolaire.")
	}
	m := form.ToModel()
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, helper.NewValidationError("Une classe portant ce nom existe déjà pour cette année scolaire.")
		}
		return nil, errors.Wrap(err, "create class")
	}
	return m, nil
}

func Update(ctx context.Context, db *gorm.DB, id uuid.UUID, form dto.ClassForm) (*model.ClassModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if taken, err := nameTaken(ctx, db, form.Name, form.AcademicYear, &id); err != nil {
		return nil, err
	} else if taken {
		return nil, helper.NewValidationError("Une classe portant ce nom existe déjà pour cette année scolaire.")
	}
	form.ApplyTo(m)
	if err := db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, errors.Wrap(err, "update class")
	}
	return m, nil
}

// Delete ditolak selama masih ada élève terdaftar. Teachings & frais kelas ikut dihapus.
func Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.ClassModel
		if err := tx.First(&m, "class_id = ?", id).Error; err != nil {
			return helper.DBError(err, "Classe")
		}
		var n int64
		if err := tx.Model(&studentModel.StudentModel{}).Where("student_class_id = ?", id).Count(&n).Error; err != nil {
			return errors.Wrap(err, "count students")
		}
		if n > 0 {
			return helper.NewValidationError("Impossible de supprimer une classe qui contient des élèves.")
		}
		if err := tx.Where("teaching_class_id = ?", id).Delete(&subjectModel.TeachingModel{}).Error; err != nil {
			return errors.Wrap(err, "delete teachings")
		}
		if err := tx.Table("fees").Where("fee_class_id = ?", id).Update("fee_class_id", nil).Error; err != nil {
			return errors.Wrap(err, "detach fees")
		}
		return errors.Wrap(tx.Delete(&m).Error, "delete class")
	})
}

// Detail: halaman show kelas.
type Detail struct {
	Class     *model.ClassModel
	Students  []studentModel.StudentModel
	Teachings []subjectModel.TeachingView
}

func Show(ctx context.Context, db *gorm.DB, id uuid.UUID) (*Detail, error) {
	cls, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	d := &Detail{Class: cls}
	if err := db.WithContext(ctx).
		Where("student_class_id = ?", id).
		Order("student_last_name, student_first_name").
		Find(&d.Students).Error; err != nil {
		return nil, errors.Wrap(err, "class students")
	}
	teachings, err := subjectService.Teachings(ctx, db, subjectService.TeachingFilter{ClassID: &id})
	if err != nil {
		return nil, err
	}
	d.Teachings = teachings
	return d, nil
}

// StudentCount jumlah élève aktif di kelas (cek kapasitas).
func StudentCount(ctx context.Context, db *gorm.DB, id uuid.UUID, exclude *uuid.UUID) (int64, error) {
	q := db.WithContext(ctx).Model(&studentModel.StudentModel{}).
		Where("student_class_id = ? AND student_is_active = TRUE", id)
	if exclude != nil {
		q = q.Where("student_id <> ?", *exclude)
	}
	var n int64
	err := q.Count(&n).Error
	return n, errors.Wrap(err, "count class students")
}
