package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/subjects/dto"
	"schoolku_backend/internals/features/school/subjects/model"
	helper "schoolku_backend/internals/helpers"
)

const defaultCoefficient = 1.0

func List(ctx context.Context, db *gorm.DB, search string) ([]dto.SubjectRow, error) {
	q := db.WithContext(ctx).
		Table("subjects AS s").
		Select("s.*, COUNT(t.teaching_id) AS class_count").
		Joins("LEFT JOIN teachings t ON t.teaching_subject_id = s.subject_id").
		Group("s.subject_id")
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + s + "%"
		q = q.Where("s.subject_name ILIKE ? OR s.subject_code ILIKE ?", like, like)
	}
	var rows []dto.SubjectRow
	err := q.Order("s.subject_name").Scan(&rows).Error
	return rows, errors.Wrap(err, "list subjects")
}

func Options(ctx context.Context, db *gorm.DB) ([]model.SubjectModel, error) {
	var out []model.SubjectModel
	err := db.WithContext(ctx).Order("subject_name").Find(&out).Error
	return out, errors.Wrap(err, "subject options")
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.SubjectModel, error) {
	var m model.SubjectModel
	if err := db.WithContext(ctx).First(&m, "subject_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Cours")
	}
	return &m, nil
}

func codeTaken(ctx context.Context, db *gorm.DB, code string, exclude *uuid.UUID) (bool, error) {
	q := db.WithContext(ctx).Model(&model.SubjectModel{}).Where("subject_code = ?", code)
	if exclude != nil {
		q = q.Where("subject_id <> ?", *exclude)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, errors.Wrap(err, "check subject code")
	}
	return n > 0, nil
}

func Create(ctx context.Context, db *gorm.DB, form dto.SubjectForm) (*model.SubjectModel, error) {
	if form.Coefficient == 0 {
		form.Coefficient = defaultCoefficient
	}
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	if taken, err := codeTaken(ctx, db, form.Code, nil); err != nil {
		return nil, err
	} else if taken {
		return nil, helper.NewValidationError("Ce code de cours existe déjà.")
	}
	m := &model.SubjectModel{}
	form.ApplyTo(m)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "create subject")
	}
	return m, nil
}

func Update(ctx context.Context, db *gorm.DB, id uuid.UUID, form dto.SubjectForm) (*model.SubjectModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if taken, err := codeTaken(ctx, db, form.Code, &id); err != nil {
		return nil, err
	} else if taken {
		return nil, helper.NewValidationError("Ce code de cours existe déjà.")
	}
	form.ApplyTo(m)
	if err := db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, errors.Wrap(err, "update subject")
	}
	return m, nil
}

// Delete ditolak jika mapel sudah punya nilai atau presensi.
func Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.SubjectModel
		if err := tx.First(&m, "subject_id = ?", id).Error; err != nil {
			return helper.DBError(err, "Cours")
		}
		for table, col := range map[string]string{"grades": "grade_subject_id", "attendances": "attendance_subject_id"} {
			var n int64
			if err := tx.Table(table).Where(col+" = ?", id).Count(&n).Error; err != nil {
				return errors.Wrapf(err, "count %s", table)
			}
			if n > 0 {
				return helper.NewValidationError("Ce cours possède déjà des notes ou des présences et ne peut pas être supprimé.")
			}
		}
		if err := tx.Where("teaching_subject_id = ?", id).Delete(&model.TeachingModel{}).Error; err != nil {
			return errors.Wrap(err, "delete teachings")
		}
		return errors.Wrap(tx.Delete(&m).Error, "delete subject")
	})
}

// ForClass: mapel yang diajarkan di kelas; kelas tanpa teachings → semua mapel.
func ForClass(ctx context.Context, db *gorm.DB, classID uuid.UUID) ([]model.SubjectModel, error) {
	var out []model.SubjectModel
	err := db.WithContext(ctx).
		Joins("JOIN teachings t ON t.teaching_subject_id = subjects.subject_id").
		Where("t.teaching_class_id = ?", classID).
		Order("subjects.subject_name").
		Find(&out).Error
	if err != nil {
		return nil, errors.Wrap(err, "subjects for class")
	}
	if len(out) == 0 {
		return Options(ctx, db)
	}
	return out, nil
}
