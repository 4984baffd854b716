package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	classModel "schoolku_backend/internals/features/school/classes/model"
	"schoolku_backend/internals/features/school/subjects/dto"
	"schoolku_backend/internals/features/school/subjects/model"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
)

func teachingViews(db *gorm.DB) *gorm.DB {
	return db.Table("teachings t").
		Select(`t.teaching_id, t.teaching_class_id, c.class_name, s.subject_id, s.subject_code, s.subject_name,
			s.subject_coefficient, u.id AS teacher_id, u.full_name AS teacher_name, t.teaching_academic_year`).
		Joins("JOIN classes c ON c.class_id = t.teaching_class_id").
		Joins("JOIN subjects s ON s.subject_id = t.teaching_subject_id").
		Joins("JOIN users u ON u.id = t.teaching_teacher_id")
}

type TeachingFilter struct {
	ClassID   *uuid.UUID
	TeacherID *uuid.UUID
}

func Teachings(ctx context.Context, db *gorm.DB, f TeachingFilter) ([]model.TeachingView, error) {
	q := teachingViews(db.WithContext(ctx))
	if f.ClassID != nil {
		q = q.Where("t.teaching_class_id = ?", *f.ClassID)
	}
	if f.TeacherID != nil {
		q = q.Where("t.teaching_teacher_id = ?", *f.TeacherID)
	}
	var out []model.TeachingView
	err := q.Order("c.class_name, s.subject_name").Scan(&out).Error
	return out, errors.Wrap(err, "list teachings")
}

// CreateTeaching: satu guru per (kelas, mapel). Guru harus ber-role professeur.
func CreateTeaching(ctx context.Context, db *gorm.DB, form dto.TeachingForm) (*model.TeachingModel, error) {
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	classID, _ := uuid.Parse(form.ClassID)
	subjectID, _ := uuid.Parse(form.SubjectID)
	teacherID, _ := uuid.Parse(form.TeacherID)

	var cls classModel.ClassModel
	if err := db.WithContext(ctx).First(&cls, "class_id = ?", classID).Error; err != nil {
		return nil, helper.DBError(err, "Classe")
	}
	if _, err := Get(ctx, db, subjectID); err != nil {
		return nil, err
	}
	var teacher userModel.UserModel
	if err := db.WithContext(ctx).First(&teacher, "id = ?", teacherID).Error; err != nil {
		return nil, helper.DBError(err, "Professeur")
	}
	if teacher.Role != constants.RoleTeacher {
		return nil, helper.NewValidationError("L'utilisateur choisi n'est pas un professeur.")
	}

	m := &model.TeachingModel{
		TeachingClassID:      classID,
		TeachingSubjectID:    subjectID,
		TeachingTeacherID:    teacherID,
		TeachingAcademicYear: cls.ClassAcademicYear,
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, helper.NewValidationError("Ce cours est déjà attribué dans cette classe.")
		}
		return nil, errors.Wrap(err, "create teaching")
	}
	return m, nil
}

// DeleteTeaching mengembalikan class id untuk redirect.
func DeleteTeaching(ctx context.Context, db *gorm.DB, id uuid.UUID) (uuid.UUID, error) {
	var m model.TeachingModel
	if err := db.WithContext(ctx).First(&m, "teaching_id = ?", id).Error; err != nil {
		return uuid.Nil, helper.DBError(err, "Affectation")
	}
	if err := db.WithContext(ctx).Delete(&m).Error; err != nil {
		return uuid.Nil, errors.Wrap(err, "delete teaching")
	}
	return m.TeachingClassID, nil
}

// TeacherClassIDs: kelas yang diajar seorang professeur.
func TeacherClassIDs(ctx context.Context, db *gorm.DB, teacherID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.WithContext(ctx).Model(&model.TeachingModel{}).
		Where("teaching_teacher_id = ?", teacherID).
		Distinct("teaching_class_id").
		Pluck("teaching_class_id", &ids).Error
	return ids, errors.Wrap(err, "teacher classes")
}
