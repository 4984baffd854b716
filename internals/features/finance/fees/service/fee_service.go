package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/dto"
	"schoolku_backend/internals/features/finance/fees/model"
	classService "schoolku_backend/internals/features/school/classes/service"
	helper "schoolku_backend/internals/helpers"
)

type ListFilter struct {
	AcademicYear string
	Type         string
	ClassID      *uuid.UUID
}

func List(ctx context.Context, db *gorm.DB, f ListFilter) ([]model.FeeRow, error) {
	q := db.WithContext(ctx).Table("fees f").
		Select("f.*, c.class_name").
		Joins("LEFT JOIN classes c ON c.class_id = f.fee_class_id")
	if y := strings.TrimSpace(f.AcademicYear); y != "" {
		q = q.Where("f.fee_academic_year = ?", y)
	}
	if f.Type != "" {
		q = q.Where("f.fee_type = ?", f.Type)
	}
	if f.ClassID != nil {
		q = q.Where("f.fee_class_id = ? OR f.fee_class_id IS NULL", *f.ClassID)
	}
	var rows []model.FeeRow
	err := q.Order("f.fee_academic_year DESC, f.fee_due_date NULLS LAST, f.fee_name").Scan(&rows).Error
	return rows, errors.Wrap(err, "list fees")
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.FeeModel, error) {
	var m model.FeeModel
	if err := db.WithContext(ctx).First(&m, "fee_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Frais")
	}
	return &m, nil
}

// Applicable: frais kelas + frais sekolah untuk tahun ajaran kelas tersebut.
func Applicable(ctx context.Context, db *gorm.DB, classID uuid.UUID, academicYear string) ([]model.FeeModel, error) {
	var fees []model.FeeModel
	err := db.WithContext(ctx).
		Where("fee_academic_year = ? AND (fee_class_id = ? OR fee_class_id IS NULL)", academicYear, classID).
		Order("fee_due_date NULLS LAST, fee_name").
		Find(&fees).Error
	return fees, errors.Wrap(err, "applicable fees")
}

func validate(ctx context.Context, db *gorm.DB, form *dto.FeeForm) error {
	form.Normalize()
	if err := helper.ValidateStruct(form); err != nil {
		return err
	}
	if form.ClassID != "" {
		id, _ := uuid.Parse(form.ClassID)
		if _, err := classService.Get(ctx, db, id); err != nil {
			return err
		}
	}
	return nil
}

func Create(ctx context.Context, db *gorm.DB, form dto.FeeForm) (*model.FeeModel, error) {
	if err := validate(ctx, db, &form); err != nil {
		return nil, err
	}
	m := &model.FeeModel{}
	form.ApplyTo(m)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "create fee")
	}
	return m, nil
}

func Update(ctx context.Context, db *gorm.DB, id uuid.UUID, form dto.FeeForm) (*model.FeeModel, error) {
	if err := validate(ctx, db, &form); err != nil {
		return nil, err
	}
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	form.ApplyTo(m)
	if err := db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, errors.Wrap(err, "update fee")
	}
	return m, nil
}

// Delete ditolak jika sudah ada paiement yang merujuk frais ini.
func Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.FeeModel
		if err := tx.First(&m, "fee_id = ?", id).Error; err != nil {
			return helper.DBError(err, "Frais")
		}
		var n int64
		if err := tx.Table("payments").Where("payment_fee_id = ?", id).Count(&n).Error; err != nil {
			return errors.Wrap(err, "count payments")
		}
		if n > 0 {
			return helper.NewValidationError("Des paiements sont rattachés à ces frais. Suppression impossible.")
		}
		return errors.Wrap(tx.Delete(&m).Error, "delete fee")
	})
}

// TotalsByType untuk rapport financier.
func TotalsByType(ctx context.Context, db *gorm.DB, academicYear string) (map[string]float64, error) {
	type row struct {
		FeeType string
		Total   float64
	}
	var rows []row
	err := db.WithContext(ctx).Model(&model.FeeModel{}).
		Select("fee_type, COALESCE(SUM(fee_amount),0) AS total").
		Where("fee_academic_year = ?", academicYear).
		Group("fee_type").Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "fee totals")
	}
	out := make(map[string]float64, len(rows))
	for _, r := range rows {
		out[r.FeeType] = r.Total
	}
	return out, nil
}
