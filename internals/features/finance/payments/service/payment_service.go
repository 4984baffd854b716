package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	feeService "schoolku_backend/internals/features/finance/fees/service"
	"schoolku_backend/internals/features/finance/payments/dto"
	"schoolku_backend/internals/features/finance/payments/model"
	studentService "schoolku_backend/internals/features/school/students/service"
	helper "schoolku_backend/internals/helpers"
)

type ListFilter struct {
	StudentID *uuid.UUID
	ClassID   *uuid.UUID
	FeeID     *uuid.UUID
	Status    string
	Method    string
	From      *time.Time
	To        *time.Time
	Search    string
}

func listQuery(db *gorm.DB, f ListFilter) *gorm.DB {
	q := db.Table("payments p").
		Joins("JOIN students s ON s.student_id = p.payment_student_id").
		Joins("JOIN classes c ON c.class_id = s.student_class_id").
		Joins("LEFT JOIN fees f ON f.fee_id = p.payment_fee_id")
	if f.StudentID != nil {
		q = q.Where("p.payment_student_id = ?", *f.StudentID)
	}
	if f.ClassID != nil {
		q = q.Where("s.student_class_id = ?", *f.ClassID)
	}
	if f.FeeID != nil {
		q = q.Where("p.payment_fee_id = ?", *f.FeeID)
	}
	if f.Status != "" {
		q = q.Where("p.payment_status = ?", f.Status)
	}
	if f.Method != "" {
		q = q.Where("p.payment_method = ?", f.Method)
	}
	if f.From != nil {
		q = q.Where("p.payment_date >= ?", f.From.Format(helper.DateLayout))
	}
	if f.To != nil {
		q = q.Where("p.payment_date <= ?", f.To.Format(helper.DateLayout))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("s.student_last_name ILIKE ? OR s.student_first_name ILIKE ? OR s.student_matricule ILIKE ? OR p.payment_reference ILIKE ?",
			like, like, like, like)
	}
	return q
}

const viewSelect = `p.*, s.student_matricule, (s.student_last_name || ' ' || s.student_first_name) AS student_name,
	c.class_name, f.fee_name, f.fee_type`

type ListResult struct {
	Rows  []model.PaymentView
	Total int64
	Sum   float64 // jumlah paid dalam filter
}

func List(ctx context.Context, db *gorm.DB, f ListFilter, p helper.Params) (*ListResult, error) {
	res := &ListResult{}
	if err := listQuery(db.WithContext(ctx), f).Count(&res.Total).Error; err != nil {
		return nil, errors.Wrap(err, "count payments")
	}
	if err := listQuery(db.WithContext(ctx), f).
		Where("p.payment_status = ?", constants.PaymentPaid).
		Select("COALESCE(SUM(p.payment_amount),0)").Scan(&res.Sum).Error; err != nil {
		return nil, errors.Wrap(err, "sum payments")
	}
	order := p.OrderClause(map[string]string{
		"date":    "p.payment_date",
		"amount":  "p.payment_amount",
		"student": "s.student_last_name",
	}, "date")
	err := listQuery(db.WithContext(ctx), f).Select(viewSelect).
		Order(order).Order("p.payment_created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).Scan(&res.Rows).Error
	return res, errors.Wrap(err, "list payments")
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.PaymentModel, error) {
	var m model.PaymentModel
	if err := db.WithContext(ctx).First(&m, "payment_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Paiement")
	}
	return &m, nil
}

func Create(ctx context.Context, db *gorm.DB, actor *uuid.UUID, form dto.PaymentForm) (*model.PaymentModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	m := form.ToModel(actor)
	if _, err := studentService.Get(ctx, db, m.PaymentStudentID); err != nil {
		return nil, err
	}
	if m.PaymentFeeID != nil {
		if _, err := feeService.Get(ctx, db, *m.PaymentFeeID); err != nil {
			return nil, err
		}
	}
	if m.PaymentStatus == constants.PaymentPaid {
		now := time.Now()
		m.PaymentPaidAt = &now
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "create payment")
	}
	return m, nil
}

func Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.PaymentModel, error) {
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Delete(m).Error; err != nil {
		return nil, errors.Wrap(err, "delete payment")
	}
	return m, nil
}

// PaidBetween: total paid dalam [from, to).
func PaidBetween(ctx context.Context, db *gorm.DB, from, to time.Time) (float64, int64, error) {
	var row struct {
		Total float64
		N     int64
	}
	err := db.WithContext(ctx).Model(&model.PaymentModel{}).
		Select("COALESCE(SUM(payment_amount),0) AS total, COUNT(*) AS n").
		Where("payment_status = ? AND payment_date >= ? AND payment_date < ?", constants.PaymentPaid,
			from.Format(helper.DateLayout), to.Format(helper.DateLayout)).
		Scan(&row).Error
	return row.Total, row.N, errors.Wrap(err, "paid between")
}
