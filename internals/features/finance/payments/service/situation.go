package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	feeModel "schoolku_backend/internals/features/finance/fees/model"
	feeService "schoolku_backend/internals/features/finance/fees/service"
	"schoolku_backend/internals/features/finance/payments/dto"
	"schoolku_backend/internals/features/finance/payments/model"
	classService "schoolku_backend/internals/features/school/classes/service"
	studentModel "schoolku_backend/internals/features/school/students/model"
	helper "schoolku_backend/internals/helpers"
)

type FeeLine struct {
	Fee       feeModel.FeeModel
	Paid      float64
	Remaining float64
}

func (l FeeLine) Settled() bool { return l.Remaining <= 0 }

// Statement: frais yang berlaku vs paiement berstatus paid.
type Statement struct {
	AcademicYear string
	Lines        []FeeLine
	TotalDue     float64
	TotalPaid    float64
	Unassigned   float64 // paid tanpa frais
	Balance      float64 // sisa (>= 0)
	Payments     []model.PaymentView
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// ComputeSituation menghitung saldo; paiement tanpa frais dikurangkan dari total.
func ComputeSituation(fees []feeModel.FeeModel, payments []model.PaymentModel) Statement {
	paidByFee := map[uuid.UUID]float64{}
	var s Statement
	for _, p := range payments {
		if p.PaymentStatus != constants.PaymentPaid {
			continue
		}
		s.TotalPaid += p.PaymentAmount
		if p.PaymentFeeID != nil {
			paidByFee[*p.PaymentFeeID] += p.PaymentAmount
		} else {
			s.Unassigned += p.PaymentAmount
		}
	}
	for _, f := range fees {
		paid := paidByFee[f.FeeID]
		s.TotalDue += f.FeeAmount
		s.Lines = append(s.Lines, FeeLine{
			Fee:       f,
			Paid:      round2(paid),
			Remaining: round2(math.Max(0, f.FeeAmount-paid)),
		})
	}
	s.TotalDue = round2(s.TotalDue)
	s.TotalPaid = round2(s.TotalPaid)
	s.Unassigned = round2(s.Unassigned)
	s.Balance = round2(math.Max(0, s.TotalDue-s.TotalPaid))
	return s
}

func (s *Statement) Balances() []dto.FeeBalance {
	out := make([]dto.FeeBalance, 0, len(s.Lines))
	for _, l := range s.Lines {
		b := dto.FeeBalance{
			FeeID:     l.Fee.FeeID,
			Name:      l.Fee.FeeName,
			Type:      l.Fee.FeeType,
			Amount:    l.Fee.FeeAmount,
			Paid:      l.Paid,
			Remaining: l.Remaining,
		}
		if l.Fee.FeeDueDate != nil {
			d := l.Fee.FeeDueDate.Format(helper.DateLayout)
			b.DueDate = &d
		}
		out = append(out, b)
	}
	return out
}

func StudentPayments(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]model.PaymentView, error) {
	var rows []model.PaymentView
	err := listQuery(db.WithContext(ctx), ListFilter{StudentID: &studentID}).
		Select(viewSelect).Order("p.payment_date DESC").Scan(&rows).Error
	return rows, errors.Wrap(err, "student payments")
}

func Situation(ctx context.Context, db *gorm.DB, st *studentModel.StudentModel) (*Statement, error) {
	class, err := classService.Get(ctx, db, st.StudentClassID)
	if err != nil {
		return nil, err
	}
	fees, err := feeService.Applicable(ctx, db, class.ClassID, class.ClassAcademicYear)
	if err != nil {
		return nil, err
	}
	views, err := StudentPayments(ctx, db, st.StudentID)
	if err != nil {
		return nil, err
	}
	payments := make([]model.PaymentModel, 0, len(views))
	for _, v := range views {
		payments = append(payments, v.PaymentModel)
	}
	s := ComputeSituation(fees, payments)
	s.AcademicYear = class.ClassAcademicYear
	s.Payments = views
	return &s, nil
}
