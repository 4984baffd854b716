package dto

import (
	"strings"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/finance/fees/model"
	helper "schoolku_backend/internals/helpers"
)

type FeeForm struct {
	Name         string  `form:"fee_name" validate:"required,notblank,max=120" label:"Libellé"`
	Type         string  `form:"fee_type" validate:"required,oneof=scolarite inscription uniforme transport cantine autre" label:"Type"`
	Amount       float64 `form:"-" validate:"gt=0" label:"Montant"`
	AmountRaw    string  `form:"fee_amount"`
	AcademicYear string  `form:"fee_academic_year" validate:"required,academic_year" label:"Année scolaire"`
	ClassID      string  `form:"fee_class_id" validate:"omitempty,uuid" label:"Classe"`
	DueDate      string  `form:"fee_due_date" validate:"omitempty,datetime=2006-01-02" label:"Échéance"`
	Description  string  `form:"fee_description" validate:"omitempty,max=2000" label:"Description"`
}

// Normalize: montant menerima "1 500,50".
func (f *FeeForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Type = strings.TrimSpace(f.Type)
	f.AcademicYear = strings.TrimSpace(f.AcademicYear)
	f.ClassID = strings.TrimSpace(f.ClassID)
	f.DueDate = strings.TrimSpace(f.DueDate)
	f.Description = strings.TrimSpace(f.Description)
	if v, err := helper.ParseDecimal(f.AmountRaw); err == nil {
		f.Amount = v
	} else {
		f.Amount = 0
	}
}

func (f *FeeForm) ApplyTo(m *model.FeeModel) {
	m.FeeName = f.Name
	m.FeeType = f.Type
	m.FeeAmount = f.Amount
	m.FeeAcademicYear = f.AcademicYear
	m.FeeClassID = nil
	if id, err := uuid.Parse(f.ClassID); err == nil {
		m.FeeClassID = &id
	}
	m.FeeDueDate, _ = helper.ParseDatePtr(f.DueDate)
	m.FeeDescription = helper.TrimPtr(f.Description)
}

func FromModel(m *model.FeeModel) FeeForm {
	f := FeeForm{
		Name:         m.FeeName,
		Type:         m.FeeType,
		Amount:       m.FeeAmount,
		AmountRaw:    helper.FormatScore(m.FeeAmount),
		AcademicYear: m.FeeAcademicYear,
	}
	if m.FeeClassID != nil {
		f.ClassID = m.FeeClassID.String()
	}
	if m.FeeDueDate != nil {
		f.DueDate = m.FeeDueDate.Format(helper.DateLayout)
	}
	if m.FeeDescription != nil {
		f.Description = *m.FeeDescription
	}
	return f
}
