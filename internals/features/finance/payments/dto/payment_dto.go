package dto

import (
	"strings"

	"github.com/google/uuid"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/finance/payments/model"
	helper "schoolku_backend/internals/helpers"
)

type PaymentForm struct {
	StudentID string  `form:"payment_student_id" validate:"required,uuid" label:"Élève"`
	FeeID     string  `form:"payment_fee_id" validate:"omitempty,uuid" label:"Frais"`
	Amount    float64 `form:"-" validate:"gt=0" label:"Montant"`
	AmountRaw string  `form:"payment_amount"`
	Date      string  `form:"payment_date" validate:"required,datetime=2006-01-02" label:"Date"`
	Method    string  `form:"payment_method" validate:"required,oneof=especes cheque virement en_ligne" label:"Mode de paiement"`
	Reference string  `form:"payment_reference" validate:"omitempty,max=100" label:"Référence"`
	Status    string  `form:"payment_status" validate:"required,oneof=pending paid failed" label:"Statut"`
	Note      string  `form:"payment_note" validate:"omitempty,max=2000" label:"Note"`
}

func (f *PaymentForm) Normalize() {
	f.StudentID = strings.TrimSpace(f.StudentID)
	f.FeeID = strings.TrimSpace(f.FeeID)
	f.Date = strings.TrimSpace(f.Date)
	f.Reference = strings.TrimSpace(f.Reference)
	f.Note = strings.TrimSpace(f.Note)
	if f.Status == "" {
		f.Status = constants.PaymentPaid
	}
	if v, err := helper.ParseDecimal(f.AmountRaw); err == nil {
		f.Amount = v
	} else {
		f.Amount = 0
	}
}

func (f *PaymentForm) ToModel(actor *uuid.UUID) *model.PaymentModel {
	sid, _ := uuid.Parse(f.StudentID)
	date, _ := helper.ParseDate(f.Date)
	m := &model.PaymentModel{
		PaymentStudentID:  sid,
		PaymentAmount:     f.Amount,
		PaymentDate:       date,
		PaymentMethod:     f.Method,
		PaymentReference:  helper.TrimPtr(f.Reference),
		PaymentStatus:     f.Status,
		PaymentNote:       helper.TrimPtr(f.Note),
		PaymentRecordedBy: actor,
	}
	if id, err := uuid.Parse(f.FeeID); err == nil {
		m.PaymentFeeID = &id
	}
	return m
}

// OnlineForm: paiement en ligne dari fiche élève.
type OnlineForm struct {
	FeeID     string  `form:"fee_id" validate:"omitempty,uuid" label:"Frais"`
	Amount    float64 `form:"-" validate:"gt=0" label:"Montant"`
	AmountRaw string  `form:"amount"`
}

func (f *OnlineForm) Normalize() {
	f.FeeID = strings.TrimSpace(f.FeeID)
	if v, err := helper.ParseDecimal(f.AmountRaw); err == nil {
		f.Amount = v
	} else {
		f.Amount = 0
	}
}

// Notification: field yang dipakai dari body notifikasi Midtrans.
type Notification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	PaymentType       string `json:"payment_type"`
	TransactionID     string `json:"transaction_id"`
}

// FeeBalance untuk JSON /api/eleves/:id/frais.
type FeeBalance struct {
	FeeID     uuid.UUID `json:"fee_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Paid      float64   `json:"paid"`
	Remaining float64   `json:"remaining"`
	DueDate   *string   `json:"due_date,omitempty"`
}
