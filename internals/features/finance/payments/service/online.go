package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	feeService "schoolku_backend/internals/features/finance/fees/service"
	"schoolku_backend/internals/features/finance/payments/dto"
	"schoolku_backend/internals/features/finance/payments/model"
	studentModel "schoolku_backend/internals/features/school/students/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

var ErrGatewayDisabled = helper.NewValidationError("Le paiement en ligne n'est pas configuré.")

// NewOrderID: PAY-<matricule>-<unix>-<acak>.
func NewOrderID(matricule string, now time.Time) string {
	return fmt.Sprintf("PAY-%s-%d-%s", strings.ToUpper(matricule), now.Unix(), uuid.NewString()[:6])
}

// StartOnline membuat paiement pending lalu transaksi Snap. Jika Snap gagal,
// paiement ditandai failed.
func StartOnline(ctx context.Context, db *gorm.DB, gw Gateway, st *studentModel.StudentModel, cust Customer, actor *uuid.UUID, form dto.OnlineForm) (*model.PaymentModel, error) {
	if gw == nil {
		return nil, ErrGatewayDisabled
	}
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	item := "Frais scolaires"
	var feeID *uuid.UUID
	if form.FeeID != "" {
		id, _ := uuid.Parse(form.FeeID)
		fee, err := feeService.Get(ctx, db, id)
		if err != nil {
			return nil, err
		}
		feeID = &fee.FeeID
		item = fee.FeeName
	}

	orderID := NewOrderID(st.StudentMatricule, time.Now())
	m := &model.PaymentModel{
		PaymentStudentID:  st.StudentID,
		PaymentFeeID:      feeID,
		PaymentAmount:     form.Amount,
		PaymentDate:       dbtime.Today(),
		PaymentMethod:     constants.MethodOnline,
		PaymentReference:  &orderID,
		PaymentStatus:     constants.PaymentPending,
		PaymentOrderID:    &orderID,
		PaymentRecordedBy: actor,
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "create online payment")
	}

	token, redirect, err := gw.CreateSnap(SnapRequest{
		OrderID:  orderID,
		Amount:   form.Amount,
		ItemName: item + " - " + st.FullName(),
		Customer: cust,
	})
	if err != nil {
		log.Printf("[ERROR] snap %s: %v", orderID, err)
		db.WithContext(ctx).Model(m).Update("payment_status", constants.PaymentFailed)
		return nil, helper.NewValidationError("La passerelle de paiement est indisponible. Réessayez plus tard.")
	}
	m.PaymentSnapToken = &token
	m.PaymentRedirectURL = &redirect
	if err := db.WithContext(ctx).Model(m).Updates(map[string]any{
		"payment_snap_token":   token,
		"payment_redirect_url": redirect,
	}).Error; err != nil {
		return nil, errors.Wrap(err, "save snap token")
	}
	return m, nil
}

// HandleNotification menyimpan payload mentah lalu memperbarui status paiement.
func HandleNotification(ctx context.Context, db *gorm.DB, gw Gateway, body []byte) error {
	var n dto.Notification
	if err := sonic.Unmarshal(body, &n); err != nil || n.OrderID == "" || n.TransactionStatus == "" {
		return helper.NewValidationError("Notification invalide.")
	}
	if gw != nil && !gw.VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, n.SignatureKey) {
		log.Printf("[WARN] notifikasi %s: signature tidak cocok", n.OrderID)
		return helper.NewValidationError("Signature invalide.")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry := model.PaymentNotificationModel{
			NotificationOrderID: n.OrderID,
			NotificationStatus:  n.TransactionStatus,
			NotificationPayload: datatypes.JSON(body),
		}

		var p model.PaymentModel
		err := tx.Where("payment_order_id = ?", n.OrderID).First(&p).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			msg := "paiement introuvable"
			entry.NotificationError = &msg
			log.Printf("[WARN] notifikasi %s: paiement tidak ditemukan", n.OrderID)
			return errors.Wrap(tx.Create(&entry).Error, "log notification")
		case err != nil:
			return errors.Wrap(err, "find payment")
		}
		entry.NotificationPaymentID = &p.PaymentID
		if err := tx.Create(&entry).Error; err != nil {
			return errors.Wrap(err, "log notification")
		}

		status := MapTransactionStatus(n.TransactionStatus, n.FraudStatus)
		if status == "" || status == p.PaymentStatus {
			return nil
		}
		// paid bersifat final
		if p.PaymentStatus == constants.PaymentPaid {
			return nil
		}
		updates := map[string]any{"payment_status": status}
		if status == constants.PaymentPaid {
			updates["payment_paid_at"] = time.Now()
		}
		log.Printf("[INFO] paiement %s: %s → %s", n.OrderID, p.PaymentStatus, status)
		return errors.Wrap(tx.Model(&p).Updates(updates).Error, "update payment status")
	})
}
