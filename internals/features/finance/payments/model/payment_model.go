package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentModel struct {
	PaymentID         uuid.UUID  `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`
	PaymentStudentID  uuid.UUID  `gorm:"column:payment_student_id;type:uuid;not null;index" json:"payment_student_id"`
	PaymentFeeID      *uuid.UUID `gorm:"column:payment_fee_id;type:uuid;index" json:"payment_fee_id,omitempty"`
	PaymentAmount     float64    `gorm:"column:payment_amount;type:numeric(12,2);not null" json:"payment_amount"`
	PaymentDate       time.Time  `gorm:"column:payment_date;type:date;not null;index" json:"payment_date"`
	PaymentMethod     string     `gorm:"column:payment_method;type:varchar(20);not null" json:"payment_method"`
	PaymentReference  *string    `gorm:"column:payment_reference;type:varchar(100)" json:"payment_reference,omitempty"`
	PaymentStatus     string     `gorm:"column:payment_status;type:varchar(10);not null;default:'paid';index" json:"payment_status"`
	PaymentNote       *string    `gorm:"column:payment_note;type:text" json:"payment_note,omitempty"`
	PaymentRecordedBy *uuid.UUID `gorm:"column:payment_recorded_by;type:uuid" json:"payment_recorded_by,omitempty"`

	// paiement en ligne (Midtrans Snap)
	PaymentOrderID     *string    `gorm:"column:payment_order_id;type:varchar(64);uniqueIndex" json:"payment_order_id,omitempty"`
	PaymentSnapToken   *string    `gorm:"column:payment_snap_token;type:varchar(100)" json:"payment_snap_token,omitempty"`
	PaymentRedirectURL *string    `gorm:"column:payment_redirect_url;type:text" json:"payment_redirect_url,omitempty"`
	PaymentPaidAt      *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
}

func (PaymentModel) TableName() string { return "payments" }

type PaymentView struct {
	PaymentModel
	StudentMatricule string  `gorm:"column:student_matricule" json:"student_matricule"`
	StudentName      string  `gorm:"column:student_name" json:"student_name"`
	ClassName        string  `gorm:"column:class_name" json:"class_name"`
	FeeName          *string `gorm:"column:fee_name" json:"fee_name,omitempty"`
	FeeType          *string `gorm:"column:fee_type" json:"fee_type,omitempty"`
}

// PaymentNotificationModel: log mentah notifikasi gateway, satu baris per callback.
type PaymentNotificationModel struct {
	NotificationID          uuid.UUID      `gorm:"column:notification_id;type:uuid;default:gen_random_uuid();primaryKey" json:"notification_id"`
	NotificationPaymentID   *uuid.UUID     `gorm:"column:notification_payment_id;type:uuid;index" json:"notification_payment_id,omitempty"`
	NotificationOrderID     string         `gorm:"column:notification_order_id;type:varchar(64);index" json:"notification_order_id"`
	NotificationStatus      string         `gorm:"column:notification_status;type:varchar(30)" json:"notification_status"`
	NotificationPayload     datatypes.JSON `gorm:"column:notification_payload;type:jsonb" json:"notification_payload"`
	NotificationError       *string        `gorm:"column:notification_error;type:text" json:"notification_error,omitempty"`
	NotificationReceivedAt  time.Time      `gorm:"column:notification_received_at;autoCreateTime" json:"notification_received_at"`
}

func (PaymentNotificationModel) TableName() string { return "payment_notifications" }
