package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/communication/announcements/dto"
	"schoolku_backend/internals/features/communication/announcements/model"
	helper "schoolku_backend/internals/helpers"
)

func Recipients(ctx context.Context, db *gorm.DB) ([]model.WhatsAppRecipientModel, error) {
	var rows []model.WhatsAppRecipientModel
	err := db.WithContext(ctx).Order("recipient_is_active DESC, recipient_name").Find(&rows).Error
	return rows, errors.Wrap(err, "list recipients")
}

func ActivePhones(ctx context.Context, db *gorm.DB) ([]string, error) {
	var phones []string
	err := db.WithContext(ctx).Model(&model.WhatsAppRecipientModel{}).
		Where("recipient_is_active = ?", true).
		Order("recipient_name").
		Pluck("recipient_phone", &phones).Error
	return phones, errors.Wrap(err, "active phones")
}

func AddRecipient(ctx context.Context, db *gorm.DB, form dto.RecipientForm) (*model.WhatsAppRecipientModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	m := &model.WhatsAppRecipientModel{
		RecipientName:     form.Name,
		RecipientPhone:    form.Phone,
		RecipientIsActive: true,
		RecipientNote:     helper.TrimPtr(form.Note),
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, helper.NewValidationError("Ce numéro est déjà enregistré.")
		}
		return nil, errors.Wrap(err, "create recipient")
	}
	return m, nil
}

func ToggleRecipient(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.WhatsAppRecipientModel, error) {
	var m model.WhatsAppRecipientModel
	if err := db.WithContext(ctx).First(&m, "recipient_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Destinataire")
	}
	m.RecipientIsActive = !m.RecipientIsActive
	if err := db.WithContext(ctx).Model(&m).Update("recipient_is_active", m.RecipientIsActive).Error; err != nil {
		return nil, errors.Wrap(err, "toggle recipient")
	}
	return &m, nil
}

func DeleteRecipient(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	res := db.WithContext(ctx).Delete(&model.WhatsAppRecipientModel{}, "recipient_id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete recipient")
	}
	if res.RowsAffected == 0 {
		return helper.NotFound("Destinataire introuvable")
	}
	return nil
}

// SeedRecipients mengisi tabel dari config bila masih kosong.
func SeedRecipients(ctx context.Context, db *gorm.DB, phones []string) error {
	if len(phones) == 0 {
		return nil
	}
	var n int64
	if err := db.WithContext(ctx).Model(&model.WhatsAppRecipientModel{}).Count(&n).Error; err != nil {
		return errors.Wrap(err, "count recipients")
	}
	if n > 0 {
		return nil
	}
	rows := make([]model.WhatsAppRecipientModel, 0, len(phones))
	for i, p := range phones {
		rows = append(rows, model.WhatsAppRecipientModel{
			RecipientName:     fmt.Sprintf("Destinataire %d", i+1),
			RecipientPhone:    p,
			RecipientIsActive: true,
		})
	}
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return errors.Wrap(err, "seed recipients")
	}
	log.Printf("[INFO] %d penerima WhatsApp di-seed dari config", len(rows))
	return nil
}
