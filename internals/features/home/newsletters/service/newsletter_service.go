package service

import (
	"context"
	"html"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/home/newsletters/dto"
	"schoolku_backend/internals/features/home/newsletters/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
	"schoolku_backend/internals/helpers/mailer"
)

// batchSize: jumlah BCC per email kampanye.
const batchSize = 500

type SubscribeResult int

const (
	Subscribed SubscribeResult = iota
	Reactivated
	AlreadySubscribed
)

// Subscribe: alamat baru dibuat, alamat nonaktif diaktifkan kembali.
func Subscribe(ctx context.Context, db *gorm.DB, form dto.SubscribeForm) (SubscribeResult, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return 0, err
	}
	var m model.SubscriberModel
	err := db.WithContext(ctx).First(&m, "subscriber_email = ?", form.Email).Error
	switch {
	case err == nil:
		if m.SubscriberIsActive {
			return AlreadySubscribed, nil
		}
		err := db.WithContext(ctx).Model(&m).Updates(map[string]any{
			"subscriber_is_active": true,
			"subscriber_left_at":   nil,
		}).Error
		return Reactivated, errors.Wrap(err, "reactivate subscriber")
	case errors.Is(err, gorm.ErrRecordNotFound):
		m = model.SubscriberModel{SubscriberEmail: form.Email, SubscriberIsActive: true}
		if err := db.WithContext(ctx).Create(&m).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				return AlreadySubscribed, nil
			}
			return 0, errors.Wrap(err, "create subscriber")
		}
		return Subscribed, nil
	default:
		return 0, errors.Wrap(err, "find subscriber")
	}
}

// Unsubscribe selalu "berhasil" agar tidak membocorkan alamat terdaftar.
func Unsubscribe(ctx context.Context, db *gorm.DB, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return helper.NewValidationError("Adresse email manquante.")
	}
	now := dbtime.Now()
	err := db.WithContext(ctx).Model(&model.SubscriberModel{}).
		Where("subscriber_email = ? AND subscriber_is_active = TRUE", email).
		Updates(map[string]any{"subscriber_is_active": false, "subscriber_left_at": now}).Error
	return errors.Wrap(err, "unsubscribe")
}

func List(ctx context.Context, db *gorm.DB, search string, p helper.Params) ([]model.SubscriberModel, int64, error) {
	q := db.WithContext(ctx).Model(&model.SubscriberModel{})
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("subscriber_email ILIKE ?", "%"+s+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count subscribers")
	}
	var out []model.SubscriberModel
	err := q.Order("subscriber_created_at DESC").Limit(p.Limit()).Offset(p.Offset()).Find(&out).Error
	return out, total, errors.Wrap(err, "list subscribers")
}

func CountActive(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&model.SubscriberModel{}).Where("subscriber_is_active = TRUE").Count(&n).Error
	return n, errors.Wrap(err, "count active subscribers")
}

func Toggle(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.SubscriberModel, error) {
	var m model.SubscriberModel
	if err := db.WithContext(ctx).First(&m, "subscriber_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Abonné")
	}
	m.SubscriberIsActive = !m.SubscriberIsActive
	updates := map[string]any{"subscriber_is_active": m.SubscriberIsActive, "subscriber_left_at": nil}
	if !m.SubscriberIsActive {
		updates["subscriber_left_at"] = dbtime.Now()
	}
	if err := db.WithContext(ctx).Model(&m).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(err, "toggle subscriber")
	}
	return &m, nil
}

func Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	res := db.WithContext(ctx).Where("subscriber_id = ?", id).Delete(&model.SubscriberModel{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete subscriber")
	}
	if res.RowsAffected == 0 {
		return helper.NotFound("Abonné introuvable")
	}
	return nil
}

func activeEmails(ctx context.Context, db *gorm.DB) ([]string, error) {
	var emails []string
	err := db.WithContext(ctx).Model(&model.SubscriberModel{}).
		Where("subscriber_is_active = TRUE").
		Order("subscriber_email").Pluck("subscriber_email", &emails).Error
	return emails, errors.Wrap(err, "active emails")
}

// Batches memecah daftar penerima per n alamat.
func Batches(list []string, n int) [][]string {
	if n <= 0 {
		n = batchSize
	}
	var out [][]string
	for i := 0; i < len(list); i += n {
		end := i + n
		if end > len(list) {
			end = len(list)
		}
		out = append(out, list[i:end])
	}
	return out
}

// RenderCampaign: teks + HTML sederhana, ditambah pied de page désinscription.
func RenderCampaign(form dto.CampaignForm, unsubscribeURL string) mailer.Message {
	footer := "Pour vous désinscrire : " + unsubscribeURL
	var b strings.Builder
	for _, para := range strings.Split(form.Body, "\n\n") {
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(html.EscapeString(strings.TrimSpace(para)), "\n", "<br>"))
		b.WriteString("</p>")
	}
	b.WriteString(`<hr><p style="font-size:12px;color:#777"><a href="` + html.EscapeString(unsubscribeURL) + `">Se désinscrire</a></p>`)
	return mailer.Message{
		Subject: form.Subject,
		Text:    form.Body + "\n\n--\n" + footer,
		HTML:    b.String(),
	}
}

type CampaignReport struct {
	Recipients int
	Batches    int
	Failed     int
	LastErr    error
}

// SendCampaign mengirim ke semua abonné aktif, per batch BCC.
func SendCampaign(ctx context.Context, db *gorm.DB, s mailer.Sender, form dto.CampaignForm, unsubscribeURL string) (*CampaignReport, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	emails, err := activeEmails(ctx, db)
	if err != nil {
		return nil, err
	}
	if len(emails) == 0 {
		return nil, helper.NewValidationError("Aucun abonné actif.")
	}
	msg := RenderCampaign(form, unsubscribeURL)
	rep := &CampaignReport{Recipients: len(emails)}
	for _, batch := range Batches(emails, batchSize) {
		rep.Batches++
		m := msg
		m.To = batch
		if err := s.Send(ctx, m); err != nil {
			rep.Failed += len(batch)
			rep.LastErr = err
		}
	}
	return rep, nil
}
