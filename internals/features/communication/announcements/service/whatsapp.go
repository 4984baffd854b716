package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/features/communication/announcements/model"
)

// Notifier mengirim teks ke WhatsApp lewat API HTTP (wasender).
type Notifier struct {
	cfg    configs.WhatsAppConfig
	client *http.Client
}

func NewNotifier(cfg configs.WhatsAppConfig) *Notifier {
	return &Notifier{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

func (n *Notifier) Enabled() bool { return n != nil && n.cfg.Enabled() }

// ConfigRecipients: daftar dari config, dipakai untuk seed tabel penerima.
func (n *Notifier) ConfigRecipients() []string {
	if n == nil {
		return nil
	}
	return n.cfg.Recipients
}

type SendResult struct {
	Phone     string
	OK        bool
	MessageID string
	Error     string
}

type Report struct {
	Results []SendResult
}

func (r Report) Sent() int {
	n := 0
	for _, x := range r.Results {
		if x.OK {
			n++
		}
	}
	return n
}

func (r Report) Failed() int { return len(r.Results) - r.Sent() }

// FormatPhone: buang non-digit; tanpa "+" → tambahkan kode negara default.
func FormatPhone(phone, countryCode string) string {
	phone = strings.TrimSpace(phone)
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if d == "" {
		return ""
	}
	if strings.HasPrefix(phone, "+") {
		return "+" + d
	}
	if strings.HasPrefix(phone, "00") {
		return "+" + strings.TrimPrefix(d, "00")
	}
	cc := strings.TrimPrefix(countryCode, "+")
	if cc != "" && strings.HasPrefix(d, cc) {
		return "+" + d
	}
	return "+" + cc + d
}

// FormatAnnouncement menyusun pesan WhatsApp (markdown *bold*).
func (n *Notifier) FormatAnnouncement(a *model.AnnouncementModel) string {
	var b strings.Builder
	b.WriteString("*NOUVELLE ANNONCE*\n\n")
	if a.AnnouncementIsImportant {
		b.WriteString("⚠️ *IMPORTANT*\n")
	}
	fmt.Fprintf(&b, "*%s*\n\n%s\n\n", a.AnnouncementTitle, a.AnnouncementContent)
	if n.cfg.IncludeExpiry && a.AnnouncementExpiresAt != nil {
		fmt.Fprintf(&b, "Date d'expiration: %s\n\n", a.AnnouncementExpiresAt.Format("02/01/2006"))
	}
	if n.cfg.IncludeFooter && n.cfg.FooterText != "" {
		b.WriteString(n.cfg.FooterText)
	}
	return strings.TrimRight(b.String(), "\n")
}

type sendPayload struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

type sendResponse struct {
	ID      any    `json:"id"`
	Message string `json:"message"`
	Data    struct {
		MsgID any `json:"msgId"`
	} `json:"data"`
}

func (n *Notifier) sendOne(ctx context.Context, to, text string) (string, error) {
	body, err := sonic.Marshal(sendPayload{To: to, Text: text})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+n.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode >= 300 {
		return "", errors.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	var out sendResponse
	_ = sonic.Unmarshal(raw, &out)
	switch {
	case out.ID != nil:
		return fmt.Sprint(out.ID), nil
	case out.Data.MsgID != nil:
		return fmt.Sprint(out.Data.MsgID), nil
	}
	return "unknown", nil
}

// Send mengirim text ke setiap nomor; kegagalan satu nomor tidak menghentikan yang lain.
func (n *Notifier) Send(ctx context.Context, phones []string, text string) (Report, error) {
	if !n.Enabled() {
		return Report{}, errors.New("notifier WhatsApp non configuré")
	}
	var rep Report
	for _, p := range phones {
		to := FormatPhone(p, n.cfg.DefaultCountryCode)
		if to == "" {
			rep.Results = append(rep.Results, SendResult{Phone: p, Error: "numéro invalide"})
			continue
		}
		id, err := n.sendOne(ctx, to, text)
		if err != nil {
			log.Printf("[WARN] whatsapp ke %s gagal: %v", to, err)
			rep.Results = append(rep.Results, SendResult{Phone: to, Error: err.Error()})
			continue
		}
		log.Printf("[INFO] whatsapp terkirim ke %s id=%s", to, id)
		rep.Results = append(rep.Results, SendResult{Phone: to, OK: true, MessageID: id})
	}
	return rep, nil
}
