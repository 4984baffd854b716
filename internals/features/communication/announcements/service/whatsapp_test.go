package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/features/communication/announcements/model"
)

func TestFormatPhone(t *testing.T) {
	cases := []struct{ in, cc, want string }{
		{"+509 3712-3456", "509", "+50937123456"},
		{"37123456", "509", "+50937123456"},
		{"50937123456", "509", "+50937123456"},
		{"0033 6 12 34 56 78", "509", "+33612345678"},
		{"(555) 123-4567", "1", "+15551234567"},
		{"abc", "1", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatPhone(tc.in, tc.cc), tc.in)
	}
}

func TestFormatAnnouncement(t *testing.T) {
	exp := time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC)
	a := &model.AnnouncementModel{
		AnnouncementTitle:       "Réunion parents",
		AnnouncementContent:     "Samedi à 10h.",
		AnnouncementIsImportant: true,
		AnnouncementExpiresAt:   &exp,
	}
	n := NewNotifier(configs.WhatsAppConfig{IncludeExpiry: true, IncludeFooter: true, FooterText: "Merci."})
	msg := n.FormatAnnouncement(a)
	assert.Contains(t, msg, "*NOUVELLE ANNONCE*")
	assert.Contains(t, msg, "*Réunion parents*")
	assert.Contains(t, msg, "IMPORTANT")
	assert.Contains(t, msg, "Date d'expiration: 30/11/2024")
	assert.Contains(t, msg, "Merci.")

	n = NewNotifier(configs.WhatsAppConfig{})
	msg = n.FormatAnnouncement(a)
	assert.NotContains(t, msg, "expiration")
	assert.NotContains(t, msg, "Merci.")
}

func TestNotifierSend(t *testing.T) {
	var mu sync.Mutex
	var got []sendPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		var p sendPayload
		require.NoError(t, sonic.Unmarshal(body, &p))
		mu.Lock()
		got = append(got, p)
		mu.Unlock()
		if p.To == "+5091234" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"invalid number"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"msgId":42}}`))
	}))
	defer srv.Close()

	n := NewNotifier(configs.WhatsAppConfig{
		APIURL: srv.URL, APIKey: "secret", DefaultCountryCode: "509", Timeout: 2 * time.Second,
	})
	rep, err := n.Send(context.Background(), []string{"37123456", "1234", "---"}, "Bonjour")
	require.NoError(t, err)
	require.Len(t, rep.Results, 3)
	assert.True(t, rep.Results[0].OK)
	assert.Equal(t, "42", rep.Results[0].MessageID)
	assert.False(t, rep.Results[1].OK)
	assert.Contains(t, rep.Results[1].Error, "400")
	assert.Equal(t, "numéro invalide", rep.Results[2].Error)
	assert.Equal(t, 1, rep.Sent())
	assert.Equal(t, 2, rep.Failed())

	require.Len(t, got, 2)
	assert.Equal(t, "+50937123456", got[0].To)
	assert.Equal(t, "Bonjour", got[0].Text)
}

func TestNotifierDisabled(t *testing.T) {
	var n *Notifier
	assert.False(t, n.Enabled())
	_, err := NewNotifier(configs.WhatsAppConfig{}).Send(context.Background(), []string{"1"}, "x")
	assert.Error(t, err)
}

func TestAnnouncementVisibility(t *testing.T) {
	today := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	a := model.AnnouncementModel{AnnouncementAudience: pq.StringArray{"professeur"}}
	assert.True(t, a.VisibleTo("professeur"))
	assert.False(t, a.VisibleTo("parent"))
	a.AnnouncementIsPublic = true
	assert.True(t, a.VisibleTo("parent"))

	a.AnnouncementExpiresAt = &today
	assert.False(t, a.Expired(today))
	a.AnnouncementExpiresAt = &yesterday
	assert.True(t, a.Expired(today))
}
