package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPicksBackend(t *testing.T) {
	assert.Equal(t, "console", New("", "École", "a@b.c").Kind())
	assert.Equal(t, "sendgrid", New("SG.key", "École", "a@b.c").Kind())
}

func TestConsoleSender(t *testing.T) {
	s := NewConsole("École", "no-reply@ecole.test")
	require.NoError(t, s.Send(context.Background(), Message{
		To:      []string{"p1@ecole.test", "p2@ecole.test"},
		Subject: "Lettre d'information",
		Text:    "Bonjour",
	}))
	require.Len(t, s.Sent, 1)
	assert.Equal(t, "Lettre d'information", s.Sent[0].Subject)

	assert.Error(t, s.Send(context.Background(), Message{Subject: "vide", Text: "x"}))
	assert.Error(t, s.Send(context.Background(), Message{To: []string{"a@b.c"}}))
}

func TestSendGridPrepareUsesBcc(t *testing.T) {
	s := NewSendGrid("SG.key", "École", "no-reply@ecole.test")
	m := s.prepare(Message{To: []string{"x@y.z"}, Subject: "Sujet", Text: "t", HTML: "<p>t</p>"})
	require.Len(t, m.Personalizations, 1)
	p := m.Personalizations[0]
	assert.Equal(t, "[École] Sujet", p.Subject)
	require.Len(t, p.BCC, 1)
	assert.Equal(t, "x@y.z", p.BCC[0].Address)
	assert.Len(t, m.Content, 2)
}

func stubSendGrid(t *testing.T, fn func(rest.Request) (*rest.Response, error)) {
	t.Helper()
	orig := sgAPI
	sgAPI = fn
	t.Cleanup(func() { sgAPI = orig })
}

func TestSendGridSend(t *testing.T) {
	msg := Message{To: []string{"x@y.z"}, Subject: "Sujet", Text: "t"}
	s := NewSendGrid("SG.key", "École", "no-reply@ecole.test")

	t.Run("accepted", func(t *testing.T) {
		var got rest.Request
		stubSendGrid(t, func(r rest.Request) (*rest.Response, error) {
			got = r
			return &rest.Response{StatusCode: 202}, nil
		})
		require.NoError(t, s.Send(context.Background(), msg))
		assert.Equal(t, rest.Post, got.Method)
		assert.Contains(t, string(got.Body), "x@y.z")
	})

	t.Run("rejected status", func(t *testing.T) {
		stubSendGrid(t, func(rest.Request) (*rest.Response, error) {
			return &rest.Response{StatusCode: 401, Body: "unauthorized"}, nil
		})
		err := s.Send(context.Background(), msg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("transport error", func(t *testing.T) {
		stubSendGrid(t, func(rest.Request) (*rest.Response, error) {
			return nil, errors.New("dial tcp: refused")
		})
		assert.ErrorContains(t, s.Send(context.Background(), msg), "refused")
	})

	t.Run("cancelled context", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		stubSendGrid(t, func(rest.Request) (*rest.Response, error) {
			<-release
			return &rest.Response{StatusCode: 202}, nil
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, s.Send(ctx, msg), context.Canceled)
	})
}
