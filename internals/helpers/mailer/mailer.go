// Package mailer mengirim email (newsletter) lewat SendGrid, atau menulis
// ke log jika API key tidak diset.
package mailer

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

func (m Message) valid() bool {
	return len(m.To) > 0 && (m.Text != "" || m.HTML != "")
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
	Kind() string
}

// New: SendGrid jika apiKey terisi, selain itu console.
func New(apiKey, appName, from string) Sender {
	if strings.TrimSpace(apiKey) != "" {
		return NewSendGrid(apiKey, appName, from)
	}
	return NewConsole(appName, from)
}

/* =======================================================================
   SendGrid
======================================================================= */

const (
	sgHost     = "https://api.sendgrid.com"
	sgEndpoint = "/v3/mail/send"
)

type SendGridSender struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
}

func NewSendGrid(key, appName, from string) *SendGridSender {
	return &SendGridSender{
		key:        key,
		from:       sgmail.NewEmail(appName, from),
		subjPrefix: "[" + appName + "] ",
	}
}

func (s *SendGridSender) Kind() string { return "sendgrid" }

func (s *SendGridSender) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = s.subjPrefix + msg.Subject
	// penerima newsletter tidak saling melihat
	p.AddTos(s.from)
	for _, to := range msg.To {
		p.AddBCCs(sgmail.NewEmail("", to))
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	if msg.Text != "" {
		m.AddContent(sgmail.NewContent("text/plain", msg.Text))
	}
	if msg.HTML != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTML))
	}
	return m
}

// sgAPI diganti di test.
var sgAPI = sendgrid.API

type sgResult struct {
	res *rest.Response
	err error
}

// Send: sendgrid.API tidak menerima context, jadi pemanggilan dibungkus
// goroutine dan dibatalkan lewat ctx.
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if !msg.valid() {
		return errors.New("message tanpa penerima atau isi")
	}
	req := sendgrid.GetRequest(s.key, sgEndpoint, sgHost)
	req.Method = rest.Post
	req.Body = sgmail.GetRequestBody(s.prepare(msg))

	api := sgAPI
	done := make(chan sgResult, 1)
	go func() {
		res, err := api(req)
		done <- sgResult{res, err}
	}()

	var out sgResult
	select {
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "sendgrid")
	case out = <-done:
	}
	if out.err != nil {
		return errors.Wrap(out.err, "sendgrid")
	}
	if out.res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", out.res.StatusCode, out.res.Body)
	}
	return nil
}

/* =======================================================================
   Console
======================================================================= */

type ConsoleSender struct {
	from       string
	subjPrefix string

	mu   sync.Mutex
	Sent []Message
}

func NewConsole(appName, from string) *ConsoleSender {
	return &ConsoleSender{from: from, subjPrefix: "[" + appName + "] "}
}

func (s *ConsoleSender) Kind() string { return "console" }

func (s *ConsoleSender) Send(_ context.Context, msg Message) error {
	if !msg.valid() {
		return errors.New("message tanpa penerima atau isi")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "Subject: %s\r\n", s.subjPrefix+msg.Subject)
	fmt.Fprintf(&b, "Bcc: %s\r\n\r\n", strings.Join(msg.To, ", "))
	if msg.Text != "" {
		b.WriteString(msg.Text)
	} else {
		b.WriteString(msg.HTML)
	}
	log.Printf("[MAIL] console\n%s", b.String())

	s.mu.Lock()
	s.Sent = append(s.Sent, msg)
	s.mu.Unlock()
	return nil
}
