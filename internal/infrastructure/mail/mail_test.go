package mail

import (
	"bytes"
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/playverse/gamestore/internal/core/ports"
)

type captured struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	body string
}

func newCapturingMailer(cfg SMTPConfig, fail error) (*SMTPMailer, *captured) {
	c := &captured{}
	m := NewSMTPMailer(cfg, zerolog.Nop())
	m.send = func(_ context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		c.addr, c.auth, c.from, c.to, c.body = addr, a, from, to, string(msg)
		return fail
	}
	return m, c
}

func TestSMTPMailer_Multipart(t *testing.T) {
	m, c := newCapturingMailer(SMTPConfig{Host: "smtp.local", Port: 587, Username: "u", Password: "p", From: "store@playverse.test"}, nil)

	err := m.Send(context.Background(), ports.MailMessage{
		To:      "ana@example.com",
		Subject: "Reset",
		Text:    "plain body",
		HTML:    "<p>html body</p>",
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if c.addr != "smtp.local:587" || c.from != "store@playverse.test" || c.auth == nil {
		t.Fatalf("unexpected envelope: %+v", c)
	}
	if len(c.to) != 1 || c.to[0] != "ana@example.com" {
		t.Fatalf("unexpected recipients: %v", c.to)
	}
	for _, want := range []string{"Subject: Reset", "multipart/alternative", "plain body", "<p>html body</p>"} {
		if !strings.Contains(c.body, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestSMTPMailer_AnonymousPlainText(t *testing.T) {
	m, c := newCapturingMailer(SMTPConfig{Host: "smtp.local", Port: 25, From: "store@playverse.test"}, nil)

	if err := m.Send(context.Background(), ports.MailMessage{To: "a@b.c", Subject: "s", Text: "hi"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if c.auth != nil {
		t.Fatalf("expected no auth without credentials")
	}
	if !strings.Contains(c.body, "text/plain") || strings.Contains(c.body, "multipart") {
		t.Fatalf("expected a plain message, got %q", c.body)
	}
}

func TestSMTPMailer_Errors(t *testing.T) {
	m, _ := newCapturingMailer(SMTPConfig{Port: 25, From: "x@y.z"}, nil)
	if err := m.Send(context.Background(), ports.MailMessage{To: "a@b.c"}); err == nil {
		t.Fatalf("expected missing host error")
	}

	m, _ = newCapturingMailer(SMTPConfig{Host: "smtp.local", Port: 25}, nil)
	if err := m.Send(context.Background(), ports.MailMessage{To: "a@b.c"}); err == nil {
		t.Fatalf("expected missing from error")
	}

	relay := errors.New("relay refused")
	m, _ = newCapturingMailer(SMTPConfig{Host: "smtp.local", Port: 25, From: "x@y.z"}, relay)
	if err := m.Send(context.Background(), ports.MailMessage{To: "a@b.c"}); !errors.Is(err, relay) {
		t.Fatalf("expected relay error, got %v", err)
	}
}

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	m := New("log", SMTPConfig{}, zerolog.New(&buf))

	if err := m.Send(context.Background(), ports.MailMessage{To: "a@b.c", Subject: "Reset", Text: "link"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if !strings.Contains(buf.String(), "a@b.c") || !strings.Contains(buf.String(), "outbound mail") {
		t.Fatalf("expected logged message, got %q", buf.String())
	}
	if _, ok := New("smtp", SMTPConfig{}, zerolog.Nop()).(*SMTPMailer); !ok {
		t.Fatalf("smtp mode must build an SMTPMailer")
	}
}
