// Package mailer sends outbound email through the configured SMTP relay.
// The dialer is built once from injected configuration; callers get a
// synchronous Send whose error return is the delivery result.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"harborview.org/internal/config"
)

// Sender delivers a single email. Implemented by Mailer; handlers depend
// on this so tests can capture outbound mail.
type Sender interface {
	Send(email Email) error
}

// Email is one outbound message.
type Email struct {
	To      []string
	Subject string
	Body    string
}

// Mailer sends email via SMTP using gomail.
type Mailer struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

// New builds a Mailer from SMTP configuration.
func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send dials the relay and delivers the message. A nil return means the
// relay accepted it; any failure carries the reason.
func (m *Mailer) Send(email Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", email.To...)
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/plain", email.Body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send to %v: %w", email.To, err)
	}
	return nil
}
