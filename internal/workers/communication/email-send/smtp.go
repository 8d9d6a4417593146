package emailsend

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// Dialer opens one authenticated SMTP session.
type Dialer interface {
	Dial() (gomail.SendCloser, error)
}

// SMTPMailer opens a new session for every message: STARTTLS, login, one
// send, close.
type SMTPMailer struct {
	dialer Dialer
}

func NewSMTPMailer(config *Config) *SMTPMailer {
	d := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUsername, config.SMTPPassword)
	d.TLSConfig = &tls.Config{ServerName: config.SMTPHost, MinVersion: tls.VersionTLS12}
	return &SMTPMailer{dialer: d}
}

// NewSMTPMailerWithDialer is used by tests to replace the network dialer.
func NewSMTPMailerWithDialer(d Dialer) *SMTPMailer {
	return &SMTPMailer{dialer: d}
}

func (m *SMTPMailer) Provider() string {
	return ProviderSMTP
}

// Send delivers email. gomail has no context support, so the session runs in
// its own goroutine and Send returns early when ctx is done. An abandoned
// session is not interrupted: it is bounded only by gomail's 10s dial timeout
// and the server, and still closes itself when the exchange ends. The result
// is reported as failed even if the server later accepts the message.
func (m *SMTPMailer) Send(ctx context.Context, email *Email) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context cancelled before sending email: %w", err)
	}

	msg := buildMessage(email)

	done := make(chan error, 1)
	go func() {
		done <- m.deliver(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return "", err
		}
		return email.MessageID, nil
	case <-ctx.Done():
		return "", fmt.Errorf("smtp session to %s aborted: %w", email.To, ctx.Err())
	}
}

func (m *SMTPMailer) deliver(msg *gomail.Message) error {
	s, err := m.dialer.Dial()
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	if err := gomail.Send(s, msg); err != nil {
		_ = s.Close()
		return err
	}

	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close SMTP session: %w", err)
	}
	return nil
}

func buildMessage(email *Email) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", email.FromAddress, email.FromName)
	m.SetHeader("To", email.To)
	m.SetHeader("Subject", email.Subject)
	m.SetDateHeader("Date", time.Now())
	if email.MessageID != "" {
		m.SetHeader("Message-ID", email.MessageID)
	}

	if email.Text != "" {
		m.SetBody("text/plain", email.Text)
		m.AddAlternative("text/html", email.HTML)
	} else {
		m.SetBody("text/html", email.HTML)
	}
	return m
}
