package emailsend

import (
	"context"
	"net/mail"

	"influencer-outreach/internal/common/aws"
)

// HTMLSender is implemented by aws.SESClient.
type HTMLSender interface {
	SendHTML(ctx context.Context, email aws.HTMLEmail) (string, error)
}

// SESMailer sends each message with one SES SendEmail call.
type SESMailer struct {
	client HTMLSender
}

func NewSESMailer(client HTMLSender) *SESMailer {
	return &SESMailer{client: client}
}

func (m *SESMailer) Provider() string {
	return ProviderSES
}

func (m *SESMailer) Send(ctx context.Context, email *Email) (string, error) {
	from := (&mail.Address{Name: email.FromName, Address: email.FromAddress}).String()
	return m.client.SendHTML(ctx, aws.HTMLEmail{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTML,
		Text:    email.Text,
	})
}
