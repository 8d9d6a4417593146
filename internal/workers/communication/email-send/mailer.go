package emailsend

import (
	"context"
	"fmt"

	"influencer-outreach/internal/common/aws"
)

// Mailer delivers a single email. It returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, email *Email) (string, error)
	Provider() string
}

// NewMailer returns the mailer for the configured provider.
func NewMailer(ctx context.Context, config *Config) (Mailer, error) {
	switch config.Provider {
	case ProviderSES:
		client, err := aws.NewSESClient(ctx, config.SESRegion)
		if err != nil {
			return nil, fmt.Errorf("create SES client: %w", err)
		}
		return NewSESMailer(client), nil
	case ProviderSMTP, "":
		return NewSMTPMailer(config), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", config.Provider)
	}
}
