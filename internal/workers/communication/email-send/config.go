package emailsend

import (
	"fmt"
	"time"

	"influencer-outreach/internal/common/config"
)

const (
	ProviderSMTP = "smtp"
	ProviderSES  = "ses"
)

type Config struct {
	Provider     string        `mapstructure:"provider"`
	Timeout      time.Duration `mapstructure:"timeout"`
	SMTPHost     string        `mapstructure:"smtp_host"`
	SMTPPort     int           `mapstructure:"smtp_port"`
	SMTPUsername string        `mapstructure:"smtp_username"`
	SMTPPassword string        `mapstructure:"smtp_password"`
	SESRegion    string        `mapstructure:"ses_region"`
	FromAddress  string        `mapstructure:"from_address"`
	FromName     string        `mapstructure:"from_name"`
	DryRun       bool          `mapstructure:"dry_run"`

	// CredentialsConfigured is false when no usable sender account is set;
	// the service then skips delivery entirely.
	CredentialsConfigured bool `mapstructure:"-"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderSMTP,
		Timeout:  30 * time.Second,
		SMTPHost: "smtp.gmail.com",
		SMTPPort: 587,
	}
}

// FromAppConfig builds the sender config from the mail section.
func FromAppConfig(mail config.MailConfig, dryRun bool) *Config {
	c := DefaultConfig()
	if mail.Provider != "" {
		c.Provider = mail.Provider
	}
	if mail.Timeout > 0 {
		c.Timeout = config.GetDuration(mail.Timeout)
	}
	if mail.SMTP.Host != "" {
		c.SMTPHost = mail.SMTP.Host
	}
	if mail.SMTP.Port > 0 {
		c.SMTPPort = mail.SMTP.Port
	}
	c.SMTPUsername = mail.SMTP.Username
	c.SMTPPassword = mail.SMTP.Password
	c.SESRegion = mail.SES.Region
	c.FromAddress = mail.FromAddress
	c.FromName = mail.FromName
	c.DryRun = dryRun
	c.CredentialsConfigured = mail.HasCredentials()
	return c
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	switch c.Provider {
	case ProviderSMTP:
		if c.SMTPHost == "" {
			return fmt.Errorf("smtp_host is required")
		}
		if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
			return fmt.Errorf("smtp_port must be between 1 and 65535")
		}
	case ProviderSES:
		if c.SESRegion == "" {
			return fmt.Errorf("ses_region is required for the ses provider")
		}
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	return nil
}
