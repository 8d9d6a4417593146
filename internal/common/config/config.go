// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Data     DataConfig     `mapstructure:"data"`
	GenAI    GenAIConfig    `mapstructure:"genai"`
	Mail     MailConfig     `mapstructure:"mail"`
	Event    EventConfig    `mapstructure:"event"`
	Template TemplateConfig `mapstructure:"template"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// DataConfig describes the influencer table.
type DataConfig struct {
	Path      string `mapstructure:"path"`
	Delimiter string `mapstructure:"delimiter"`
	MaxRows   int    `mapstructure:"max_rows"` // 0 = no limit
}

// GenAIConfig holds the Gemini API settings.
type GenAIConfig struct {
	APIKey       string  `mapstructure:"api_key"`
	Model        string  `mapstructure:"model"`
	BaseURL      string  `mapstructure:"base_url"`
	Temperature  float64 `mapstructure:"temperature"`
	JSONResponse bool    `mapstructure:"json_response"`
	Timeout      int     `mapstructure:"timeout"` // milliseconds
}

// MailConfig holds outbound mail settings.
type MailConfig struct {
	Provider    string `mapstructure:"provider"` // smtp or ses
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	Timeout     int    `mapstructure:"timeout"` // milliseconds

	SMTP struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
	} `mapstructure:"smtp"`

	SES struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"ses"`
}

// HasCredentials reports whether enough is configured to deliver mail.
func (m MailConfig) HasCredentials() bool {
	if m.FromAddress == "" || m.FromAddress == placeholderAddress {
		return false
	}
	if m.Provider == "ses" {
		return m.SES.Region != ""
	}
	return m.SMTP.Username != "" && m.SMTP.Password != ""
}

// EventConfig is the event the outreach invites influencers to. It feeds
// both the AI prompt and the invitation template.
type EventConfig struct {
	Name        string   `mapstructure:"name"`
	Host        string   `mapstructure:"host"`
	Location    string   `mapstructure:"location"`
	Theme       string   `mapstructure:"theme"`
	Tagline     string   `mapstructure:"tagline"`
	HeaderImage string   `mapstructure:"header_image"`
	ClosingLine string   `mapstructure:"closing_line"`
	Signature   []string `mapstructure:"signature"`
	FooterText  string   `mapstructure:"footer_text"`
}

// TemplateConfig controls the invitation template.
type TemplateConfig struct {
	Path         string `mapstructure:"path"` // empty = embedded template
	SanitizeBody bool   `mapstructure:"sanitize_body"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig controls the end-of-run metrics push.
type MetricsConfig struct {
	PushgatewayURL string `mapstructure:"pushgateway_url"`
	Job            string `mapstructure:"job"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
