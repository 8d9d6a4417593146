// internal/workers/infrastructure/render-invitation/config.go
package renderinvitation

import (
	"fmt"

	"influencer-outreach/internal/common/config"
)

type Config struct {
	TemplatePath string // empty = embedded template
	SanitizeBody bool
	Event        config.EventConfig
}

func DefaultConfig() *Config {
	return &Config{}
}

// FromAppConfig builds the renderer config from the application config.
func FromAppConfig(cfg *config.Config) *Config {
	return &Config{
		TemplatePath: cfg.Template.Path,
		SanitizeBody: cfg.Template.SanitizeBody,
		Event:        cfg.Event,
	}
}

func (c *Config) Validate() error {
	if c.Event.Host == "" && c.Event.Name == "" {
		return fmt.Errorf("event name or host is required")
	}
	return nil
}
