// internal/workers/ai-conversation/recommend-influencers/config.go
package recommendinfluencers

import (
	"fmt"
	"time"

	"influencer-outreach/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	Event   config.EventConfig
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 120 * time.Second,
	}
}

// FromAppConfig builds the recommender config from the application config.
func FromAppConfig(cfg *config.Config) *Config {
	c := DefaultConfig()
	if cfg.GenAI.Timeout > 0 {
		c.Timeout = config.GetDuration(cfg.GenAI.Timeout)
	}
	c.Event = cfg.Event
	return c
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Event.Name == "" {
		return fmt.Errorf("event name is required")
	}
	return nil
}
