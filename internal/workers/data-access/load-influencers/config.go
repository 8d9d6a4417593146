package loadinfluencers

import (
	"fmt"
	"unicode/utf8"

	"influencer-outreach/internal/common/config"
)

type Config struct {
	Path      string `mapstructure:"path"`
	Delimiter string `mapstructure:"delimiter"`
	MaxRows   int    `mapstructure:"max_rows"`
}

func DefaultConfig() *Config {
	return &Config{
		Path:      "influencers.csv",
		Delimiter: ",",
	}
}

// FromAppConfig builds the loader config from the data section.
func FromAppConfig(cfg config.DataConfig) *Config {
	c := DefaultConfig()
	if cfg.Path != "" {
		c.Path = cfg.Path
	}
	if cfg.Delimiter != "" {
		c.Delimiter = cfg.Delimiter
	}
	c.MaxRows = cfg.MaxRows
	return c
}

func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character")
	}
	if c.MaxRows < 0 {
		return fmt.Errorf("max_rows must not be negative")
	}
	return nil
}

func (c *Config) delimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
