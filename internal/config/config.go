// Package config loads analyzer settings from YAML with sensible
// defaults for everything.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/normalize"
)

// Config holds all runtime settings.
type Config struct {
	// Locale controls numeric date interpretation: "day-first" or
	// "month-first".
	Locale string `yaml:"locale"`
	// TopMerchants caps the merchant breakdown in summaries.
	TopMerchants int `yaml:"topMerchants"`
	// MaxPages bounds paginated document inputs.
	MaxPages int `yaml:"maxPages"`
	// MaxUploadBytes bounds HTTP upload size.
	MaxUploadBytes int64 `yaml:"maxUploadBytes"`
	// ListenAddr is the HTTP listen address for serve mode.
	ListenAddr string `yaml:"listenAddr"`
	// RulesFile overrides the embedded categorization rules when set.
	RulesFile string `yaml:"rulesFile"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Locale:         string(normalize.LocaleDayFirst),
		TopMerchants:   5,
		MaxPages:       50,
		MaxUploadBytes: 10 << 20,
		ListenAddr:     ":8080",
	}
}

// Load reads a YAML config file over the defaults. Missing keys keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enums.
func (c *Config) Validate() error {
	if _, err := normalize.ParseLocale(c.Locale); err != nil {
		return fmt.Errorf("invalid locale: %w", err)
	}
	if c.TopMerchants < 1 {
		return fmt.Errorf("topMerchants must be at least 1, got %d", c.TopMerchants)
	}
	if c.MaxPages < 1 {
		return fmt.Errorf("maxPages must be at least 1, got %d", c.MaxPages)
	}
	if c.MaxUploadBytes < 1 {
		return fmt.Errorf("maxUploadBytes must be positive, got %d", c.MaxUploadBytes)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listenAddr cannot be empty")
	}
	return nil
}
