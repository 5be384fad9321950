// Package config provides configuration management for the NSIDC subsetting
// tool.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the application configuration loaded from environment
// variables. CLI flags override individual fields after loading.
type Config struct {
	Earthdata EarthdataConfig `envPrefix:"EARTHDATA_"`
	CMR       CMRConfig       `envPrefix:"CMR_"`
	NSIDC     NSIDCConfig     `envPrefix:"NSIDC_"`
	Logging   LoggingConfig   `envPrefix:"LOG_"`
}

// EarthdataConfig contains NASA Earthdata Login settings.
type EarthdataConfig struct {
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	Host     string `env:"HOST" envDefault:"urs.earthdata.nasa.gov"`
}

// CMRConfig contains CMR API client configuration.
type CMRConfig struct {
	BaseURL  string        `env:"BASE_URL" envDefault:"https://cmr.earthdata.nasa.gov/search"`
	Provider string        `env:"PROVIDER" envDefault:"NSIDC_ECS"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"30s"`
	PageSize int           `env:"PAGE_SIZE" envDefault:"100"`
}

// NSIDCConfig contains NSIDC EGI client configuration.
type NSIDCConfig struct {
	BaseURL string        `env:"BASE_URL" envDefault:"https://n5eil02u.ecs.nsidc.org"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"120s"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Earthdata.Host == "" {
		return fmt.Errorf("Earthdata host is required")
	}

	if c.CMR.BaseURL == "" {
		return fmt.Errorf("CMR base URL is required")
	}
	if c.CMR.Timeout <= 0 {
		return fmt.Errorf("CMR timeout must be positive, got %s", c.CMR.Timeout)
	}
	if c.CMR.PageSize < 1 {
		return fmt.Errorf("CMR page size must be at least 1, got %d", c.CMR.PageSize)
	}

	if c.NSIDC.BaseURL == "" {
		return fmt.Errorf("NSIDC base URL is required")
	}
	if c.NSIDC.Timeout <= 0 {
		return fmt.Errorf("NSIDC timeout must be positive, got %s", c.NSIDC.Timeout)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error", c.Logging.Level)
	}

	validLogFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format %q, must be one of: json, text", c.Logging.Format)
	}

	return nil
}
