package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Test defaults
	if cfg.Earthdata.Host != "urs.earthdata.nasa.gov" {
		t.Errorf("expected default Earthdata host urs.earthdata.nasa.gov, got %s", cfg.Earthdata.Host)
	}

	if cfg.CMR.BaseURL != "https://cmr.earthdata.nasa.gov/search" {
		t.Errorf("expected default CMR base URL, got %s", cfg.CMR.BaseURL)
	}

	if cfg.CMR.Provider != "NSIDC_ECS" {
		t.Errorf("expected default CMR provider NSIDC_ECS, got %s", cfg.CMR.Provider)
	}

	if cfg.CMR.PageSize != 100 {
		t.Errorf("expected default CMR page size 100, got %d", cfg.CMR.PageSize)
	}

	if cfg.NSIDC.BaseURL != "https://n5eil02u.ecs.nsidc.org" {
		t.Errorf("expected default NSIDC base URL, got %s", cfg.NSIDC.BaseURL)
	}

	if cfg.NSIDC.Timeout != 120*time.Second {
		t.Errorf("expected default NSIDC timeout 120s, got %s", cfg.NSIDC.Timeout)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("EARTHDATA_USERNAME", "someuser")
	os.Setenv("CMR_PROVIDER", "NSIDC_CPRD")
	os.Setenv("CMR_TIMEOUT", "45s")
	os.Setenv("CMR_PAGE_SIZE", "25")
	os.Setenv("NSIDC_BASE_URL", "https://egi.example.com")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")

	defer func() {
		os.Unsetenv("EARTHDATA_USERNAME")
		os.Unsetenv("CMR_PROVIDER")
		os.Unsetenv("CMR_TIMEOUT")
		os.Unsetenv("CMR_PAGE_SIZE")
		os.Unsetenv("NSIDC_BASE_URL")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("LOG_FORMAT")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Earthdata.Username != "someuser" {
		t.Errorf("expected username someuser, got %s", cfg.Earthdata.Username)
	}

	if cfg.CMR.Provider != "NSIDC_CPRD" {
		t.Errorf("expected CMR provider NSIDC_CPRD, got %s", cfg.CMR.Provider)
	}

	if cfg.CMR.Timeout != 45*time.Second {
		t.Errorf("expected CMR timeout 45s, got %s", cfg.CMR.Timeout)
	}

	if cfg.CMR.PageSize != 25 {
		t.Errorf("expected CMR page size 25, got %d", cfg.CMR.PageSize)
	}

	if cfg.NSIDC.BaseURL != "https://egi.example.com" {
		t.Errorf("expected NSIDC base URL https://egi.example.com, got %s", cfg.NSIDC.BaseURL)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}

	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format json, got %s", cfg.Logging.Format)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Earthdata: EarthdataConfig{
				Host: "urs.earthdata.nasa.gov",
			},
			CMR: CMRConfig{
				BaseURL:  "https://cmr.earthdata.nasa.gov/search",
				Provider: "NSIDC_ECS",
				Timeout:  30 * time.Second,
				PageSize: 100,
			},
			NSIDC: NSIDCConfig{
				BaseURL: "https://n5eil02u.ecs.nsidc.org",
				Timeout: 120 * time.Second,
			},
			Logging: LoggingConfig{
				Level:  "info",
				Format: "text",
			},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{
			name:      "valid config",
			mutate:    func(*Config) {},
			wantError: false,
		},
		{
			name:      "missing Earthdata host",
			mutate:    func(c *Config) { c.Earthdata.Host = "" },
			wantError: true,
		},
		{
			name:      "missing CMR base URL",
			mutate:    func(c *Config) { c.CMR.BaseURL = "" },
			wantError: true,
		},
		{
			name:      "zero CMR timeout",
			mutate:    func(c *Config) { c.CMR.Timeout = 0 },
			wantError: true,
		},
		{
			name:      "zero CMR page size",
			mutate:    func(c *Config) { c.CMR.PageSize = 0 },
			wantError: true,
		},
		{
			name:      "missing NSIDC base URL",
			mutate:    func(c *Config) { c.NSIDC.BaseURL = "" },
			wantError: true,
		},
		{
			name:      "negative NSIDC timeout",
			mutate:    func(c *Config) { c.NSIDC.Timeout = -time.Second },
			wantError: true,
		},
		{
			name:      "invalid log level",
			mutate:    func(c *Config) { c.Logging.Level = "verbose" },
			wantError: true,
		},
		{
			name:      "invalid log format",
			mutate:    func(c *Config) { c.Logging.Format = "xml" },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantError && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
