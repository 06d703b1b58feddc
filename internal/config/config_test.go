package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Root:        ".",
		Format:      "console",
		MinScore:    0.0,
		MaxFileSize: DefaultMaxFileSize,
		BaseRate:    DefaultBaseRate,
		Concurrency: 4,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Format = "xml" },
			wantMsg: "invalid format",
		},
		{
			name:    "min score above one",
			mutate:  func(c *Config) { c.MinScore = 1.5 },
			wantMsg: "minScore",
		},
		{
			name:    "negative min score",
			mutate:  func(c *Config) { c.MinScore = -0.1 },
			wantMsg: "minScore",
		},
		{
			name:    "zero max file size",
			mutate:  func(c *Config) { c.MaxFileSize = 0 },
			wantMsg: "maxFileSize",
		},
		{
			name:    "zero base rate",
			mutate:  func(c *Config) { c.BaseRate = 0 },
			wantMsg: "baseRate",
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Concurrency = 0 },
			wantMsg: "concurrency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidateAllFormats(t *testing.T) {
	for _, format := range []string{"console", "json", "markdown"} {
		cfg := validConfig()
		cfg.Format = format
		if err := Validate(cfg); err != nil {
			t.Errorf("format %q rejected: %v", format, err)
		}
	}
}
