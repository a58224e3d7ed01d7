package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envKeys = []string{
	"PORT", "APP_ENV", "LOG_LEVEL", "CATALOG_PATH", "ALLOWED_ORIGINS",
	"CONTACT_RATE", "CONTACT_BURST", "ENABLE_METRICS", "ENABLE_SWAGGER", "SHUTDOWN_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func validConfig() *Config {
	return &Config{
		Port:            "8080",
		Environment:     "development",
		LogLevel:        "info",
		AllowedOrigins:  []string{"*"},
		ContactRate:     10,
		ContactBurst:    5,
		ShutdownTimeout: 10 * time.Second,
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Expected default PORT, got %s", cfg.Port)
	}
	if cfg.Environment != "development" {
		t.Errorf("Expected default APP_ENV, got %s", cfg.Environment)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default LOG_LEVEL, got %s", cfg.LogLevel)
	}
	if cfg.CatalogPath != "" {
		t.Errorf("Expected empty CATALOG_PATH, got %s", cfg.CatalogPath)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("Expected default ALLOWED_ORIGINS, got %v", cfg.AllowedOrigins)
	}
	if cfg.ContactRate != 10 || cfg.ContactBurst != 5 {
		t.Errorf("Expected default contact throttle 10/5, got %d/%d", cfg.ContactRate, cfg.ContactBurst)
	}
	if cfg.EnableMetrics || cfg.EnableSwagger {
		t.Error("Expected metrics and swagger disabled by default")
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("Expected default SHUTDOWN_TIMEOUT, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Expected addr :8080, got %s", cfg.Addr())
	}
}

func TestLoadWithEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ALLOWED_ORIGINS", "https://standardglassco.com, https://www.standardglassco.com,")
	t.Setenv("CONTACT_RATE", "3")
	t.Setenv("CONTACT_BURST", "1")
	t.Setenv("ENABLE_METRICS", "true")
	t.Setenv("ENABLE_SWAGGER", "true")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Expected PORT from env, got %s", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Error("Expected production environment")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LOG_LEVEL lowercased, got %s", cfg.LogLevel)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://www.standardglassco.com" {
		t.Errorf("Expected two trimmed origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.ContactRate != 3 || cfg.ContactBurst != 1 {
		t.Errorf("Expected contact throttle 3/1, got %d/%d", cfg.ContactRate, cfg.ContactBurst)
	}
	if !cfg.EnableMetrics || !cfg.EnableSwagger {
		t.Error("Expected metrics and swagger enabled")
	}
	if cfg.ShutdownTimeout != 2*time.Second {
		t.Errorf("Expected SHUTDOWN_TIMEOUT from env, got %v", cfg.ShutdownTimeout)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONTACT_RATE", "lots")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg := Load()
	if cfg.ContactRate != 10 {
		t.Errorf("Expected default CONTACT_RATE, got %d", cfg.ContactRate)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("Expected default SHUTDOWN_TIMEOUT, got %v", cfg.ShutdownTimeout)
	}
}

func TestValidate(t *testing.T) {
	catalogFile := filepath.Join(t.TempDir(), "projects.yaml")
	if err := os.WriteFile(catalogFile, []byte("version: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"non-numeric port", func(c *Config) { c.Port = "http" }, true},
		{"port out of range", func(c *Config) { c.Port = "70000" }, true},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"negative contact rate", func(c *Config) { c.ContactRate = -1 }, true},
		{"rate without burst", func(c *Config) { c.ContactBurst = 0 }, true},
		{"throttle disabled", func(c *Config) { c.ContactRate = 0; c.ContactBurst = 0 }, false},
		{"zero shutdown timeout", func(c *Config) { c.ShutdownTimeout = 0 }, true},
		{"no origins", func(c *Config) { c.AllowedOrigins = nil }, true},
		{"wildcard origin in production", func(c *Config) { c.Environment = "production" }, true},
		{"explicit origin in production", func(c *Config) {
			c.Environment = "production"
			c.AllowedOrigins = []string{"https://standardglassco.com"}
		}, false},
		{"missing catalog file", func(c *Config) { c.CatalogPath = filepath.Join(t.TempDir(), "nope.yaml") }, true},
		{"existing catalog file", func(c *Config) { c.CatalogPath = catalogFile }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.expectError {
				t.Errorf("Validate() error = %v, expectError %v", err, tt.expectError)
			}
		})
	}
}

func TestLoadAndValidate(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadAndValidate()
	if err != nil {
		t.Errorf("LoadAndValidate() failed with defaults: %v", err)
	}
	if cfg == nil {
		t.Error("LoadAndValidate() returned nil config with valid config")
	}

	t.Setenv("LOG_LEVEL", "chatty")
	_, err = LoadAndValidate()
	if err == nil {
		t.Error("LoadAndValidate() should fail with invalid config")
	}
}
