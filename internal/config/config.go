package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	Environment     string
	LogLevel        string
	CatalogPath     string
	AllowedOrigins  []string
	ContactRate     int
	ContactBurst    int
	EnableMetrics   bool
	EnableSwagger   bool
	ShutdownTimeout time.Duration
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Load reads configuration from the environment, after merging a .env file
// from the working directory when one exists. Existing variables win.
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("APP_ENV", "development"),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CatalogPath:     os.Getenv("CATALOG_PATH"),
		AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", "*")),
		ContactRate:     getEnvAsInt("CONTACT_RATE", 10),
		ContactBurst:    getEnvAsInt("CONTACT_BURST", 5),
		EnableMetrics:   os.Getenv("ENABLE_METRICS") == "true",
		EnableSwagger:   os.Getenv("ENABLE_SWAGGER") == "true",
		ShutdownTimeout: 10 * time.Second,
	}

	if s := os.Getenv("SHUTDOWN_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			config.ShutdownTimeout = d
		}
	}

	return config
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port)
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	if c.ContactRate < 0 {
		return errors.New("CONTACT_RATE cannot be negative")
	}
	if c.ContactRate > 0 && c.ContactBurst <= 0 {
		return errors.New("CONTACT_BURST must be positive when CONTACT_RATE is set")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if len(c.AllowedOrigins) == 0 {
		return errors.New("ALLOWED_ORIGINS cannot be empty")
	}
	if c.IsProduction() {
		for _, o := range c.AllowedOrigins {
			if o == "*" {
				return errors.New("ALLOWED_ORIGINS must list explicit origins in production")
			}
		}
	}
	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); err != nil {
			return fmt.Errorf("CATALOG_PATH: %w", err)
		}
	}
	return nil
}

// LoadAndValidate loads configuration and validates it
func LoadAndValidate() (*Config, error) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
