// Package config reads settings from the environment, an optional .env file
// and an optional YAML chart options file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"recipebook-tracker/internal/api"
	"recipebook-tracker/internal/chart"
)

// Config is the full set of settings for the CLI and the dev server.
type Config struct {
	Client ClientConfig
	Log    LogConfig
	Server ServerConfig
	Chart  chart.Options

	ChartConfigPath string
}

// ClientConfig holds backend connection settings
type ClientConfig struct {
	BaseURL   string
	CSRFPage  string
	CSRFToken string
	Timeout   time.Duration
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
}

// ServerConfig holds dev server settings
type ServerConfig struct {
	Port string
	CSRF bool
	Seed bool
}

// Load reads .env (if present) and the environment. Variables already set in
// the environment win over .env entries.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Client: ClientConfig{
			BaseURL:   getEnvOrDefault("RECIPEBOOK_BASE_URL", "http://localhost:8080"),
			CSRFPage:  getEnvOrDefault("RECIPEBOOK_CSRF_PAGE", "/ingredients/"),
			CSRFToken: os.Getenv("RECIPEBOOK_CSRF_TOKEN"),
			Timeout:   getEnvDurationOrDefault("RECIPEBOOK_TIMEOUT", 0),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "console"),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
			CSRF: getEnvBoolOrDefault("DEVSERVER_CSRF", true),
			Seed: getEnvBoolOrDefault("DEVSERVER_SEED", false),
		},
		ChartConfigPath: getEnvOrDefault("RECIPEBOOK_CHART_CONFIG", "chart.yaml"),
	}

	opts, err := chart.LoadOptions(cfg.ChartConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load chart options: %w", err)
	}
	cfg.Chart = opts

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields every command needs.
func (c *Config) Validate() error {
	if c.Client.BaseURL == "" {
		return errors.New("base URL is required")
	}
	if c.Client.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Client.Timeout)
	}
	if c.Server.Port == "" {
		return errors.New("port is required")
	}
	return c.Chart.Validate()
}

// ClientOptions turns the client settings into api options. A static token
// takes precedence over reading the CSRF page.
func (c ClientConfig) ClientOptions(log *zap.Logger) []api.Option {
	opts := []api.Option{api.WithLogger(log), api.WithTimeout(c.Timeout)}
	switch {
	case c.CSRFToken != "":
		opts = append(opts, api.WithTokenSource(api.StaticToken(c.CSRFToken)))
	case c.CSRFPage != "":
		opts = append(opts, api.WithCSRFPage(c.CSRFPage))
	}
	return opts
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
