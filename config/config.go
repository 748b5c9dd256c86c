package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all console configuration
type Config struct {
	API           APIConfig
	Session       SessionConfig
	Logging       LoggingConfig
	Cache         CacheConfig
	Observability ObservabilityConfig
	AppEnv        string
}

type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
	PageSize       int
	RateLimitRPS   float64
	RateLimitBurst int
}

type SessionConfig struct {
	// File holds the persisted session (token + username) between runs.
	File string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type CacheConfig struct {
	ImageTTLSeconds int
}

type ObservabilityConfig struct {
	ExporterEndpoint string
	ServiceName      string
	ServiceVersion   string
	// MetricsAddr, when non-empty, serves Prometheus metrics on that address.
	MetricsAddr string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("APP_ENV", "production")
	v.SetDefault("API_URL", "http://localhost:5000")
	v.SetDefault("API_TIMEOUT_SECONDS", 30)
	v.SetDefault("PAGE_SIZE", 10)
	v.SetDefault("API_RATE_LIMIT_RPS", 10.0)
	v.SetDefault("API_RATE_LIMIT_BURST", 20)
	v.SetDefault("SESSION_FILE", defaultSessionFile())
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("IMAGE_CACHE_TTL_SECONDS", 300)
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_SERVICE_NAME", "empdesk-console")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("METRICS_ADDR", "")

	v.AutomaticEnv()

	cfg := &Config{
		AppEnv: v.GetString("APP_ENV"),
		API: APIConfig{
			BaseURL:        strings.TrimRight(v.GetString("API_URL"), "/"),
			TimeoutSeconds: v.GetInt("API_TIMEOUT_SECONDS"),
			PageSize:       v.GetInt("PAGE_SIZE"),
			RateLimitRPS:   v.GetFloat64("API_RATE_LIMIT_RPS"),
			RateLimitBurst: v.GetInt("API_RATE_LIMIT_BURST"),
		},
		Session: SessionConfig{
			File: v.GetString("SESSION_FILE"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Cache: CacheConfig{
			ImageTTLSeconds: v.GetInt("IMAGE_CACHE_TTL_SECONDS"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint: v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:      v.GetString("O11Y_SERVICE_NAME"),
			ServiceVersion:   v.GetString("O11Y_SERVICE_VERSION"),
			MetricsAddr:      v.GetString("METRICS_ADDR"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_URL is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("API_URL must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("API_TIMEOUT_SECONDS must be positive")
	}
	if c.API.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive")
	}
	if c.API.RateLimitRPS <= 0 || c.API.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit settings must be positive")
	}
	if c.Session.File == "" {
		return fmt.Errorf("SESSION_FILE is required")
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".empdesk/session.json"
	}
	return filepath.Join(home, ".empdesk", "session.json")
}
