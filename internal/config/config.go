// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/catalog-browser/internal/catalog"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	UI       UIConfig       `yaml:"ui"`
	Sessions SessionsConfig `yaml:"sessions"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Addr returns the host:port listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CatalogConfig defines the remote product catalog settings.
type CatalogConfig struct {
	BaseURL   string          `yaml:"base_url"`
	PageSize  int             `yaml:"page_size"`
	Timeout   time.Duration   `yaml:"timeout"`
	UserAgent string          `yaml:"user_agent"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines outgoing catalog request throttling. A zero
// per_second disables throttling.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// UIConfig defines the product grid page settings.
type UIConfig struct {
	Title string `yaml:"title"`
	// IntersectionThreshold is the fraction of the sentinel that must be
	// visible before the next page is requested.
	IntersectionThreshold float64 `yaml:"intersection_threshold"`
}

// SessionsConfig defines browsing session lifetime.
type SessionsConfig struct {
	MaxIdle       time.Duration `yaml:"max_idle"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
	CookieName    string        `yaml:"cookie_name"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, pretty
}

const maxPageSize = 100

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation. A .env file in the same directory as the
// config file is loaded first when present; variables already set in the
// environment take precedence over it.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("checking env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyCatalogDefaults(&cfg.Catalog)
	applyUIDefaults(&cfg.UI)
	applySessionsDefaults(&cfg.Sessions)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyCatalogDefaults(c *CatalogConfig) {
	if c.BaseURL == "" {
		c.BaseURL = catalog.DefaultBaseURL
	}
	if c.PageSize == 0 {
		c.PageSize = 10
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "catalog-browser"
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
}

func applyUIDefaults(u *UIConfig) {
	if u.Title == "" {
		u.Title = "Products"
	}
	if u.IntersectionThreshold == 0 {
		u.IntersectionThreshold = 0.1
	}
}

func applySessionsDefaults(s *SessionsConfig) {
	if s.MaxIdle == 0 {
		s.MaxIdle = 30 * time.Minute
	}
	if s.SweepInterval == 0 {
		s.SweepInterval = time.Minute
	}
	if s.CookieName == "" {
		s.CookieName = "cb_session"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", cfg.Server.Port))
	}

	u, err := url.Parse(cfg.Catalog.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("catalog.base_url must be an absolute http(s) URL (got %q)", cfg.Catalog.BaseURL))
	}
	if cfg.Catalog.PageSize < 1 || cfg.Catalog.PageSize > maxPageSize {
		errs = append(
			errs,
			fmt.Errorf("catalog.page_size must be between 1 and %d (got %d)", maxPageSize, cfg.Catalog.PageSize),
		)
	}
	if cfg.Catalog.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("catalog.rate_limit.per_second must not be negative"))
	}

	if cfg.UI.IntersectionThreshold < 0 || cfg.UI.IntersectionThreshold > 1 {
		errs = append(
			errs,
			fmt.Errorf("ui.intersection_threshold must be between 0 and 1 (got %g)", cfg.UI.IntersectionThreshold),
		)
	}

	if cfg.Sessions.MaxIdle < cfg.Sessions.SweepInterval {
		errs = append(errs, fmt.Errorf("sessions.max_idle must not be shorter than sessions.sweep_interval"))
	}

	switch cfg.Logging.Format {
	case "text", "json", "pretty":
	default:
		errs = append(
			errs,
			fmt.Errorf("logging.format must be one of: text, json, pretty (got %q)", cfg.Logging.Format),
		)
	}

	return errors.Join(errs...)
}
