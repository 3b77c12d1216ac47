// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Jet     JetConfig     `yaml:"jet"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// JetConfig defines the merchant API account and endpoints.
type JetConfig struct {
	Username    string        `yaml:"username"`
	Password    string        `yaml:"password"`
	BaseURL     string        `yaml:"base_url"`
	AuthURL     string        `yaml:"auth_url"`      // default: {base_url}/token
	AuthTestURL string        `yaml:"auth_test_url"` // default: {base_url}/authcheck
	ReauthMode  string        `yaml:"reauth_mode"`   // proceed, wait
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"user_agent"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// MetricsConfig defines the optional Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
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

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a config with every default applied and no credentials.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyJetDefaults(&cfg.Jet)
	applyLoggingDefaults(&cfg.Logging)
	applyMetricsDefaults(&cfg.Metrics)
}

func applyJetDefaults(j *JetConfig) {
	if j.BaseURL == "" {
		j.BaseURL = "https://merchant-api.jet.com/api"
	}
	if j.ReauthMode == "" {
		j.ReauthMode = "proceed"
	}
	if j.Timeout == 0 {
		j.Timeout = 30 * time.Second
	}
	if j.UserAgent == "" {
		j.UserAgent = "jetctl"
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

func applyMetricsDefaults(m *MetricsConfig) {
	if m.Addr == "" {
		m.Addr = ":9090"
	}
}

// Validate reports every invalid or missing setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Jet.Username == "" {
		errs = append(errs, fmt.Errorf("jet.username is required"))
	}
	if c.Jet.Password == "" {
		errs = append(errs, fmt.Errorf("jet.password is required"))
	}

	for name, raw := range map[string]string{
		"jet.base_url":      c.Jet.BaseURL,
		"jet.auth_url":      c.Jet.AuthURL,
		"jet.auth_test_url": c.Jet.AuthTestURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an absolute URL (got %q)", name, raw))
		}
	}

	switch c.Jet.ReauthMode {
	case "proceed", "wait":
	default:
		errs = append(
			errs,
			fmt.Errorf("jet.reauth_mode must be one of: proceed, wait (got %q)", c.Jet.ReauthMode),
		)
	}

	if c.Jet.Timeout < 0 {
		errs = append(errs, fmt.Errorf("jet.timeout must not be negative"))
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(
			errs,
			fmt.Errorf("logging.format must be one of: text, json (got %q)", c.Logging.Format),
		)
	}

	return errors.Join(errs...)
}
