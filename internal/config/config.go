// Package config loads driftmail configuration from a YAML file with
// environment-variable overrides. Defaults are applied first, then the
// file, then the environment, so an env var always wins.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// defaultMaxMessageSize is 25 MB in bytes.
const defaultMaxMessageSize = 26214400

// Config holds the complete application configuration.
type Config struct {
	SMTP    SMTPConfig    `yaml:"smtp"`
	HTTP    HTTPConfig    `yaml:"http"`
	Mailbox MailboxConfig `yaml:"mailbox"`
	Logging LoggingConfig `yaml:"logging"`
}

// SMTPConfig holds the inbound SMTP listener configuration.
type SMTPConfig struct {
	Listen         string `yaml:"listen"`
	Domain         string `yaml:"domain"`
	MaxMessageSize int64  `yaml:"max_message_size"`
}

// HTTPConfig holds the JSON API listener configuration.
type HTTPConfig struct {
	Listen string `yaml:"listen"`
	// RateLimit is the number of requests allowed per client IP within
	// each RateWindow. Zero disables rate limiting.
	RateLimit  int    `yaml:"rate_limit"`
	RateWindow string `yaml:"rate_window"` // duration string, e.g. "1m"
}

// MailboxConfig controls message retention.
type MailboxConfig struct {
	TTL             string `yaml:"ttl"`              // e.g. "1h"
	CleanupInterval string `yaml:"cleanup_interval"` // e.g. "5m"
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load builds configuration from defaults and environment variables only.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnvVars()
	return cfg, cfg.validate()
}

// LoadFromFile layers a YAML file between the defaults and the
// environment. A missing or unreadable file is an error.
func LoadFromFile(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvVars()
	return cfg, cfg.validate()
}

// RateWindowDuration returns the parsed rate-limit window.
func (c *Config) RateWindowDuration() time.Duration {
	return mustDuration(c.HTTP.RateWindow, time.Minute)
}

// TTLDuration returns how long a stored message lives.
func (c *Config) TTLDuration() time.Duration {
	return mustDuration(c.Mailbox.TTL, time.Hour)
}

// CleanupIntervalDuration returns how often expired messages are purged.
func (c *Config) CleanupIntervalDuration() time.Duration {
	return mustDuration(c.Mailbox.CleanupInterval, 5*time.Minute)
}

func (c *Config) applyDefaults() {
	c.SMTP.Listen = ":2525"
	c.SMTP.Domain = "drift.local"
	c.SMTP.MaxMessageSize = defaultMaxMessageSize
	c.HTTP.Listen = ":8080"
	c.HTTP.RateLimit = 60
	c.HTTP.RateWindow = "1m"
	c.Mailbox.TTL = "1h"
	c.Mailbox.CleanupInterval = "5m"
	c.Logging.Level = "info"
}

func (c *Config) applyEnvVars() {
	if v := os.Getenv("DRIFTMAIL_SMTP_LISTEN"); v != "" {
		c.SMTP.Listen = v
	}
	if v := os.Getenv("DRIFTMAIL_DOMAIN"); v != "" {
		c.SMTP.Domain = v
	}
	if v := os.Getenv("DRIFTMAIL_MAX_MESSAGE_SIZE"); v != "" {
		if size, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.SMTP.MaxMessageSize = size
		}
	}
	if v := os.Getenv("DRIFTMAIL_HTTP_LISTEN"); v != "" {
		c.HTTP.Listen = v
	}
	if v := os.Getenv("DRIFTMAIL_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.HTTP.RateLimit = n
		}
	}
	if v := os.Getenv("DRIFTMAIL_RATE_WINDOW"); v != "" {
		c.HTTP.RateWindow = v
	}
	if v := os.Getenv("DRIFTMAIL_TTL"); v != "" {
		c.Mailbox.TTL = v
	}
	if v := os.Getenv("DRIFTMAIL_CLEANUP_INTERVAL"); v != "" {
		c.Mailbox.CleanupInterval = v
	}
	if v := os.Getenv("DRIFTMAIL_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

// validate rejects duration strings that would otherwise be silently
// replaced by defaults at use time.
func (c *Config) validate() error {
	for name, v := range map[string]string{
		"http.rate_window":         c.HTTP.RateWindow,
		"mailbox.ttl":              c.Mailbox.TTL,
		"mailbox.cleanup_interval": c.Mailbox.CleanupInterval,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid duration for %s: %q", name, v)
		}
	}
	return nil
}

func mustDuration(v string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
