package config

import (
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"time"

	"edgarmcp/internal/logging"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "edgarmcp" // application name used for config directory

// Defaults applied before the config file and environment are consulted.
const (
	DefaultMaxTextBytes       = 10000
	DefaultHTTPTimeoutSeconds = 30
)

// Config holds the process configuration for edgarmcp.
//
// UserEmail is the contact identity the SEC requires on every outbound
// request. It has no default and must be present before the server may
// register any tool.
type Config struct {
	// UserEmail is sent as the User-Agent contact on all EDGAR requests.
	UserEmail string `yaml:"user_email" env:"EDGAR_USER_EMAIL"`
	// MaxTextBytes caps filing text responses before truncation applies.
	MaxTextBytes int `yaml:"max_text_bytes" env:"EDGAR_MAX_TEXT_BYTES"`
	// HTTPTimeoutSeconds bounds each outbound EDGAR request.
	HTTPTimeoutSeconds int `yaml:"http_timeout_seconds" env:"EDGAR_HTTP_TIMEOUT_SECONDS"`
}

// ConfigPath returns the standard config file path for the current platform
func ConfigPath() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, APP_NAME)
	configPath := filepath.Join(configDir, "config.yaml")

	logging.Debug("Determined config path", "path", configPath)
	return configPath, nil
}

// FindConfigFile returns the path to an existing config file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get config path", "error", err)
		return "", false
	}

	if _, err := os.Stat(primary); err == nil {
		logging.Debug("Config found at primary path", "path", primary)
		return primary, true
	}

	// Return primary path for new config
	return primary, false
}

// DefaultConfig returns a Config with sensible defaults. The contact
// identity is deliberately left empty; it must come from the config file
// or the environment.
func DefaultConfig() Config {
	return Config{
		MaxTextBytes:       DefaultMaxTextBytes,
		HTTPTimeoutSeconds: DefaultHTTPTimeoutSeconds,
	}
}

// Load builds the effective configuration: defaults, then the optional
// config file, then environment overrides. The result is not validated;
// callers decide whether a missing identity is fatal.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if path, exists := FindConfigFile(); exists {
		fileCfg, err := LoadFrom(path)
		if err != nil {
			return nil, err
		}
		cfg.merge(fileCfg)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return &cfg, nil
}

// LoadFrom loads config from a specific path
func LoadFrom(path string) (*Config, error) {
	logging.Debug("Reading config file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// merge overlays non-zero fields from other onto c.
func (c *Config) merge(other *Config) {
	if other == nil {
		return
	}
	if other.UserEmail != "" {
		c.UserEmail = other.UserEmail
	}
	if other.MaxTextBytes > 0 {
		c.MaxTextBytes = other.MaxTextBytes
	}
	if other.HTTPTimeoutSeconds > 0 {
		c.HTTPTimeoutSeconds = other.HTTPTimeoutSeconds
	}
}

// Validate checks that the configuration is servable. A missing or
// malformed contact identity is a startup failure, not a per-call one.
func (c *Config) Validate() error {
	if c.UserEmail == "" {
		return fmt.Errorf("contact identity is required: set EDGAR_USER_EMAIL or user_email in the config file")
	}
	if _, err := mail.ParseAddress(c.UserEmail); err != nil {
		return fmt.Errorf("contact identity %q is not a valid email address: %w", c.UserEmail, err)
	}
	if c.MaxTextBytes <= 0 {
		return fmt.Errorf("max_text_bytes must be positive, got %d", c.MaxTextBytes)
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("http_timeout_seconds must be positive, got %d", c.HTTPTimeoutSeconds)
	}
	return nil
}

// HTTPTimeout returns the outbound request timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	configPath, _ := FindConfigFile()
	return c.SaveTo(configPath)
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file with restrictive permissions (600) for security
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
