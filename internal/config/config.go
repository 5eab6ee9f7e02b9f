package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kula-app/cdcalc/internal/logging"
)

// Environment variables read by FromEnv
const (
	// EnvConfigFile names an optional YAML file applied before the other variables
	EnvConfigFile = "CDCALC_CONFIG"

	// EnvEndpoint overrides the HyperLeda query endpoint
	EnvEndpoint = "CDCALC_ENDPOINT"

	// EnvTimeout overrides the per-request timeout (Go duration, e.g. "10s")
	EnvTimeout = "CDCALC_TIMEOUT"

	// EnvLogLevel sets the log level (debug, info, warn, error)
	EnvLogLevel = "CDCALC_LOG_LEVEL"

	// EnvUserAgent overrides the User-Agent header sent to the catalog
	EnvUserAgent = "CDCALC_USER_AGENT"
)

// DefaultEndpoint is the HyperLeda full SQL query script
const DefaultEndpoint = "http://leda.univ-lyon1.fr/fG.cgi"

// Config represents the application configuration
type Config struct {
	// Endpoint is the absolute URL of the catalog query script
	Endpoint string `yaml:"endpoint"`

	// Timeout bounds each catalog request
	Timeout time.Duration `yaml:"timeout"`

	// LogLevel is the minimum level written to stderr
	LogLevel string `yaml:"log_level"`

	// UserAgent is sent with every catalog request
	UserAgent string `yaml:"user_agent"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Endpoint:  DefaultEndpoint,
		Timeout:   30 * time.Second,
		LogLevel:  "info",
		UserAgent: "cdcalc/1.0",
	}
}

// FromEnv builds a configuration from the defaults, the optional YAML file named
// by CDCALC_CONFIG and the CDCALC_* variables, in that order of precedence.
func FromEnv(getenv func(key string) string) (*Config, error) {
	cfg := DefaultConfig()

	if path := getenv(EnvConfigFile); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if v := getenv(EnvEndpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		cfg.Timeout = d
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv(EnvUserAgent); v != "" {
		cfg.UserAgent = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the values present in a YAML file onto c
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var file struct {
		Endpoint  string `yaml:"endpoint"`
		Timeout   string `yaml:"timeout"`
		LogLevel  string `yaml:"log_level"`
		UserAgent string `yaml:"user_agent"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if file.Endpoint != "" {
		c.Endpoint = file.Endpoint
	}
	if file.Timeout != "" {
		d, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q in %s: %w", file.Timeout, path, err)
		}
		c.Timeout = d
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	if file.UserAgent != "" {
		c.UserAgent = file.UserAgent
	}
	return nil
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("endpoint %q must be an absolute URL", c.Endpoint)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
