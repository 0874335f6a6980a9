// Package config loads lexend settings from defaults, an optional YAML file,
// a .env file and LEXEND_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Sessions SessionsConfig `yaml:"sessions"`
	Logging  LoggingConfig  `yaml:"logging"`
	Catalog  CatalogConfig  `yaml:"catalog"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	CORSOrigins     []string `yaml:"cors_origins"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// SessionsConfig configures the wizard session registry.
type SessionsConfig struct {
	TTL   Duration `yaml:"ttl"`
	Sweep Duration `yaml:"sweep"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level string `yaml:"level"`
	// Format is "json" or "console".
	Format string `yaml:"format"`
}

// CatalogConfig points at an alternative reference data file. Empty uses
// the embedded catalog.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// Duration is a time.Duration written as a Go duration string in YAML.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// UnmarshalYAML accepts "90s" style strings.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration string form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			CORSOrigins:     []string{"*"},
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(15 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
			MaxBodyBytes:    1 << 20,
		},
		Sessions: SessionsConfig{
			TTL:   Duration(30 * time.Minute),
			Sweep: Duration(time.Minute),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration. path may be empty; a missing file falls
// back to defaults. A .env file in the working directory is loaded first
// when present and never overrides variables that are already set.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies LEXEND_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if addr := os.Getenv("LEXEND_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("LEXEND_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("LEXEND_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}
	if origins := os.Getenv("LEXEND_CORS_ORIGINS"); origins != "" {
		c.Server.CORSOrigins = splitList(origins)
	}
	if path := os.Getenv("LEXEND_CATALOG"); path != "" {
		c.Catalog.Path = path
	}
	if ttl := os.Getenv("LEXEND_SESSION_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("config: LEXEND_SESSION_TTL: %w", err)
		}
		c.Sessions.TTL = Duration(parsed)
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("config: server.addr is required")
	}
	if c.Sessions.TTL < 0 {
		return fmt.Errorf("config: sessions.ttl must not be negative")
	}
	if c.Sessions.TTL > 0 && c.Sessions.Sweep <= 0 {
		return fmt.Errorf("config: sessions.sweep must be positive when sessions expire")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
