// Package config loads client configuration: defaults, YAML file,
// environment, then command-line overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables
const (
	EnvConfig   = "QAFORUM_CONFIG"
	EnvServer   = "QAFORUM_SERVER"
	EnvToken    = "QAFORUM_TOKEN"
	EnvDB       = "QAFORUM_DB"
	EnvLogLevel = "QAFORUM_LOG_LEVEL"
)

// Config holds all client configuration
type Config struct {
	ServerURL            string        `yaml:"server_url" validate:"required,url"`
	Token                string        `yaml:"token"`
	DBPath               string        `yaml:"db_path" validate:"required"`
	LogLevel             string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	RequestTimeout       time.Duration `yaml:"request_timeout" validate:"gt=0"`
	RefreshRatePerMinute float64       `yaml:"refresh_rate_per_minute" validate:"gt=0"`
	RefreshBurst         int           `yaml:"refresh_burst" validate:"gt=0"`
	PageLimit            int           `yaml:"page_limit" validate:"min=1,max=100"`
}

// Overrides - значения из флагов командной строки; пустые не применяются
type Overrides struct {
	ServerURL string
	Token     string
	DBPath    string
	LogLevel  string
}

var validate = validator.New()

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		ServerURL:            "http://localhost:8080",
		DBPath:               "qaforum-client.db",
		LogLevel:             "warn",
		RequestTimeout:       30 * time.Second,
		RefreshRatePerMinute: 6,
		RefreshBurst:         2,
		PageLimit:            20,
	}
}

// Load reads configuration from path. A missing file is not an error.
func Load(path string, overrides Overrides) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Файл не обязателен
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config yaml: %w", err)
			}
		}
	}

	applyEnvironmentOverrides(cfg)
	cfg.apply(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Path returns the config file path from environment or the user config dir
func Path() string {
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "qaforum.yaml"
	}
	return filepath.Join(dir, "qaforum", "config.yaml")
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Field(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// SlogLevel converts LogLevel to slog.Level
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func applyEnvironmentOverrides(cfg *Config) {
	cfg.apply(Overrides{
		ServerURL: os.Getenv(EnvServer),
		Token:     os.Getenv(EnvToken),
		DBPath:    os.Getenv(EnvDB),
		LogLevel:  os.Getenv(EnvLogLevel),
	})
}

func (c *Config) apply(o Overrides) {
	if o.ServerURL != "" {
		c.ServerURL = strings.TrimRight(o.ServerURL, "/")
	}
	if o.Token != "" {
		c.Token = o.Token
	}
	if o.DBPath != "" {
		c.DBPath = o.DBPath
	}
	if o.LogLevel != "" {
		c.LogLevel = strings.ToLower(o.LogLevel)
	}
}
