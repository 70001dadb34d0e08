// Package config loads the settings of the mailsplit command from an
// optional YAML file and the environment. Environment variables always win
// over the file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zostay/mailsplit/mimewalk"
)

// Config holds the complete application configuration.
type Config struct {
	MIME    mimewalk.Config `yaml:"mime"`
	Logging LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load loads configuration from environment variables on top of the
// defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()
	if err := cfg.applyEnvVars(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file as the base layer,
// then overrides with environment variables. It fails if the file cannot be
// read or parsed.
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
	cfg.MIME.ContentTypeFilter = contentTypes(cfg.MIME.ContentTypeFilter)

	if err := cfg.applyEnvVars(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SlogLevel returns the configured log level. An unknown level means info.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// contentTypes lower cases and trims each content type, dropping empty ones.
// Content types are always compared in lower case.
func contentTypes(in []string) []string {
	if in == nil {
		return nil
	}

	out := make([]string, 0, len(in))
	for _, ct := range in {
		if ct = strings.ToLower(strings.TrimSpace(ct)); ct != "" {
			out = append(out, ct)
		}
	}
	return out
}

func (c *Config) applyDefaults() {
	c.MIME = mimewalk.DefaultConfig()
	c.Logging.Level = "info"
}

// applyEnvVars overrides configuration with environment variable values.
// Only non-empty environment variables override existing values.
func (c *Config) applyEnvVars() error {
	if v := os.Getenv("MAILSPLIT_CONTENT_TYPE_FILTER"); v != "" {
		c.MIME.ContentTypeFilter = contentTypes(strings.Split(v, ","))
	}

	if err := envBool("MAILSPLIT_REPORT_MAIL_BODIES", &c.MIME.ReportMailBodies); err != nil {
		return err
	}
	if err := envBool("MAILSPLIT_APPENDED_DATA_AS_CHILD", &c.MIME.AppendedDataAsChild); err != nil {
		return err
	}

	if v := os.Getenv("MAILSPLIT_MAX_DEPTH"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAILSPLIT_MAX_DEPTH: %w", err)
		}
		c.MIME.MaxDepth = depth
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}

	return nil
}

func envBool(name string, dst *bool) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = b
	return nil
}
