// Package config holds the command-line tool's configuration, read from a
// YAML file and overridden by DOCMODEL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigFile = "DOCMODEL_CONFIG"
	EnvLogLevel   = "DOCMODEL_LOG_LEVEL"
	EnvLogFormat  = "DOCMODEL_LOG_FORMAT"
	EnvWorkers    = "DOCMODEL_WORKERS"
	EnvMaxFileMB  = "DOCMODEL_MAX_FILE_MB"
)

// Config is the CLI configuration.
type Config struct {
	LogLevel  string `yaml:"log_level"`   // debug | info | warn | error
	LogFormat string `yaml:"log_format"`  // text | json
	Workers   int    `yaml:"workers"`     // files parsed concurrently
	MaxFileMB int    `yaml:"max_file_mb"` // larger files are rejected unread; 0 disables
	Indent    bool   `yaml:"indent"`      // indent JSON output
	OutputDir string `yaml:"output_dir"`  // empty writes to stdout
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		Workers:   4,
		MaxFileMB: 64,
		Indent:    true,
	}
}

// Load builds the configuration: defaults, then the YAML file at path (or
// $DOCMODEL_CONFIG when path is empty), then environment overrides. A .env
// file in the working directory is loaded first if present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile merges a YAML file over c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.LogLevel = getEnv(EnvLogLevel, c.LogLevel)
	c.LogFormat = getEnv(EnvLogFormat, c.LogFormat)

	var err error
	if c.Workers, err = getEnvInt(EnvWorkers, c.Workers); err != nil {
		return err
	}
	if c.MaxFileMB, err = getEnvInt(EnvMaxFileMB, c.MaxFileMB); err != nil {
		return err
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = 1
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: log_format must be text or json, got %q", c.LogFormat)
	}
	if c.MaxFileMB < 0 {
		return fmt.Errorf("config: max_file_mb must not be negative, got %d", c.MaxFileMB)
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	return level, nil
}

// MaxFileBytes returns the file size limit in bytes, or 0 for no limit.
func (c *Config) MaxFileBytes() int64 {
	return int64(c.MaxFileMB) << 20
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer", key, v)
	}
	return n, nil
}
