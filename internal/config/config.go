// Package config loads chatrun settings from defaults, an optional config
// file, the environment and a .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	cerrors "github.com/stevehiehn/chatrun/internal/errors"
	"github.com/stevehiehn/chatrun/internal/oracle"
)

const (
	DefaultModel       = oracle.DefaultModel
	DefaultDir         = ".chatrun"
	DefaultEnvFile     = ".env"
	DefaultMaxLogBytes = 64 * 1024
	APIKeyEnv          = "GEMINI_API_KEY"
)

// Config holds every setting the CLI understands. Environment variables are
// only applied when set, so file values survive an empty environment.
type Config struct {
	APIKey      string `yaml:"api_key" toml:"api_key" env:"GEMINI_API_KEY"`
	Model       string `yaml:"model" toml:"model" env:"CHATRUN_MODEL"`
	AutoApprove bool   `yaml:"auto_approve" toml:"auto_approve" env:"CHATRUN_AUTO_APPROVE"`
	ExitOnError bool   `yaml:"exit_on_error" toml:"exit_on_error" env:"CHATRUN_EXIT_ON_ERROR"`
	MaxLogBytes int    `yaml:"max_log_bytes" toml:"max_log_bytes" env:"CHATRUN_MAX_LOG_BYTES"`
	WorkDir     string `yaml:"work_dir" toml:"work_dir" env:"CHATRUN_WORKDIR"`
	DataDir     string `yaml:"data_dir" toml:"data_dir" env:"CHATRUN_DATA_DIR"`
	LogFile     string `yaml:"log_file" toml:"log_file" env:"CHATRUN_LOG_FILE"`
	Verbose     bool   `yaml:"verbose" toml:"verbose" env:"CHATRUN_VERBOSE"`
	NoColor     bool   `yaml:"no_color" toml:"no_color" env:"CHATRUN_NO_COLOR"`
	Record      bool   `yaml:"record" toml:"record" env:"CHATRUN_RECORD"`
	EnvFile     string `yaml:"env_file" toml:"env_file" env:"CHATRUN_ENV_FILE"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Model:       DefaultModel,
		ExitOnError: true,
		MaxLogBytes: DefaultMaxLogBytes,
		DataDir:     DefaultDir,
		LogFile:     filepath.Join(DefaultDir, "chatrun.log"),
		EnvFile:     DefaultEnvFile,
	}
}

// Load builds a Config from defaults, the config file at path (optional),
// the .env file and the process environment, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if v := os.Getenv("CHATRUN_ENV_FILE"); v != "" {
		cfg.EnvFile = v
	}
	if err := LoadDotEnv(cfg.EnvFile); err != nil {
		return nil, err
	}
	if err := ParseEnv(cfg); err != nil {
		return nil, cerrors.NewConfigError("invalid environment", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays a YAML or TOML file onto cfg. The format is picked by
// extension.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return cerrors.NewConfigError("reading config file", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return cerrors.NewConfigError("parsing YAML config", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return cerrors.NewConfigError("parsing TOML config", err)
		}
	default:
		return cerrors.NewConfigError(fmt.Sprintf("unsupported config format %q", filepath.Ext(path)), nil)
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDotEnv exports the variables of a .env file into the process
// environment. Variables that are already set win. A missing file is fine.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return cerrors.NewConfigError("loading "+path, err)
	}
	return nil
}

// SaveAPIKey stores key in the .env file at path, keeping any other
// variables already there.
func SaveAPIKey(path, key string) error {
	vars := map[string]string{}
	if _, err := os.Stat(path); err == nil {
		existing, err := godotenv.Read(path)
		if err != nil {
			return cerrors.NewConfigError("reading "+path, err)
		}
		vars = existing
	}
	vars[APIKeyEnv] = key
	if err := godotenv.Write(vars, path); err != nil {
		return cerrors.NewConfigError("writing "+path, err)
	}
	return nil
}

// Validate checks the loaded settings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return cerrors.NewConfigError("model must not be empty", nil)
	}
	if c.MaxLogBytes < 0 {
		return cerrors.NewConfigError(fmt.Sprintf("max_log_bytes must be >= 0, got %d", c.MaxLogBytes), nil)
	}
	return nil
}

// ArtifactDir is where session transcripts are recorded.
func (c *Config) ArtifactDir() string {
	return filepath.Join(c.DataDir, "sessions")
}
