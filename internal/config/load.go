package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAPIURL       = "TASKBOARD_API_URL"
	EnvBackend      = "TASKBOARD_BACKEND"
	EnvToken        = "TASKBOARD_TOKEN"
	EnvTimeout      = "TASKBOARD_TIMEOUT"
	EnvErrorDismiss = "TASKBOARD_ERROR_DISMISS"
	EnvLogLevel     = "TASKBOARD_LOG_LEVEL"
	EnvLogFile      = "TASKBOARD_LOG_FILE"
)

// fileConfig mirrors config.toml. Durations are strings ("10s", "1m").
type fileConfig struct {
	APIURL       string `toml:"api_url"`
	Backend      string `toml:"backend"`
	Token        string `toml:"token"`
	Timeout      string `toml:"timeout"`
	ErrorDismiss string `toml:"error_dismiss"`
	LogLevel     string `toml:"log_level"`
	LogFile      string `toml:"log_file"`
}

// Load builds a Config from multiple sources in priority order:
// 1. Defaults
// 2. config.toml in the config directory
// 3. .env in the config directory, then in the current directory
// 4. Environment variables
//
// CLI flags are applied by the caller on top of the result.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	if err := loadConfigFile(cfg, cfg.ConfigPath()); err != nil {
		return nil, fmt.Errorf("loading config file %s: %w", cfg.ConfigPath(), err)
	}

	if err := loadEnvFiles(filepath.Join(cfg.Dir, EnvFile), EnvFile); err != nil {
		return nil, err
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadConfigFile applies config.toml if it exists.
func loadConfigFile(cfg *Config, path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	if fc.APIURL != "" {
		cfg.APIURL = strings.TrimRight(fc.APIURL, "/")
	}
	if fc.Backend != "" {
		cfg.Backend = strings.ToLower(fc.Backend)
	}
	if fc.Token != "" {
		cfg.Token = fc.Token
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if fc.ErrorDismiss != "" {
		d, err := time.ParseDuration(fc.ErrorDismiss)
		if err != nil {
			return fmt.Errorf("invalid error_dismiss: %w", err)
		}
		cfg.ErrorDismiss = d
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	return nil
}

// loadEnvFiles loads the dotenv files that exist. Variables already present
// in the environment win.
func loadEnvFiles(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("loading env files: %w", err)
	}
	return nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv(EnvErrorDismiss); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvErrorDismiss, err)
		}
		cfg.ErrorDismiss = d
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	return nil
}
