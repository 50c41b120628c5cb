// Package config handles the configuration directory, config file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// ConfigFile is the TOML configuration filename.
	ConfigFile = "config.toml"

	// EnvFile is the dotenv filename looked up in the config dir and cwd.
	EnvFile = ".env"

	// LogFile is the default log filename used by the terminal UI.
	LogFile = "taskboard.log"

	// OAuthClientFile is the OAuth client credentials filename (google backend).
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename (google backend).
	TokenFile = "token.json"
)

// Backend names.
const (
	BackendREST   = "rest"
	BackendGoogle = "google"
)

// Defaults.
const (
	DefaultAPIURL       = "http://localhost:5000/api"
	DefaultTimeout      = 10 * time.Second
	DefaultErrorDismiss = 5 * time.Second
	DefaultLogLevel     = "info"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base URL of the tasks REST API, without trailing slash.
	APIURL string

	// Backend selects the service implementation: "rest" or "google".
	Backend string

	// Token is an optional bearer token sent to the REST API.
	Token string

	// Timeout bounds each backend call.
	Timeout time.Duration

	// ErrorDismiss is how long the UI shows an error before clearing it.
	ErrorDismiss time.Duration

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string

	// LogFile is where the terminal UI writes its log.
	LogFile string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with defaults and the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskboard or $HOME/.config/taskboard.
// New does not read any file; see Load.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:          dir,
		APIURL:       DefaultAPIURL,
		Backend:      BackendREST,
		Timeout:      DefaultTimeout,
		ErrorDismiss: DefaultErrorDismiss,
		LogLevel:     DefaultLogLevel,
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Validate checks the values that the rest of the program relies on.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendREST:
		if strings.TrimSpace(c.APIURL) == "" {
			return fmt.Errorf("api_url is empty")
		}
	case BackendGoogle:
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.ErrorDismiss <= 0 {
		return fmt.Errorf("error_dismiss must be positive")
	}
	return nil
}

// ConfigPath returns the path to the TOML config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// LogPath returns the log file path, defaulting into the config dir.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.Dir, LogFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
