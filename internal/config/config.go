package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/corkboard/internal/config/colors"
)

// Environment variables that override the config file
const (
	EnvServer    = "CORKBOARD_SERVER"
	EnvBoard     = "CORKBOARD_BOARD"
	EnvConfig    = "CORKBOARD_CONFIG"
	EnvLogLevel  = "CORKBOARD_LOG_LEVEL"
	EnvThemeFile = "CORKBOARD_THEME_FILE"

	// a Go duration ("5s") or whole seconds
	EnvRequestTimeout = "CORKBOARD_REQUEST_TIMEOUT"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig       `yaml:"server"`
	Behavior    BehaviorConfig     `yaml:"behavior"`
	KeyMappings KeyMappings        `yaml:"key_mappings"`
	ColorScheme colors.ColorScheme `yaml:"theme"`
	LogLevel    string             `yaml:"log_level"`
}

// ServerConfig describes the board server to talk to
type ServerConfig struct {
	BaseURL string `yaml:"base_url"`
	BoardID string `yaml:"board_id"`

	// "board" refreshes /boards/{id}; "root" refreshes / on single-board servers
	RefreshTarget string `yaml:"refresh_target"`

	// Zero disables the timeout
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// BehaviorConfig tunes how drags are handled
type BehaviorConfig struct {
	// "handle" drags columns by their header; "filter" anywhere but controls
	ColumnDrag            string `yaml:"column_drag"`
	RefreshAfterChecklist bool   `yaml:"refresh_after_checklist"`
	RevertOnFailure       bool   `yaml:"revert_on_failure"`
	ShowErrors            *bool  `yaml:"show_errors,omitempty"`
}

// ErrorsVisible reports whether failures are shown in the status bar.
func (b BehaviorConfig) ErrorsVisible() bool {
	return b.ShowErrors == nil || *b.ShowErrors
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads config from the user's config directory.
// Returns default config if file doesn't exist. A .env file in the working
// directory is read first so its variables can override file values.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	configPath, err := Path()
	if err != nil {
		// Fall back to defaults if we can't determine config path
		config := Default()
		loadThemeFile(config)
		config.applyEnv()
		return config, config.Validate()
	}

	config := &Config{}
	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
	}

	loadThemeFile(config)
	config.applyDefaults()
	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Validate rejects values the client cannot act on
func (c *Config) Validate() error {
	if c.Server.BaseURL == "" {
		return errors.New("server.base_url is required")
	}
	switch c.Server.RefreshTarget {
	case "board", "root":
	default:
		return fmt.Errorf("server.refresh_target must be board or root, got %q", c.Server.RefreshTarget)
	}
	if c.Server.RequestTimeout < 0 {
		return fmt.Errorf("server.request_timeout must not be negative, got %s", c.Server.RequestTimeout)
	}
	switch c.Behavior.ColumnDrag {
	case "handle", "filter":
	default:
		return fmt.Errorf("behavior.column_drag must be handle or filter, got %q", c.Behavior.ColumnDrag)
	}
	return nil
}

// Path returns the path to the config file
func Path() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}

	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "corkboard", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "corkboard", "config.yaml"), nil
}

// loadThemeFile merges the theme from CORKBOARD_THEME_FILE, if set
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}
	if c.Server.BoardID == "" {
		c.Server.BoardID = "1"
	}
	if c.Server.RefreshTarget == "" {
		c.Server.RefreshTarget = "board"
	}
	if c.Behavior.ColumnDrag == "" {
		c.Behavior.ColumnDrag = "handle"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}

// applyEnv lets environment variables win over file values
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvServer); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv(EnvBoard); v != "" {
		c.Server.BoardID = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Server.RequestTimeout = d
		} else if secs, err := strconv.Atoi(v); err == nil {
			c.Server.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
}
