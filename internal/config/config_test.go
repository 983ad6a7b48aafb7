package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points every config lookup at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	for _, key := range []string{EnvServer, EnvBoard, EnvConfig, EnvLogLevel, EnvThemeFile, EnvRequestTimeout} {
		t.Setenv(key, "")
	}
	// .env is read from the working directory
	t.Chdir(tempDir)
	return tempDir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	configDir := filepath.Join(dir, "corkboard")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	if defaults.Quit != "q" {
		t.Errorf("Default Quit key = %s, want q", defaults.Quit)
	}
	if defaults.Grab != "space" {
		t.Errorf("Default Grab key = %s, want space", defaults.Grab)
	}
	if defaults.RenameBoard != "R" {
		t.Errorf("Default RenameBoard key = %s, want R", defaults.RenameBoard)
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() without config file failed: %v", err)
	}

	if cfg.Server.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %s, want default", cfg.Server.BaseURL)
	}
	if cfg.Server.RefreshTarget != "board" {
		t.Errorf("RefreshTarget = %s, want board", cfg.Server.RefreshTarget)
	}
	if cfg.Server.RequestTimeout != 0 {
		t.Errorf("RequestTimeout = %s, want no timeout", cfg.Server.RequestTimeout)
	}
	if cfg.Behavior.ColumnDrag != "handle" {
		t.Errorf("ColumnDrag = %s, want handle", cfg.Behavior.ColumnDrag)
	}
	if cfg.Behavior.RefreshAfterChecklist || cfg.Behavior.RevertOnFailure {
		t.Error("optional behaviors should default to off")
	}
	if !cfg.Behavior.ErrorsVisible() {
		t.Error("errors should be shown by default")
	}
	if cfg.KeyMappings.Quit != "q" {
		t.Errorf("Loaded config Quit key = %s, want q (default)", cfg.KeyMappings.Quit)
	}
}

func TestLoadConfigWithFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `server:
  base_url: "http://boards.local:9000"
  board_id: "4"
  refresh_target: root
  request_timeout: 5s
behavior:
  column_drag: filter
  revert_on_failure: true
  show_errors: false
key_mappings:
  quit: "x"
log_level: debug
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with config file failed: %v", err)
	}

	if cfg.Server.BaseURL != "http://boards.local:9000" || cfg.Server.BoardID != "4" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.RefreshTarget != "root" {
		t.Errorf("RefreshTarget = %s, want root", cfg.Server.RefreshTarget)
	}
	if cfg.Server.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %s, want 5s", cfg.Server.RequestTimeout)
	}
	if cfg.Behavior.ColumnDrag != "filter" || !cfg.Behavior.RevertOnFailure {
		t.Errorf("Behavior = %+v", cfg.Behavior)
	}
	if cfg.Behavior.ErrorsVisible() {
		t.Error("show_errors: false should hide errors")
	}
	if cfg.KeyMappings.Quit != "x" {
		t.Errorf("Loaded Quit key = %s, want x", cfg.KeyMappings.Quit)
	}
	// Unspecified values should use defaults
	if cfg.KeyMappings.Refresh != "r" {
		t.Errorf("Loaded Refresh key = %s, want r (default)", cfg.KeyMappings.Refresh)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	tests := map[string]string{
		"column drag":    "behavior:\n  column_drag: sideways\n",
		"refresh target": "server:\n  refresh_target: page\n",
		"timeout":        "server:\n  request_timeout: -1s\n",
		"yaml":           "server: [\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)
			writeConfig(t, dir, content)
			if _, err := Load(); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "server:\n  base_url: http://from-file\n  board_id: \"2\"\n")
	t.Setenv(EnvServer, "http://from-env")
	t.Setenv(EnvLogLevel, "warn")

	// .env fills variables that are not already set
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("CORKBOARD_BOARD=9\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv(EnvBoard) })
	if err := os.Unsetenv(EnvBoard); err != nil {
		t.Fatalf("unset: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.BaseURL != "http://from-env" {
		t.Errorf("BaseURL = %s, want env value", cfg.Server.BaseURL)
	}
	if cfg.Server.BoardID != "9" {
		t.Errorf("BoardID = %s, want value from .env", cfg.Server.BoardID)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %s, want warn", cfg.LogLevel)
	}
}

func TestRequestTimeoutOverride(t *testing.T) {
	tests := []struct {
		env  string
		want time.Duration
	}{
		{"5s", 5 * time.Second},
		{"1m30s", 90 * time.Second},
		{"7", 7 * time.Second},
		{"soon", 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			dir := isolate(t)
			writeConfig(t, dir, "server:\n  base_url: http://from-file\n  request_timeout: 3s\n")
			t.Setenv(EnvRequestTimeout, tt.env)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if cfg.Server.RequestTimeout != tt.want {
				t.Errorf("RequestTimeout = %v, want %v", cfg.Server.RequestTimeout, tt.want)
			}
		})
	}
}

func TestConfigPathOverride(t *testing.T) {
	dir := isolate(t)
	custom := filepath.Join(dir, "elsewhere.yaml")
	t.Setenv(EnvConfig, custom)

	got, err := Path()
	if err != nil {
		t.Fatalf("Path() failed: %v", err)
	}
	if got != custom {
		t.Errorf("Path() = %s, want %s", got, custom)
	}
}

func TestSaveConfig(t *testing.T) {
	dir := isolate(t)

	cfg := Default()
	cfg.KeyMappings.Quit = "x"
	cfg.Server.RequestTimeout = 3 * time.Second

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	configPath := filepath.Join(dir, "corkboard", "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatalf("Config file not created at %s", configPath)
	}

	cfg2, err := Load()
	if err != nil {
		t.Fatalf("Load() after Save() failed: %v", err)
	}
	if cfg2.KeyMappings.Quit != "x" {
		t.Errorf("Reloaded Quit key = %s, want x", cfg2.KeyMappings.Quit)
	}
	if cfg2.Server.RequestTimeout != 3*time.Second {
		t.Errorf("Reloaded timeout = %s, want 3s", cfg2.Server.RequestTimeout)
	}
}
