package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if !cfg.FanOut {
		t.Errorf("FanOut = false, want true")
	}
	if !cfg.Progress {
		t.Errorf("Progress = false, want true")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
	if cfg.LogDir != "" {
		t.Errorf("LogDir = %q, want empty", cfg.LogDir)
	}
	if cfg.Save.Format != "text" {
		t.Errorf("Save.Format = %q, want %q", cfg.Save.Format, "text")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	path := writeConfig(t, `workers: 3
fan_out: false
progress: false
log_level: debug
log_dir: /tmp/logs
respect_gitignore: true
save:
  path: matches.json
  format: json
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.FanOut {
		t.Errorf("FanOut = true, want false")
	}
	if cfg.Progress {
		t.Errorf("Progress = true, want false")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogDir != "/tmp/logs" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/tmp/logs")
	}
	if !cfg.RespectGitignore {
		t.Errorf("RespectGitignore = false, want true")
	}
	if cfg.Save.Path != "matches.json" || cfg.Save.Format != "json" {
		t.Errorf("Save = %+v, want {matches.json json}", cfg.Save)
	}
}

// TestLoadConfigPartialFile checks that absent keys keep their defaults
func TestLoadConfigPartialFile(t *testing.T) {
	path := writeConfig(t, "workers: 2\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if !cfg.FanOut || !cfg.Progress {
		t.Errorf("FanOut/Progress lost their true defaults: %+v", cfg)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Workers != DefaultConfig().Workers {
		t.Errorf("Workers = %d, want default", cfg.Workers)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, "workers: [1, 2\n")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig() expected error for malformed YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("error = %v, want parse error", err)
	}
}

func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("log_level: error\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFromDir(dir)
	if err != nil {
		t.Fatalf("LoadConfigFromDir() error = %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "error")
	}
}

func TestMergeWithFlags(t *testing.T) {
	workers := 16
	fanOut := false
	noProgress := true
	level := "info"
	format := "yaml"

	cfg := DefaultConfig()
	cfg.LogDir = "from-file"
	cfg.MergeWithFlags(Flags{
		Workers:    &workers,
		FanOut:     &fanOut,
		NoProgress: &noProgress,
		LogLevel:   &level,
		SaveFormat: &format,
	})

	if cfg.Workers != 16 {
		t.Errorf("Workers = %d, want 16", cfg.Workers)
	}
	if cfg.FanOut {
		t.Errorf("FanOut = true, want false")
	}
	if cfg.Progress {
		t.Errorf("Progress = true, want false")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogDir != "from-file" {
		t.Errorf("LogDir = %q, unset flag must not override", cfg.LogDir)
	}
	if cfg.Save.Format != "yaml" {
		t.Errorf("Save.Format = %q, want %q", cfg.Save.Format, "yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers must be >= 1"},
		{"negative workers", func(c *Config) { c.Workers = -4 }, "workers must be >= 1"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "invalid log_level"},
		{"bad format", func(c *Config) { c.Save.Format = "xml" }, "invalid save.format"},
		{"json format", func(c *Config) { c.Save.Format = "json" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

// TestLevelAndFormatAreCaseInsensitive checks that file and flag values are
// normalized before validation
func TestLevelAndFormatAreCaseInsensitive(t *testing.T) {
	path := writeConfig(t, "log_level: DEBUG\nsave:\n  format: Yaml\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.Save.Format != "yaml" {
		t.Errorf("Save.Format = %q, want %q", cfg.Save.Format, "yaml")
	}

	level := " INFO "
	format := "JSON"
	cfg.MergeWithFlags(Flags{LogLevel: &level, SaveFormat: &format})
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.Save.Format != "json" {
		t.Errorf("Save.Format = %q, want %q", cfg.Save.Format, "json")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}
