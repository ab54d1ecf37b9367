package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = ".rsearch.yaml"

// SaveConfig controls writing the match list to a file after a search.
type SaveConfig struct {
	// Path is the output file (empty = don't save)
	Path string `yaml:"path"`

	// Format is one of text, json, yaml
	Format string `yaml:"format"`
}

// Config represents rsearch configuration options
type Config struct {
	// Workers is the size of the traversal worker pool
	Workers int `yaml:"workers"`

	// FanOut dispatches every subdirectory of a directory before joining them.
	// When false each subtree finishes before the next sibling starts.
	FanOut bool `yaml:"fan_out"`

	// Progress runs the counting pre-pass and draws a progress bar
	Progress bool `yaml:"progress"`

	// LogLevel is the console and file log level
	LogLevel string `yaml:"log_level"`

	// LogDir enables a per-search log file in this directory (empty = disabled)
	LogDir string `yaml:"log_dir"`

	// RespectGitignore skips paths excluded by the root's .gitignore
	RespectGitignore bool `yaml:"respect_gitignore"`

	// Save configures exporting the match list
	Save SaveConfig `yaml:"save"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Workers:          8,
		FanOut:           true,
		Progress:         true,
		LogLevel:         "warn",
		LogDir:           "",
		RespectGitignore: false,
		Save: SaveConfig{
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointers distinguish "absent" from the zero value so that keys
	// defaulting to true can be switched off.
	type yamlConfig struct {
		Workers          *int       `yaml:"workers"`
		FanOut           *bool      `yaml:"fan_out"`
		Progress         *bool      `yaml:"progress"`
		LogLevel         string     `yaml:"log_level"`
		LogDir           string     `yaml:"log_dir"`
		RespectGitignore *bool      `yaml:"respect_gitignore"`
		Save             SaveConfig `yaml:"save"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.Workers != nil {
		cfg.Workers = *yamlCfg.Workers
	}
	if yamlCfg.FanOut != nil {
		cfg.FanOut = *yamlCfg.FanOut
	}
	if yamlCfg.Progress != nil {
		cfg.Progress = *yamlCfg.Progress
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = normalize(yamlCfg.LogLevel)
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.RespectGitignore != nil {
		cfg.RespectGitignore = *yamlCfg.RespectGitignore
	}
	if yamlCfg.Save.Path != "" {
		cfg.Save.Path = yamlCfg.Save.Path
	}
	if yamlCfg.Save.Format != "" {
		cfg.Save.Format = normalize(yamlCfg.Save.Format)
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .rsearch.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, FileName))
}

// normalize lower-cases and trims enum values such as log levels and formats.
func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Flags holds CLI overrides. Nil fields were not set on the command line.
type Flags struct {
	Workers          *int
	FanOut           *bool
	NoProgress       *bool
	LogLevel         *string
	LogDir           *string
	RespectGitignore *bool
	SavePath         *string
	SaveFormat       *string
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(f Flags) {
	if f.Workers != nil {
		c.Workers = *f.Workers
	}
	if f.FanOut != nil {
		c.FanOut = *f.FanOut
	}
	if f.NoProgress != nil {
		c.Progress = !*f.NoProgress
	}
	if f.LogLevel != nil {
		c.LogLevel = normalize(*f.LogLevel)
	}
	if f.LogDir != nil {
		c.LogDir = *f.LogDir
	}
	if f.RespectGitignore != nil {
		c.RespectGitignore = *f.RespectGitignore
	}
	if f.SavePath != nil {
		c.Save.Path = *f.SavePath
	}
	if f.SaveFormat != nil {
		c.Save.Format = normalize(*f.SaveFormat)
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	switch c.Save.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid save.format %q, must be one of: text, json, yaml", c.Save.Format)
	}

	return nil
}
