// Package config provides configuration management for pagesmith using
// Viper for flexible loading from files, environment variables, and
// command-line flags.
//
// Configuration is read from .pagesmith.yml with PAGESMITH_ prefixed
// environment overrides. The three sandboxed roots (templates, data,
// output) are explicit values handed to every component at construction;
// nothing in the engine reads them from ambient state.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Roots   RootsConfig   `yaml:"roots" mapstructure:"roots"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Build   BuildConfig   `yaml:"build" mapstructure:"build"`
}

// RootsConfig names the three sandboxed directory roots the engine is
// allowed to touch.
type RootsConfig struct {
	Templates string `yaml:"templates" mapstructure:"templates"`
	Data      string `yaml:"data" mapstructure:"data"`
	Output    string `yaml:"output" mapstructure:"output"`
}

type ServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

type BuildConfig struct {
	// Minify controls post-render minification. On by default; turning it
	// off is a debugging aid only.
	Minify bool `yaml:"minify" mapstructure:"minify"`
	// WatchDebounce is the file-watcher debounce interval in milliseconds.
	WatchDebounce int `yaml:"watch_debounce" mapstructure:"watch_debounce"`
}

// Default returns the configuration used when no file or overrides exist.
func Default() *Config {
	return &Config{
		Roots: RootsConfig{
			Templates: "./templates",
			Data:      "./data",
			Output:    "./output",
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 8129,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Build: BuildConfig{
			Minify:        true,
			WatchDebounce: 250,
		},
	}
}

// Load builds a Config from viper's merged sources, applying defaults for
// anything unset and validating the result.
func Load() (*Config, error) {
	config := Default()
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Viper zero-values booleans it never saw; keep minify on unless the
	// user explicitly disabled it.
	if !viper.IsSet("build.minify") {
		config.Build.Minify = true
	}

	applyDefaults(config)

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

func applyDefaults(config *Config) {
	def := Default()

	if config.Roots.Templates == "" {
		config.Roots.Templates = def.Roots.Templates
	}
	if config.Roots.Data == "" {
		config.Roots.Data = def.Roots.Data
	}
	if config.Roots.Output == "" {
		config.Roots.Output = def.Roots.Output
	}
	if config.Server.Host == "" {
		config.Server.Host = def.Server.Host
	}
	if config.Server.Port == 0 {
		config.Server.Port = def.Server.Port
	}
	if config.Logging.Level == "" {
		config.Logging.Level = def.Logging.Level
	}
	if config.Logging.Format == "" {
		config.Logging.Format = def.Logging.Format
	}
	if config.Build.WatchDebounce <= 0 {
		config.Build.WatchDebounce = def.Build.WatchDebounce
	}
}

// Validate checks configuration values for correctness.
func Validate(config *Config) error {
	if config.Roots.Templates == "" || config.Roots.Data == "" || config.Roots.Output == "" {
		return fmt.Errorf("invalid configuration: all three roots (templates, data, output) must be set")
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid configuration: server port %d out of range", config.Server.Port)
	}

	switch config.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid configuration: unknown log level %q", config.Logging.Level)
	}

	switch config.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid configuration: unknown log format %q", config.Logging.Format)
	}

	return nil
}

// WriteDefault writes a default configuration file at path. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshaling default config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	return os.WriteFile(path, data, 0o644)
}
