// Package config loads and persists the per-user mixfleet configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"mixfleet/internal/paths"
)

// Config represents the complete mixfleet configuration.
type Config struct {
	// ScanRoot is the default project discovery root. Empty means ~/src/flt.
	ScanRoot string `yaml:"scanRoot" mapstructure:"scanRoot"`

	// MarkerFile is the filename that identifies a project root.
	MarkerFile string `yaml:"markerFile" mapstructure:"markerFile"`

	// SkipDirs are directory names never descended into during discovery.
	SkipDirs []string `yaml:"skipDirs" mapstructure:"skipDirs"`

	// Player is the playerctl player name used by the player tool.
	Player string `yaml:"player" mapstructure:"player"`

	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	History HistoryConfig `yaml:"history" mapstructure:"history"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
	Level  string `yaml:"level" mapstructure:"level"`
}

// HistoryConfig controls the run history store.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		ScanRoot:   "",
		MarkerFile: "mix.exs",
		SkipDirs:   []string{"deps", "_build", ".elixir_ls", "node_modules", ".git", "_checkouts"},
		Player:     "firefox",
		Logging: LoggingConfig{
			Format: "json",
			Level:  "info",
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// Load reads config.yaml from the user's config directory, falling back to
// defaults when the file does not exist. Environment variables prefixed with
// MIXFLEET_ override file values, with dots replaced by underscores for
// nested keys (e.g. MIXFLEET_PLAYER, MIXFLEET_LOGGING_LEVEL).
func Load() (*Config, error) {
	dir, err := paths.ConfigDir()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(dir)
}

// LoadFrom reads config.yaml from the given directory. Exposed for tests.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("scanRoot", def.ScanRoot)
	v.SetDefault("markerFile", def.MarkerFile)
	v.SetDefault("skipDirs", def.SkipDirs)
	v.SetDefault("player", def.Player)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("history.enabled", def.History.Enabled)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("MIXFLEET")
	// Nested keys use underscores in env names (MIXFLEET_LOGGING_LEVEL).
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration as YAML into the given directory, creating
// it if needed.
func (c *Config) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0o644)
}

// Validate checks the configuration for values the rest of the program
// cannot work with.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "json", "human":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be json or human"}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "must be debug, info, warn, or error"}
	}

	if c.MarkerFile == "" {
		return &ConfigError{Field: "markerFile", Message: "must not be empty"}
	}
	if filepath.Base(c.MarkerFile) != c.MarkerFile {
		return &ConfigError{Field: "markerFile", Message: "must be a bare filename"}
	}

	return nil
}

// EffectiveScanRoot resolves the discovery root: configured value (with ~
// expansion) or the built-in default.
func (c *Config) EffectiveScanRoot() string {
	if c.ScanRoot == "" {
		return paths.DefaultScanRoot()
	}
	return paths.ExpandHome(c.ScanRoot)
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
