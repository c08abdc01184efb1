// Package config loads archview's configuration from .archview/config.json
// and optional recognition-pattern extensions from .archview/patterns.toml.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete archview configuration
type Config struct {
	Version   int    `json:"version" mapstructure:"version"`
	ServerDir string `json:"serverDir" mapstructure:"serverDir"`
	ClientDir string `json:"clientDir" mapstructure:"clientDir"`
	Output    string `json:"output" mapstructure:"output"`
	Title     string `json:"title" mapstructure:"title"`

	Scan    ScanConfig    `json:"scan" mapstructure:"scan"`
	History HistoryConfig `json:"history" mapstructure:"history"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ScanConfig controls which files the tree walker yields
type ScanConfig struct {
	Extensions     []string `json:"extensions" mapstructure:"extensions"`
	IgnoreDirs     []string `json:"ignoreDirs" mapstructure:"ignoreDirs"`
	IgnoreSuffixes []string `json:"ignoreSuffixes" mapstructure:"ignoreSuffixes"`
}

// HistoryConfig controls the run history store
type HistoryConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:   1,
		ServerDir: "server/src",
		ClientDir: "client/app",
		Output:    "ARCHITECTURE.md",
		Title:     "Architecture",
		Scan: ScanConfig{
			Extensions:     []string{".ts", ".tsx", ".js", ".jsx"},
			IgnoreDirs:     []string{"node_modules", ".next", "dist", "build", ".git"},
			IgnoreSuffixes: []string{".spec.ts", ".test.ts", ".spec.tsx", ".test.tsx", ".d.ts"},
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Dir returns the archview state directory under the project root.
func Dir(root string) string {
	return filepath.Join(root, ".archview")
}

// LoadConfig loads configuration from .archview/config.json under the
// project root. A missing file yields the defaults, not an error.
func LoadConfig(root string) (*Config, error) {
	return LoadConfigFrom(Dir(root))
}

// LoadConfigFrom loads config.json from an explicit state directory.
func LoadConfigFrom(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to .archview/config.json under the
// project root.
func (c *Config) Save(root string) error {
	return c.SaveTo(Dir(root))
}

// SaveTo writes config.json into an explicit state directory.
func (c *Config) SaveTo(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}
