// Package config provides configuration loading and structs for the Mitsuke server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Search    SearchConfig    `yaml:"search"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// CorpusConfig holds the corpus source file and reload settings.
type CorpusConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// AnalyticsConfig holds analytics persistence settings. An empty DatabasePath
// keeps analytics in memory only.
type AnalyticsConfig struct {
	Enabled      *bool  `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"`
}

// EnabledOrDefault returns whether analytics is on; defaults to true when unset.
func (a *AnalyticsConfig) EnabledOrDefault() bool {
	if a.Enabled != nil {
		return *a.Enabled
	}
	return true
}

// SearchConfig holds engine tuning settings.
type SearchConfig struct {
	DebounceMS     int     `yaml:"debounce_ms"`
	MaxResults     int     `yaml:"max_results"`
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
	Highlighting   *bool   `yaml:"highlighting"`
	CacheSize      int     `yaml:"cache_size"`
}

// HighlightingOrDefault returns whether highlighting is on; defaults to true when unset.
func (s *SearchConfig) HighlightingOrDefault() bool {
	if s.Highlighting != nil {
		return *s.Highlighting
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Corpus.Path = expandPath(cfg.Corpus.Path, configDir)
	if cfg.Analytics.DatabasePath != "" {
		cfg.Analytics.DatabasePath = expandPath(cfg.Analytics.DatabasePath, configDir)
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
