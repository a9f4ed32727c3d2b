package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete Podhawk configuration
type Config struct {
	Podman  PodmanConfig  `yaml:"podman"`
	Updates UpdatesConfig `yaml:"updates"`
	Prune   PruneConfig   `yaml:"prune"`
	Log     LogConfig     `yaml:"log"`

	// Runtime flags (not in YAML)
	RunOnce   bool
	PruneOnly bool
}

// PodmanConfig holds settings for invoking the podman binary
type PodmanConfig struct {
	Binary string `yaml:"binary"`
}

// UpdatesConfig holds update behavior settings
type UpdatesConfig struct {
	Enabled       bool              `yaml:"enabled"`
	CheckInterval time.Duration     `yaml:"check_interval"`
	DryRun        bool              `yaml:"dry_run"`
	AllowImages   []string          `yaml:"allow_images"`
	DenyImages    []string          `yaml:"deny_images"`
	Healthcheck   HealthcheckConfig `yaml:"healthcheck"`
}

// HealthcheckConfig controls the post-recreate healthcheck probe
type HealthcheckConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Attempts int           `yaml:"attempts"`
	Interval time.Duration `yaml:"interval"`
}

// PruneConfig holds image cleanup settings
type PruneConfig struct {
	Enabled     bool `yaml:"enabled"`
	MinAgeHours int  `yaml:"min_age_hours"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns a config with sensible defaults
func Default() Config {
	return Config{
		Podman: PodmanConfig{
			Binary: "podman",
		},
		Updates: UpdatesConfig{
			Enabled:       true,
			CheckInterval: 30 * time.Minute,
			DryRun:        false,
			AllowImages:   []string{"*"},
			DenyImages:    []string{},
			Healthcheck: HealthcheckConfig{
				Enabled:  true,
				Attempts: 3,
				Interval: 5 * time.Second,
			},
		},
		Prune: PruneConfig{
			Enabled:     false,
			MinAgeHours: 24,
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
		RunOnce:   true,
		PruneOnly: false,
	}
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (Config, error) {
	cfg := Default()

	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// ApplyEnvironmentOverrides applies environment variable overrides to the config
func (c *Config) ApplyEnvironmentOverrides() {
	if val := os.Getenv("PODHAWK_PODMAN_BINARY"); val != "" {
		c.Podman.Binary = val
	}

	if val := os.Getenv("PODHAWK_INTERVAL"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			c.Updates.CheckInterval = duration
		}
	}

	if val := os.Getenv("PODHAWK_DRY_RUN"); val != "" {
		if dryRun, err := strconv.ParseBool(val); err == nil {
			c.Updates.DryRun = dryRun
		}
	}

	if val := os.Getenv("PODHAWK_LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}

	if val := os.Getenv("PODHAWK_LOG_JSON"); val != "" {
		if jsonLog, err := strconv.ParseBool(val); err == nil {
			c.Log.JSON = jsonLog
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Podman.Binary == "" {
		return fmt.Errorf("podman.binary cannot be empty")
	}

	if !c.RunOnce && c.Updates.CheckInterval <= 0 {
		return fmt.Errorf("updates.check_interval must be positive")
	}

	if c.Prune.MinAgeHours < 0 {
		return fmt.Errorf("prune.min_age_hours cannot be negative")
	}

	if c.Updates.Healthcheck.Enabled {
		if c.Updates.Healthcheck.Attempts <= 0 {
			return fmt.Errorf("updates.healthcheck.attempts must be positive")
		}
		if c.Updates.Healthcheck.Interval < 0 {
			return fmt.Errorf("updates.healthcheck.interval cannot be negative")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}

	return nil
}
