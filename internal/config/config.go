// Package config loads process settings for the fable CLI from the environment.
package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/fable/pkg/domain"
	"github.com/caarlos0/env/v11"
)

// Config holds the settings the CLI reads from the environment.
// Command-line flags override them.
type Config struct {
	MaxAutoSteps    int    `env:"FABLE_MAX_AUTO_STEPS" envDefault:"500"`
	MaxIncludeDepth int    `env:"FABLE_MAX_INCLUDE_DEPTH" envDefault:"8"`
	MaxRepeats      int    `env:"FABLE_MAX_REPEATS" envDefault:"200"`
	LogLevel        string `env:"FABLE_LOG_LEVEL" envDefault:"warn"`
	// MaxInputSize caps one line of player input, in bytes.
	MaxInputSize int `env:"FABLE_MAX_INPUT_SIZE" envDefault:"4096"`
	// SaveDir anchors relative save paths. Empty means the working directory.
	SaveDir string `env:"FABLE_SAVE_DIR"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads and checks the environment configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects limits below one and unknown log levels.
func (c Config) Validate() error {
	limits := []struct {
		name  string
		value int
	}{
		{"FABLE_MAX_AUTO_STEPS", c.MaxAutoSteps},
		{"FABLE_MAX_INCLUDE_DEPTH", c.MaxIncludeDepth},
		{"FABLE_MAX_REPEATS", c.MaxRepeats},
		{"FABLE_MAX_INPUT_SIZE", c.MaxInputSize},
	}
	for _, l := range limits {
		if l.value < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", l.name, l.value)
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Limits converts the configured bounds to session limits.
func (c Config) Limits() domain.Limits {
	return domain.Limits{
		MaxAutoSteps:    c.MaxAutoSteps,
		MaxIncludeDepth: c.MaxIncludeDepth,
		MaxRepeats:      c.MaxRepeats,
	}
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("FABLE_LOG_LEVEL: %w", err)
	}
	return level, nil
}

// SavePath resolves a save file name against SaveDir.
func (c Config) SavePath(name string) string {
	if c.SaveDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.SaveDir, name)
}
