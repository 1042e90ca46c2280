// Package config reads runtime settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/bizwiz/internal/session"
)

type Config struct {
	// Storage
	DBPath string `env:"BIZWIZ_DB"`

	// Catalog. URL wins over dir; neither means the embedded catalog.
	CatalogDir     string        `env:"BIZWIZ_CATALOG_DIR"`
	CatalogURL     string        `env:"BIZWIZ_CATALOG_URL"`
	CatalogTimeout time.Duration `env:"BIZWIZ_CATALOG_TIMEOUT" envDefault:"10s"`

	// Logging
	LogFile  string `env:"BIZWIZ_LOG_FILE"`
	LogLevel string `env:"BIZWIZ_LOG_LEVEL" envDefault:"info"`

	// Wizard behavior
	UndoCapacity       int  `env:"BIZWIZ_UNDO_CAPACITY" envDefault:"10"`
	EnableUndo         bool `env:"BIZWIZ_ENABLE_UNDO" envDefault:"true"`
	EnableHints        bool `env:"BIZWIZ_ENABLE_HINTS" envDefault:"true"`
	EnableDifficulty   bool `env:"BIZWIZ_ENABLE_DIFFICULTY" envDefault:"true"`
	SecondsPerQuestion int  `env:"BIZWIZ_SECONDS_PER_QUESTION" envDefault:"45"`
	MaxAnswerLength    int  `env:"BIZWIZ_MAX_ANSWER_LENGTH" envDefault:"500"`
}

// Load reads envFiles (".env" when none are given) into the process
// environment, then parses Config. Missing env files are skipped and
// variables already set take precedence over file values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.UndoCapacity < 1 {
		return fmt.Errorf("BIZWIZ_UNDO_CAPACITY must be at least 1, got %d", c.UndoCapacity)
	}
	if c.SecondsPerQuestion < 1 {
		return fmt.Errorf("BIZWIZ_SECONDS_PER_QUESTION must be at least 1, got %d", c.SecondsPerQuestion)
	}
	if c.MaxAnswerLength < 1 {
		return fmt.Errorf("BIZWIZ_MAX_ANSWER_LENGTH must be at least 1, got %d", c.MaxAnswerLength)
	}
	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("BIZWIZ_CATALOG_TIMEOUT must be positive, got %s", c.CatalogTimeout)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("BIZWIZ_LOG_LEVEL: %w", err)
	}
	return nil
}

// Session returns the engine configuration.
func (c *Config) Session() session.Config {
	return session.Config{
		UndoEnabled:        c.EnableUndo,
		HintsEnabled:       c.EnableHints,
		DifficultyEnabled:  c.EnableDifficulty,
		UndoCapacity:       c.UndoCapacity,
		MaxAnswerLength:    c.MaxAnswerLength,
		SecondsPerQuestion: c.SecondsPerQuestion,
	}
}
