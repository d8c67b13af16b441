// Package config loads sheetfacts settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/ukaji3/sheetfacts-go/internal/logging"
)

// Config holds settings read from SHEETFACTS_* variables.
type Config struct {
	LogLevel string `env:"SHEETFACTS_LOG_LEVEL" envDefault:"warn"` // trace|debug|info|warn|error
	LogMode  string `env:"SHEETFACTS_LOG_MODE" envDefault:"TEXT"`  // TEXT|JSON
	Log      string `env:"SHEETFACTS_LOG"`                         // log file, stderr when empty
	Format   string `env:"SHEETFACTS_FORMAT" envDefault:"json"`    // json|yaml
	Pretty   bool   `env:"SHEETFACTS_PRETTY"`
	Formulas bool   `env:"SHEETFACTS_FORMULAS"`
}

// Load reads .env from the working directory when present, then the environment.
func Load() (Config, error) {
	filename, err := filepath.Abs(".env")
	if err != nil {
		return Parse()
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Parse()
	}
	return LoadFrom(filename)
}

// LoadFrom loads envfile into the environment and parses the config.
// Variables already set take precedence over the file.
func LoadFrom(envfile string) (Config, error) {
	if err := godotenv.Load(envfile); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", envfile, err)
	}
	return Parse()
}

// Parse reads the config from the environment.
func Parse() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("can't read config: %w", err)
	}
	return cfg, nil
}

// LogOptions returns the logging settings.
func (c Config) LogOptions() logging.Options {
	return logging.Options{
		Level: c.LogLevel,
		Mode:  c.LogMode,
		File:  c.Log,
	}
}
