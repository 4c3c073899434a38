package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"

	"github.com/jonathan/tabcheck/internal/catalog"
)

// Settings are the process-wide options read from the environment. A .env
// file in the working directory is loaded by the CLI before parsing.
type Settings struct {
	Lang      string   `env:"TABCHECK_LANG" envDefault:"CN" validate:"oneof=CN EN cn en"`
	Quiet     bool     `env:"TABCHECK_QUIET"`
	LogLevel  string   `env:"TABCHECK_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat string   `env:"TABCHECK_LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	Catalog   string   `env:"TABCHECK_CATALOG"`
	NAMarkers []string `env:"TABCHECK_NA_MARKERS" envDefault:",NA,N/A,NULL" envSeparator:","`
	Workers   int      `env:"TABCHECK_WORKERS" envDefault:"4" validate:"min=1,max=64"`
}

// LoadSettings parses and validates the environment settings.
func LoadSettings() (Settings, error) {
	s, err := env.ParseAs[Settings]()
	if err != nil {
		return Settings{}, fmt.Errorf("failed to parse environment settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the settings values.
func (s Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("settings error: %w", err)
	}
	return nil
}

// Language returns the configured display language.
func (s Settings) Language() (catalog.Language, error) {
	return catalog.ParseLanguage(s.Lang)
}

// Level returns the configured log level.
func (s Settings) Level() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// LoadCatalog returns the external catalog when one is configured and the
// embedded catalog otherwise.
func (s Settings) LoadCatalog() (*catalog.Catalog, error) {
	if s.Catalog != "" {
		return catalog.LoadFile(s.Catalog)
	}
	return catalog.Default()
}
