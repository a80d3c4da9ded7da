package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/hap-eb/ebill-reports/config"
)

// InitLogger installs the JSON logger used until configuration is loaded.
func InitLogger() *slog.Logger {
	return installLogger(false, slog.LevelInfo)
}

// ConfigureLogger replaces the default logger using LOG_LEVEL and dev mode.
// Development mode switches to the text handler.
func ConfigureLogger(cfg *config.AppConfig) *slog.Logger {
	if cfg == nil {
		return InitLogger()
	}
	return installLogger(cfg.IsDev, cfg.SlogLevel())
}

func installLogger(dev bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if dev {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// LoadConfig reads a .env file when present, then the environment, and
// sanitizes the result.
func LoadConfig() (config.AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.Sanitize()
	return cfg, nil
}

// ValidateServiceConfig fails unless SERVICES names at least one known mode.
func ValidateServiceConfig(cfg *config.AppConfig) error {
	if cfg == nil {
		return errors.New("service config is required")
	}
	services, err := cfg.GetEnabledServices()
	switch {
	case err != nil:
		return fmt.Errorf("invalid service configuration: %w", err)
	case len(services) == 0:
		return errors.New("no services enabled")
	}
	return nil
}

// GetEnabledServices lists enabled modes sorted by name. Invalid
// configuration yields an empty list; ValidateServiceConfig reports why.
func GetEnabledServices(cfg *config.AppConfig) []string {
	if cfg == nil {
		return []string{}
	}
	services, err := cfg.GetEnabledServices()
	if err != nil {
		return []string{}
	}
	names := make([]string, 0, len(services))
	for mode := range maps.Keys(services) {
		names = append(names, string(mode))
	}
	slices.Sort(names)
	return names
}
