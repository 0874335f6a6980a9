// Package logging builds the process zap logger from configuration.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Ayflow350/lexend-jobs/internal/config"
)

// New builds a logger. JSON output uses the production preset and console
// output the development preset; verbose forces debug level.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zcfg, err := Config(cfg, verbose)
	if err != nil {
		return nil, err
	}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Config returns the zap configuration New would build from.
func Config(cfg config.LoggingConfig, verbose bool) (zap.Config, error) {
	var zcfg zap.Config
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		zcfg = zap.NewProductionConfig()
	case "console":
		zcfg = zap.NewDevelopmentConfig()
	default:
		return zap.Config{}, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}

	level := zapcore.InfoLevel
	if raw := strings.TrimSpace(cfg.Level); raw != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(raw))); err != nil {
			return zap.Config{}, fmt.Errorf("logging: unknown level %q", cfg.Level)
		}
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg, nil
}
