// Package obslog provides the structured logger shared by this module's
// packages, generalizing the teacher's seeder/internal/logging package
// (which builds a *zap.Logger from a level/format pair) for library use.
package obslog

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap.SugaredLogger for the given level ("debug", "info",
// "warn", "error") and format ("json" or "console").
func New(level, format string) (*zap.SugaredLogger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("obslog: invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch strings.ToLower(format) {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("obslog: invalid log format %q, must be 'json' or 'console'", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("obslog: failed to build logger: %w", err)
	}
	return logger.Sugar(), nil
}

// defaultLogger backs L with a safe default so package-level logging calls
// never panic when the caller hasn't configured a logger.
var defaultLogger = zap.NewNop().Sugar()

// current holds the process-wide logger used by this module's packages.
var current = defaultLogger

// Set installs logger as the process-wide logger used by this module's
// packages. Passing nil restores the no-op default.
func Set(logger *zap.SugaredLogger) {
	if logger == nil {
		current = defaultLogger
		return
	}
	current = logger
}

// L returns the process-wide logger.
func L() *zap.SugaredLogger {
	return current
}
