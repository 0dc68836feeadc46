// Package logging builds the zap logger shared by the CLI and the TUI.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	// Level is one of debug, info, warn, error. Empty means warn.
	Level string
	// Path receives JSON log lines. Empty means stderr; "off" disables logging.
	Path string
	// Verbose forces debug level.
	Verbose bool
}

func New(opts Options) (*zap.Logger, error) {
	path := strings.TrimSpace(opts.Path)
	if strings.EqualFold(path, "off") {
		return zap.NewNop(), nil
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.Sampling = nil
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if path != "" {
		config.OutputPaths = []string{path}
		config.ErrorOutputPaths = []string{path}
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("shopd"), nil
}

func ParseLevel(raw string) (zapcore.Level, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return zapcore.WarnLevel, nil
	}
	level, err := zapcore.ParseLevel(strings.ToLower(trimmed))
	if err != nil {
		return zapcore.WarnLevel, fmt.Errorf("invalid log level %q: %w", raw, err)
	}
	return level, nil
}
