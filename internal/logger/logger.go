// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger builds the zap logger shared by the CLI and the HTTP surface.
// Logs go to stderr so stdout carries only search output.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/trademark-engine/pkg/types"
)

const serviceName = "trademark-engine"

// New creates a logger for cfg. Development environments get a console
// encoder with colored levels; everything else gets JSON.
func New(cfg types.LogConfig) (*zap.Logger, error) {
	if cfg.Environment == "" {
		cfg.Environment = "production"
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	encoding := "json"
	dev := cfg.Environment == "development"
	if dev {
		encoding = "console"
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      dev,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return l.With(
		zap.String("service", serviceName),
		zap.String("environment", cfg.Environment),
	), nil
}

// ParseLevel converts a configured level name to a zap level. An empty name
// means info.
func ParseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q: use debug, info, warn, or error", level)
	}
}
