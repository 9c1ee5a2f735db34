// Package logging builds the zap loggers used by the container and its interceptors.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config defines the logging configuration
type Config struct {
	// Level is the log level (debug, info, warn, error)
	Level string `yaml:"level" json:"level"`

	// Format is the log format (json, console)
	Format string `yaml:"format" json:"format"`
}

// DefaultConfig returns default logging configuration
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "json",
	}
}

// Validate checks level and format.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Level); err != nil {
		return err
	}
	switch c.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("logging: unknown format %q (want json or console)", c.Format)
	}
}

// NewLogger creates a structured logger based on the provided configuration
func NewLogger(config *Config) (*zap.Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return buildZapConfig(config).Build()
}

// Must is NewLogger for bootstrap code; it panics on an invalid configuration.
func Must(config *Config) *zap.Logger {
	logger, err := NewLogger(config)
	if err != nil {
		panic(err)
	}
	return logger
}

// buildZapConfig creates a zap configuration based on logging config
func buildZapConfig(config *Config) zap.Config {
	var zapConfig zap.Config

	if config.Format == "json" {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig = zap.NewProductionEncoderConfig()
		zapConfig.EncoderConfig.TimeKey = "time"
		zapConfig.EncoderConfig.LevelKey = "level"
		zapConfig.EncoderConfig.MessageKey = "msg"
		zapConfig.EncoderConfig.CallerKey = "caller"
		zapConfig.EncoderConfig.StacktraceKey = "stacktrace"
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapConfig.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	level, _ := parseLevel(config.Level)
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	return zapConfig
}

// parseLevel converts a string log level to zapcore.Level. An empty level is info.
func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("logging: unknown level %q", level)
	}
}
