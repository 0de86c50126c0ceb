// Package logger builds the zap logger used by the command line tool.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log formats.
const (
	FormatJSON  = "json"
	FormatHuman = "human"
)

// Config contains configuration for the logger.
type Config struct {
	Debug     bool   // Enable debug level logging
	LogFormat string // "json" or "human"
	// OutputPaths defaults to stderr so that reports written to stdout stay
	// machine readable.
	OutputPaths []string
}

// DefaultConfig returns a human readable, info level configuration.
func DefaultConfig() Config {
	return Config{
		LogFormat:   FormatHuman,
		OutputPaths: []string{"stderr"},
	}
}

// New builds a logger from the configuration.
func New(config Config) (*zap.Logger, error) {
	var zapConfig zap.Config

	switch strings.ToLower(config.LogFormat) {
	case FormatJSON:
		zapConfig = zap.NewProductionConfig()
	case FormatHuman, "":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		// development config starts at debug
		zapConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	default:
		return nil, fmt.Errorf("unknown log format %q (valid: json, human)", config.LogFormat)
	}

	zapConfig.OutputPaths = config.OutputPaths
	if len(zapConfig.OutputPaths) == 0 {
		zapConfig.OutputPaths = []string{"stderr"}
	}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	if config.Debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
