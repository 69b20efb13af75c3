// Package applog wires a zap.Logger for the scan CLI and the engine it
// drives. Production output is compact JSON; verbose mode switches to
// debug level and console encoding.
package applog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger for command-line use. verbose enables debug-level,
// human-readable console output; otherwise logs are JSON at info level.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// Noop returns a logger that discards all output, for library callers
// that do not supply their own.
func Noop() *zap.Logger {
	return zap.NewNop()
}
