// Package dlogger builds the zap loggers handed to the stores and the
// administration facade. Level "none" disables logging entirely, which
// keeps read-only commands quiet for scripting.
package dlogger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LogLevelInfo is the default level.
	LogLevelInfo = "info"

	// LogLevelDebug adds store-level detail.
	LogLevelDebug = "debug"

	// LogLevelNone disables logging.
	LogLevelNone = "none"
)

// GetLogger builds a production zap logger at the given level. Any
// level zapcore parses is accepted, plus "none".
func GetLogger(logLevel string) (*zap.Logger, error) {
	if logLevel == LogLevelNone {
		return zap.NewNop(), nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
