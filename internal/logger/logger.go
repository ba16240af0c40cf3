// Package logger provides construction of the shared zap logger.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Logger holds the zap instance shared across the application.
type Logger struct {
	Log *zap.Logger
}

// New returns a Logger backed by a no-op zap instance. Call Init to replace
// it with a configured logger.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production logger at the given level ("Debug", "Info",
// "Warn", "Error") and installs it on the Logger.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	log, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = log
	return nil
}
