package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a sugared zap logger configured for CLI output.
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger builds a console logger. verbose enables debug-level
// output; otherwise info and above are shown.
func NewLogger(verbose bool) *Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.DisableStacktrace = true
	config.DisableCaller = !verbose

	logger, err := config.Build()
	if err != nil {
		logger = zap.NewNop()
	}

	return &Logger{SugaredLogger: logger.Sugar()}
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.SugaredLogger.Sync()
}
