package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a sugared zap logger with printf-style level methods
type Logger struct {
	s *zap.SugaredLogger
}

// NewLogger creates a console logger. Debug lines are only emitted when debug is true.
func NewLogger(debug bool) *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true

	base, err := cfg.Build()
	if err != nil {
		base = zap.NewNop()
	}
	return &Logger{s: base.Named("badge").Sugar()}
}

// NewNopLogger returns a logger that discards everything
func NewNopLogger() *Logger {
	return &Logger{s: zap.NewNop().Sugar()}
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.s.Infof(msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.s.Warnf(msg, args...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.s.Errorf(msg, args...)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.s.Debugf(msg, args...)
}

// Sync flushes buffered log entries
func (l *Logger) Sync() {
	_ = l.s.Sync()
}
