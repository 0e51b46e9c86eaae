package main

import (
	"strings"

	"go.uber.org/zap"
)

// appLogger is a thin key/value wrapper over zap's sugared logger.
type appLogger struct {
	sugar *zap.SugaredLogger
}

// newLogger builds a JSON logger in production mode and a console logger otherwise.
func newLogger(mode string) (*appLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &appLogger{sugar: zl.Sugar()}, nil
}

// nopLogger discards everything. Used by tests.
func nopLogger() *appLogger {
	return &appLogger{sugar: zap.NewNop().Sugar()}
}

func (l *appLogger) Sync() { _ = l.sugar.Sync() }

func (l *appLogger) Debug(msg string, kv ...interface{}) { l.sugar.Debugw(msg, kv...) }
func (l *appLogger) Info(msg string, kv ...interface{})  { l.sugar.Infow(msg, kv...) }
func (l *appLogger) Warn(msg string, kv ...interface{})  { l.sugar.Warnw(msg, kv...) }
func (l *appLogger) Error(msg string, kv ...interface{}) { l.sugar.Errorw(msg, kv...) }

func (l *appLogger) With(kv ...interface{}) *appLogger {
	return &appLogger{sugar: l.sugar.With(kv...)}
}
