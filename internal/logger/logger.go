// Package logger owns the process-wide zap logger and the request-scoped
// helpers built on it.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log   *zap.Logger
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Init builds the process logger. "production" emits JSON to stdout, anything
// else uses the colored console encoder at debug level. LOG_LEVEL overrides
// the level in both cases.
func Init(env string) {
	var cfg zap.Config

	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
		level.SetLevel(zapcore.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		level.SetLevel(zapcore.DebugLevel)
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		_ = SetLevel(lvl)
	}
	cfg.Level = level

	l, err := cfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
	log = l
}

// SetLevel changes the minimum level of the logger built by Init. Unknown
// names are rejected and leave the level unchanged.
func SetLevel(name string) error {
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return err
	}
	level.SetLevel(lvl)
	return nil
}

// L returns the global logger, initializing it from APP_ENV on first use.
func L() *zap.Logger {
	if log == nil {
		Init(os.Getenv("APP_ENV"))
	}
	return log
}

// Named returns the global logger scoped to a background component.
func Named(component string) *zap.Logger {
	return L().Named(component)
}

func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}

// Replace swaps the global logger and returns a func restoring the old one.
func Replace(l *zap.Logger) func() {
	prev := log
	log = l
	return func() { log = prev }
}
