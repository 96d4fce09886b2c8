// Package logging builds the zap logger shared by the shelf components.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the logger flavour.
type Options struct {
	Level string // debug, info, warn or error; empty means info.
	File  string // Rotating log file; empty disables file output.

	// Development forces the console encoder regardless of level.
	Development bool

	// Quiet keeps console output at warn and above. The file sink still
	// gets the configured level.
	Quiet bool
}

// Rotation limits for the log file.
const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

// New returns a logger and a function that flushes and closes it. Debug
// level gets the development config, everything else the production one.
func New(opts Options) (*zap.Logger, func(), error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		l, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("parse log level: %w", err)
		}
		level = l
	}

	var cfg zap.Config
	if opts.Development || level == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	console := level
	if opts.Quiet && console < zapcore.WarnLevel {
		console = zapcore.WarnLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(console)

	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}

	if opts.File == "" {
		return logger, func() { _ = logger.Sync() }, nil
	}

	sink := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(sink),
		level,
	)
	logger = logger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, fileCore)
	}))

	return logger, func() {
		_ = logger.Sync()
		_ = sink.Close()
	}, nil
}
