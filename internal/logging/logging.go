package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// File, when set, receives the log stream in addition to stderr and is
	// rotated by size.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// New creates a production-ready structured logger configured for JSON output.
func New(opts ...Options) (*zap.Logger, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}

	level, err := parseLevel(o.Level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.StacktraceKey = "stacktrace"

	if o.File == "" {
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "json"
		cfg.EncoderConfig = encCfg
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.DisableStacktrace = false

		logger, err := cfg.Build()
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
		return logger, nil
	}

	maxSize := o.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 50
	}
	maxBackups := o.MaxBackups
	if maxBackups <= 0 {
		maxBackups = 3
	}
	rotating := zapcore.AddSync(&lumberjack.Logger{
		Filename:   o.File,
		MaxSize:    maxSize, // megabytes
		MaxBackups: maxBackups,
	})

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.NewMultiWriteSyncer(zapcore.Lock(os.Stderr), rotating),
		level,
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

func parseLevel(raw string) (zapcore.Level, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(raw)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}
