// Package logging builds the zap logger used across projects.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects where and how much to log.
type Options struct {
	// File receives JSON log lines. Empty disables logging.
	File string

	// Level is one of debug, info, warn, error.
	Level string

	// Fields are attached to every entry.
	Fields map[string]string
}

// New returns a logger for opts and a func that flushes and closes it.
// With no File it returns a no-op logger.
func New(opts Options) (*zap.Logger, func() error, error) {
	if opts.File == "" {
		return zap.NewNop(), func() error { return nil }, nil
	}

	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	mkdirErr := os.MkdirAll(filepath.Dir(opts.File), 0o750)
	if mkdirErr != nil {
		return nil, nil, fmt.Errorf("log dir: %w", mkdirErr)
	}

	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	core := zapcore.NewCore(newEncoder(), zapcore.Lock(f), level)
	logger := zap.New(core)

	if len(opts.Fields) > 0 {
		fields := make([]zap.Field, 0, len(opts.Fields))
		for k, v := range opts.Fields {
			fields = append(fields, zap.String(k, v))
		}

		logger = logger.With(fields...)
	}

	closeFn := func() error {
		_ = logger.Sync()

		return f.Close()
	}

	return logger, closeFn, nil
}

func newEncoder() zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapcore.NewJSONEncoder(encoderCfg)
}
