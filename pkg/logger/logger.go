// Package logger builds the process-wide zap logger.
package logger

import (
	"errors"
	"fmt"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a sugared production logger at the named level ("debug", "info",
// "warn", "error"). The returned func flushes buffered entries and is meant
// to be deferred in main.
func New(level string) (*zap.SugaredLogger, func(), error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("can't parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stdout"}
	cfg.Level = zap.NewAtomicLevelAt(parsed)

	l, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("can't init logger: %w", err)
	}
	sugar := l.Sugar()

	syncFunc := func() {
		if err := sugar.Sync(); err != nil && !errors.Is(err, syscall.EBADF) && !errors.Is(err, syscall.ENOTTY) {
			sugar.Errorf("%s: can't sync logger", err)
		}
	}

	return sugar, syncFunc, nil
}
