// Package logging provides the process-wide structured logger used across
// the undo engine. Every subsystem gets its own named logger so log levels
// can be tuned per component without touching call sites.
package logging

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu             sync.Mutex
	level          = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	defaultOptions = []zap.Option{zap.AddCaller()}
)

// Logger returns a SugaredLogger scoped to system, e.g. "undo-history" or
// "undo-codec". Loggers share one atomic level so ApplyLevel affects all of
// them at once.
func Logger(system string) *zap.SugaredLogger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	l := zap.New(core, defaultOptions...).Named(system)
	return l.Sugar()
}

// ApplyLevel sets the process-wide minimum log level from a string such as
// "debug", "info", "warn", "error". Unknown values are ignored.
func ApplyLevel(s string) {
	mu.Lock()
	defer mu.Unlock()
	var lv zapcore.Level
	if err := lv.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return
	}
	level.SetLevel(lv)
}

// ApplyLevelFromEnv reads SPRITEUNDO_LOG_LEVEL and applies it, if set.
func ApplyLevelFromEnv() {
	if v := os.Getenv("SPRITEUNDO_LOG_LEVEL"); v != "" {
		ApplyLevel(v)
	}
}
