// Package logger owns the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	once   sync.Once
	logger *slog.Logger
)

type Config struct {
	Level  string // DEBUG, INFO, WARN, ERROR
	Format string // json, text
	Output io.Writer
}

// Init sets up the global logger. Only the first call has an effect.
func Init(cfg Config) {
	once.Do(func() {
		logger = New(cfg)
		slog.SetDefault(logger)
	})
}

// New builds a logger without touching the global one.
func New(cfg Config) *slog.Logger {
	var level slog.Level
	switch strings.ToUpper(cfg.Level) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	return slog.New(handler)
}

// Get returns the global logger, initializing a JSON/INFO one if needed.
func Get() *slog.Logger {
	Init(Config{Level: "INFO", Format: "json"})
	return logger
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
