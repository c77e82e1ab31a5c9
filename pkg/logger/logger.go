package logger

import (
	"log/slog"
	"os"
	"strings"
)

var Log *slog.Logger

// Init configures the process-wide JSON logger. LOG_LEVEL tunes verbosity
// (debug, info, warn, error); info is the default.
func Init() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler).With("service", "interview-backend")
}
