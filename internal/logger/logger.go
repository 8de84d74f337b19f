package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gotera/internal/config"
)

// Logger wraps slog.Logger with request and user helpers
type Logger struct {
	*slog.Logger
}

// New creates the application logger and installs it as the slog default.
// Production uses JSON output; everything else uses text.
func New(cfg *config.Config) *Logger {
	return newWithWriter(cfg, os.Stdout)
}

func newWithWriter(cfg *config.Config, w io.Writer) *Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.LogLevel),
		AddSource: cfg.IsProduction(),
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler).With(
		"service", "gotera-dashboard",
		"environment", cfg.Environment,
	)
	slog.SetDefault(logger)

	return &Logger{Logger: logger}
}

// WithRequest creates a logger with request context
func (l *Logger) WithRequest(requestID, method, path string) *slog.Logger {
	return l.With(
		"request_id", requestID,
		"method", method,
		"path", path,
	)
}

// WithUser creates a logger with user context
func (l *Logger) WithUser(userID, role string) *slog.Logger {
	return l.With(
		"user_id", userID,
		"role", role,
	)
}

// WithError creates a logger with error context
func (l *Logger) WithError(err error) *slog.Logger {
	if err == nil {
		return l.Logger
	}
	return l.With("error", err.Error())
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Silence redirects the default logger to w at error level (useful for testing)
func Silence(w io.Writer) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelError})
	slog.SetDefault(slog.New(handler))
}
