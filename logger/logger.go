// Package logger builds the structured slog logger shared by the engine
// and the front ends.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Log format values.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Attribute keys added to every record.
const (
	AttrKeyService = "service"
	AttrKeySession = "session"
)

// ServiceName tags every record.
const ServiceName = "turncore"

// Config represents logger configuration
type Config struct {
	Level     string // "debug", "info", "warn", "error"
	Format    string // "json", "text"
	AddSource bool   // Include source file/line in logs
}

// DefaultConfig returns defaults used when nothing is configured.
func DefaultConfig() Config {
	return Config{Level: "info", Format: FormatText}
}

// LogLevel converts string level to slog.Level
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsJSON returns true if format is JSON
func (c Config) IsJSON() bool {
	return strings.ToLower(c.Format) == FormatJSON
}

// New builds a logger writing to w. Every record carries the service name
// and a fresh session id.
func New(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel(), AddSource: cfg.AddSource}
	var h slog.Handler
	if cfg.IsJSON() {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With(
		slog.String(AttrKeyService, ServiceName),
		slog.String(AttrKeySession, NewSessionID()),
	)
}

// Init builds a stderr logger and installs it as the slog default.
func Init(cfg Config) *slog.Logger {
	l := New(cfg, os.Stderr)
	slog.SetDefault(l)
	return l
}

// NewSessionID returns a random id tying together the records of one run.
func NewSessionID() string {
	return uuid.NewString()
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
