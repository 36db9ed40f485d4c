// Package logging writes structured logs to a dated file. The terminal
// belongs to the TUI, so nothing is logged to stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Dir       string // directory for log files
	Level     string // minimum level, as understood by zerolog.ParseLevel
	SessionID string // attached to every record; generated when empty
	Console   io.Writer
}

// FileName returns the log file name for day t.
func FileName(t time.Time) string {
	return fmt.Sprintf("holodeck_%s.log", t.Format("2006-01-02"))
}

// New opens today's log file in cfg.Dir and returns a logger writing to it.
// The returned closer closes the file. When cfg.Console is set, records
// are also written there in human-readable form.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log directory: %w", err)
	}

	path := filepath.Join(cfg.Dir, FileName(time.Now()))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			file.Close()
			return zerolog.Nop(), nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	session := cfg.SessionID
	if session == "" {
		session = uuid.NewString()
	}

	var out io.Writer = file
	if cfg.Console != nil {
		out = zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: cfg.Console, TimeFormat: "15:04:05"})
	}

	logger := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("app", "holodeck").
		Str("session", session).
		Logger()

	return logger, file, nil
}
