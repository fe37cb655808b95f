package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Options describes logger construction parameters.
type Options struct {
	// Level is one of debug, info, warning, error.
	Level string
	// FilePath, when set, appends JSON records to the given file in
	// addition to console output.
	FilePath string
	// ConsoleWriter receives console output; defaults to stderr.
	ConsoleWriter io.Writer
	// NoColor disables ANSI colors even on a terminal.
	NoColor bool
}

// New constructs a slog logger using the provided options. The returned
// LevelVar adjusts verbosity after construction.
func New(opts Options) (*slog.Logger, *slog.LevelVar, error) {
	levelVar := new(slog.LevelVar)
	levelVar.Set(ParseLevel(opts.Level))

	console := opts.ConsoleWriter
	if console == nil {
		console = os.Stderr
	}

	handlers := []slog.Handler{newConsoleHandler(console, levelVar, !opts.NoColor && isTerminal(console))}

	if path := strings.TrimSpace(opts.FilePath); path != "" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("ensure log directory: %w", err)
			}
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
		}
		handlers = append(handlers, newJSONHandler(file, levelVar))
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), levelVar, nil
	}
	return slog.New(newFanoutHandler(handlers...)), levelVar, nil
}

// ParseLevel maps a configuration level name onto a slog level. Unknown
// names fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warning", "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newJSONHandler(w io.Writer, lvl *slog.LevelVar) slog.Handler {
	opts := slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			}
			return attr
		},
	}
	return slog.NewJSONHandler(w, &opts)
}
