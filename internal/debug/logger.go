package debug

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// LoggerOptions controls the user-facing CLI logger.
type LoggerOptions struct {
	Level   string
	NoColor bool
}

// ParseLevel maps "debug", "info", "warn" and "error" onto slog levels. Unknown
// values fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// NewLogger builds a tint-backed slog logger writing to w. Colour is disabled
// when requested or when w is not a terminal. With tracing on, the level drops
// to debug and trace lines share w.
func NewLogger(w io.Writer, opts LoggerOptions) *slog.Logger {
	noColor := opts.NoColor || !isTerminal(w)
	level := ParseLevel(opts.Level)
	if IsDebugEnabled() {
		level = slog.LevelDebug
		SetDebugOutput(w)
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
