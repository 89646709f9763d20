// Package log configures structured logging for regsweep. The engine logs
// through the default slog logger; SetupLogger installs either a JSON handler
// for machine consumption or a tint console handler for interactive runs,
// both wrapped so cockroachdb/errors stack traces surface as a dedicated
// attribute.
package log

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Format selects the output format of the default logger.
type Format int

const (
	// FormatJSON emits one JSON object per record.
	FormatJSON Format = iota
	// FormatConsole emits colorized human-readable records via tint.
	FormatConsole
)

// SetupLogger installs the default slog logger at the given level.
func SetupLogger(loglevel string, format Format) {
	level := ToLogLevel(loglevel)

	var handler slog.Handler
	switch format {
	case FormatConsole:
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		})
	default:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			AddSource: true,
			Level:     level,
		})
	}

	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))
}

// ToLogLevel converts a level name to a slog.Level.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
