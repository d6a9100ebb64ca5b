package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/masq"
)

// Format is the output format of the log handler
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// SecretTag marks struct fields that must not reach the log output, e.g. `masq:"secret"`
const SecretTag = "secret"

var (
	defaultLogger = New(os.Stdout, slog.LevelInfo, FormatConsole)
	defaultMu     sync.RWMutex
)

type ctxLoggerKey struct{}

// New builds a logger writing to w. Struct fields tagged as secret are redacted
// regardless of the format.
func New(w io.Writer, level slog.Level, format Format) *slog.Logger {
	filter := masq.New(masq.WithTag(SecretTag))

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   true,
			Level:       level,
			ReplaceAttr: filter,
		})
	default:
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(filter),
			clog.WithSource(true),
			clog.WithColor(isTerminal(w)),
		)
	}

	return slog.New(handler)
}

// Default returns the process wide logger
func Default() *slog.Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process wide logger
func SetDefault(logger *slog.Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// With returns a context carrying logger
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns the logger stored in ctx, or Default if there is none
func From(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
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
