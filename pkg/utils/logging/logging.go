package logging

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"sync"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
)

// Format selects the slog handler used for output
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

var (
	defaultMu     sync.RWMutex
	defaultLogger = slog.New(slog.DiscardHandler)
)

type ctxLoggerKey struct{}

// slackTokenPattern matches Slack bot, user and app level tokens
var slackTokenPattern = regexp.MustCompile(`xox[abpr]-[0-9A-Za-z-]+`)

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

// With returns a new context carrying the logger
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns the logger stored in ctx, or Default when there is none
func From(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// ParseLevel converts a level name into slog.Level
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, goerr.Wrap(err, "invalid log level", goerr.V("level", s))
	}
	return level, nil
}

// Redactor returns the attribute filter that hides credentials. Struct
// fields tagged with `masq:"secret"` and anything shaped like a Slack
// token are masked.
func Redactor() func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(
		masq.WithTag("secret"),
		masq.WithFieldName("BotToken"),
		masq.WithFieldName("CredentialsJSON"),
		masq.WithRegex(slackTokenPattern),
	)
}

// New builds a logger writing to w
func New(w io.Writer, level slog.Level, format Format) (*slog.Logger, error) {
	var handler slog.Handler

	switch format {
	case FormatConsole, "":
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithColor(isTerminal(w)),
			clog.WithTimeFmt("15:04:05.000"),
			clog.WithReplaceAttr(Redactor()),
		)
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: Redactor(),
		})
	default:
		return nil, goerr.New("unsupported log format", goerr.V("format", format))
	}

	return slog.New(handler), nil
}
