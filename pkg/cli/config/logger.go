package config

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/classroom-tools/attendctl/pkg/utils/errutil"
	"github.com/classroom-tools/attendctl/pkg/utils/logging"
	"github.com/classroom-tools/attendctl/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Logger holds the logging and error reporting flags
type Logger struct {
	level     string
	format    string
	output    string
	sentryDSN string
	release   string
}

func (x *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Category:    "Logging",
			Value:       "info",
			Destination: &x.level,
			Sources:     cli.EnvVars("ATTENDCTL_LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json)",
			Category:    "Logging",
			Value:       string(logging.FormatConsole),
			Destination: &x.format,
			Sources:     cli.EnvVars("ATTENDCTL_LOG_FORMAT"),
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output (stderr, stdout or '-', or a file path)",
			Category:    "Logging",
			Value:       "stderr",
			Destination: &x.output,
			Sources:     cli.EnvVars("ATTENDCTL_LOG_OUTPUT"),
		},
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting",
			Category:    "Logging",
			Destination: &x.sentryDSN,
			Sources:     cli.EnvVars("ATTENDCTL_SENTRY_DSN"),
		},
	}
}

func (x Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", x.level),
		slog.String("format", x.format),
		slog.String("output", x.output),
		slog.Bool("sentry", x.sentryDSN != ""),
	)
}

// SetRelease sets the release name reported to Sentry
func (x *Logger) SetRelease(release string) {
	x.release = release
}

// Configure installs the default logger and error reporter. The returned
// function flushes Sentry and closes a log file.
func (x *Logger) Configure() (func(), error) {
	level, err := logging.ParseLevel(x.level)
	if err != nil {
		return nil, err
	}

	var (
		w      io.Writer
		closer io.Closer
	)
	switch x.output {
	case "stdout", "-":
		w = os.Stdout
	case "stderr", "":
		w = os.Stderr
	default:
		// #nosec G304 - path is provided by CLI argument
		f, err := os.OpenFile(x.output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidLogOutput, err.Error(), goerr.V(ValueKey, x.output))
		}
		w, closer = f, f
	}

	logger, err := logging.New(w, level, logging.Format(x.format))
	if err != nil {
		safe.Close(context.Background(), closer)
		return nil, err
	}
	logging.SetDefault(logger)

	flush, err := errutil.InitSentry(x.sentryDSN, x.release)
	if err != nil {
		safe.Close(context.Background(), closer)
		return nil, err
	}

	return func() {
		flush()
		safe.Close(context.Background(), closer)
	}, nil
}
