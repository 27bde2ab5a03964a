package errutil

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/classroom-tools/attendctl/pkg/utils/logging"
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
)

// InitSentry enables error reporting to Sentry. An empty DSN keeps
// reporting disabled and returns a no-op flush function.
func InitSentry(dsn, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:     dsn,
		Release: release,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry")
	}

	return func() { sentry.Flush(2 * time.Second) }, nil
}

// Handle logs the error with its goerr values and stack, then reports it
// to Sentry when a client is configured. The error is returned unchanged.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("message", msg)
			if ge != nil {
				scope.SetContext("goerr", sentry.Context(ge.Values()))
			}
			hub.CaptureException(err)
		})
	}

	return err
}

// HandleHTTP logs the error and writes it as a JSON failure envelope in
// the shape the console expects: {"success": false, "error": "..."}.
// Server errors also go through Handle so that they reach Sentry.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	if statusCode >= http.StatusInternalServerError {
		_ = Handle(ctx, err, "HTTP error")
	} else {
		logger := logging.From(ctx)
		var ge *goerr.Error
		if errors.As(err, &ge) {
			logger.Warn("HTTP error",
				"status", statusCode,
				"error", err.Error(),
				"values", ge.Values(),
			)
		} else {
			logger.Warn("HTTP error",
				"status", statusCode,
				"error", err.Error(),
			)
		}
	}

	WriteJSON(ctx, w, statusCode, map[string]any{
		"success": false,
		"error":   err.Error(),
	})
}
