package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/classroom-tools/attendctl/pkg/utils/logging"
)

// Close closes closer and logs a failure instead of returning it.
// A nil closer is ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Warn("Failed to close", slog.Any("error", err))
	}
}

// Write writes data to w and logs a failure instead of returning it
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Warn("Failed to write", slog.Any("error", err))
	}
}

// Drain discards the rest of r so the underlying connection can be reused
func Drain(ctx context.Context, r io.Reader) {
	if r == nil {
		return
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		logging.From(ctx).Debug("Failed to drain", slog.Any("error", err))
	}
}
