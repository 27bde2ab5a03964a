package async_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/classroom-tools/attendctl/pkg/utils/async"
	"github.com/classroom-tools/attendctl/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newLogger(t *testing.T) (*slog.Logger, *syncBuffer) {
	t.Helper()
	buf := &syncBuffer{}
	logger, err := logging.New(buf, slog.LevelDebug, logging.FormatJSON)
	gt.NoError(t, err).Required()
	return logger, buf
}

func waitFor(t *testing.T, buf *syncBuffer, text string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(buf.String(), text) {
		if time.Now().After(deadline) {
			t.Fatalf("log does not contain %q: %s", text, buf.String())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDispatch(t *testing.T) {
	t.Run("handler keeps the logger but not the cancellation", func(t *testing.T) {
		logger, _ := newLogger(t)
		ctx, cancel := context.WithCancel(logging.With(context.Background(), logger))
		cancel()

		done := make(chan *slog.Logger, 1)
		var ctxErr error
		async.Dispatch(ctx, func(ctx context.Context) error {
			ctxErr = ctx.Err()
			done <- logging.From(ctx)
			return nil
		})

		select {
		case got := <-done:
			gt.Value(t, got).Equal(logger)
			gt.NoError(t, ctxErr)
		case <-time.After(2 * time.Second):
			t.Fatal("handler did not run")
		}
	})

	t.Run("error is logged", func(t *testing.T) {
		logger, buf := newLogger(t)
		ctx := logging.With(context.Background(), logger)

		async.Dispatch(ctx, func(ctx context.Context) error {
			return goerr.New("redraw failed")
		})
		waitFor(t, buf, "async handler failed")
		waitFor(t, buf, "redraw failed")
	})

	t.Run("panic is recovered", func(t *testing.T) {
		logger, buf := newLogger(t)
		ctx := logging.With(context.Background(), logger)

		async.Dispatch(ctx, func(ctx context.Context) error {
			panic("boom")
		})
		waitFor(t, buf, "panic in async handler")
	})
}
