package async

import (
	"context"

	"github.com/classroom-tools/attendctl/pkg/utils/errutil"
	"github.com/classroom-tools/attendctl/pkg/utils/logging"
)

// Dispatch runs handler in a new goroutine. The handler gets a background
// context that only keeps the logger of ctx, so it outlives the caller.
// Errors are reported through errutil and panics are logged.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, err, "async handler failed")
		}
	}()
}
