package cli

import (
	"context"
	"io"
)

func RunWithIO(ctx context.Context, args []string, stdout io.Writer, stdin io.Reader) error {
	return run(ctx, args, "test", stdout, stdin)
}
