package safe_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/classroom-tools/attendctl/pkg/utils/safe"
	"github.com/m-mizutani/gt"
)

type trackedBody struct {
	*strings.Reader
	closed bool
}

func (b *trackedBody) Close() error {
	b.closed = true
	return errors.New("already closed")
}

func TestDrainAndClose(t *testing.T) {
	ctx := context.Background()
	body := &trackedBody{Reader: strings.NewReader(`{"success":true}` + strings.Repeat(" ", 1024))}

	buf := make([]byte, 4)
	_, err := body.Read(buf)
	gt.NoError(t, err).Required()

	safe.Drain(ctx, body)
	safe.Close(ctx, body)
	gt.Number(t, body.Len()).Equal(0)
	gt.Bool(t, body.closed).True()

	safe.Drain(ctx, nil)
	safe.Close(ctx, nil)
}
