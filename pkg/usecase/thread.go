package usecase

import (
	"context"
	"strings"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// SetThreadMode switches between discovery and manual entry. Any resolved
// thread is forgotten, even when the mode does not change.
func (c *Console) SetThreadMode(mode types.ThreadMode) error {
	if !mode.IsValid() {
		return goerr.New("invalid thread mode", goerr.V("mode", mode))
	}

	var err error
	c.update(func() {
		if c.state == types.StateRunInFlight {
			err = goerr.Wrap(ErrRunInFlight, "cannot switch thread mode during a run")
			c.errMsg = MsgRunInFlight
			return
		}
		c.threadMode = mode
		c.toThreadCleared()
	})
	return err
}

// ToggleThreadMode flips the thread mode
func (c *Console) ToggleThreadMode() error {
	c.mu.Lock()
	next := c.threadMode.Toggle()
	c.mu.Unlock()
	return c.SetThreadMode(next)
}

// FindThread asks the backend for the latest attendance thread of the
// current workspace
func (c *Console) FindThread(ctx context.Context) error {
	c.mu.Lock()
	ws := c.current
	state := c.state
	gen := c.threadGen
	c.mu.Unlock()

	if ws == nil {
		c.update(func() { c.errMsg = MsgSelectWorkspaceFirst })
		return goerr.Wrap(ErrNoWorkspaceSelected, "cannot find thread")
	}
	if state == types.StateRunInFlight {
		c.update(func() { c.errMsg = MsgRunInFlight })
		return goerr.Wrap(ErrRunInFlight, "cannot find thread during a run")
	}

	found, err := c.backend.FindThread(ctx, ws.ID)
	if err != nil {
		msg := describe(ctx, err, prefixFindThreadFailed, prefixFindThreadError)
		c.update(func() { c.errMsg = msg })
		return err
	}

	c.update(func() {
		// the operator may have moved on while the request was out
		if c.threadGen != gen || c.current == nil || c.current.ID != ws.ID ||
			c.state == types.StateRunInFlight {
			return
		}
		c.threadMode = types.ThreadModeAuto
		c.toThreadResolved(found.Ref, found)
		c.errMsg = ""
	})
	return nil
}

// EnterThread commits manual input. Blank input is ignored. The input may
// be a timestamp or a permalink; manual entry never has a DM target.
func (c *Console) EnterThread(input string) error {
	ts := model.ParseThreadInput(input)
	if ts == "" {
		return nil
	}

	var err error
	c.update(func() {
		switch c.state {
		case types.StateIdle:
			err = goerr.Wrap(ErrNoWorkspaceSelected, "cannot enter thread")
			c.errMsg = MsgSelectWorkspace
			return
		case types.StateRunInFlight:
			err = goerr.Wrap(ErrRunInFlight, "cannot enter thread during a run")
			c.errMsg = MsgRunInFlight
			return
		}
		c.threadMode = types.ThreadModeManual
		c.toThreadResolved(model.ThreadRef{TS: strings.TrimSpace(ts)}, nil)
		c.errMsg = ""
	})
	return err
}
