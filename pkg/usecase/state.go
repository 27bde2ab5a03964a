package usecase

import (
	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// The transition functions below are the only writers of c.state. Each one
// performs the resets its target state requires. Callers hold c.mu.

// toIdle drops the current workspace and everything that belongs to it
func (c *Console) toIdle() {
	c.current = nil
	c.clearThread()
	c.result = nil
	c.errMsg = ""
	c.resetForm("")
	c.state = types.StateIdle
}

// toWorkspace makes ws current. The schedule form is reset to defaults
// unless keepForm is set; EditSchedule fills the form itself.
func (c *Console) toWorkspace(ws *model.Workspace, keepForm bool) {
	c.current = ws
	c.clearThread()
	c.result = nil
	c.errMsg = ""
	if !keepForm {
		c.resetForm(ws.ID)
	}
	c.state = types.StateWorkspaceSelected
}

// toThreadResolved records the thread that the next run will use
func (c *Console) toThreadResolved(ref model.ThreadRef, discovered *model.DiscoveredThread) {
	c.thread = ref
	c.discovered = discovered
	c.threadGen++
	c.state = types.StateThreadResolved
}

// toThreadCleared forgets the thread but keeps the workspace
func (c *Console) toThreadCleared() {
	c.clearThread()
	if c.current != nil {
		c.state = types.StateWorkspaceSelected
	}
}

// toRunInFlight is allowed only from ThreadResolved
func (c *Console) toRunInFlight() error {
	switch c.state {
	case types.StateThreadResolved:
		c.state = types.StateRunInFlight
		c.result = nil
		c.errMsg = ""
		c.runSeq++
		return nil
	case types.StateRunInFlight:
		return goerr.Wrap(ErrRunInFlight, "run already in flight")
	case types.StateIdle:
		return goerr.Wrap(ErrNoWorkspaceSelected, "cannot run", goerr.V(StateKey, c.state.String()))
	default:
		return goerr.Wrap(ErrNoThread, "cannot run", goerr.V(StateKey, c.state.String()))
	}
}

// runFinished returns to ThreadResolved
func (c *Console) runFinished() {
	if c.state == types.StateRunInFlight {
		c.state = types.StateThreadResolved
	}
}

// clearThread bumps threadGen so that a thread lookup started before the
// change is dropped when it returns
func (c *Console) clearThread() {
	c.thread = model.ThreadRef{}
	c.discovered = nil
	c.threadGen++
}

func (c *Console) resetForm(workspaceID string) {
	stopTimer(c.highlightTimer)
	c.form = c.blankForm(workspaceID)
}
