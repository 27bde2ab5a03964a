package usecase

import (
	"context"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/classroom-tools/attendctl/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// LoadWorkspaces fetches the workspace list. An empty list is reported as
// ErrNoWorkspaces with the "no workspaces" message in the view.
func (c *Console) LoadWorkspaces(ctx context.Context) error {
	workspaces, err := c.backend.ListWorkspaces(ctx)
	if err != nil {
		msg := describe(ctx, err, prefixLoadWorkspacesFailed, prefixLoadWorkspacesError)
		c.update(func() { c.errMsg = msg })
		return err
	}

	c.update(func() {
		c.workspaces = workspaces
		if c.current != nil {
			if ws, err := workspaces.Find(c.current.ID); err == nil {
				c.current = ws
			} else {
				c.toIdle()
			}
		}
		if len(workspaces) == 0 {
			c.errMsg = MsgNoWorkspaces
		}
	})

	if len(workspaces) == 0 {
		return goerr.Wrap(ErrNoWorkspaces, "workspace list is empty")
	}
	logging.From(ctx).Debug("workspaces loaded", "count", len(workspaces))
	return nil
}

// SelectWorkspace makes a workspace current. An empty id behaves like
// ClearWorkspace.
func (c *Console) SelectWorkspace(id string) error {
	if id == "" {
		c.ClearWorkspace()
		return nil
	}

	var err error
	c.update(func() {
		var ws *model.Workspace
		ws, err = c.workspaces.Find(id)
		if err != nil {
			c.errMsg = MsgWorkspaceNotFound
			return
		}
		if c.state == types.StateRunInFlight {
			err = goerr.Wrap(ErrRunInFlight, "cannot switch workspace during a run")
			c.errMsg = MsgRunInFlight
			return
		}
		c.toWorkspace(ws, false)
	})
	return err
}

// ClearWorkspace deselects the current workspace
func (c *Console) ClearWorkspace() {
	c.update(func() {
		if c.state == types.StateRunInFlight {
			c.errMsg = MsgRunInFlight
			return
		}
		c.toIdle()
	})
}

// CurrentWorkspace returns the selected workspace or nil
func (c *Console) CurrentWorkspace() *model.Workspace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// DismissMessages clears the error, notice and warning texts
func (c *Console) DismissMessages() {
	c.update(func() {
		c.errMsg = ""
		c.notice = ""
		c.warning = ""
	})
}
