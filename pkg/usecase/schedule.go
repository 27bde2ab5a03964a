package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/classroom-tools/attendctl/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// ResetScheduleForm puts the form back to defaults. Stored schedules are
// never preloaded here so that a saved schedule is not edited by accident.
func (c *Console) ResetScheduleForm() {
	c.update(func() {
		id := ""
		if c.current != nil {
			id = c.current.ID
		}
		c.resetForm(id)
	})
}

// UpdateScheduleForm edits the form in place
func (c *Console) UpdateScheduleForm(fn func(form *ScheduleForm)) {
	c.update(func() { fn(&c.form) })
}

// LoadSchedule fills the form with the stored schedule of a workspace
func (c *Console) LoadSchedule(ctx context.Context, workspaceID string) error {
	cfg, err := c.backend.GetSchedule(ctx, workspaceID)
	if err != nil {
		msg := describe(ctx, err, prefixLoadScheduleFailed, prefixLoadScheduleError)
		c.update(func() { c.errMsg = msg })
		return err
	}

	c.update(func() {
		stopTimer(c.highlightTimer)
		c.form = ScheduleForm{
			WorkspaceID:        workspaceID,
			Schedule:           cfg.Schedule,
			NotificationUserID: cfg.NotificationUserID,
			Loaded:             true,
		}
	})
	return nil
}

// SaveSchedule stores the form for the current workspace and refreshes the
// status table
func (c *Console) SaveSchedule(ctx context.Context) error {
	var (
		cfg *model.ScheduleConfig
		err error
	)
	c.update(func() {
		if c.current == nil {
			err = goerr.Wrap(ErrNoWorkspaceSelected, "cannot save schedule")
			c.errMsg = MsgSelectWorkspaceFirst
			return
		}

		if c.form.WorkspaceID != c.current.ID {
			err = goerr.Wrap(ErrFormMismatch, "cannot save schedule",
				goerr.V(WorkspaceIDKey, c.current.ID),
				goerr.V(FormWorkspaceIDKey, c.form.WorkspaceID),
			)
			c.errMsg = MsgFormMismatch
			return
		}

		sched := c.form.Schedule
		sched.Normalize()
		if verr := sched.Validate(); verr != nil {
			err = verr
			c.errMsg = prefixInvalidSchedule + verr.Error()
			return
		}
		c.form.Schedule = sched
		c.form.NotificationUserID = strings.TrimSpace(c.form.NotificationUserID)

		cfg = &model.ScheduleConfig{
			WorkspaceID:        c.current.ID,
			Schedule:           sched,
			NotificationUserID: c.form.NotificationUserID,
			Configured:         true,
		}
	})
	if err != nil {
		return err
	}

	if err := c.backend.SaveSchedule(ctx, cfg); err != nil {
		msg := describe(ctx, err, prefixSaveScheduleFailed, prefixSaveScheduleError)
		c.update(func() { c.errMsg = msg })
		return err
	}

	c.update(func() {
		c.errMsg = ""
		c.notice = MsgScheduleSaved
	})
	c.refreshStatus(ctx)
	return nil
}

// VerifyNotificationUser looks up the notification recipient of the form
// with a bot token. It returns the Slack display name, or an empty name
// when no recipient is set or no Slack verifier is installed.
func (c *Console) VerifyNotificationUser(ctx context.Context, token string) (string, error) {
	c.mu.Lock()
	userID := strings.TrimSpace(c.form.NotificationUserID)
	c.mu.Unlock()

	if c.slackVerifier == nil || userID == "" {
		return "", nil
	}
	if strings.TrimSpace(token) == "" {
		c.update(func() { c.errMsg = MsgSlackTokenRequired })
		return "", goerr.Wrap(ErrPreflightFailed, "bot token is required to look up the recipient")
	}

	name, err := c.slackVerifier.LookupUser(ctx, strings.TrimSpace(token), userID)
	if err != nil {
		c.update(func() { c.errMsg = prefixNotifyUserPreflight + err.Error() })
		return "", goerr.Wrap(ErrPreflightFailed, err.Error(),
			goerr.V("check", "notify_user"),
			goerr.V("user_id", userID),
		)
	}
	logging.From(ctx).Info("notification recipient verified", "user_id", userID, "name", name)
	return name, nil
}

// LoadScheduleStatus fetches the schedule overview of all workspaces
func (c *Console) LoadScheduleStatus(ctx context.Context) error {
	status, err := c.backend.ListSchedules(ctx)
	if err != nil {
		msg := describe(ctx, err, prefixLoadStatusFailed, prefixLoadStatusError)
		c.update(func() { c.errMsg = msg })
		return err
	}
	c.update(func() { c.status = status })
	return nil
}

// RefreshScheduleStatus reloads the status table without touching the
// error message of the view
func (c *Console) RefreshScheduleStatus(ctx context.Context) error {
	status, err := c.backend.ListSchedules(ctx)
	if err != nil {
		return err
	}
	c.update(func() { c.status = status })
	return nil
}

// refreshStatus reloads the status table after a write. A failure is only
// logged: the write itself succeeded.
func (c *Console) refreshStatus(ctx context.Context) {
	if err := c.RefreshScheduleStatus(ctx); err != nil {
		logging.From(ctx).Warn("failed to refresh schedule status", "error", err)
	}
}

// EditSchedule selects a workspace without resetting the form, loads its
// stored schedule and turns the schedule on with a short highlight
func (c *Console) EditSchedule(ctx context.Context, workspaceID string) error {
	var err error
	c.update(func() {
		ws, ferr := c.workspaces.Find(workspaceID)
		if ferr != nil {
			err = ferr
			c.errMsg = MsgWorkspaceNotFound
			return
		}
		if c.state == types.StateRunInFlight {
			err = goerr.Wrap(ErrRunInFlight, "cannot edit schedule during a run")
			c.errMsg = MsgRunInFlight
			return
		}
		c.toWorkspace(ws, true)
	})
	if err != nil {
		return err
	}

	if err := c.LoadSchedule(ctx, workspaceID); err != nil {
		// the previous workspace's form must not survive the switch
		c.update(func() {
			if c.current != nil && c.current.ID == workspaceID {
				c.resetForm(workspaceID)
			}
		})
		return err
	}

	c.update(func() {
		c.form.Schedule.Enabled = true
		c.form.Highlight = true
		if c.highlight <= 0 {
			c.form.Highlight = false
			return
		}
		c.highlightTimer = time.AfterFunc(c.highlight, func() {
			c.update(func() { c.form.Highlight = false })
		})
	})
	return nil
}

// RequestDeleteSchedule creates the confirmation that DeleteSchedule needs
func (c *Console) RequestDeleteSchedule(workspaceID string) *model.Confirmation {
	var conf *model.Confirmation
	c.update(func() {
		name := c.displayName(workspaceID)
		conf = model.NewConfirmation(model.ConfirmDeleteSchedule, workspaceID,
			fmt.Sprintf(promptDeleteSchedule, name))
		c.pending = conf
	})
	return conf
}

// DeleteSchedule clears the schedule of the confirmed workspace by saving
// a disabled, blank schedule with no notification recipient
func (c *Console) DeleteSchedule(ctx context.Context, conf *model.Confirmation) error {
	c.update(func() {
		if c.pending == conf {
			c.pending = nil
		}
	})
	if err := conf.Require(model.ConfirmDeleteSchedule); err != nil {
		return err
	}

	cfg := &model.ScheduleConfig{
		WorkspaceID: conf.Target,
		Schedule:    model.ClearedSchedule(),
	}
	if err := c.backend.SaveSchedule(ctx, cfg); err != nil {
		msg := describe(ctx, err, prefixDeleteScheduleFailed, prefixDeleteScheduleError)
		c.update(func() { c.errMsg = msg })
		return err
	}

	c.update(func() {
		c.errMsg = ""
		c.notice = MsgScheduleDeleted
		if c.form.WorkspaceID == conf.Target && c.form.Loaded {
			c.resetForm(conf.Target)
		}
	})
	c.refreshStatus(ctx)
	return nil
}

// displayName resolves a folder name for prompts. Callers hold c.mu.
func (c *Console) displayName(workspaceID string) string {
	if ws, err := c.workspaces.Find(workspaceID); err == nil {
		return ws.DisplayName()
	}
	if row := c.status.Find(workspaceID); row != nil && row.WorkspaceName != "" {
		return row.WorkspaceName
	}
	return workspaceID
}
