package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// AddWorkspace validates the registration, runs the configured preflight
// checks and provisions the workspace. Nothing is sent to the backend when
// validation or preflight fails. On success the list is reloaded and the
// new workspace becomes current.
func (c *Console) AddWorkspace(ctx context.Context, reg *model.WorkspaceRegistration) error {
	reg.Normalize()
	if err := reg.Validate(); err != nil {
		msg := registrationMessage(err)
		c.update(func() { c.errMsg = msg })
		return err
	}

	if err := c.preflight(ctx, reg); err != nil {
		return err
	}

	if err := c.backend.AddWorkspace(ctx, reg); err != nil {
		msg := describe(ctx, err, prefixAddWorkspaceFailed, prefixAddWorkspaceError)
		c.update(func() { c.errMsg = msg })
		return err
	}
	logging.From(ctx).Info("workspace added", "workspace", reg.FolderName, "registration", reg)

	if err := c.LoadWorkspaces(ctx); err != nil {
		return err
	}
	if err := c.SelectWorkspace(reg.FolderName); err != nil {
		return err
	}
	c.update(func() { c.notice = MsgWorkspaceAdded })
	c.refreshStatus(ctx)
	return nil
}

func (c *Console) preflight(ctx context.Context, reg *model.WorkspaceRegistration) error {
	logger := logging.From(ctx)

	if c.slackVerifier != nil {
		team, err := c.slackVerifier.VerifyBot(ctx, reg.BotToken, reg.ChannelID)
		if err != nil {
			c.update(func() { c.errMsg = prefixSlackPreflight + err.Error() })
			return goerr.Wrap(ErrPreflightFailed, err.Error(), goerr.V("check", "slack"))
		}
		logger.Info("slack preflight passed", "team", team, "channel", reg.ChannelID)
	}

	if c.sheetVerifier != nil {
		title, err := c.sheetVerifier.VerifySheet(ctx, []byte(reg.CredentialsJSON), reg.SpreadsheetID, reg.SheetName)
		if err != nil {
			c.update(func() { c.errMsg = prefixSheetPreflight + err.Error() })
			return goerr.Wrap(ErrPreflightFailed, err.Error(), goerr.V("check", "sheets"))
		}
		logger.Info("sheet preflight passed", "title", title, "sheet", reg.SheetName)
	}
	return nil
}

// RequestDeleteWorkspace creates the two step confirmation DeleteWorkspace
// needs. An empty id targets the current workspace.
func (c *Console) RequestDeleteWorkspace(workspaceID string) (*model.Confirmation, error) {
	var (
		conf *model.Confirmation
		err  error
	)
	c.update(func() {
		if workspaceID == "" {
			if c.current == nil {
				err = goerr.Wrap(ErrNoWorkspaceSelected, "nothing to delete")
				c.errMsg = MsgSelectWorkspaceFirst
				return
			}
			workspaceID = c.current.ID
		}
		conf = model.NewConfirmation(model.ConfirmDeleteWorkspace, workspaceID,
			fmt.Sprintf(promptDeleteWorkspace1, c.displayName(workspaceID)),
			promptDeleteWorkspace2,
		)
		c.pending = conf
	})
	return conf, err
}

// DeleteWorkspace removes the confirmed workspace, reloads the list and
// drops every piece of state that belonged to it
func (c *Console) DeleteWorkspace(ctx context.Context, conf *model.Confirmation) error {
	c.update(func() {
		if c.pending == conf {
			c.pending = nil
		}
	})
	if err := conf.Require(model.ConfirmDeleteWorkspace); err != nil {
		return err
	}

	if err := c.backend.DeleteWorkspace(ctx, conf.Target); err != nil {
		msg := describe(ctx, err, prefixDeleteWorkspaceFailed, prefixDeleteWorkspaceError)
		c.update(func() { c.errMsg = msg })
		return err
	}

	c.update(func() {
		if c.current != nil && c.current.ID == conf.Target {
			c.toIdle()
		}
	})

	// an empty list after deleting the last workspace is not a failure
	if err := c.LoadWorkspaces(ctx); err != nil && !errors.Is(err, ErrNoWorkspaces) {
		return err
	}
	c.update(func() { c.notice = MsgWorkspaceDeleted })
	c.refreshStatus(ctx)
	return nil
}

// CancelConfirmation declines and forgets the pending confirmation
func (c *Console) CancelConfirmation() {
	c.update(func() {
		if c.pending != nil {
			c.pending.Decline()
			c.pending = nil
		}
	})
}

// registrationMessage turns a registration validation error into the
// inline form message
func registrationMessage(err error) string {
	var ge *goerr.Error
	values := map[string]any{}
	if errors.As(err, &ge) {
		values = ge.Values()
	}

	switch {
	case errors.Is(err, model.ErrUnsafeFolderName):
		return MsgUnsafeFolderName
	case errors.Is(err, model.ErrInvalidBotToken):
		return MsgInvalidBotToken
	case errors.Is(err, model.ErrInvalidChannelID):
		return MsgInvalidChannelID
	case errors.Is(err, model.ErrInvalidCredentials):
		return MsgInvalidCreds + fmt.Sprint(values["parse_error"])
	case errors.Is(err, model.ErrMissingField):
		return MsgMissingField + fmt.Sprint(values[model.FieldKey])
	default:
		if _, ok := values[model.FieldKey]; ok {
			return MsgInvalidNameColumn
		}
		return err.Error()
	}
}
