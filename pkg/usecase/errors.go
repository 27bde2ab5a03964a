package usecase

import (
	"context"

	"github.com/classroom-tools/attendctl/pkg/service/backend"
	"github.com/classroom-tools/attendctl/pkg/utils/errutil"
	"github.com/classroom-tools/attendctl/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors for the console
var (
	ErrNoWorkspaces        = goerr.New("no workspace is configured")
	ErrNoWorkspaceSelected = goerr.New("no workspace is selected")
	ErrNoThread            = goerr.New("no thread is resolved")
	ErrEmptyColumn         = goerr.New("column is empty")
	ErrRunInFlight         = goerr.New("an attendance run is already in flight")
	ErrPreflightFailed     = goerr.New("workspace preflight failed")
	ErrNotJSONFile         = goerr.New("file is not a .json file")
	ErrEmptyToken          = goerr.New("token file is empty")
	ErrTokenKeyNotFound    = goerr.New("no token key in JSON file")
	ErrFormMismatch        = goerr.New("schedule form belongs to another workspace")
)

// Context keys for error values
const (
	WorkspaceIDKey     = "workspace_id"
	FormWorkspaceIDKey = "form_workspace_id"
	FileNameKey        = "file_name"
	StateKey           = "state"
)

// describe renders err for the operator. A backend rejection shows its
// message after failPrefix and logs the traceback at debug level; anything
// else is reported through errutil and shown after errPrefix.
func describe(ctx context.Context, err error, failPrefix, errPrefix string) string {
	if apiErr, ok := backend.AsAPIError(err); ok {
		if apiErr.Traceback != "" {
			logging.From(ctx).Debug("backend traceback",
				"message", apiErr.Message,
				"traceback", apiErr.Traceback,
			)
		}
		return failPrefix + apiErr.Message
	}

	_ = errutil.Handle(ctx, err, "console request failed")
	return errPrefix + err.Error()
}
