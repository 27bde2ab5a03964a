package memory

import (
	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrWorkspaceExists = goerr.New("workspace already exists")
	ErrThreadNotFound  = goerr.New("thread not found")
	ErrInvalidThreadTS = goerr.New("invalid thread timestamp")
	ErrNoReplies       = goerr.New("thread has no replies")
	ErrNoAttendance    = goerr.New("no attendance reply found")
	ErrEmptyRoster     = goerr.New("roster is empty")
)

func errWorkspaceNotFound(id string) error {
	return goerr.Wrap(model.ErrWorkspaceNotFound, "workspace not found",
		goerr.V(model.WorkspaceIDKey, id))
}
