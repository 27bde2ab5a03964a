package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// Workspace is one Slack channel + Google Sheet pairing configured on the
// backend. ID is the folder name the backend stores it under.
type Workspace struct {
	ID            string
	Name          string
	ChannelID     string
	SheetName     string
	SpreadsheetID string
}

// DisplayName returns Name, falling back to the folder name
func (w *Workspace) DisplayName() string {
	if w.Name != "" {
		return w.Name
	}
	return w.ID
}

// ErrWorkspaceNotFound is returned when a workspace id is not in the list
var ErrWorkspaceNotFound = goerr.New("workspace not found")

// Workspaces is the list shown in the workspace selector, in backend order
type Workspaces []*Workspace

// Find returns the workspace with the given folder name
func (ws Workspaces) Find(id string) (*Workspace, error) {
	for _, w := range ws {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, goerr.Wrap(ErrWorkspaceNotFound, "workspace not found",
		goerr.V(WorkspaceIDKey, id))
}

// IDs returns the folder names in list order
func (ws Workspaces) IDs() []string {
	ids := make([]string, len(ws))
	for i, w := range ws {
		ids[i] = w.ID
	}
	return ids
}
