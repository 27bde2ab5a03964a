package memory

import (
	"context"
	"sort"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ListWorkspaces returns the workspaces sorted by folder name
func (m *Memory) ListWorkspaces(ctx context.Context) (model.Workspaces, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.workspaces))
	for id := range m.workspaces {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make(model.Workspaces, 0, len(ids))
	for _, id := range ids {
		result = append(result, m.workspaces[id].toModel())
	}
	return result, nil
}

// AddWorkspace stores a validated registration. Folder names are unique.
func (m *Memory) AddWorkspace(ctx context.Context, reg *model.WorkspaceRegistration) error {
	if reg == nil {
		return goerr.New("registration is nil")
	}
	copied := *reg
	copied.Normalize()
	if err := copied.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.workspaces[copied.FolderName]; exists {
		return goerr.Wrap(ErrWorkspaceExists, "workspace already exists",
			goerr.V(model.WorkspaceIDKey, copied.FolderName))
	}

	m.workspaces[copied.FolderName] = &workspaceData{
		reg:       copied,
		createdAt: m.now(),
		marks:     make(map[types.Column]map[string]Mark),
	}
	return nil
}

// DeleteWorkspace removes a workspace with all of its threads, marks and
// schedule
func (m *Memory) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.lookup(workspaceID); err != nil {
		return err
	}
	delete(m.workspaces, workspaceID)
	return nil
}

// SetRoster replaces the student names read from the sheet
func (m *Memory) SetRoster(ctx context.Context, workspaceID string, names []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws, err := m.lookup(workspaceID)
	if err != nil {
		return err
	}
	ws.roster = append([]string(nil), names...)
	return nil
}

func (w *workspaceData) toModel() *model.Workspace {
	return &model.Workspace{
		ID:            w.reg.FolderName,
		Name:          w.reg.DisplayName,
		ChannelID:     w.reg.ChannelID,
		SheetName:     w.reg.SheetName,
		SpreadsheetID: w.reg.SpreadsheetID,
	}
}
