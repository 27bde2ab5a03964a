package memory

import (
	"context"
	"sort"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// GetSchedule returns the stored schedule. A workspace that never saved one
// yields the default form with Configured false.
func (m *Memory) GetSchedule(ctx context.Context, workspaceID string) (*model.ScheduleConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ws, err := m.lookup(workspaceID)
	if err != nil {
		return nil, err
	}

	cfg := &model.ScheduleConfig{
		WorkspaceID:        workspaceID,
		Schedule:           model.DefaultSchedule(),
		NotificationUserID: ws.notificationUserID,
	}
	if ws.schedule != nil {
		cfg.Schedule = *ws.schedule
		cfg.Configured = true
	}
	return cfg, nil
}

// SaveSchedule replaces the whole schedule of a workspace
func (m *Memory) SaveSchedule(ctx context.Context, cfg *model.ScheduleConfig) error {
	if cfg == nil {
		return goerr.New("schedule config is nil")
	}
	sched := cfg.Schedule
	sched.Normalize()
	if err := sched.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ws, err := m.lookup(cfg.WorkspaceID)
	if err != nil {
		return err
	}
	ws.schedule = &sched
	ws.notificationUserID = cfg.NotificationUserID
	return nil
}

// ListSchedules returns one row per workspace, sorted by folder name
func (m *Memory) ListSchedules(ctx context.Context) (*model.ScheduleStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.workspaces))
	for id := range m.workspaces {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	status := &model.ScheduleStatus{
		Summaries: make([]*model.ScheduleSummary, 0, len(ids)),
	}
	for _, id := range ids {
		ws := m.workspaces[id]
		row := &model.ScheduleSummary{
			WorkspaceName: ws.reg.DisplayName,
			FolderName:    id,
		}
		if s := ws.schedule; s != nil {
			row.CreateThread = s.CreateThreadSlot()
			row.CheckAttendance = s.CheckAttendanceSlot()
			row.Column = s.CheckAttendanceColumn
		}
		status.Summaries = append(status.Summaries, row)
	}
	status.Total = len(status.Summaries)
	return status, nil
}
