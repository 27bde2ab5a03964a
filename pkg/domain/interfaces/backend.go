package interfaces

import (
	"context"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
)

// Backend is the attendance backend REST API as seen by the console
type Backend interface {
	// ListWorkspaces returns the configured workspaces in backend order
	ListWorkspaces(ctx context.Context) (model.Workspaces, error)

	// FindThread returns the latest attendance thread of a workspace
	FindThread(ctx context.Context, workspaceID string) (*model.DiscoveredThread, error)

	// RunAttendance executes one attendance check and returns its result
	RunAttendance(ctx context.Context, settings *model.RunSettings) (*model.AttendanceResult, error)

	// GetSchedule returns the stored schedule. Fields missing from the
	// response are filled with defaults.
	GetSchedule(ctx context.Context, workspaceID string) (*model.ScheduleConfig, error)

	// SaveSchedule stores a whole schedule together with its DM recipient
	SaveSchedule(ctx context.Context, cfg *model.ScheduleConfig) error

	// ListSchedules returns the schedule overview of all workspaces
	ListSchedules(ctx context.Context) (*model.ScheduleStatus, error)

	// AddWorkspace provisions a new workspace
	AddWorkspace(ctx context.Context, reg *model.WorkspaceRegistration) error

	// DeleteWorkspace irreversibly removes a workspace and its credentials
	DeleteWorkspace(ctx context.Context, workspaceID string) error
}
