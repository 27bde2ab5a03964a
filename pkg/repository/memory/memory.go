package memory

import (
	"sync"
	"time"

	"github.com/classroom-tools/attendctl/pkg/domain/interfaces"
	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
)

// Memory is an in-process stand-in for the attendance backend. It keeps
// workspaces, Slack threads, rosters, sheet marks and schedules so the
// console can be exercised without Slack or Google Sheets.
type Memory struct {
	mu         sync.RWMutex
	workspaces map[string]*workspaceData
	now        func() time.Time
}

type workspaceData struct {
	reg       model.WorkspaceRegistration
	createdAt time.Time

	roster  []string
	threads []*Thread
	marks   map[types.Column]map[string]Mark

	schedule           *model.Schedule
	notificationUserID string
}

var _ interfaces.Backend = &Memory{}

// Option is a functional option for Memory
type Option func(*Memory)

// WithClock replaces the time source used for thread timestamps
func WithClock(now func() time.Time) Option {
	return func(m *Memory) {
		m.now = now
	}
}

// New creates an empty store
func New(opts ...Option) *Memory {
	m := &Memory{
		workspaces: make(map[string]*workspaceData),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) lookup(id string) (*workspaceData, error) {
	ws, ok := m.workspaces[id]
	if !ok {
		return nil, errWorkspaceNotFound(id)
	}
	return ws, nil
}
