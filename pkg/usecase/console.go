package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/classroom-tools/attendctl/pkg/domain/interfaces"
	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultProgressLinger keeps the progress panel visible after a run
	DefaultProgressLinger = time.Second
	// DefaultHighlight is how long the schedule form stays highlighted
	// after EditSchedule
	DefaultHighlight = time.Second
)

// Progress is the cosmetic progress panel of an attendance run
type Progress struct {
	Visible bool
	Stage   types.RunStage
}

// ScheduleForm is the schedule editor. It belongs to the current workspace
// and is only populated from storage by LoadSchedule and EditSchedule.
type ScheduleForm struct {
	WorkspaceID        string
	Schedule           model.Schedule
	NotificationUserID string
	Loaded             bool
	Highlight          bool
}

// NextColumn previews the column following the current target when auto
// column is on
func (f ScheduleForm) NextColumn() (types.Column, bool) {
	if !f.Schedule.AutoColumnEnabled {
		return "", false
	}
	return f.Schedule.NextColumn(), true
}

// View is an immutable snapshot of the console for rendering
type View struct {
	State      types.ConsoleState
	Workspaces model.Workspaces
	Current    *model.Workspace
	ThreadMode types.ThreadMode
	Thread     model.ThreadRef
	Discovered *model.DiscoveredThread
	Options    model.RunOptions
	Progress   Progress
	Result     *model.AttendanceResult
	Error      string
	Notice     string
	Warning    string
	Schedule   ScheduleForm
	Status     *model.ScheduleStatus
	Pending    *model.Confirmation
}

// Running reports whether the run control is disabled
func (v *View) Running() bool {
	return v.State == types.StateRunInFlight
}

// Console is the view-model of the workspace console. Every user action is
// a method; the resulting state is read back with View. Methods are safe to
// call from one event goroutine while other goroutines read View.
type Console struct {
	backend       interfaces.Backend
	slackVerifier interfaces.SlackVerifier
	sheetVerifier interfaces.SheetVerifier

	pacing          bool
	linger          time.Duration
	highlight       time.Duration
	runDefaults     model.RunOptions
	scheduleDefault model.Schedule
	onChange        func()

	mu         sync.Mutex
	state      types.ConsoleState
	workspaces model.Workspaces
	current    *model.Workspace
	threadMode types.ThreadMode
	thread     model.ThreadRef
	discovered *model.DiscoveredThread
	options    model.RunOptions
	progress   Progress
	result     *model.AttendanceResult
	errMsg     string
	notice     string
	warning    string
	form       ScheduleForm
	status     *model.ScheduleStatus
	pending    *model.Confirmation

	lingerTimer    *time.Timer
	highlightTimer *time.Timer
	runSeq         int
	threadGen      int
}

// Option is a functional option for Console
type Option func(*Console)

// WithPacing turns the cosmetic delays between run stages on or off
func WithPacing(enabled bool) Option {
	return func(c *Console) {
		c.pacing = enabled
	}
}

// WithProgressLinger sets how long the progress panel stays after a run
func WithProgressLinger(d time.Duration) Option {
	return func(c *Console) {
		c.linger = d
	}
}

// WithHighlight sets how long the schedule form stays highlighted
func WithHighlight(d time.Duration) Option {
	return func(c *Console) {
		c.highlight = d
	}
}

// WithRunDefaults sets the initial column and run flags
func WithRunDefaults(opts model.RunOptions) Option {
	return func(c *Console) {
		c.runDefaults = opts
	}
}

// WithScheduleDefaults sets the blank schedule form
func WithScheduleDefaults(s model.Schedule) Option {
	return func(c *Console) {
		c.scheduleDefault = s
	}
}

// WithSlackVerifier enables the Slack preflight of AddWorkspace
func WithSlackVerifier(v interfaces.SlackVerifier) Option {
	return func(c *Console) {
		c.slackVerifier = v
	}
}

// WithSheetVerifier enables the spreadsheet preflight of AddWorkspace
func WithSheetVerifier(v interfaces.SheetVerifier) Option {
	return func(c *Console) {
		c.sheetVerifier = v
	}
}

// WithOnChange registers a callback invoked after every view change. It
// runs without the console lock held and may call View.
func WithOnChange(f func()) Option {
	return func(c *Console) {
		c.onChange = f
	}
}

// NewConsole creates a console in the Idle state
func NewConsole(backend interfaces.Backend, opts ...Option) *Console {
	c := &Console{
		backend:         backend,
		pacing:          true,
		linger:          DefaultProgressLinger,
		highlight:       DefaultHighlight,
		runDefaults:     model.DefaultRunOptions(),
		scheduleDefault: model.DefaultSchedule(),
		state:           types.StateIdle,
		threadMode:      types.ThreadModeAuto,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.options = c.runDefaults
	c.form = c.blankForm("")
	return c
}

// Init loads the workspace list and the schedule status concurrently, the
// way the page does on load. Failures are reported in the view; the
// returned error is the first one encountered.
func (c *Console) Init(ctx context.Context) error {
	var eg errgroup.Group
	eg.Go(func() error { return c.LoadWorkspaces(ctx) })
	eg.Go(func() error { return c.LoadScheduleStatus(ctx) })
	return eg.Wait()
}

// View returns a snapshot of the console
func (c *Console) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		State:      c.state,
		Workspaces: append(model.Workspaces(nil), c.workspaces...),
		Current:    c.current,
		ThreadMode: c.threadMode,
		Thread:     c.thread,
		Discovered: c.discovered,
		Options:    c.options,
		Progress:   c.progress,
		Result:     c.result,
		Error:      c.errMsg,
		Notice:     c.notice,
		Warning:    c.warning,
		Schedule:   c.form,
		Status:     c.status,
		Pending:    c.pending,
	}
	return v
}

// Close stops pending timers
func (c *Console) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	stopTimer(c.lingerTimer)
	stopTimer(c.highlightTimer)
}

// update runs fn under the lock and then notifies the observer
func (c *Console) update(fn func()) {
	c.mu.Lock()
	fn()
	c.mu.Unlock()
	c.changed()
}

func (c *Console) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *Console) blankForm(workspaceID string) ScheduleForm {
	return ScheduleForm{
		WorkspaceID: workspaceID,
		Schedule:    c.scheduleDefault,
	}
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}
