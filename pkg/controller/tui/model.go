package tui

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/classroom-tools/attendctl/pkg/controller/view"
	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/classroom-tools/attendctl/pkg/usecase"
	"github.com/classroom-tools/attendctl/pkg/utils/async"
	"github.com/classroom-tools/attendctl/pkg/utils/logging"
)

type focusRegion int

const (
	focusWorkspaces focusRegion = iota
	focusSchedules
)

type inputMode int

const (
	inputNone inputMode = iota
	inputThread
	inputColumn
)

// changedMsg tells the model that the console view changed in the
// background
type changedMsg struct{}

// opDoneMsg reports the end of a console operation. The error is already
// reflected in the console view; it is carried for logging.
type opDoneMsg struct {
	op  string
	err error
}

// resultHeight is the number of lines reserved for the result viewport
const resultHeight = 12

// sender is the part of tea.Program the notifier needs
type sender interface {
	Send(msg tea.Msg)
}

// Notifier forwards console changes to a running program. It is handed to
// usecase.WithOnChange before the program exists.
type Notifier struct {
	mu      sync.Mutex
	ctx     context.Context
	program sender
}

// Notify schedules a redraw. Send blocks until the event loop takes the
// message, so it runs on its own goroutine.
func (n *Notifier) Notify() {
	n.mu.Lock()
	ctx, p := n.ctx, n.program
	n.mu.Unlock()
	if p == nil {
		return
	}
	async.Dispatch(ctx, func(context.Context) error {
		p.Send(changedMsg{})
		return nil
	})
}

func (n *Notifier) attach(ctx context.Context, p sender) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ctx = ctx
	n.program = p
}

// Model is the bubbletea model of the workspace console
type Model struct {
	ctx     context.Context
	console *usecase.Console
	keys    KeyMap
	styles  styles

	focus          focusRegion
	cursor         int
	scheduleCursor int

	mode  inputMode
	input textinput.Model

	result     viewport.Model
	lastResult *model.AttendanceResult

	width  int
	height int
}

// New creates the console model
func New(ctx context.Context, console *usecase.Console) Model {
	input := textinput.New()
	input.CharLimit = 256

	return Model{
		ctx:     ctx,
		console: console,
		keys:    DefaultKeyMap,
		styles:  newStyles(DefaultTheme),
		input:   input,
		result:  viewport.New(80, resultHeight),
	}
}

// Run starts the interactive console and blocks until the user quits
func Run(ctx context.Context, console *usecase.Console, notifier *Notifier) error {
	p := tea.NewProgram(New(ctx, console), tea.WithAltScreen(), tea.WithContext(ctx))
	notifier.attach(ctx, p)
	defer notifier.attach(ctx, nil)

	_, err := p.Run()
	return err
}

// Init loads the workspace list and schedule status
func (m Model) Init() tea.Cmd {
	return m.op("init", m.console.Init)
}

// op runs a console operation off the event loop
func (m Model) op(name string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: name, err: fn(ctx)}
	}
}

// Update handles key presses and background notifications
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.result.Width = msg.Width
		return m, nil

	case changedMsg:
		m.syncResult()
		return m, nil

	case opDoneMsg:
		if msg.err != nil {
			logging.From(m.ctx).Debug("console operation failed", "op", msg.op, "error", msg.err)
		}
		m.syncResult()
		m.clampCursors()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		v := m.console.View()
		if v.Pending != nil {
			return m.handleConfirmKeys(msg, v.Pending)
		}
		if m.mode != inputNone {
			return m.handleInputKeys(msg)
		}
		return m.handleKeys(msg, v)
	}
	return m, nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg, conf *model.Confirmation) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		conf.Accept()
		if !conf.Confirmed() {
			return m, nil
		}
		switch conf.Action {
		case model.ConfirmDeleteSchedule:
			return m, m.op("delete schedule", func(ctx context.Context) error {
				return m.console.DeleteSchedule(ctx, conf)
			})
		case model.ConfirmDeleteWorkspace:
			return m, m.op("delete workspace", func(ctx context.Context) error {
				return m.console.DeleteWorkspace(ctx, conf)
			})
		}
	case key.Matches(msg, m.keys.No):
		m.console.CancelConfirmation()
	}
	return m, nil
}

func (m Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = inputNone
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		value := m.input.Value()
		mode := m.mode
		m.mode = inputNone
		m.input.Blur()
		switch mode {
		case inputThread:
			_ = m.console.EnterThread(value)
		case inputColumn:
			m.console.UpdateRunOptions(func(opts *model.RunOptions) {
				opts.Column = types.NormalizeColumn(value)
			})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg, v usecase.View) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Dismiss):
		m.console.DismissMessages()

	case key.Matches(msg, m.keys.FocusToggle):
		if m.focus == focusWorkspaces {
			m.focus = focusSchedules
		} else {
			m.focus = focusWorkspaces
		}

	case key.Matches(msg, m.keys.Up):
		if m.focus == focusWorkspaces && m.cursor > 0 {
			m.cursor--
		} else if m.focus == focusSchedules && m.scheduleCursor > 0 {
			m.scheduleCursor--
		} else {
			m.result.ScrollUp(1)
		}

	case key.Matches(msg, m.keys.Down):
		if m.focus == focusWorkspaces && m.cursor < len(v.Workspaces)-1 {
			m.cursor++
		} else if m.focus == focusSchedules && v.Status != nil && m.scheduleCursor < len(v.Status.Summaries)-1 {
			m.scheduleCursor++
		} else {
			m.result.ScrollDown(1)
		}

	case key.Matches(msg, m.keys.Select):
		if m.focus == focusSchedules {
			if id := m.scheduleTarget(v); id != "" {
				return m, m.op("edit schedule", func(ctx context.Context) error {
					return m.console.EditSchedule(ctx, id)
				})
			}
			return m, nil
		}
		if m.cursor < len(v.Workspaces) {
			_ = m.console.SelectWorkspace(v.Workspaces[m.cursor].ID)
		}

	case key.Matches(msg, m.keys.FindThread):
		return m, m.op("find thread", m.console.FindThread)

	case key.Matches(msg, m.keys.ToggleMode):
		_ = m.console.ToggleThreadMode()

	case key.Matches(msg, m.keys.ManualThread):
		return m.startInput(inputThread, "Thread TS 또는 링크: ", "")

	case key.Matches(msg, m.keys.Column):
		return m.startInput(inputColumn, "출석 열: ", v.Options.Column.String())

	case key.Matches(msg, m.keys.ToggleMarkAbsent):
		m.console.UpdateRunOptions(func(opts *model.RunOptions) { opts.MarkAbsent = !opts.MarkAbsent })
	case key.Matches(msg, m.keys.ToggleThreadReply):
		m.console.UpdateRunOptions(func(opts *model.RunOptions) { opts.SendThreadReply = !opts.SendThreadReply })
	case key.Matches(msg, m.keys.ToggleDM):
		m.console.UpdateRunOptions(func(opts *model.RunOptions) { opts.SendDM = !opts.SendDM })

	case key.Matches(msg, m.keys.Run):
		if v.Running() {
			return m, nil
		}
		return m, m.op("run", func(ctx context.Context) error {
			_, err := m.console.RunAttendance(ctx)
			return err
		})

	case key.Matches(msg, m.keys.ToggleSchedule):
		m.console.UpdateScheduleForm(func(f *usecase.ScheduleForm) { f.Schedule.Enabled = !f.Schedule.Enabled })

	case key.Matches(msg, m.keys.SaveSchedule):
		return m, m.op("save schedule", m.console.SaveSchedule)

	case key.Matches(msg, m.keys.EditSchedule):
		if id := m.scheduleTarget(v); id != "" {
			return m, m.op("edit schedule", func(ctx context.Context) error {
				return m.console.EditSchedule(ctx, id)
			})
		}

	case key.Matches(msg, m.keys.DeleteSchedule):
		if id := m.scheduleTarget(v); id != "" {
			m.console.RequestDeleteSchedule(id)
		}

	case key.Matches(msg, m.keys.DeleteWorkspace):
		_, _ = m.console.RequestDeleteWorkspace("")

	case key.Matches(msg, m.keys.Refresh):
		return m, m.op("reload", m.console.Init)
	}
	return m, nil
}

func (m Model) startInput(mode inputMode, prompt, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

// scheduleTarget returns the workspace the schedule actions apply to: the
// highlighted status row when the table has focus, else the current
// workspace
func (m Model) scheduleTarget(v usecase.View) string {
	if m.focus == focusSchedules && v.Status != nil && m.scheduleCursor < len(v.Status.Summaries) {
		return v.Status.Summaries[m.scheduleCursor].FolderName
	}
	if v.Current != nil {
		return v.Current.ID
	}
	return ""
}

// syncResult reloads the result viewport when a new result arrives and
// scrolls it to the top
func (m *Model) syncResult() {
	v := m.console.View()
	if v.Result == m.lastResult {
		return
	}
	m.lastResult = v.Result
	m.result.SetContent(view.RenderResult(v.Result))
	m.result.GotoTop()
}

func (m *Model) clampCursors() {
	v := m.console.View()
	if m.cursor >= len(v.Workspaces) {
		m.cursor = max(len(v.Workspaces)-1, 0)
	}
	if v.Status == nil || m.scheduleCursor >= len(v.Status.Summaries) {
		m.scheduleCursor = 0
	}
}
