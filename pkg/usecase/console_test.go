package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/classroom-tools/attendctl/pkg/domain/interfaces"
	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/classroom-tools/attendctl/pkg/repository/memory"
	"github.com/classroom-tools/attendctl/pkg/service/backend"
	"github.com/classroom-tools/attendctl/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

// mockBackend delegates to a memory backend unless a function is set
type mockBackend struct {
	interfaces.Backend

	findThreadFn    func(ctx context.Context, id string) (*model.DiscoveredThread, error)
	runAttendanceFn func(ctx context.Context, settings *model.RunSettings) (*model.AttendanceResult, error)
	saveScheduleFn  func(ctx context.Context, cfg *model.ScheduleConfig) error
	addWorkspaceFn  func(ctx context.Context, reg *model.WorkspaceRegistration) error
	listSchedulesFn func(ctx context.Context) (*model.ScheduleStatus, error)
	getScheduleFn   func(ctx context.Context, id string) (*model.ScheduleConfig, error)

	mu    sync.Mutex
	calls map[string]int
}

func (m *mockBackend) count(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[name]++
}

func (m *mockBackend) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockBackend) FindThread(ctx context.Context, id string) (*model.DiscoveredThread, error) {
	m.count("FindThread")
	if m.findThreadFn != nil {
		return m.findThreadFn(ctx, id)
	}
	return m.Backend.FindThread(ctx, id)
}

func (m *mockBackend) RunAttendance(ctx context.Context, settings *model.RunSettings) (*model.AttendanceResult, error) {
	m.count("RunAttendance")
	if m.runAttendanceFn != nil {
		return m.runAttendanceFn(ctx, settings)
	}
	return m.Backend.RunAttendance(ctx, settings)
}

func (m *mockBackend) SaveSchedule(ctx context.Context, cfg *model.ScheduleConfig) error {
	m.count("SaveSchedule")
	if m.saveScheduleFn != nil {
		return m.saveScheduleFn(ctx, cfg)
	}
	return m.Backend.SaveSchedule(ctx, cfg)
}

func (m *mockBackend) GetSchedule(ctx context.Context, id string) (*model.ScheduleConfig, error) {
	m.count("GetSchedule")
	if m.getScheduleFn != nil {
		return m.getScheduleFn(ctx, id)
	}
	return m.Backend.GetSchedule(ctx, id)
}

func (m *mockBackend) ListSchedules(ctx context.Context) (*model.ScheduleStatus, error) {
	m.count("ListSchedules")
	if m.listSchedulesFn != nil {
		return m.listSchedulesFn(ctx)
	}
	return m.Backend.ListSchedules(ctx)
}

func (m *mockBackend) AddWorkspace(ctx context.Context, reg *model.WorkspaceRegistration) error {
	m.count("AddWorkspace")
	if m.addWorkspaceFn != nil {
		return m.addWorkspaceFn(ctx, reg)
	}
	return m.Backend.AddWorkspace(ctx, reg)
}

type mockSlackVerifier struct {
	verifyBotFn  func(ctx context.Context, token, channelID string) (string, error)
	lookupUserFn func(ctx context.Context, token, userID string) (string, error)
}

func (m *mockSlackVerifier) VerifyBot(ctx context.Context, token, channelID string) (string, error) {
	return m.verifyBotFn(ctx, token, channelID)
}

func (m *mockSlackVerifier) LookupUser(ctx context.Context, token, userID string) (string, error) {
	if m.lookupUserFn == nil {
		return userID, nil
	}
	return m.lookupUserFn(ctx, token, userID)
}

type mockSheetVerifier struct {
	verifySheetFn func(ctx context.Context, creds []byte, spreadsheetID, sheetName string) (string, error)
}

func (m *mockSheetVerifier) VerifySheet(ctx context.Context, creds []byte, spreadsheetID, sheetName string) (string, error) {
	return m.verifySheetFn(ctx, creds, spreadsheetID, sheetName)
}

func newMock(t *testing.T) (*mockBackend, *memory.Memory) {
	t.Helper()
	repo := memory.New()
	gt.NoError(t, repo.Seed(context.Background())).Required()
	return &mockBackend{Backend: repo}, repo
}

func newConsole(t *testing.T, b interfaces.Backend, opts ...usecase.Option) *usecase.Console {
	t.Helper()
	opts = append([]usecase.Option{
		usecase.WithPacing(false),
		usecase.WithProgressLinger(0),
		usecase.WithHighlight(0),
	}, opts...)
	c := usecase.NewConsole(b, opts...)
	t.Cleanup(c.Close)
	return c
}

// readyConsole returns a console with the demo workspace selected and its
// attendance thread resolved
func readyConsole(t *testing.T, b interfaces.Backend, opts ...usecase.Option) *usecase.Console {
	t.Helper()
	ctx := context.Background()
	c := newConsole(t, b, opts...)
	gt.NoError(t, c.Init(ctx)).Required()
	gt.NoError(t, c.SelectWorkspace(memory.DemoWorkspaceID)).Required()
	gt.NoError(t, c.FindThread(ctx)).Required()
	return c
}

func apiError(msg string) error {
	return goerr.Wrap(&backend.APIError{Message: msg, StatusCode: 400}, "backend rejected request")
}

func TestConsole_Init(t *testing.T) {
	ctx := context.Background()

	t.Run("loads workspaces and schedule status", func(t *testing.T) {
		b, _ := newMock(t)
		c := newConsole(t, b)
		gt.NoError(t, c.Init(ctx)).Required()

		v := c.View()
		gt.Value(t, v.State).Equal(types.StateIdle)
		gt.Array(t, v.Workspaces).Length(1)
		gt.Value(t, v.Status).NotNil()
		gt.Array(t, v.Status.Summaries).Length(1)
		gt.Value(t, v.Options).Equal(model.DefaultRunOptions())
		gt.Value(t, v.Schedule.Schedule).Equal(model.DefaultSchedule())
	})

	t.Run("empty workspace list", func(t *testing.T) {
		c := newConsole(t, memory.New())
		err := c.Init(ctx)
		gt.Error(t, err).Is(usecase.ErrNoWorkspaces)
		gt.Value(t, c.View().Error).Equal(usecase.MsgNoWorkspaces)
	})
}

func TestConsole_SelectWorkspace(t *testing.T) {
	ctx := context.Background()
	b, _ := newMock(t)
	c := readyConsole(t, b)
	_, err := c.RunAttendance(ctx)
	gt.NoError(t, err).Required()

	t.Run("unknown workspace keeps state", func(t *testing.T) {
		err := c.SelectWorkspace("nope")
		gt.Error(t, err).Is(model.ErrWorkspaceNotFound)
		gt.Value(t, c.View().State).Equal(types.StateThreadResolved)
		gt.Value(t, c.View().Error).Equal(usecase.MsgWorkspaceNotFound)
	})

	t.Run("reselect clears thread and result", func(t *testing.T) {
		c.UpdateScheduleForm(func(f *usecase.ScheduleForm) { f.Schedule.Enabled = true })
		gt.NoError(t, c.SelectWorkspace(memory.DemoWorkspaceID)).Required()

		v := c.View()
		gt.Value(t, v.State).Equal(types.StateWorkspaceSelected)
		gt.Bool(t, v.Thread.IsZero()).True()
		gt.Value(t, v.Discovered).Nil()
		gt.Value(t, v.Result).Nil()
		gt.Bool(t, v.Schedule.Schedule.Enabled).False()
		gt.Value(t, v.Schedule.WorkspaceID).Equal(memory.DemoWorkspaceID)
	})

	t.Run("empty id goes idle", func(t *testing.T) {
		gt.NoError(t, c.SelectWorkspace("")).Required()
		v := c.View()
		gt.Value(t, v.State).Equal(types.StateIdle)
		gt.Value(t, v.Current).Nil()
	})
}

func TestConsole_FindThread(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a workspace", func(t *testing.T) {
		b, _ := newMock(t)
		c := newConsole(t, b)
		gt.NoError(t, c.Init(ctx)).Required()

		err := c.FindThread(ctx)
		gt.Error(t, err).Is(usecase.ErrNoWorkspaceSelected)
		gt.Value(t, c.View().Error).Equal(usecase.MsgSelectWorkspaceFirst)
		gt.Number(t, b.Calls("FindThread")).Equal(0)
	})

	t.Run("resolves thread with DM target", func(t *testing.T) {
		b, _ := newMock(t)
		c := readyConsole(t, b)

		v := c.View()
		gt.Value(t, v.State).Equal(types.StateThreadResolved)
		gt.Value(t, v.ThreadMode).Equal(types.ThreadModeAuto)
		gt.Bool(t, v.Thread.HasDMTarget()).True()
		gt.Value(t, v.Thread.User).Equal("U0TEACHER")
		gt.Value(t, v.Discovered).NotNil()
	})

	t.Run("backend rejection shows message", func(t *testing.T) {
		b, _ := newMock(t)
		b.findThreadFn = func(ctx context.Context, id string) (*model.DiscoveredThread, error) {
			return nil, apiError("출석 스레드를 찾을 수 없습니다.")
		}
		c := newConsole(t, b)
		gt.NoError(t, c.Init(ctx)).Required()
		gt.NoError(t, c.SelectWorkspace(memory.DemoWorkspaceID)).Required()

		gt.Error(t, c.FindThread(ctx))
		v := c.View()
		gt.Value(t, v.Error).Equal("스레드 찾기 실패: 출석 스레드를 찾을 수 없습니다.")
		gt.Value(t, v.State).Equal(types.StateWorkspaceSelected)
	})

	t.Run("transport failure uses error prefix", func(t *testing.T) {
		b, _ := newMock(t)
		b.findThreadFn = func(ctx context.Context, id string) (*model.DiscoveredThread, error) {
			return nil, goerr.New("connection refused")
		}
		c := newConsole(t, b)
		gt.NoError(t, c.Init(ctx)).Required()
		gt.NoError(t, c.SelectWorkspace(memory.DemoWorkspaceID)).Required()

		gt.Error(t, c.FindThread(ctx))
		gt.Value(t, c.View().Error).Equal("스레드 찾기 오류: connection refused")
	})

	t.Run("stale result is ignored", func(t *testing.T) {
		b, _ := newMock(t)
		var c *usecase.Console
		b.findThreadFn = func(ctx context.Context, id string) (*model.DiscoveredThread, error) {
			c.ClearWorkspace()
			return &model.DiscoveredThread{Ref: model.ThreadRef{TS: "1.000001"}}, nil
		}
		c = newConsole(t, b)
		gt.NoError(t, c.Init(ctx)).Required()
		gt.NoError(t, c.SelectWorkspace(memory.DemoWorkspaceID)).Required()

		gt.NoError(t, c.FindThread(ctx)).Required()
		v := c.View()
		gt.Value(t, v.State).Equal(types.StateIdle)
		gt.Bool(t, v.Thread.IsZero()).True()
	})
}

func TestConsole_ManualThread(t *testing.T) {
	b, _ := newMock(t)
	c := readyConsole(t, b)

	t.Run("permalink has no DM target", func(t *testing.T) {
		gt.NoError(t, c.EnterThread("https://x.slack.com/archives/C0DEMO0001/p1700000000123456")).Required()
		v := c.View()
		gt.Value(t, v.ThreadMode).Equal(types.ThreadModeManual)
		gt.Value(t, v.Thread.TS).Equal("1700000000.123456")
		gt.Bool(t, v.Thread.HasDMTarget()).False()
		gt.Value(t, v.Discovered).Nil()
	})

	t.Run("blank input is ignored", func(t *testing.T) {
		gt.NoError(t, c.EnterThread("   ")).Required()
		gt.Value(t, c.View().Thread.TS).Equal("1700000000.123456")
	})

	t.Run("mode switch clears thread", func(t *testing.T) {
		gt.NoError(t, c.SetThreadMode(types.ThreadModeManual)).Required()
		v := c.View()
		gt.Value(t, v.State).Equal(types.StateWorkspaceSelected)
		gt.Bool(t, v.Thread.IsZero()).True()

		gt.NoError(t, c.ToggleThreadMode()).Required()
		gt.Value(t, c.View().ThreadMode).Equal(types.ThreadModeAuto)
	})

	t.Run("requires a workspace", func(t *testing.T) {
		c.ClearWorkspace()
		err := c.EnterThread("1700000000.123456")
		gt.Error(t, err).Is(usecase.ErrNoWorkspaceSelected)
		gt.Value(t, c.View().State).Equal(types.StateIdle)
	})
}

func TestConsole_RunAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("steps through stages around one request", func(t *testing.T) {
		b, _ := newMock(t)

		var (
			mu     sync.Mutex
			stages []types.RunStage
			c      *usecase.Console
		)
		record := func() {
			v := c.View()
			if !v.Progress.Visible {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if n := len(stages); n == 0 || stages[n-1] != v.Progress.Stage {
				stages = append(stages, v.Progress.Stage)
			}
		}

		var stageAtCall types.RunStage
		var settingsAtCall *model.RunSettings
		b.runAttendanceFn = func(ctx context.Context, settings *model.RunSettings) (*model.AttendanceResult, error) {
			v := c.View()
			stageAtCall = v.Progress.Stage
			settingsAtCall = settings
			gt.Bool(t, v.Running()).True()
			return b.Backend.RunAttendance(ctx, settings)
		}

		c = readyConsole(t, b, usecase.WithOnChange(func() {
			if c != nil {
				record()
			}
		}))

		result, err := c.RunAttendance(ctx)
		gt.NoError(t, err).Required()
		gt.Number(t, b.Calls("RunAttendance")).Equal(1)
		gt.Value(t, stageAtCall).Equal(types.RunStageCollecting)
		gt.Value(t, settingsAtCall.Column).Equal(types.DefaultColumn)
		gt.Value(t, settingsAtCall.WorkspaceID).Equal(memory.DemoWorkspaceID)
		gt.Bool(t, settingsAtCall.Thread.HasDMTarget()).True()

		gt.Value(t, stages).Equal([]types.RunStage{
			types.RunStagePreparing,
			types.RunStageConnecting,
			types.RunStageCollecting,
			types.RunStageParsing,
			types.RunStageUpdatingSheet,
			types.RunStageNotifying,
			types.RunStageDone,
		})

		gt.Value(t, result.RateText()).Equal("66.7%")
		v := c.View()
		gt.Value(t, v.State).Equal(types.StateThreadResolved)
		gt.Value(t, v.Result).Equal(result)
		gt.Bool(t, v.Progress.Visible).False()
		gt.Value(t, v.Error).Equal("")
	})

	t.Run("failure skips the done stage", func(t *testing.T) {
		b, _ := newMock(t)
		b.runAttendanceFn = func(ctx context.Context, settings *model.RunSettings) (*model.AttendanceResult, error) {
			return nil, apiError("출석한 학생이 없습니다.")
		}
		var (
			c       *usecase.Console
			sawDone bool
		)
		c = readyConsole(t, b, usecase.WithOnChange(func() {
			if c != nil && c.View().Progress.Stage == types.RunStageDone {
				sawDone = true
			}
		}))

		result, err := c.RunAttendance(ctx)
		gt.Error(t, err)
		gt.Value(t, result).Nil()
		gt.Bool(t, sawDone).False()

		v := c.View()
		gt.Value(t, v.Error).Equal("출석체크 실패: 출석한 학생이 없습니다.")
		gt.Value(t, v.State).Equal(types.StateThreadResolved)
		gt.Value(t, v.Result).Nil()
	})

	t.Run("validation order", func(t *testing.T) {
		b, _ := newMock(t)
		c := newConsole(t, b)
		gt.NoError(t, c.Init(ctx)).Required()

		_, err := c.RunAttendance(ctx)
		gt.Error(t, err).Is(usecase.ErrNoWorkspaceSelected)
		gt.Value(t, c.View().Error).Equal(usecase.MsgSelectWorkspace)

		gt.NoError(t, c.SelectWorkspace(memory.DemoWorkspaceID)).Required()
		_, err = c.RunAttendance(ctx)
		gt.Error(t, err).Is(usecase.ErrNoThread)
		gt.Value(t, c.View().Error).Equal(usecase.MsgSelectThread)

		gt.NoError(t, c.EnterThread("1700000000.123456")).Required()
		c.UpdateRunOptions(func(o *model.RunOptions) { o.Column = "  " })
		_, err = c.RunAttendance(ctx)
		gt.Error(t, err).Is(usecase.ErrEmptyColumn)
		gt.Value(t, c.View().Error).Equal(usecase.MsgEnterColumn)

		c.UpdateRunOptions(func(o *model.RunOptions) { o.Column = "11" })
		_, err = c.RunAttendance(ctx)
		gt.Error(t, err).Is(types.ErrInvalidColumn)
		gt.Value(t, c.View().Error).Equal(usecase.MsgInvalidColumn)

		gt.Number(t, b.Calls("RunAttendance")).Equal(0)
		gt.Value(t, c.View().State).Equal(types.StateThreadResolved)
	})

	t.Run("column is normalized", func(t *testing.T) {
		b, _ := newMock(t)
		var got types.Column
		b.runAttendanceFn = func(ctx context.Context, settings *model.RunSettings) (*model.AttendanceResult, error) {
			got = settings.Column
			return &model.AttendanceResult{Column: settings.Column}, nil
		}
		c := readyConsole(t, b)
		c.UpdateRunOptions(func(o *model.RunOptions) {
			o.Column = " m "
			o.SendDM = false
		})

		_, err := c.RunAttendance(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, got).Equal(types.Column("M"))
		gt.Value(t, c.View().Options.Column).Equal(types.Column("M"))
	})

	t.Run("in flight guard", func(t *testing.T) {
		b, _ := newMock(t)
		var (
			c        *usecase.Console
			innerErr error
			swapErr  error
			modeErr  error
		)
		b.runAttendanceFn = func(ctx context.Context, settings *model.RunSettings) (*model.AttendanceResult, error) {
			_, innerErr = c.RunAttendance(ctx)
			swapErr = c.SelectWorkspace(memory.DemoWorkspaceID)
			modeErr = c.SetThreadMode(types.ThreadModeManual)
			return b.Backend.RunAttendance(ctx, settings)
		}
		c = readyConsole(t, b)

		_, err := c.RunAttendance(ctx)
		gt.NoError(t, err).Required()
		gt.Error(t, innerErr).Is(usecase.ErrRunInFlight)
		gt.Error(t, swapErr).Is(usecase.ErrRunInFlight)
		gt.Error(t, modeErr).Is(usecase.ErrRunInFlight)
		gt.Number(t, b.Calls("RunAttendance")).Equal(1)
		gt.Value(t, c.View().State).Equal(types.StateThreadResolved)
	})

	t.Run("progress lingers after the run", func(t *testing.T) {
		b, _ := newMock(t)
		c := readyConsole(t, b, usecase.WithProgressLinger(200*time.Millisecond))

		_, err := c.RunAttendance(ctx)
		gt.NoError(t, err).Required()
		gt.Bool(t, c.View().Progress.Visible).True()

		deadline := time.Now().Add(2 * time.Second)
		for c.View().Progress.Visible && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}
		gt.Bool(t, c.View().Progress.Visible).False()
	})
}

func TestConsole_Schedule(t *testing.T) {
	ctx := context.Background()

	t.Run("save requires a workspace", func(t *testing.T) {
		b, _ := newMock(t)
		c := newConsole(t, b)
		gt.NoError(t, c.Init(ctx)).Required()

		err := c.SaveSchedule(ctx)
		gt.Error(t, err).Is(usecase.ErrNoWorkspaceSelected)
		gt.Value(t, c.View().Error).Equal(usecase.MsgSelectWorkspaceFirst)
		gt.Number(t, b.Calls("SaveSchedule")).Equal(0)
	})

	t.Run("invalid form is not sent", func(t *testing.T) {
		b, _ := newMock(t)
		c := newConsole(t, b)
		gt.NoError(t, c.Init(ctx)).Required()
		gt.NoError(t, c.SelectWorkspace(memory.DemoWorkspaceID)).Required()

		c.UpdateScheduleForm(func(f *usecase.ScheduleForm) {
			f.Schedule.CreateThreadDay = types.DayMonday
			f.Schedule.CreateThreadTime = "25:00"
		})
		err := c.SaveSchedule(ctx)
		gt.Error(t, err).Is(model.ErrInvalidSchedule)
		gt.String(t, c.View().Error).Contains("스케줄 설정 오류: ")
		gt.Number(t, b.Calls("SaveSchedule")).Equal(0)
	})

	t.Run("save, reset and edit", func(t *testing.T) {
		b, _ := newMock(t)
		c := newConsole(t, b, usecase.WithHighlight(time.Hour))
		gt.NoError(t, c.Init(ctx)).Required()
		gt.NoError(t, c.SelectWorkspace(memory.DemoWorkspaceID)).Required()

		c.UpdateScheduleForm(func(f *usecase.ScheduleForm) {
			f.Schedule.Enabled = false
			f.Schedule.CreateThreadDay = " TUE "
			f.Schedule.CreateThreadTime = "08:30"
			f.Schedule.CheckAttendanceDay = types.DayTuesday
			f.Schedule.CheckAttendanceTime = "09:10"
			f.Schedule.CheckAttendanceColumn = "H"
			f.Schedule.AutoColumnEnabled = true
			f.Schedule.StartColumn = "F"
			f.Schedule.EndColumn = "T"
			f.NotificationUserID = "U0TEACHER"
		})
		form := c.View().Schedule
		next, ok := form.NextColumn()
		gt.Bool(t, ok).True()
		gt.Value(t, next).Equal(types.Column("I"))

		gt.NoError(t, c.SaveSchedule(ctx)).Required()
		v := c.View()
		gt.Value(t, v.Notice).Equal(usecase.MsgScheduleSaved)
		gt.Value(t, v.Schedule.Schedule.CreateThreadDay).Equal(types.DayTuesday)
		row := v.Status.Find(memory.DemoWorkspaceID)
		gt.Value(t, row).NotNil()
		gt.Value(t, row.CreateThread.Label()).Equal("매주 화요일 08:30")

		c.ResetScheduleForm()
		v = c.View()
		gt.Value(t, v.Schedule.Schedule).Equal(model.DefaultSchedule())
		gt.Bool(t, v.Schedule.Loaded).False()

		c.ClearWorkspace()
		gt.NoError(t, c.EditSchedule(ctx, memory.DemoWorkspaceID)).Required()
		v = c.View()
		gt.Value(t, v.State).Equal(types.StateWorkspaceSelected)
		gt.Value(t, v.Current.ID).Equal(memory.DemoWorkspaceID)
		gt.Bool(t, v.Schedule.Loaded).True()
		gt.Bool(t, v.Schedule.Highlight).True()
		gt.Bool(t, v.Schedule.Schedule.Enabled).True()
		gt.Value(t, v.Schedule.Schedule.CheckAttendanceColumn).Equal(types.Column("H"))
		gt.Value(t, v.Schedule.NotificationUserID).Equal("U0TEACHER")
	})

	t.Run("delete needs confirmation", func(t *testing.T) {
		b, _ := newMock(t)
		c := newConsole(t, b)
		gt.NoError(t, c.Init(ctx)).Required()
		gt.NoError(t, c.EditSchedule(ctx, memory.DemoWorkspaceID)).Required()
		gt.NoError(t, c.SaveSchedule(ctx)).Required()

		conf := c.RequestDeleteSchedule(memory.DemoWorkspaceID)
		gt.Value(t, c.View().Pending).Equal(conf)
		gt.String(t, conf.Current()).Contains("데모 반")

		saves := b.Calls("SaveSchedule")
		err := c.DeleteSchedule(ctx, conf)
		gt.Error(t, err).Is(model.ErrNotConfirmed)
		gt.Number(t, b.Calls("SaveSchedule")).Equal(saves)
		gt.Value(t, c.View().Pending).Nil()

		conf = c.RequestDeleteSchedule(memory.DemoWorkspaceID)
		conf.Accept()
		var saved *model.ScheduleConfig
		b.saveScheduleFn = func(ctx context.Context, cfg *model.ScheduleConfig) error {
			saved = cfg
			return b.Backend.SaveSchedule(ctx, cfg)
		}
		gt.NoError(t, c.DeleteSchedule(ctx, conf)).Required()
		gt.Value(t, saved.Schedule).Equal(model.ClearedSchedule())
		gt.Value(t, saved.NotificationUserID).Equal("")

		v := c.View()
		gt.Value(t, v.Notice).Equal(usecase.MsgScheduleDeleted)
		gt.Bool(t, v.Schedule.Loaded).False()
		gt.Value(t, v.Status.Find(memory.DemoWorkspaceID).CreateThread.Label()).Equal(model.UnsetText)
	})

	t.Run("declined delete", func(t *testing.T) {
		b, _ := newMock(t)
		c := newConsole(t, b)
		gt.NoError(t, c.Init(ctx)).Required()

		conf := c.RequestDeleteSchedule(memory.DemoWorkspaceID)
		c.CancelConfirmation()
		gt.Value(t, c.View().Pending).Nil()
		conf.Accept()
		gt.Error(t, c.DeleteSchedule(ctx, conf)).Is(model.ErrNotConfirmed)
		gt.Number(t, b.Calls("SaveSchedule")).Equal(0)
	})
}

func newRegistration(folder string) *model.WorkspaceRegistration {
	reg := model.NewWorkspaceRegistration()
	reg.FolderName = folder
	reg.BotToken = "xoxb-test"
	reg.ChannelID = "C0TEST"
	reg.SpreadsheetID = "sheet-1"
	reg.SheetName = "출석부"
	reg.CredentialsJSON = `{"type":"service_account"}`
	return reg
}

func TestConsole_AddWorkspace(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid registration is not sent", func(t *testing.T) {
		testCases := map[string]struct {
			edit func(r *model.WorkspaceRegistration)
			want string
		}{
			"unsafe folder": {
				edit: func(r *model.WorkspaceRegistration) { r.FolderName = "a/b" },
				want: usecase.MsgUnsafeFolderName,
			},
			"bad token": {
				edit: func(r *model.WorkspaceRegistration) { r.BotToken = "xoxp-user" },
				want: usecase.MsgInvalidBotToken,
			},
			"bad channel": {
				edit: func(r *model.WorkspaceRegistration) { r.ChannelID = "D0DM" },
				want: usecase.MsgInvalidChannelID,
			},
			"bad name column": {
				edit: func(r *model.WorkspaceRegistration) { r.NameColumn = "AB" },
				want: usecase.MsgInvalidNameColumn,
			},
			"missing sheet": {
				edit: func(r *model.WorkspaceRegistration) { r.SheetName = "" },
				want: usecase.MsgMissingField + "SheetName",
			},
		}

		for name, tc := range testCases {
			t.Run(name, func(t *testing.T) {
				b, _ := newMock(t)
				c := newConsole(t, b)
				reg := newRegistration("class-b")
				tc.edit(reg)

				gt.Error(t, c.AddWorkspace(ctx, reg))
				gt.Value(t, c.View().Error).Equal(tc.want)
				gt.Number(t, b.Calls("AddWorkspace")).Equal(0)
			})
		}
	})

	t.Run("broken credentials show parser message", func(t *testing.T) {
		b, _ := newMock(t)
		c := newConsole(t, b)
		reg := newRegistration("class-b")
		reg.CredentialsJSON = "{oops"

		err := c.AddWorkspace(ctx, reg)
		gt.Error(t, err).Is(model.ErrInvalidCredentials)
		gt.String(t, c.View().Error).Contains(usecase.MsgInvalidCreds)
		gt.String(t, c.View().Error).Contains("invalid character")
	})

	t.Run("preflight failure blocks provisioning", func(t *testing.T) {
		b, _ := newMock(t)
		slackV := &mockSlackVerifier{
			verifyBotFn: func(ctx context.Context, token, channelID string) (string, error) {
				return "", goerr.New("channel_not_found")
			},
		}
		c := newConsole(t, b, usecase.WithSlackVerifier(slackV))

		err := c.AddWorkspace(ctx, newRegistration("class-b"))
		gt.Error(t, err).Is(usecase.ErrPreflightFailed)
		gt.Value(t, c.View().Error).Equal("Slack 확인 실패: channel_not_found")
		gt.Number(t, b.Calls("AddWorkspace")).Equal(0)
	})

	t.Run("success selects the new workspace", func(t *testing.T) {
		b, _ := newMock(t)
		var (
			gotToken string
			gotSheet string
		)
		slackV := &mockSlackVerifier{
			verifyBotFn: func(ctx context.Context, token, channelID string) (string, error) {
				gotToken = token
				return "team", nil
			},
		}
		sheetV := &mockSheetVerifier{
			verifySheetFn: func(ctx context.Context, creds []byte, spreadsheetID, sheetName string) (string, error) {
				gotSheet = sheetName
				return "출석부 2026", nil
			},
		}
		c := newConsole(t, b, usecase.WithSlackVerifier(slackV), usecase.WithSheetVerifier(sheetV))
		gt.NoError(t, c.Init(ctx)).Required()

		reg := newRegistration("  class-b  ")
		reg.BotToken = " xoxb-test "
		gt.NoError(t, c.AddWorkspace(ctx, reg)).Required()
		gt.Value(t, gotToken).Equal("xoxb-test")
		gt.Value(t, gotSheet).Equal("출석부")

		v := c.View()
		gt.Array(t, v.Workspaces).Length(2)
		gt.Value(t, v.Current.ID).Equal("class-b")
		gt.Value(t, v.State).Equal(types.StateWorkspaceSelected)
		gt.Value(t, v.Notice).Equal(usecase.MsgWorkspaceAdded)
		gt.Value(t, v.Status.Find("class-b")).NotNil()
	})

	t.Run("backend rejection", func(t *testing.T) {
		b, _ := newMock(t)
		b.addWorkspaceFn = func(ctx context.Context, reg *model.WorkspaceRegistration) error {
			return apiError("이미 존재하는 워크스페이스입니다.")
		}
		c := newConsole(t, b)

		gt.Error(t, c.AddWorkspace(ctx, newRegistration("class-b")))
		gt.Value(t, c.View().Error).Equal("워크스페이스 추가 실패: 이미 존재하는 워크스페이스입니다.")
	})
}

func TestConsole_DeleteWorkspace(t *testing.T) {
	ctx := context.Background()
	b, _ := newMock(t)
	c := readyConsole(t, b)

	conf, err := c.RequestDeleteWorkspace("")
	gt.NoError(t, err).Required()
	gt.Value(t, conf.Target).Equal(memory.DemoWorkspaceID)
	gt.Array(t, conf.Prompts).Length(2)

	conf.Accept()
	gt.Error(t, c.DeleteWorkspace(ctx, conf)).Is(model.ErrNotConfirmed)
	gt.Array(t, c.View().Workspaces).Length(1)

	conf, err = c.RequestDeleteWorkspace(memory.DemoWorkspaceID)
	gt.NoError(t, err).Required()
	conf.Accept()
	conf.Accept()
	gt.NoError(t, c.DeleteWorkspace(ctx, conf)).Required()

	v := c.View()
	gt.Value(t, v.State).Equal(types.StateIdle)
	gt.Value(t, v.Current).Nil()
	gt.Array(t, v.Workspaces).Length(0)
	gt.Value(t, v.Notice).Equal(usecase.MsgWorkspaceDeleted)

	_, err = c.RequestDeleteWorkspace("")
	gt.Error(t, err).Is(usecase.ErrNoWorkspaceSelected)
}

func TestImportToken(t *testing.T) {
	testCases := map[string]struct {
		data    string
		token   string
		warning bool
		err     error
	}{
		"raw text": {
			data:  "  xoxb-raw\n",
			token: "xoxb-raw",
		},
		"slack_bot_token key": {
			data:  `{"slack_bot_token": "xoxb-a", "token": "xoxb-b"}`,
			token: "xoxb-a",
		},
		"bot_token key": {
			data:  `{"bot_token": "xoxb-c"}`,
			token: "xoxb-c",
		},
		"token key with warning": {
			data:    `{"token": "xoxp-user"}`,
			token:   "xoxp-user",
			warning: true,
		},
		"no known key": {
			data: `{"secret": "xoxb-d"}`,
			err:  usecase.ErrTokenKeyNotFound,
		},
		"empty": {
			data: " \n",
			err:  usecase.ErrEmptyToken,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, err := usecase.ImportToken("token.txt", []byte(tc.data))
			if tc.err != nil {
				gt.Error(t, err).Is(tc.err)
				gt.Value(t, usecase.ImportMessage(err)).Equal(usecase.MsgEmptyToken)
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, got.Token).Equal(tc.token)
			if tc.warning {
				gt.Value(t, got.Warning).Equal(usecase.MsgTokenPrefixWarn)
			} else {
				gt.Value(t, got.Warning).Equal("")
			}
		})
	}
}

func TestImportCredentials(t *testing.T) {
	t.Run("accepts json file", func(t *testing.T) {
		got, err := usecase.ImportCredentials("key.JSON", []byte(" {\"type\":\"service_account\"} "))
		gt.NoError(t, err).Required()
		gt.Value(t, got).Equal(`{"type":"service_account"}`)
	})

	t.Run("rejects other extensions", func(t *testing.T) {
		_, err := usecase.ImportCredentials("key.txt", []byte(`{}`))
		gt.Error(t, err).Is(usecase.ErrNotJSONFile)
		gt.Value(t, usecase.ImportMessage(err)).Equal(usecase.MsgNotJSONFile)
	})

	t.Run("rejects broken json", func(t *testing.T) {
		_, err := usecase.ImportCredentials("key.json", []byte(`{"type":`))
		gt.Error(t, err).Is(model.ErrInvalidCredentials)
		gt.String(t, usecase.ImportMessage(err)).Contains(usecase.MsgInvalidCreds)
	})
}

func TestConsole_RefreshScheduleStatus(t *testing.T) {
	ctx := context.Background()
	b, repo := newMock(t)
	c := newConsole(t, b)

	gt.NoError(t, c.RefreshScheduleStatus(ctx)).Required()
	gt.Number(t, c.View().Status.Total).Equal(1)

	gt.NoError(t, repo.AddWorkspace(ctx, newRegistration("class-b"))).Required()
	gt.NoError(t, c.RefreshScheduleStatus(ctx)).Required()
	gt.Number(t, c.View().Status.Total).Equal(2)

	b.listSchedulesFn = func(ctx context.Context) (*model.ScheduleStatus, error) {
		return nil, apiError("boom")
	}
	gt.Error(t, c.RefreshScheduleStatus(ctx))
	v := c.View()
	gt.Value(t, v.Error).Equal("")
	gt.Number(t, v.Status.Total).Equal(2)
}

func TestConsole_FindThreadAfterManualEntry(t *testing.T) {
	ctx := context.Background()
	b, _ := newMock(t)

	started := make(chan struct{})
	release := make(chan struct{})
	b.findThreadFn = func(ctx context.Context, id string) (*model.DiscoveredThread, error) {
		close(started)
		<-release
		return &model.DiscoveredThread{Ref: model.ThreadRef{TS: "1.000001", User: "UAUTO"}}, nil
	}
	c := newConsole(t, b)
	gt.NoError(t, c.Init(ctx)).Required()
	gt.NoError(t, c.SelectWorkspace(memory.DemoWorkspaceID)).Required()

	done := make(chan error, 1)
	go func() { done <- c.FindThread(ctx) }()
	<-started

	gt.NoError(t, c.SetThreadMode(types.ThreadModeManual)).Required()
	gt.NoError(t, c.EnterThread("2.000002")).Required()
	close(release)
	gt.NoError(t, <-done).Required()

	v := c.View()
	gt.Value(t, v.ThreadMode).Equal(types.ThreadModeManual)
	gt.Value(t, v.Thread.TS).Equal("2.000002")
	gt.Bool(t, v.Thread.HasDMTarget()).False()
	gt.Value(t, v.Discovered).Nil()
}

func TestConsole_ScheduleFormOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("failed edit does not keep the previous form", func(t *testing.T) {
		b, repo := newMock(t)
		gt.NoError(t, repo.AddWorkspace(ctx, newRegistration("other"))).Required()
		c := newConsole(t, b)
		gt.NoError(t, c.Init(ctx)).Required()
		gt.NoError(t, c.SelectWorkspace(memory.DemoWorkspaceID)).Required()

		c.UpdateScheduleForm(func(f *usecase.ScheduleForm) {
			f.Schedule.CreateThreadDay = types.DayMonday
			f.Schedule.CreateThreadTime = "09:00"
			f.NotificationUserID = "U_DEMO_ONLY"
		})

		b.getScheduleFn = func(ctx context.Context, id string) (*model.ScheduleConfig, error) {
			return nil, apiError("스케줄을 읽을 수 없습니다.")
		}
		gt.Error(t, c.EditSchedule(ctx, "other"))
		v := c.View()
		gt.Value(t, v.Current.ID).Equal("other")
		gt.Value(t, v.Schedule.WorkspaceID).Equal("other")
		gt.Value(t, v.Schedule.NotificationUserID).Equal("")
		gt.Bool(t, v.Schedule.Loaded).False()
		gt.Value(t, v.Error).Equal("스케줄 로드 실패: 스케줄을 읽을 수 없습니다.")

		var saved *model.ScheduleConfig
		b.saveScheduleFn = func(ctx context.Context, cfg *model.ScheduleConfig) error {
			saved = cfg
			return nil
		}
		gt.NoError(t, c.SaveSchedule(ctx)).Required()
		gt.Value(t, saved).NotNil()
		gt.Value(t, saved.WorkspaceID).Equal("other")
		gt.Value(t, saved.NotificationUserID).Equal("")
		gt.Value(t, saved.Schedule.CreateThreadTime).Equal("")
	})

	t.Run("form of another workspace is refused", func(t *testing.T) {
		b, repo := newMock(t)
		gt.NoError(t, repo.AddWorkspace(ctx, newRegistration("other"))).Required()
		c := newConsole(t, b)
		gt.NoError(t, c.Init(ctx)).Required()
		gt.NoError(t, c.SelectWorkspace(memory.DemoWorkspaceID)).Required()
		gt.NoError(t, c.LoadSchedule(ctx, "other")).Required()

		err := c.SaveSchedule(ctx)
		gt.Error(t, err).Is(usecase.ErrFormMismatch)
		gt.Value(t, c.View().Error).Equal(usecase.MsgFormMismatch)
		gt.Number(t, b.Calls("SaveSchedule")).Equal(0)
	})

	t.Run("notification user is trimmed", func(t *testing.T) {
		b, _ := newMock(t)
		c := newConsole(t, b)
		gt.NoError(t, c.Init(ctx)).Required()
		gt.NoError(t, c.SelectWorkspace(memory.DemoWorkspaceID)).Required()
		c.UpdateScheduleForm(func(f *usecase.ScheduleForm) {
			f.NotificationUserID = "  U0TEACHER \t"
		})

		var saved *model.ScheduleConfig
		b.saveScheduleFn = func(ctx context.Context, cfg *model.ScheduleConfig) error {
			saved = cfg
			return nil
		}
		gt.NoError(t, c.SaveSchedule(ctx)).Required()
		gt.Value(t, saved.NotificationUserID).Equal("U0TEACHER")
		gt.Value(t, c.View().Schedule.NotificationUserID).Equal("U0TEACHER")
	})
}

func TestConsole_VerifyNotificationUser(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, v *mockSlackVerifier, userID string) *usecase.Console {
		b, _ := newMock(t)
		var opts []usecase.Option
		if v != nil {
			opts = append(opts, usecase.WithSlackVerifier(v))
		}
		c := newConsole(t, b, opts...)
		gt.NoError(t, c.Init(ctx)).Required()
		gt.NoError(t, c.SelectWorkspace(memory.DemoWorkspaceID)).Required()
		c.UpdateScheduleForm(func(f *usecase.ScheduleForm) { f.NotificationUserID = userID })
		return c
	}

	t.Run("resolves the recipient name", func(t *testing.T) {
		var gotToken, gotUser string
		v := &mockSlackVerifier{
			lookupUserFn: func(ctx context.Context, token, userID string) (string, error) {
				gotToken, gotUser = token, userID
				return "김선생", nil
			},
		}
		c := setup(t, v, " U0TEACHER ")

		name, err := c.VerifyNotificationUser(ctx, "xoxb-demo")
		gt.NoError(t, err).Required()
		gt.Value(t, name).Equal("김선생")
		gt.Value(t, gotToken).Equal("xoxb-demo")
		gt.Value(t, gotUser).Equal("U0TEACHER")
	})

	t.Run("unknown user is reported", func(t *testing.T) {
		v := &mockSlackVerifier{
			lookupUserFn: func(ctx context.Context, token, userID string) (string, error) {
				return "", goerr.New("user_not_found")
			},
		}
		c := setup(t, v, "U0NOBODY")

		_, err := c.VerifyNotificationUser(ctx, "xoxb-demo")
		gt.Error(t, err).Is(usecase.ErrPreflightFailed)
		gt.Value(t, c.View().Error).Equal("알림 사용자 확인 실패: user_not_found")
	})

	t.Run("token is required", func(t *testing.T) {
		c := setup(t, &mockSlackVerifier{}, "U0TEACHER")

		_, err := c.VerifyNotificationUser(ctx, " ")
		gt.Error(t, err).Is(usecase.ErrPreflightFailed)
		gt.Value(t, c.View().Error).Equal(usecase.MsgSlackTokenRequired)
	})

	t.Run("nothing to check", func(t *testing.T) {
		called := false
		v := &mockSlackVerifier{
			lookupUserFn: func(ctx context.Context, token, userID string) (string, error) {
				called = true
				return "", nil
			},
		}
		name, err := setup(t, v, "").VerifyNotificationUser(ctx, "xoxb-demo")
		gt.NoError(t, err).Required()
		gt.Value(t, name).Equal("")
		gt.Bool(t, called).False()

		name, err = setup(t, nil, "U0TEACHER").VerifyNotificationUser(ctx, "")
		gt.NoError(t, err).Required()
		gt.Value(t, name).Equal("")
	})
}
