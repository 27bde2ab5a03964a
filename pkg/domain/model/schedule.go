package model

import (
	"strings"

	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// DefaultThreadMessage is posted when the schedule creates a thread
	DefaultThreadMessage = "📢 출석 스레드입니다.\n\n\"이름/출석했습니다\" 형식으로 댓글 달아주세요!"
	// DefaultCompletionMessage is replied to the thread after a check
	DefaultCompletionMessage = "출석 체크를 완료했습니다."
)

// Schedule is the recurring job configuration of one workspace
type Schedule struct {
	Enabled bool

	CreateThreadDay     types.DayCode
	CreateThreadTime    string
	CreateThreadMessage string

	CheckAttendanceDay     types.DayCode
	CheckAttendanceTime    string
	CheckAttendanceColumn  types.Column
	CheckCompletionMessage string

	// Auto column: after each check the target column advances from
	// StartColumn to EndColumn and wraps around.
	AutoColumnEnabled bool
	StartColumn       types.Column
	EndColumn         types.Column
}

// DefaultSchedule is the blank form shown for a freshly selected workspace
func DefaultSchedule() Schedule {
	return Schedule{
		CreateThreadMessage:    DefaultThreadMessage,
		CheckAttendanceColumn:  types.DefaultColumn,
		CheckCompletionMessage: DefaultCompletionMessage,
	}
}

// ClearedSchedule is what "delete schedule" saves: disabled and blank
func ClearedSchedule() Schedule {
	return Schedule{}
}

// CreateThreadSlot returns the thread creation day and time
func (s *Schedule) CreateThreadSlot() WeeklySlot {
	return WeeklySlot{Day: s.CreateThreadDay, Time: s.CreateThreadTime}
}

// CheckAttendanceSlot returns the attendance check day and time
func (s *Schedule) CheckAttendanceSlot() WeeklySlot {
	return WeeklySlot{Day: s.CheckAttendanceDay, Time: s.CheckAttendanceTime}
}

// IsCleared reports whether the schedule carries no job at all
func (s *Schedule) IsCleared() bool {
	return !s.Enabled && !s.CreateThreadSlot().IsSet() && !s.CheckAttendanceSlot().IsSet()
}

// Normalize trims free text fields and uppercases column letters
func (s *Schedule) Normalize() {
	s.CreateThreadDay = types.DayCode(strings.ToLower(strings.TrimSpace(string(s.CreateThreadDay))))
	s.CheckAttendanceDay = types.DayCode(strings.ToLower(strings.TrimSpace(string(s.CheckAttendanceDay))))
	s.CreateThreadTime = strings.TrimSpace(s.CreateThreadTime)
	s.CheckAttendanceTime = strings.TrimSpace(s.CheckAttendanceTime)
	s.CheckAttendanceColumn = types.NormalizeColumn(string(s.CheckAttendanceColumn))
	s.StartColumn = types.NormalizeColumn(string(s.StartColumn))
	s.EndColumn = types.NormalizeColumn(string(s.EndColumn))
}

// Validate checks slots and columns. Blank values are accepted because a
// disabled or cleared schedule is saved blank.
func (s *Schedule) Validate() error {
	if err := s.CreateThreadSlot().Validate(); err != nil {
		return goerr.Wrap(err, "invalid thread creation slot", goerr.V(FieldKey, "create_thread"))
	}
	if err := s.CheckAttendanceSlot().Validate(); err != nil {
		return goerr.Wrap(err, "invalid attendance check slot", goerr.V(FieldKey, "check_attendance"))
	}
	if s.CheckAttendanceColumn.IsSet() {
		if err := s.CheckAttendanceColumn.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidSchedule, "invalid attendance column", goerr.V(ValueKey, s.CheckAttendanceColumn))
		}
	}

	if !s.AutoColumnEnabled {
		return nil
	}
	start, err := s.StartColumn.Index()
	if err != nil {
		return goerr.Wrap(ErrInvalidSchedule, "invalid start column", goerr.V(ValueKey, s.StartColumn))
	}
	end, err := s.EndColumn.Index()
	if err != nil {
		return goerr.Wrap(ErrInvalidSchedule, "invalid end column", goerr.V(ValueKey, s.EndColumn))
	}
	if start > end {
		return goerr.Wrap(ErrInvalidSchedule, "start column is after end column",
			goerr.V("start", s.StartColumn), goerr.V("end", s.EndColumn))
	}
	return nil
}

// NextColumn returns the column the following check will write to. Without
// auto column the configured column is reused.
func (s *Schedule) NextColumn() types.Column {
	if !s.AutoColumnEnabled {
		return s.CheckAttendanceColumn
	}
	return s.CheckAttendanceColumn.Next(s.StartColumn, s.EndColumn)
}

// ScheduleConfig is a schedule together with its owner and DM recipient.
// Configured is false when the backend has no schedule stored at all.
type ScheduleConfig struct {
	WorkspaceID        string
	Schedule           Schedule
	NotificationUserID string
	Configured         bool
}

// ScheduleSummary is one row of the schedule status table
type ScheduleSummary struct {
	WorkspaceName   string
	FolderName      string
	CreateThread    WeeklySlot
	CheckAttendance WeeklySlot
	Column          types.Column
}

// ColumnLabel returns the target column, K when none is configured
func (s *ScheduleSummary) ColumnLabel() string {
	if !s.Column.IsSet() {
		return types.DefaultColumn.String()
	}
	return s.Column.String()
}

// ScheduleStatus is the schedule overview across all workspaces
type ScheduleStatus struct {
	Summaries []*ScheduleSummary
	Total     int
}

// IsEmpty reports whether the status section has nothing to show
func (s *ScheduleStatus) IsEmpty() bool {
	return s == nil || len(s.Summaries) == 0
}

// Find returns the row of a workspace, or nil
func (s *ScheduleStatus) Find(folderName string) *ScheduleSummary {
	if s == nil {
		return nil
	}
	for _, row := range s.Summaries {
		if row.FolderName == folderName {
			return row
		}
	}
	return nil
}
