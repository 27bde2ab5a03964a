package backend

import (
	"strings"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
)

type envelope struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	Traceback string `json:"traceback,omitempty"`
}

func (e *envelope) result() *envelope { return e }

type responseEnvelope interface {
	result() *envelope
}

type workspaceDTO struct {
	FolderName    string `json:"folder_name"`
	Name          string `json:"name"`
	ChannelID     string `json:"channel_id"`
	SheetName     string `json:"sheet_name"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty"`
}

type listWorkspacesResponse struct {
	envelope
	Workspaces []workspaceDTO `json:"workspaces"`
}

func (r *listWorkspacesResponse) toModel() model.Workspaces {
	ws := make(model.Workspaces, 0, len(r.Workspaces))
	for _, w := range r.Workspaces {
		ws = append(ws, &model.Workspace{
			ID:            w.FolderName,
			Name:          w.Name,
			ChannelID:     w.ChannelID,
			SheetName:     w.SheetName,
			SpreadsheetID: w.SpreadsheetID,
		})
	}
	return ws
}

type findThreadRequest struct {
	Workspace string `json:"workspace"`
}

type findThreadResponse struct {
	envelope
	ThreadTS   string  `json:"thread_ts"`
	ThreadUser *string `json:"thread_user"`
	ThreadText string  `json:"thread_text"`
}

func (r *findThreadResponse) toModel() *model.DiscoveredThread {
	ref := model.ThreadRef{TS: r.ThreadTS}
	if r.ThreadUser != nil {
		ref.User = *r.ThreadUser
	}
	return &model.DiscoveredThread{Ref: ref, Text: r.ThreadText}
}

type runAttendanceRequest struct {
	Workspace       string  `json:"workspace"`
	ThreadTS        string  `json:"thread_ts"`
	Column          string  `json:"column"`
	MarkAbsent      bool    `json:"mark_absent"`
	SendThreadReply bool    `json:"send_thread_reply"`
	SendDM          bool    `json:"send_dm"`
	ThreadUser      *string `json:"thread_user"`
}

func newRunAttendanceRequest(s *model.RunSettings) *runAttendanceRequest {
	req := &runAttendanceRequest{
		Workspace:       s.WorkspaceID,
		ThreadTS:        s.Thread.TS,
		Column:          s.Column.String(),
		MarkAbsent:      s.MarkAbsent,
		SendThreadReply: s.SendThreadReply,
		SendDM:          s.SendDM,
	}
	if s.Thread.HasDMTarget() {
		user := s.Thread.User
		req.ThreadUser = &user
	}
	return req
}

type attendanceResultDTO struct {
	TotalStudents  int      `json:"total_students"`
	Present        int      `json:"present"`
	Absent         int      `json:"absent"`
	MatchedNames   []string `json:"matched_names"`
	AbsentNames    []string `json:"absent_names"`
	UnmatchedNames []string `json:"unmatched_names,omitempty"`
	Notifications  []string `json:"notifications,omitempty"`
	SuccessCount   int      `json:"success_count,omitempty"`
	Column         string   `json:"column,omitempty"`
}

type runAttendanceResponse struct {
	envelope
	Result *attendanceResultDTO `json:"result"`
}

func (d *attendanceResultDTO) toModel() *model.AttendanceResult {
	return &model.AttendanceResult{
		TotalStudents:  d.TotalStudents,
		Present:        d.Present,
		Absent:         d.Absent,
		MatchedNames:   nonNil(d.MatchedNames),
		AbsentNames:    nonNil(d.AbsentNames),
		UnmatchedNames: nonNil(d.UnmatchedNames),
		Notifications:  nonNil(d.Notifications),
		SuccessCount:   d.SuccessCount,
		Column:         types.NormalizeColumn(d.Column),
	}
}

// scheduleDTO uses pointers so that fields the backend left out can be
// told apart from fields it sent empty.
type scheduleDTO struct {
	Enabled                *bool   `json:"enabled"`
	CreateThreadDay        *string `json:"create_thread_day"`
	CreateThreadTime       *string `json:"create_thread_time"`
	CreateThreadMessage    *string `json:"create_thread_message"`
	CheckAttendanceDay     *string `json:"check_attendance_day"`
	CheckAttendanceTime    *string `json:"check_attendance_time"`
	CheckAttendanceColumn  *string `json:"check_attendance_column"`
	CheckCompletionMessage *string `json:"check_completion_message,omitempty"`
	AutoColumnEnabled      *bool   `json:"auto_column_enabled,omitempty"`
	StartColumn            *string `json:"start_column,omitempty"`
	EndColumn              *string `json:"end_column,omitempty"`
}

func newScheduleDTO(s *model.Schedule) *scheduleDTO {
	return &scheduleDTO{
		Enabled:                ptr(s.Enabled),
		CreateThreadDay:        ptr(s.CreateThreadDay.String()),
		CreateThreadTime:       ptr(s.CreateThreadTime),
		CreateThreadMessage:    ptr(s.CreateThreadMessage),
		CheckAttendanceDay:     ptr(s.CheckAttendanceDay.String()),
		CheckAttendanceTime:    ptr(s.CheckAttendanceTime),
		CheckAttendanceColumn:  ptr(s.CheckAttendanceColumn.String()),
		CheckCompletionMessage: ptr(s.CheckCompletionMessage),
		AutoColumnEnabled:      ptr(s.AutoColumnEnabled),
		StartColumn:            ptr(s.StartColumn.String()),
		EndColumn:              ptr(s.EndColumn.String()),
	}
}

// toModel fills every field the backend did not send, or sent blank where
// blank is meaningless, from model.DefaultSchedule.
func (d *scheduleDTO) toModel() model.Schedule {
	s := model.DefaultSchedule()
	if d == nil {
		return s
	}

	s.Enabled = deref(d.Enabled, s.Enabled)
	s.CreateThreadDay = types.DayCode(deref(d.CreateThreadDay, ""))
	s.CreateThreadTime = deref(d.CreateThreadTime, "")
	s.CreateThreadMessage = orDefault(d.CreateThreadMessage, s.CreateThreadMessage)
	s.CheckAttendanceDay = types.DayCode(deref(d.CheckAttendanceDay, ""))
	s.CheckAttendanceTime = deref(d.CheckAttendanceTime, "")
	s.CheckAttendanceColumn = types.Column(orDefault(d.CheckAttendanceColumn, s.CheckAttendanceColumn.String()))
	s.CheckCompletionMessage = orDefault(d.CheckCompletionMessage, s.CheckCompletionMessage)
	s.AutoColumnEnabled = deref(d.AutoColumnEnabled, false)
	s.StartColumn = types.Column(deref(d.StartColumn, ""))
	s.EndColumn = types.Column(deref(d.EndColumn, ""))
	s.Normalize()
	return s
}

type getScheduleResponse struct {
	envelope
	Schedule           *scheduleDTO `json:"schedule"`
	NotificationUserID *string      `json:"notification_user_id"`
}

type saveScheduleRequest struct {
	Workspace          string       `json:"workspace"`
	Schedule           *scheduleDTO `json:"schedule"`
	NotificationUserID string       `json:"notification_user_id"`
}

type scheduleSummaryDTO struct {
	WorkspaceName         string `json:"workspace_name"`
	FolderName            string `json:"folder_name"`
	CreateThreadDay       string `json:"create_thread_day"`
	CreateThreadTime      string `json:"create_thread_time"`
	CheckAttendanceDay    string `json:"check_attendance_day"`
	CheckAttendanceTime   string `json:"check_attendance_time"`
	CheckAttendanceColumn string `json:"check_attendance_column"`
}

type listSchedulesResponse struct {
	envelope
	Schedules []scheduleSummaryDTO `json:"schedules"`
	Total     *int                 `json:"total"`
}

func (r *listSchedulesResponse) toModel() *model.ScheduleStatus {
	status := &model.ScheduleStatus{
		Summaries: make([]*model.ScheduleSummary, 0, len(r.Schedules)),
		Total:     deref(r.Total, len(r.Schedules)),
	}
	for _, row := range r.Schedules {
		status.Summaries = append(status.Summaries, &model.ScheduleSummary{
			WorkspaceName: row.WorkspaceName,
			FolderName:    row.FolderName,
			CreateThread: model.WeeklySlot{
				Day:  types.DayCode(strings.ToLower(row.CreateThreadDay)),
				Time: row.CreateThreadTime,
			},
			CheckAttendance: model.WeeklySlot{
				Day:  types.DayCode(strings.ToLower(row.CheckAttendanceDay)),
				Time: row.CheckAttendanceTime,
			},
			Column: types.NormalizeColumn(row.CheckAttendanceColumn),
		})
	}
	return status
}

type addWorkspaceRequest struct {
	WorkspaceName   string `json:"workspace_name"`
	DisplayName     string `json:"display_name"`
	SlackBotToken   string `json:"slack_bot_token"`
	SlackChannelID  string `json:"slack_channel_id"`
	SpreadsheetID   string `json:"spreadsheet_id"`
	SheetName       string `json:"sheet_name"`
	NameColumn      string `json:"name_column"`
	StartRow        int    `json:"start_row"`
	CredentialsJSON string `json:"credentials_json"`
}

func newAddWorkspaceRequest(r *model.WorkspaceRegistration) *addWorkspaceRequest {
	return &addWorkspaceRequest{
		WorkspaceName:   r.FolderName,
		DisplayName:     r.DisplayName,
		SlackBotToken:   r.BotToken,
		SlackChannelID:  r.ChannelID,
		SpreadsheetID:   r.SpreadsheetID,
		SheetName:       r.SheetName,
		NameColumn:      r.NameColumn.String(),
		StartRow:        r.StartRow,
		CredentialsJSON: r.CredentialsJSON,
	}
}

type deleteWorkspaceRequest struct {
	WorkspaceName string `json:"workspace_name"`
}

func ptr[T any](v T) *T { return &v }

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

func orDefault(p *string, fallback string) string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return fallback
	}
	return *p
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
