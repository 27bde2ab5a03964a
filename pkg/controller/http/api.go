package http

import (
	"encoding/json"
	"net/http"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

type okResponse struct {
	Success bool `json:"success"`
}

var ok = &okResponse{Success: true}

type workspaceItem struct {
	FolderName    string `json:"folder_name"`
	Name          string `json:"name"`
	ChannelID     string `json:"channel_id"`
	SpreadsheetID string `json:"spreadsheet_id"`
	SheetName     string `json:"sheet_name"`
}

type listWorkspacesResponse struct {
	Success    bool            `json:"success"`
	Workspaces []workspaceItem `json:"workspaces"`
}

type workspaceRequest struct {
	Workspace string `json:"workspace"`
}

type findThreadResponse struct {
	Success    bool   `json:"success"`
	ThreadTS   string `json:"thread_ts"`
	ThreadText string `json:"thread_text"`
	ThreadUser string `json:"thread_user,omitempty"`
}

type runAttendanceRequest struct {
	Workspace       string  `json:"workspace"`
	ThreadTS        string  `json:"thread_ts"`
	Column          *string `json:"column"`
	MarkAbsent      *bool   `json:"mark_absent"`
	SendThreadReply *bool   `json:"send_thread_reply"`
	SendDM          *bool   `json:"send_dm"`
	ThreadUser      *string `json:"thread_user"`
}

type attendanceResult struct {
	TotalStudents  int      `json:"total_students"`
	Present        int      `json:"present"`
	Absent         int      `json:"absent"`
	MatchedNames   []string `json:"matched_names"`
	AbsentNames    []string `json:"absent_names"`
	UnmatchedNames []string `json:"unmatched_names"`
	SuccessCount   int      `json:"success_count"`
	Column         string   `json:"column"`
	Notifications  []string `json:"notifications"`
}

type runAttendanceResponse struct {
	Success bool              `json:"success"`
	Result  *attendanceResult `json:"result"`
}

type scheduleBody struct {
	Enabled                bool   `json:"enabled"`
	CreateThreadDay        string `json:"create_thread_day"`
	CreateThreadTime       string `json:"create_thread_time"`
	CreateThreadMessage    string `json:"create_thread_message"`
	CheckAttendanceDay     string `json:"check_attendance_day"`
	CheckAttendanceTime    string `json:"check_attendance_time"`
	CheckAttendanceColumn  string `json:"check_attendance_column"`
	CheckCompletionMessage string `json:"check_completion_message"`
	AutoColumnEnabled      bool   `json:"auto_column_enabled"`
	StartColumn            string `json:"start_column"`
	EndColumn              string `json:"end_column"`
}

type getScheduleResponse struct {
	Success            bool          `json:"success"`
	Schedule           *scheduleBody `json:"schedule"`
	NotificationUserID string        `json:"notification_user_id"`
}

type saveScheduleRequest struct {
	Workspace          string        `json:"workspace"`
	Schedule           *scheduleBody `json:"schedule"`
	NotificationUserID string        `json:"notification_user_id"`
}

type scheduleRow struct {
	WorkspaceName         string `json:"workspace_name"`
	FolderName            string `json:"folder_name"`
	CreateThreadDay       string `json:"create_thread_day"`
	CreateThreadTime      string `json:"create_thread_time"`
	CheckAttendanceDay    string `json:"check_attendance_day"`
	CheckAttendanceTime   string `json:"check_attendance_time"`
	CheckAttendanceColumn string `json:"check_attendance_column"`
}

type listSchedulesResponse struct {
	Success   bool          `json:"success"`
	Schedules []scheduleRow `json:"schedules"`
	Total     int           `json:"total"`
}

type addWorkspaceRequest struct {
	WorkspaceName   string `json:"workspace_name"`
	DisplayName     string `json:"display_name"`
	SlackBotToken   string `json:"slack_bot_token"`
	SlackChannelID  string `json:"slack_channel_id"`
	SpreadsheetID   string `json:"spreadsheet_id"`
	SheetName       string `json:"sheet_name"`
	NameColumn      string `json:"name_column"`
	StartRow        *int   `json:"start_row"`
	CredentialsJSON string `json:"credentials_json"`
}

type deleteWorkspaceRequest struct {
	WorkspaceName string `json:"workspace_name"`
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(errBadRequest, err.Error())
	}
	return nil
}

func (s *Server) listWorkspaces(w http.ResponseWriter, r *http.Request) {
	workspaces, err := s.backend.ListWorkspaces(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := &listWorkspacesResponse{
		Success:    true,
		Workspaces: make([]workspaceItem, 0, len(workspaces)),
	}
	for _, ws := range workspaces {
		resp.Workspaces = append(resp.Workspaces, workspaceItem{
			FolderName:    ws.ID,
			Name:          ws.DisplayName(),
			ChannelID:     ws.ChannelID,
			SpreadsheetID: ws.SpreadsheetID,
			SheetName:     ws.SheetName,
		})
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) findThread(w http.ResponseWriter, r *http.Request) {
	var req workspaceRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	thread, err := s.backend.FindThread(r.Context(), req.Workspace)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, &findThreadResponse{
		Success:    true,
		ThreadTS:   thread.Ref.TS,
		ThreadText: thread.Text,
		ThreadUser: thread.Ref.User,
	})
}

func (s *Server) runAttendance(w http.ResponseWriter, r *http.Request) {
	var req runAttendanceRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	defaults := model.DefaultRunOptions()
	settings := &model.RunSettings{
		WorkspaceID:     req.Workspace,
		Thread:          model.ThreadRef{TS: req.ThreadTS},
		Column:          defaults.Column,
		MarkAbsent:      boolOr(req.MarkAbsent, defaults.MarkAbsent),
		SendThreadReply: boolOr(req.SendThreadReply, defaults.SendThreadReply),
		SendDM:          boolOr(req.SendDM, defaults.SendDM),
	}
	if req.Column != nil {
		settings.Column = types.NormalizeColumn(*req.Column)
	}
	if req.ThreadUser != nil {
		settings.Thread.User = *req.ThreadUser
	}

	result, err := s.backend.RunAttendance(r.Context(), settings)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, &runAttendanceResponse{
		Success: true,
		Result: &attendanceResult{
			TotalStudents:  result.TotalStudents,
			Present:        result.Present,
			Absent:         result.Absent,
			MatchedNames:   result.MatchedNames,
			AbsentNames:    result.AbsentNames,
			UnmatchedNames: result.UnmatchedNames,
			SuccessCount:   result.SuccessCount,
			Column:         result.Column.String(),
			Notifications:  result.Notifications,
		},
	})
}

func (s *Server) getSchedule(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.backend.GetSchedule(r.Context(), chi.URLParam(r, "workspace"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := &getScheduleResponse{
		Success:            true,
		NotificationUserID: cfg.NotificationUserID,
	}
	if cfg.Configured {
		resp.Schedule = newScheduleBody(&cfg.Schedule)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) saveSchedule(w http.ResponseWriter, r *http.Request) {
	var req saveScheduleRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Schedule == nil {
		s.writeError(w, r, goerr.Wrap(errBadRequest, "schedule is missing"))
		return
	}

	cfg := &model.ScheduleConfig{
		WorkspaceID:        req.Workspace,
		Schedule:           req.Schedule.toModel(),
		NotificationUserID: req.NotificationUserID,
		Configured:         true,
	}
	if err := s.backend.SaveSchedule(r.Context(), cfg); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ok)
}

func (s *Server) listSchedules(w http.ResponseWriter, r *http.Request) {
	status, err := s.backend.ListSchedules(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := &listSchedulesResponse{
		Success:   true,
		Schedules: make([]scheduleRow, 0, len(status.Summaries)),
		Total:     status.Total,
	}
	for _, row := range status.Summaries {
		resp.Schedules = append(resp.Schedules, scheduleRow{
			WorkspaceName:         row.WorkspaceName,
			FolderName:            row.FolderName,
			CreateThreadDay:       row.CreateThread.Day.String(),
			CreateThreadTime:      row.CreateThread.Time,
			CheckAttendanceDay:    row.CheckAttendance.Day.String(),
			CheckAttendanceTime:   row.CheckAttendance.Time,
			CheckAttendanceColumn: row.Column.String(),
		})
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) addWorkspace(w http.ResponseWriter, r *http.Request) {
	var req addWorkspaceRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	reg := model.NewWorkspaceRegistration()
	reg.FolderName = req.WorkspaceName
	reg.DisplayName = req.DisplayName
	reg.BotToken = req.SlackBotToken
	reg.ChannelID = req.SlackChannelID
	reg.SpreadsheetID = req.SpreadsheetID
	reg.SheetName = req.SheetName
	reg.NameColumn = types.NormalizeColumn(req.NameColumn)
	reg.CredentialsJSON = req.CredentialsJSON
	if req.StartRow != nil {
		reg.StartRow = *req.StartRow
	}

	if err := s.backend.AddWorkspace(r.Context(), reg); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ok)
}

func (s *Server) deleteWorkspace(w http.ResponseWriter, r *http.Request) {
	var req deleteWorkspaceRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.backend.DeleteWorkspace(r.Context(), req.WorkspaceName); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ok)
}

func newScheduleBody(s *model.Schedule) *scheduleBody {
	return &scheduleBody{
		Enabled:                s.Enabled,
		CreateThreadDay:        s.CreateThreadDay.String(),
		CreateThreadTime:       s.CreateThreadTime,
		CreateThreadMessage:    s.CreateThreadMessage,
		CheckAttendanceDay:     s.CheckAttendanceDay.String(),
		CheckAttendanceTime:    s.CheckAttendanceTime,
		CheckAttendanceColumn:  s.CheckAttendanceColumn.String(),
		CheckCompletionMessage: s.CheckCompletionMessage,
		AutoColumnEnabled:      s.AutoColumnEnabled,
		StartColumn:            s.StartColumn.String(),
		EndColumn:              s.EndColumn.String(),
	}
}

func (b *scheduleBody) toModel() model.Schedule {
	return model.Schedule{
		Enabled:                b.Enabled,
		CreateThreadDay:        types.DayCode(b.CreateThreadDay),
		CreateThreadTime:       b.CreateThreadTime,
		CreateThreadMessage:    b.CreateThreadMessage,
		CheckAttendanceDay:     types.DayCode(b.CheckAttendanceDay),
		CheckAttendanceTime:    b.CheckAttendanceTime,
		CheckAttendanceColumn:  types.Column(b.CheckAttendanceColumn),
		CheckCompletionMessage: b.CheckCompletionMessage,
		AutoColumnEnabled:      b.AutoColumnEnabled,
		StartColumn:            types.Column(b.StartColumn),
		EndColumn:              types.Column(b.EndColumn),
	}
}

func boolOr(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
