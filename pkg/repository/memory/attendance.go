package memory

import (
	"context"
	"slices"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Mark is the value written to a roster cell
type Mark string

const (
	MarkPresent Mark = "O"
	MarkAbsent  Mark = "X"
)

// MaxAbsentNames caps the absent list returned with a result. The absent
// count is not capped.
const MaxAbsentNames = 20

// Notification texts reported back to the console
const (
	NotifyThreadReply = "스레드 댓글 작성 완료"
	NotifyDM          = "DM 전송 완료"
)

// RunAttendance matches the thread replies against the roster, writes the
// marks into the target column and reports the outcome
func (m *Memory) RunAttendance(ctx context.Context, settings *model.RunSettings) (*model.AttendanceResult, error) {
	if settings == nil {
		return nil, goerr.New("run settings are nil")
	}
	column := types.NormalizeColumn(settings.Column.String())
	if !column.IsSet() {
		column = types.DefaultColumn
	}
	if err := column.Validate(); err != nil {
		return nil, err
	}
	threadTS := model.ParseThreadInput(settings.Thread.TS)
	if !model.IsThreadTS(threadTS) {
		return nil, goerr.Wrap(ErrInvalidThreadTS, "invalid thread timestamp",
			goerr.V("thread_ts", settings.Thread.TS))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ws, err := m.lookup(settings.WorkspaceID)
	if err != nil {
		return nil, err
	}
	th := ws.thread(threadTS)
	if th == nil || len(th.Replies) == 0 {
		return nil, goerr.Wrap(ErrNoReplies, "no replies to collect",
			goerr.V(model.WorkspaceIDKey, settings.WorkspaceID), goerr.V("thread_ts", threadTS))
	}

	attendees := ParseAttendance(th.Replies)
	if len(attendees) == 0 {
		return nil, goerr.Wrap(ErrNoAttendance, "nobody replied with attendance",
			goerr.V(model.WorkspaceIDKey, settings.WorkspaceID), goerr.V("thread_ts", threadTS))
	}
	if len(ws.roster) == 0 {
		return nil, goerr.Wrap(ErrEmptyRoster, "roster is empty",
			goerr.V(model.WorkspaceIDKey, settings.WorkspaceID))
	}

	matched := []string{}
	unmatched := []string{}
	for _, name := range attendees {
		if slices.Contains(ws.roster, name) {
			matched = append(matched, name)
		} else {
			unmatched = append(unmatched, name)
		}
	}
	absent := []string{}
	for _, name := range ws.roster {
		if !slices.Contains(matched, name) {
			absent = append(absent, name)
		}
	}

	cells := ws.marks[column]
	if cells == nil {
		cells = make(map[string]Mark)
		ws.marks[column] = cells
	}
	updated := 0
	for _, name := range matched {
		cells[name] = MarkPresent
		updated++
	}
	if settings.MarkAbsent {
		for _, name := range absent {
			cells[name] = MarkAbsent
			updated++
		}
	}

	notifications := []string{}
	if settings.SendThreadReply {
		msg := model.DefaultCompletionMessage
		if ws.schedule != nil && ws.schedule.CheckCompletionMessage != "" {
			msg = ws.schedule.CheckCompletionMessage
		}
		th.BotReplies = append(th.BotReplies, msg)
		notifications = append(notifications, NotifyThreadReply)
	}
	if settings.SendDM && settings.Thread.HasDMTarget() {
		notifications = append(notifications, NotifyDM)
	}

	absentNames := absent
	if len(absentNames) > MaxAbsentNames {
		absentNames = absentNames[:MaxAbsentNames]
	}

	return &model.AttendanceResult{
		TotalStudents:  len(ws.roster),
		Present:        len(matched),
		Absent:         len(absent),
		MatchedNames:   matched,
		AbsentNames:    absentNames,
		UnmatchedNames: unmatched,
		Notifications:  notifications,
		SuccessCount:   updated,
		Column:         column,
	}, nil
}

// Marks returns a copy of the cells written to one column
func (m *Memory) Marks(ctx context.Context, workspaceID string, column types.Column) (map[string]Mark, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ws, err := m.lookup(workspaceID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Mark, len(ws.marks[column]))
	for name, mark := range ws.marks[column] {
		out[name] = mark
	}
	return out, nil
}
