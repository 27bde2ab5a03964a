package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/classroom-tools/attendctl/pkg/domain/model"
)

// Headers of the schedule status table
var scheduleHeaders = []string{"워크스페이스", "출석 스레드 생성", "출석 집계", "출석 열", "다음 실행"}

const nextRunLayout = "01/02 (Mon) 15:04"

// RenderScheduleStatus renders the status table with its total footer.
// An empty status renders nothing, which hides the section.
func RenderScheduleStatus(status *model.ScheduleStatus, now time.Time) string {
	if status.IsEmpty() {
		return ""
	}

	rows := make([][]string, 0, len(status.Summaries))
	for _, s := range status.Summaries {
		rows = append(rows, []string{
			s.WorkspaceName,
			s.CreateThread.Label(),
			s.CheckAttendance.Label(),
			s.ColumnLabel(),
			NextRun(s, now),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(scheduleHeaders...).
		Rows(rows...)

	return t.String() + "\n" + fmt.Sprintf("총 %d개의 예약된 스케줄", status.Total)
}

// NextRun returns the earliest upcoming slot of a row, or "-" when neither
// slot is set
func NextRun(s *model.ScheduleSummary, now time.Time) string {
	var next time.Time
	for _, slot := range []model.WeeklySlot{s.CreateThread, s.CheckAttendance} {
		if !slot.IsSet() {
			continue
		}
		t, err := slot.Next(now)
		if err != nil {
			continue
		}
		if next.IsZero() || t.Before(next) {
			next = t
		}
	}
	if next.IsZero() {
		return "-"
	}
	return next.Format(nextRunLayout)
}

// RenderScheduleForm renders the schedule editor contents
func RenderScheduleForm(sched model.Schedule, notificationUserID string) string {
	var b strings.Builder
	enabled := "꺼짐"
	if sched.Enabled {
		enabled = "켜짐"
	}
	fmt.Fprintf(&b, "자동 실행: %s\n", enabled)
	fmt.Fprintf(&b, "출석 스레드 생성: %s\n", sched.CreateThreadSlot().Label())
	fmt.Fprintf(&b, "출석 집계: %s\n", sched.CheckAttendanceSlot().Label())
	fmt.Fprintf(&b, "출석 열: %s\n", orDash(sched.CheckAttendanceColumn.String()))
	if sched.AutoColumnEnabled {
		fmt.Fprintf(&b, "자동 열 이동: %s-%s (다음: %s)\n", sched.StartColumn, sched.EndColumn, sched.NextColumn())
	}
	fmt.Fprintf(&b, "알림 받을 사용자: %s", orDash(notificationUserID))
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
