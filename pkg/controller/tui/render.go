package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/classroom-tools/attendctl/pkg/controller/view"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/classroom-tools/attendctl/pkg/usecase"
)

const title = "출석체크 콘솔"

// View renders the whole console from a fresh snapshot
func (m Model) View() string {
	v := m.console.View()

	sections := []string{
		m.styles.header.Render(title),
		m.renderWorkspaces(v),
		m.renderThread(v),
		m.renderOptions(v),
	}
	if v.Progress.Visible {
		sections = append(sections, view.RenderProgress(v.Progress.Stage))
	}
	if msgs := m.renderMessages(v); msgs != "" {
		sections = append(sections, msgs)
	}
	if v.Result != nil {
		sections = append(sections, m.result.View())
	}
	if status := view.RenderScheduleStatus(v.Status, time.Now()); status != "" {
		sections = append(sections, m.renderSection("예약 현황", m.focus == focusSchedules), status)
		if m.focus == focusSchedules && v.Status != nil && m.scheduleCursor < len(v.Status.Summaries) {
			row := v.Status.Summaries[m.scheduleCursor]
			sections = append(sections, m.styles.faint.Render("선택: "+row.WorkspaceName))
		}
	}
	if v.Current != nil {
		sections = append(sections, m.renderScheduleForm(v))
	}
	if v.Pending != nil {
		sections = append(sections, m.styles.prompt.Render(v.Pending.Current()+"\n\n[y] 예  [n] 아니오"))
	}
	if m.mode != inputNone {
		sections = append(sections, m.input.View())
	}
	sections = append(sections, m.renderHelp())

	return strings.Join(sections, "\n\n")
}

func (m Model) renderSection(name string, focused bool) string {
	if focused {
		return m.styles.highlight.Render("▸ " + name)
	}
	return m.styles.section.Render(name)
}

func (m Model) renderWorkspaces(v usecase.View) string {
	lines := []string{m.renderSection("워크스페이스", m.focus == focusWorkspaces)}
	if len(v.Workspaces) == 0 {
		lines = append(lines, m.styles.faint.Render("(없음)"))
	}
	for i, ws := range v.Workspaces {
		mark := "  "
		if v.Current != nil && v.Current.ID == ws.ID {
			mark = "* "
		}
		line := mark + ws.DisplayName()
		if m.focus == focusWorkspaces && i == m.cursor {
			line = m.styles.selected.Render(line)
		}
		lines = append(lines, line)
	}
	if info := view.RenderWorkspaceInfo(v.Current); info != "" {
		lines = append(lines, m.styles.faint.Render(info))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderThread(v usecase.View) string {
	mode := "자동 찾기"
	if v.ThreadMode == types.ThreadModeManual {
		mode = "직접 입력"
	}
	lines := []string{m.styles.section.Render("스레드") + m.styles.faint.Render(" ("+mode+")")}
	if text := view.RenderThread(v.Thread, v.Discovered); text != "" {
		lines = append(lines, text)
	} else {
		lines = append(lines, m.styles.faint.Render("선택된 스레드 없음"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderOptions(v usecase.View) string {
	check := func(b bool) string {
		if b {
			return "[x]"
		}
		return "[ ]"
	}
	run := "r 출석체크 실행"
	if v.Running() {
		run = "출석체크 진행 중..."
	}
	return fmt.Sprintf("%s\n열: %s  %s 결석 표시  %s 스레드 댓글  %s DM 전송\n%s",
		m.styles.section.Render("실행 옵션"),
		v.Options.Column,
		check(v.Options.MarkAbsent),
		check(v.Options.SendThreadReply),
		check(v.Options.SendDM),
		m.styles.faint.Render(run),
	)
}

func (m Model) renderMessages(v usecase.View) string {
	var lines []string
	if v.Error != "" {
		lines = append(lines, m.styles.errText.Render(v.Error))
	}
	if v.Warning != "" {
		lines = append(lines, m.styles.warnText.Render(v.Warning))
	}
	if v.Notice != "" {
		lines = append(lines, m.styles.notice.Render(v.Notice))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderScheduleForm(v usecase.View) string {
	heading := m.styles.section.Render("스케줄 설정")
	body := view.RenderScheduleForm(v.Schedule.Schedule, v.Schedule.NotificationUserID)
	if v.Schedule.Highlight {
		body = m.styles.highlight.Render(body)
	}
	return heading + "\n" + body
}

func (m Model) renderHelp() string {
	var parts []string
	for _, b := range m.keys.shortHelp() {
		parts = append(parts, helpEntry(b))
	}
	return m.styles.help.Render(strings.Join(parts, "  "))
}

func helpEntry(b key.Binding) string {
	h := b.Help()
	return h.Key + " " + h.Desc
}
