package view

import (
	"fmt"
	"strings"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
)

// Panel titles of the result view
const (
	TitleResult        = "출석체크 결과"
	TitlePresent       = "출석"
	TitleAbsent        = "결석"
	TitleUnmatched     = "명단에 없는 이름"
	TitleNotifications = "알림"
)

// RenderResult renders the statistics and name panels of a run. The
// unmatched and notification panels appear only when they have entries.
func RenderResult(r *model.AttendanceResult) string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	title := TitleResult
	if r.Column.IsSet() {
		title = fmt.Sprintf("%s (%s열)", TitleResult, r.Column)
	}
	b.WriteString(title + "\n")
	fmt.Fprintf(&b, "  전체 학생  %d명\n", r.TotalStudents)
	fmt.Fprintf(&b, "  출석       %d명\n", r.Present)
	fmt.Fprintf(&b, "  결석       %d명\n", r.Absent)
	fmt.Fprintf(&b, "  출석률     %s\n", r.RateText())

	b.WriteString("\n" + TitlePresent + ": " + r.PresentText() + "\n")
	b.WriteString(TitleAbsent + ": " + r.AbsentText() + "\n")

	if r.HasUnmatched() {
		b.WriteString(TitleUnmatched + ": " + strings.Join(r.UnmatchedNames, ", ") + "\n")
	}
	if r.HasNotifications() {
		b.WriteString(TitleNotifications + ":\n")
		for _, n := range r.Notifications {
			b.WriteString("  - " + n + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
