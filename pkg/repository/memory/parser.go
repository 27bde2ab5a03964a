package memory

import (
	"regexp"
	"strings"
)

var attendanceKeywords = []string{
	"출석했습니다",
	"출석해요",
	"출석합니다",
	"출석",
	"입실했습니다",
	"입실",
}

// attendancePattern matches "이름/출석" and "이름 출석" replies
var attendancePattern = regexp.MustCompile(
	`(?i)([가-힣a-zA-Z]+)\s*[/\s]\s*(` + strings.Join(attendanceKeywords, "|") + `)`,
)

// ParseAttendance extracts attendee names from thread replies in reply
// order. A reply that mentions a keyword without a name falls back to the
// author's display name. Each name is counted once.
func ParseAttendance(replies []Reply) []string {
	seen := make(map[string]struct{})
	var names []string

	for _, reply := range replies {
		name := extractName(reply.Text)
		if name == "" && containsKeyword(reply.Text) {
			name = strings.TrimSpace(reply.DisplayName)
		}
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

func extractName(text string) string {
	m := attendancePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func containsKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range attendanceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
