package model

import (
	"regexp"
	"strings"
)

// ThreadRef identifies the Slack thread whose replies are counted. User is
// the author of the thread and receives the result DM; it is empty when the
// thread was entered by hand.
type ThreadRef struct {
	TS   string
	User string
}

// IsZero reports whether no thread is referenced
func (r ThreadRef) IsZero() bool {
	return r.TS == ""
}

// HasDMTarget reports whether a DM recipient is known
func (r ThreadRef) HasDMTarget() bool {
	return r.User != ""
}

// DiscoveredThread is the backend's answer to "find latest thread"
type DiscoveredThread struct {
	Ref  ThreadRef
	Text string
}

var (
	threadTSPattern    = regexp.MustCompile(`^\d+\.\d+$`)
	permalinkTSPattern = regexp.MustCompile(`/p(\d+)`)
)

// IsThreadTS reports whether s has the "seconds.micros" shape of a Slack
// message timestamp
func IsThreadTS(s string) bool {
	return threadTSPattern.MatchString(s)
}

// ParseThreadInput turns operator input into a thread timestamp. It
// accepts a raw "1760337471.753399" timestamp or a Slack permalink such
// as https://x.slack.com/archives/C0123/p1760337471753399. Any other
// non-empty text is returned trimmed so the backend can reject it.
func ParseThreadInput(input string) string {
	s := strings.TrimSpace(input)
	if s == "" || threadTSPattern.MatchString(s) {
		return s
	}

	if m := permalinkTSPattern.FindStringSubmatch(s); m != nil && len(m[1]) > 6 {
		digits := m[1]
		return digits[:len(digits)-6] + "." + digits[len(digits)-6:]
	}

	return s
}
