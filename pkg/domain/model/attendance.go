package model

import (
	"fmt"
	"strings"

	"github.com/classroom-tools/attendctl/pkg/domain/types"
)

// RunSettings is the request for one attendance run. It is built fresh for
// every run and never stored.
type RunSettings struct {
	WorkspaceID     string
	Thread          ThreadRef
	Column          types.Column
	MarkAbsent      bool
	SendThreadReply bool
	SendDM          bool
}

// RunOptions are the operator toggles that survive between runs
type RunOptions struct {
	Column          types.Column
	MarkAbsent      bool
	SendThreadReply bool
	SendDM          bool
}

// DefaultRunOptions mirrors the backend defaults: column K, every flag on
func DefaultRunOptions() RunOptions {
	return RunOptions{
		Column:          types.DefaultColumn,
		MarkAbsent:      true,
		SendThreadReply: true,
		SendDM:          true,
	}
}

// AttendanceResult is the outcome of one run as reported by the backend.
// AbsentNames may be shorter than Absent when the backend truncates it.
type AttendanceResult struct {
	TotalStudents  int
	Present        int
	Absent         int
	MatchedNames   []string
	AbsentNames    []string
	UnmatchedNames []string
	Notifications  []string
	SuccessCount   int
	Column         types.Column
}

const (
	// AllPresentText replaces the absent list when nobody is missing
	AllPresentText = "전원 출석!"
	// RateUnavailableText is shown instead of a rate for an empty roster
	RateUnavailableText = "N/A"
)

// Rate returns present/total. ok is false when the roster is empty.
func (r *AttendanceResult) Rate() (rate float64, ok bool) {
	if r.TotalStudents <= 0 {
		return 0, false
	}
	return float64(r.Present) / float64(r.TotalStudents), true
}

// RateText formats the rate with one decimal, e.g. "75.0%"
func (r *AttendanceResult) RateText() string {
	rate, ok := r.Rate()
	if !ok {
		return RateUnavailableText
	}
	return fmt.Sprintf("%.1f%%", rate*100)
}

// AbsentRemainder is the number of absentees left out of AbsentNames
func (r *AttendanceResult) AbsentRemainder() int {
	if n := r.Absent - len(r.AbsentNames); n > 0 {
		return n
	}
	return 0
}

// PresentText joins the matched names
func (r *AttendanceResult) PresentText() string {
	return strings.Join(r.MatchedNames, ", ")
}

// AbsentText joins the absent names and appends the remainder count
func (r *AttendanceResult) AbsentText() string {
	if len(r.AbsentNames) == 0 {
		return AllPresentText
	}
	text := strings.Join(r.AbsentNames, ", ")
	if rest := r.AbsentRemainder(); rest > 0 {
		text += fmt.Sprintf(" ... 외 %d명", rest)
	}
	return text
}

// HasUnmatched reports whether the unmatched panel should be shown
func (r *AttendanceResult) HasUnmatched() bool {
	return len(r.UnmatchedNames) > 0
}

// HasNotifications reports whether the notifications panel should be shown
func (r *AttendanceResult) HasNotifications() bool {
	return len(r.Notifications) > 0
}
