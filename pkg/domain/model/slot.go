package model

import (
	"fmt"
	"time"

	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/robfig/cron/v3"
)

// UnsetText is rendered for a slot without day or time
const UnsetText = "미설정"

// WeeklySlot is a weekly day + "HH:MM" time pair
type WeeklySlot struct {
	Day  types.DayCode
	Time string
}

// IsSet reports whether both day and time are filled in
func (s WeeklySlot) IsSet() bool {
	return s.Day.IsSet() && s.Time != ""
}

// Label renders the slot as "매주 월요일 09:00", or "미설정"
func (s WeeklySlot) Label() string {
	if !s.IsSet() {
		return UnsetText
	}
	return fmt.Sprintf("매주 %s %s", s.Day.DisplayName(), s.Time)
}

// Validate checks the day code and time format. An entirely empty slot is
// valid; a half filled one is not.
func (s WeeklySlot) Validate() error {
	if !s.Day.IsSet() && s.Time == "" {
		return nil
	}
	if !s.Day.IsValid() {
		return goerr.Wrap(ErrInvalidSchedule, "invalid day", goerr.V(ValueKey, s.Day))
	}
	if _, err := parseClock(s.Time); err != nil {
		return goerr.Wrap(ErrInvalidSchedule, "invalid time", goerr.V(ValueKey, s.Time))
	}
	return nil
}

// Next returns the first occurrence strictly after the given time, in
// after's location
func (s WeeklySlot) Next(after time.Time) (time.Time, error) {
	if !s.IsSet() {
		return time.Time{}, goerr.Wrap(ErrInvalidSchedule, "slot is not set")
	}
	wd, ok := s.Day.Weekday()
	if !ok {
		return time.Time{}, goerr.Wrap(ErrInvalidSchedule, "invalid day", goerr.V(ValueKey, s.Day))
	}
	clock, err := parseClock(s.Time)
	if err != nil {
		return time.Time{}, goerr.Wrap(ErrInvalidSchedule, "invalid time", goerr.V(ValueKey, s.Time))
	}

	spec := fmt.Sprintf("%d %d * * %d", clock.Minute(), clock.Hour(), int(wd))
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "failed to build cron schedule", goerr.V("spec", spec))
	}
	return sched.Next(after), nil
}

func parseClock(s string) (time.Time, error) {
	return time.Parse("15:04", s)
}
