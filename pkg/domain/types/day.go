package types

import (
	"fmt"
	"strings"
	"time"
)

// DayCode is the weekly day identifier used by the schedule API
type DayCode string

const (
	DayMonday    DayCode = "mon"
	DayTuesday   DayCode = "tue"
	DayWednesday DayCode = "wed"
	DayThursday  DayCode = "thu"
	DayFriday    DayCode = "fri"
	DaySaturday  DayCode = "sat"
	DaySunday    DayCode = "sun"
)

var dayNames = map[DayCode]string{
	DayMonday:    "월요일",
	DayTuesday:   "화요일",
	DayWednesday: "수요일",
	DayThursday:  "목요일",
	DayFriday:    "금요일",
	DaySaturday:  "토요일",
	DaySunday:    "일요일",
}

var dayWeekdays = map[DayCode]time.Weekday{
	DayMonday:    time.Monday,
	DayTuesday:   time.Tuesday,
	DayWednesday: time.Wednesday,
	DayThursday:  time.Thursday,
	DayFriday:    time.Friday,
	DaySaturday:  time.Saturday,
	DaySunday:    time.Sunday,
}

// AllDayCodes returns the day codes in calendar order starting on Monday
func AllDayCodes() []DayCode {
	return []DayCode{
		DayMonday,
		DayTuesday,
		DayWednesday,
		DayThursday,
		DayFriday,
		DaySaturday,
		DaySunday,
	}
}

// IsValid reports whether d is one of the seven day codes
func (d DayCode) IsValid() bool {
	_, ok := dayNames[d]
	return ok
}

// IsSet reports whether a day has been chosen
func (d DayCode) IsSet() bool {
	return d != ""
}

// DisplayName returns the localized day name. Unknown codes are returned
// as-is so that data from a newer backend still renders.
func (d DayCode) DisplayName() string {
	if name, ok := dayNames[d]; ok {
		return name
	}
	return string(d)
}

// Weekday converts the code to time.Weekday
func (d DayCode) Weekday() (time.Weekday, bool) {
	wd, ok := dayWeekdays[d]
	return wd, ok
}

// String returns the string representation of the day code
func (d DayCode) String() string {
	return string(d)
}

// ParseDayCode parses a day code. Empty input means "not set" and is accepted.
func ParseDayCode(s string) (DayCode, error) {
	d := DayCode(strings.ToLower(strings.TrimSpace(s)))
	if d == "" || d.IsValid() {
		return d, nil
	}
	return "", fmt.Errorf("invalid day code: %s", s)
}
