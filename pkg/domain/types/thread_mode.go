package types

import "fmt"

// ThreadMode selects how the attendance thread is located
type ThreadMode string

const (
	// ThreadModeAuto asks the backend for the latest attendance thread
	ThreadModeAuto ThreadMode = "auto"
	// ThreadModeManual takes a timestamp or permalink typed by the operator
	ThreadModeManual ThreadMode = "manual"
)

// IsValid checks if the thread mode is valid
func (m ThreadMode) IsValid() bool {
	switch m {
	case ThreadModeAuto, ThreadModeManual:
		return true
	default:
		return false
	}
}

// Toggle returns the other mode
func (m ThreadMode) Toggle() ThreadMode {
	if m == ThreadModeManual {
		return ThreadModeAuto
	}
	return ThreadModeManual
}

// String returns the string representation of the thread mode
func (m ThreadMode) String() string {
	return string(m)
}

// ParseThreadMode parses a string into a ThreadMode
func ParseThreadMode(s string) (ThreadMode, error) {
	mode := ThreadMode(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid thread mode: %s", s)
	}
	return mode, nil
}
