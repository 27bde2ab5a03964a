package types

// ConsoleState is the coarse state of the workspace console
type ConsoleState int

const (
	// StateIdle means no workspace is selected
	StateIdle ConsoleState = iota
	// StateWorkspaceSelected means a workspace is current but no thread is known
	StateWorkspaceSelected
	// StateThreadResolved means a thread reference is ready for a run
	StateThreadResolved
	// StateRunInFlight means an attendance run request is outstanding
	StateRunInFlight
)

// HasWorkspace reports whether a workspace is current in this state
func (s ConsoleState) HasWorkspace() bool {
	return s != StateIdle
}

// String returns the state name
func (s ConsoleState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWorkspaceSelected:
		return "workspace_selected"
	case StateThreadResolved:
		return "thread_resolved"
	case StateRunInFlight:
		return "run_in_flight"
	default:
		return "unknown"
	}
}
