package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	ErrInvalidSchedule = goerr.New("invalid schedule")
	ErrNotConfirmed    = goerr.New("action was not confirmed")
)

// Context keys for error values
const (
	WorkspaceIDKey = "workspace_id"
	FieldKey       = "field"
	ValueKey       = "value"
)
