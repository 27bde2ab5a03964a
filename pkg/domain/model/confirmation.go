package model

import "github.com/m-mizutani/goerr/v2"

// ConfirmAction names a destructive console action
type ConfirmAction string

const (
	ConfirmDeleteSchedule  ConfirmAction = "delete_schedule"
	ConfirmDeleteWorkspace ConfirmAction = "delete_workspace"
)

// Confirmation gates a destructive action behind one or more prompts that
// must be accepted in order. A declined confirmation cannot be reused.
type Confirmation struct {
	Action  ConfirmAction
	Target  string
	Prompts []string

	step     int
	declined bool
}

// NewConfirmation creates a pending confirmation
func NewConfirmation(action ConfirmAction, target string, prompts ...string) *Confirmation {
	return &Confirmation{
		Action:  action,
		Target:  target,
		Prompts: prompts,
	}
}

// Current returns the prompt waiting for an answer, or "" when none is left
func (c *Confirmation) Current() string {
	if c.declined || c.step >= len(c.Prompts) {
		return ""
	}
	return c.Prompts[c.step]
}

// Accept answers the current prompt with yes
func (c *Confirmation) Accept() {
	if !c.declined && c.step < len(c.Prompts) {
		c.step++
	}
}

// Decline answers the current prompt with no and cancels the action
func (c *Confirmation) Decline() {
	c.declined = true
}

// Confirmed reports whether every prompt was accepted
func (c *Confirmation) Confirmed() bool {
	return c != nil && !c.declined && len(c.Prompts) > 0 && c.step == len(c.Prompts)
}

// Require returns ErrNotConfirmed unless the confirmation is for the given
// action and fully accepted
func (c *Confirmation) Require(action ConfirmAction) error {
	if c == nil || c.Action != action || !c.Confirmed() {
		return goerr.Wrap(ErrNotConfirmed, "confirmation required",
			goerr.V("action", string(action)))
	}
	return nil
}
