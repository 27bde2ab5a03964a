package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the console
type KeyMap struct {
	// Workspace list or schedule table, depending on focus
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	FocusToggle key.Binding

	FindThread   key.Binding
	ManualThread key.Binding
	ToggleMode   key.Binding
	Column       key.Binding

	ToggleMarkAbsent  key.Binding
	ToggleThreadReply key.Binding
	ToggleDM          key.Binding
	Run               key.Binding

	SaveSchedule    key.Binding
	ToggleSchedule  key.Binding
	EditSchedule    key.Binding
	DeleteSchedule  key.Binding
	DeleteWorkspace key.Binding
	Refresh         key.Binding

	// Confirmation prompts
	Yes key.Binding
	No  key.Binding

	Dismiss key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the built-in key binding set
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "select"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "workspaces/schedules"),
	),
	FindThread: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "find thread"),
	),
	ManualThread: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "enter thread"),
	),
	ToggleMode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "thread mode"),
	),
	Column: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "column"),
	),
	ToggleMarkAbsent: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "mark absent"),
	),
	ToggleThreadReply: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "thread reply"),
	),
	ToggleDM: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "DM"),
	),
	Run: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "run"),
	),
	SaveSchedule: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "save schedule"),
	),
	ToggleSchedule: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "schedule on/off"),
	),
	EditSchedule: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit schedule"),
	),
	DeleteSchedule: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete schedule"),
	),
	DeleteWorkspace: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "delete workspace"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "reload"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n", "no"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "dismiss"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// shortHelp is the binding list shown in the footer
func (k KeyMap) shortHelp() []key.Binding {
	return []key.Binding{
		k.Select, k.FocusToggle, k.FindThread, k.ManualThread, k.Column,
		k.Run, k.EditSchedule, k.SaveSchedule, k.DeleteSchedule, k.Quit,
	}
}
