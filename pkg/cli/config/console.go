package config

import (
	"log/slog"
	"os"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/classroom-tools/attendctl/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Preferences is the console preference file
//
//	[run]
//	column = "K"
//	mark_absent = true
//	send_thread_reply = true
//	send_dm = false
//
//	[schedule]
//	thread_message = "..."
//	completion_message = "..."
//	column = "K"
//
//	[console]
//	pacing = true
type Preferences struct {
	Run      RunPreferences      `toml:"run"`
	Schedule SchedulePreferences `toml:"schedule"`
	Console  ConsolePreferences  `toml:"console"`
}

// RunPreferences are the initial run options. Nil flags keep the
// backend defaults.
type RunPreferences struct {
	Column          string `toml:"column"`
	MarkAbsent      *bool  `toml:"mark_absent"`
	SendThreadReply *bool  `toml:"send_thread_reply"`
	SendDM          *bool  `toml:"send_dm"`
}

// SchedulePreferences fill the blank schedule form
type SchedulePreferences struct {
	ThreadMessage     string `toml:"thread_message"`
	CompletionMessage string `toml:"completion_message"`
	Column            string `toml:"column"`
}

// ConsolePreferences tune the console itself
type ConsolePreferences struct {
	Pacing *bool `toml:"pacing"`
}

// Validate checks the column letters
func (p *Preferences) Validate() error {
	if c := types.NormalizeColumn(p.Run.Column); c.IsSet() {
		if err := c.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidConfig, "invalid run column", goerr.V(FieldKey, "run.column"), goerr.V(ValueKey, p.Run.Column))
		}
	}
	if c := types.NormalizeColumn(p.Schedule.Column); c.IsSet() {
		if err := c.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidConfig, "invalid schedule column", goerr.V(FieldKey, "schedule.column"), goerr.V(ValueKey, p.Schedule.Column))
		}
	}
	return nil
}

// RunOptions merges the preferences over the backend defaults
func (p *Preferences) RunOptions() model.RunOptions {
	opts := model.DefaultRunOptions()
	if c := types.NormalizeColumn(p.Run.Column); c.IsSet() {
		opts.Column = c
	}
	if p.Run.MarkAbsent != nil {
		opts.MarkAbsent = *p.Run.MarkAbsent
	}
	if p.Run.SendThreadReply != nil {
		opts.SendThreadReply = *p.Run.SendThreadReply
	}
	if p.Run.SendDM != nil {
		opts.SendDM = *p.Run.SendDM
	}
	return opts
}

// ScheduleDefaults merges the preferences over the blank schedule form
func (p *Preferences) ScheduleDefaults() model.Schedule {
	s := model.DefaultSchedule()
	if p.Schedule.ThreadMessage != "" {
		s.CreateThreadMessage = p.Schedule.ThreadMessage
	}
	if p.Schedule.CompletionMessage != "" {
		s.CheckCompletionMessage = p.Schedule.CompletionMessage
	}
	if c := types.NormalizeColumn(p.Schedule.Column); c.IsSet() {
		s.CheckAttendanceColumn = c
	}
	return s
}

// Options converts the preferences into console options
func (p *Preferences) Options() []usecase.Option {
	opts := []usecase.Option{
		usecase.WithRunDefaults(p.RunOptions()),
		usecase.WithScheduleDefaults(p.ScheduleDefaults()),
	}
	if p.Console.Pacing != nil {
		opts = append(opts, usecase.WithPacing(*p.Console.Pacing))
	}
	return opts
}

// LoadPreferences reads and validates a preference file
func LoadPreferences(path string) (*Preferences, error) {
	// #nosec G304 - path is provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read preference file", goerr.V(ConfigPathKey, path))
	}

	var prefs Preferences
	if err := toml.Unmarshal(data, &prefs); err != nil {
		return nil, goerr.Wrap(err, "failed to parse preference file", goerr.V(ConfigPathKey, path))
	}
	if err := prefs.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid preference file", goerr.V(ConfigPathKey, path))
	}
	return &prefs, nil
}

// Console holds the --config flag
type Console struct {
	path string
}

func (x *Console) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path of the console preference file (TOML)",
			Category:    "Console",
			Destination: &x.path,
			Sources:     cli.EnvVars("ATTENDCTL_CONFIG"),
		},
	}
}

func (x Console) LogValue() slog.Value {
	return slog.GroupValue(slog.String("config", x.path))
}

// Configure loads the preference file. Without --config the built-in
// defaults are used.
func (x *Console) Configure() (*Preferences, error) {
	if x.path == "" {
		return &Preferences{}, nil
	}
	return LoadPreferences(x.path)
}
