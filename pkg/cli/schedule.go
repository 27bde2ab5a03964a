package cli

import (
	"context"
	"time"

	"github.com/classroom-tools/attendctl/pkg/cli/config"
	"github.com/classroom-tools/attendctl/pkg/controller/view"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/classroom-tools/attendctl/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdSchedule(a *app) *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "Inspect and edit the recurring attendance schedule",
		Commands: []*cli.Command{
			cmdScheduleList(a),
			cmdScheduleShow(a),
			cmdScheduleSet(a),
			cmdScheduleDelete(a),
		},
	}
}

func cmdScheduleList(a *app) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Show the schedule status of every workspace",
		Action: func(ctx context.Context, c *cli.Command) error {
			console, err := a.newConsole(oneShot...)
			if err != nil {
				return err
			}
			defer console.Close()

			if err := console.LoadScheduleStatus(ctx); err != nil {
				return a.fail(console, err)
			}

			out := view.RenderScheduleStatus(console.View().Status, time.Now())
			if out == "" {
				a.printer.Faint("예약된 스케줄이 없습니다.")
				return nil
			}
			a.printer.Block(out)
			return nil
		},
	}
}

func cmdScheduleShow(a *app) *cli.Command {
	var workspaceID string

	return &cli.Command{
		Name:  "show",
		Usage: "Show the stored schedule of a workspace",
		Flags: []cli.Flag{workspaceFlag(&workspaceID)},
		Action: func(ctx context.Context, c *cli.Command) error {
			console, err := a.newConsole(oneShot...)
			if err != nil {
				return err
			}
			defer console.Close()

			if err := a.openWorkspace(ctx, console, workspaceID); err != nil {
				return err
			}
			if err := console.LoadSchedule(ctx, workspaceID); err != nil {
				return a.fail(console, err)
			}

			v := console.View()
			a.printer.Title("%s", v.Current.DisplayName())
			a.printer.Block(view.RenderScheduleForm(v.Schedule.Schedule, v.Schedule.NotificationUserID))
			return nil
		},
	}
}

func cmdScheduleSet(a *app) *cli.Command {
	var (
		workspaceID       string
		enabled           bool
		threadDay         string
		threadTime        string
		threadMessage     string
		checkDay          string
		checkTime         string
		column            string
		completionMessage string
		autoColumn        bool
		startColumn       string
		endColumn         string
		notifyUser        string
		slackToken        string
		verifyCfg         config.Verify
	)

	flags := []cli.Flag{
		workspaceFlag(&workspaceID),
		&cli.BoolFlag{
			Name:        "enabled",
			Usage:       "Turn the schedule on or off",
			Destination: &enabled,
		},
		&cli.StringFlag{
			Name:        "thread-day",
			Usage:       "Day the attendance thread is posted (mon..sun, empty to unset)",
			Destination: &threadDay,
		},
		&cli.StringFlag{
			Name:        "thread-time",
			Usage:       "Time the attendance thread is posted (HH:MM)",
			Destination: &threadTime,
		},
		&cli.StringFlag{
			Name:        "thread-message",
			Usage:       "Text of the attendance thread",
			Destination: &threadMessage,
		},
		&cli.StringFlag{
			Name:        "check-day",
			Usage:       "Day attendance is collected (mon..sun, empty to unset)",
			Destination: &checkDay,
		},
		&cli.StringFlag{
			Name:        "check-time",
			Usage:       "Time attendance is collected (HH:MM)",
			Destination: &checkTime,
		},
		&cli.StringFlag{
			Name:        "column",
			Usage:       "Sheet column the check writes to",
			Destination: &column,
		},
		&cli.StringFlag{
			Name:        "completion-message",
			Usage:       "Reply posted to the thread after the check",
			Destination: &completionMessage,
		},
		&cli.BoolFlag{
			Name:        "auto-column",
			Usage:       "Advance the column after every check",
			Destination: &autoColumn,
		},
		&cli.StringFlag{
			Name:        "start-column",
			Usage:       "First column of the auto column range",
			Destination: &startColumn,
		},
		&cli.StringFlag{
			Name:        "end-column",
			Usage:       "Last column of the auto column range",
			Destination: &endColumn,
		},
		&cli.StringFlag{
			Name:        "notify-user",
			Usage:       "Slack user id that receives the check summary",
			Destination: &notifyUser,
		},
		&cli.StringFlag{
			Name:        "slack-token",
			Usage:       "Bot token used with --verify to look up the notification user",
			Category:    "Preflight",
			Destination: &slackToken,
			Sources:     cli.EnvVars("ATTENDCTL_SLACK_BOT_TOKEN"),
		},
	}

	flags = append(flags, verifyCfg.Flags()...)

	return &cli.Command{
		Name:  "set",
		Usage: "Change the stored schedule of a workspace; unset flags keep their stored value",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			console, err := a.newConsole(append(verifyCfg.Configure(), oneShot...)...)
			if err != nil {
				return err
			}
			defer console.Close()

			if err := a.openWorkspace(ctx, console, workspaceID); err != nil {
				return err
			}
			if err := console.LoadSchedule(ctx, workspaceID); err != nil {
				return a.fail(console, err)
			}

			console.UpdateScheduleForm(func(f *usecase.ScheduleForm) {
				s := &f.Schedule
				if c.IsSet("enabled") {
					s.Enabled = enabled
				}
				if c.IsSet("thread-day") {
					s.CreateThreadDay = types.DayCode(threadDay)
				}
				if c.IsSet("thread-time") {
					s.CreateThreadTime = threadTime
				}
				if c.IsSet("thread-message") {
					s.CreateThreadMessage = threadMessage
				}
				if c.IsSet("check-day") {
					s.CheckAttendanceDay = types.DayCode(checkDay)
				}
				if c.IsSet("check-time") {
					s.CheckAttendanceTime = checkTime
				}
				if c.IsSet("column") {
					s.CheckAttendanceColumn = types.Column(column)
				}
				if c.IsSet("completion-message") {
					s.CheckCompletionMessage = completionMessage
				}
				if c.IsSet("auto-column") {
					s.AutoColumnEnabled = autoColumn
				}
				if c.IsSet("start-column") {
					s.StartColumn = types.Column(startColumn)
				}
				if c.IsSet("end-column") {
					s.EndColumn = types.Column(endColumn)
				}
				if c.IsSet("notify-user") {
					f.NotificationUserID = notifyUser
				}
			})

			name, err := console.VerifyNotificationUser(ctx, slackToken)
			if err != nil {
				return a.fail(console, err)
			}
			if name != "" {
				a.printer.Faint("알림 받을 사용자: %s", name)
			}

			if err := console.SaveSchedule(ctx); err != nil {
				return a.fail(console, err)
			}

			v := console.View()
			a.printer.Messages("", v.Warning, v.Notice)
			a.printer.Block(view.RenderScheduleForm(v.Schedule.Schedule, v.Schedule.NotificationUserID))
			return nil
		},
	}
}

func cmdScheduleDelete(a *app) *cli.Command {
	var (
		workspaceID string
		assumeYes   bool
	)

	return &cli.Command{
		Name:    "delete",
		Aliases: []string{"rm"},
		Usage:   "Clear the schedule of a workspace",
		Flags:   []cli.Flag{workspaceFlag(&workspaceID), yesFlag(&assumeYes)},
		Action: func(ctx context.Context, c *cli.Command) error {
			console, err := a.newConsole(oneShot...)
			if err != nil {
				return err
			}
			defer console.Close()

			if err := a.openWorkspace(ctx, console, workspaceID); err != nil {
				return err
			}

			conf := console.RequestDeleteSchedule(workspaceID)
			if !a.confirm(conf, assumeYes) {
				console.CancelConfirmation()
				a.printer.Faint(MsgCancelled)
				return nil
			}
			if err := console.DeleteSchedule(ctx, conf); err != nil {
				return a.fail(console, err)
			}

			v := console.View()
			a.printer.Messages("", v.Warning, v.Notice)
			return nil
		},
	}
}
