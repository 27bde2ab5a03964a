package cli

import (
	"context"
	"sync"

	"github.com/classroom-tools/attendctl/pkg/controller/view"
	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/classroom-tools/attendctl/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdRun(a *app) *cli.Command {
	var (
		workspaceID string
		thread      string
		column      string
		markAbsent  bool
		threadReply bool
		sendDM      bool
	)

	flags := []cli.Flag{
		workspaceFlag(&workspaceID),
		&cli.StringFlag{
			Name:        "thread",
			Aliases:     []string{"t"},
			Usage:       "Thread timestamp or permalink (the latest attendance thread when omitted)",
			Destination: &thread,
		},
		&cli.StringFlag{
			Name:        "column",
			Usage:       "Sheet column to write (A-Z)",
			Destination: &column,
		},
		&cli.BoolFlag{
			Name:        "mark-absent",
			Usage:       "Mark students without a reply as absent",
			Destination: &markAbsent,
		},
		&cli.BoolFlag{
			Name:        "thread-reply",
			Usage:       "Reply the summary to the thread",
			Destination: &threadReply,
		},
		&cli.BoolFlag{
			Name:        "dm",
			Usage:       "Send the summary to the thread author by DM",
			Destination: &sendDM,
		},
	}

	return &cli.Command{
		Name:  "run",
		Usage: "Run an attendance check",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			var (
				console *usecase.Console
				mu      sync.Mutex
				shown   = types.RunStage(-1)
			)
			progress := func() {
				if console == nil {
					return
				}
				v := console.View()
				mu.Lock()
				defer mu.Unlock()
				if !v.Progress.Visible || v.Progress.Stage == shown {
					return
				}
				shown = v.Progress.Stage
				a.printer.Faint("%s", view.RenderProgress(shown))
			}

			opts := append([]usecase.Option{usecase.WithOnChange(progress)}, oneShot...)
			console, err := a.newConsole(opts...)
			if err != nil {
				return err
			}
			defer console.Close()

			if err := a.openWorkspace(ctx, console, workspaceID); err != nil {
				return err
			}

			if thread != "" {
				err = console.EnterThread(thread)
			} else {
				err = console.FindThread(ctx)
			}
			if err != nil {
				return a.fail(console, err)
			}
			v := console.View()
			a.printer.Block(view.RenderThread(v.Thread, v.Discovered))

			console.UpdateRunOptions(func(opts *model.RunOptions) {
				if c.IsSet("column") {
					opts.Column = types.NormalizeColumn(column)
				}
				if c.IsSet("mark-absent") {
					opts.MarkAbsent = markAbsent
				}
				if c.IsSet("thread-reply") {
					opts.SendThreadReply = threadReply
				}
				if c.IsSet("dm") {
					opts.SendDM = sendDM
				}
			})

			result, err := console.RunAttendance(ctx)
			if err != nil {
				return a.fail(console, err)
			}
			a.printer.Block(view.RenderResult(result))
			return nil
		},
	}
}
