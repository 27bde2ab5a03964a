package cli

import (
	"context"

	"github.com/classroom-tools/attendctl/pkg/controller/view"
	"github.com/urfave/cli/v3"
)

func cmdThread(a *app) *cli.Command {
	return &cli.Command{
		Name:  "thread",
		Usage: "Locate attendance threads",
		Commands: []*cli.Command{
			cmdThreadFind(a),
		},
	}
}

func cmdThreadFind(a *app) *cli.Command {
	var workspaceID string

	return &cli.Command{
		Name:  "find",
		Usage: "Show the latest attendance thread of a workspace",
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
			if err := console.FindThread(ctx); err != nil {
				return a.fail(console, err)
			}

			v := console.View()
			a.printer.Title("%s", v.Current.DisplayName())
			a.printer.Faint("%s", view.RenderWorkspaceInfo(v.Current))
			a.printer.Block(view.RenderThread(v.Thread, v.Discovered))
			return nil
		},
	}
}
