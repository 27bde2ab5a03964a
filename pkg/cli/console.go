package cli

import (
	"context"
	"time"

	"github.com/classroom-tools/attendctl/pkg/cli/config"
	"github.com/classroom-tools/attendctl/pkg/controller/tui"
	"github.com/classroom-tools/attendctl/pkg/service/worker"
	"github.com/classroom-tools/attendctl/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdConsole(a *app) *cli.Command {
	var (
		verifyCfg        config.Verify
		statusInterval   time.Duration
		initialWorkspace string
	)

	flags := []cli.Flag{
		&cli.DurationFlag{
			Name:        "status-interval",
			Usage:       "How often the schedule status table is reloaded",
			Value:       worker.DefaultStatusInterval,
			Destination: &statusInterval,
			Sources:     cli.EnvVars("ATTENDCTL_STATUS_INTERVAL"),
		},
		&cli.StringFlag{
			Name:        "workspace",
			Aliases:     []string{"w"},
			Usage:       "Workspace selected on start",
			Destination: &initialWorkspace,
			Sources:     cli.EnvVars("ATTENDCTL_WORKSPACE"),
		},
	}
	flags = append(flags, verifyCfg.Flags()...)

	return &cli.Command{
		Name:    "console",
		Aliases: []string{"ui"},
		Usage:   "Open the interactive workspace console",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			notifier := &tui.Notifier{}
			opts := append(verifyCfg.Configure(), usecase.WithOnChange(notifier.Notify))
			console, err := a.newConsole(opts...)
			if err != nil {
				return err
			}
			defer console.Close()

			if initialWorkspace != "" {
				// failures stay visible in the console
				if err := console.LoadWorkspaces(ctx); err == nil {
					_ = console.SelectWorkspace(initialWorkspace)
				}
			}

			refresher := worker.NewStatusRefreshWorker(console, statusInterval)
			refresher.Start(ctx)
			defer refresher.Stop()

			return tui.Run(ctx, console, notifier)
		},
	}
}
