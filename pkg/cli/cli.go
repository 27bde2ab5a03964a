package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/classroom-tools/attendctl/pkg/cli/config"
	"github.com/classroom-tools/attendctl/pkg/controller/view"
	"github.com/classroom-tools/attendctl/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	return run(ctx, args, version, os.Stdout, os.Stdin)
}

func run(ctx context.Context, args []string, version string, stdout io.Writer, stdin io.Reader) error {
	// ATTENDCTL_* variables from the env file must exist before flags are parsed
	envPath, explicit := config.EnvFilePath(args)
	if err := config.LoadEnvFile(envPath, explicit); err != nil {
		logging.Default().Error("failed to load env file", "error", err)
		return err
	}

	a := &app{
		stdout: stdout,
		stdin:  bufio.NewReader(stdin),
	}
	var closer func()

	var flags []cli.Flag
	flags = append(flags, a.loggerCfg.Flags()...)
	flags = append(flags, a.envCfg.Flags()...)
	flags = append(flags, a.backendCfg.Flags()...)
	flags = append(flags, a.consoleCfg.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "no-color",
		Usage:       "Disable colored output",
		Destination: &a.noColor,
		Sources:     cli.EnvVars("ATTENDCTL_NO_COLOR", "NO_COLOR"),
	})

	cmd := &cli.Command{
		Name:      "attendctl",
		Usage:     "Operator console for the Slack attendance check backend",
		Version:   version,
		Flags:     flags,
		Writer:    stdout,
		ErrWriter: stdout,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			a.loggerCfg.SetRelease(version)
			f, err := a.loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f
			a.printer = view.NewPrinter(stdout, a.noColor)

			logging.Default().Debug("Starting attendctl",
				"version", version,
				"logger", a.loggerCfg,
				"backend", a.backendCfg,
				"console", a.consoleCfg,
			)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdWorkspace(a),
			cmdThread(a),
			cmdRun(a),
			cmdSchedule(a),
			cmdConsole(a),
			cmdStub(a),
		},
	}

	if err := cmd.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
