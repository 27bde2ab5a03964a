package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/classroom-tools/attendctl/pkg/cli/config"
	"github.com/classroom-tools/attendctl/pkg/controller/view"
	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/usecase"
	"github.com/classroom-tools/attendctl/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// app carries the global flags and IO shared by every command
type app struct {
	loggerCfg  config.Logger
	envCfg     config.EnvFile
	backendCfg config.Backend
	consoleCfg config.Console
	noColor    bool

	stdout  io.Writer
	stdin   *bufio.Reader
	printer *view.Printer
}

// oneShot drops the display delays that only matter for the interactive
// console
var oneShot = []usecase.Option{
	usecase.WithProgressLinger(0),
	usecase.WithHighlight(0),
}

func (a *app) newConsole(extra ...usecase.Option) (*usecase.Console, error) {
	client, err := a.backendCfg.Configure()
	if err != nil {
		return nil, err
	}
	prefs, err := a.consoleCfg.Configure()
	if err != nil {
		return nil, err
	}

	opts := append(prefs.Options(), extra...)
	logging.Default().Debug("console configured", "backend", client.BaseURL())
	return usecase.NewConsole(client, opts...), nil
}

// fail prints the console messages that describe err and returns it
func (a *app) fail(console *usecase.Console, err error) error {
	v := console.View()
	if v.Error == "" {
		a.printer.Error("%s", err.Error())
	}
	a.printer.Messages(v.Error, v.Warning, "")
	return err
}

// openWorkspace loads the workspace list and selects id
func (a *app) openWorkspace(ctx context.Context, console *usecase.Console, id string) error {
	if err := console.LoadWorkspaces(ctx); err != nil {
		return a.fail(console, err)
	}
	if err := console.SelectWorkspace(id); err != nil {
		return a.fail(console, err)
	}
	return nil
}

// confirm walks through the prompts of conf. With assumeYes every prompt
// is accepted without reading stdin.
func (a *app) confirm(conf *model.Confirmation, assumeYes bool) bool {
	for prompt := conf.Current(); prompt != ""; prompt = conf.Current() {
		if assumeYes {
			conf.Accept()
			continue
		}

		_, _ = fmt.Fprintf(a.stdout, "%s [y/N]: ", prompt)
		line, _ := a.stdin.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			conf.Accept()
		default:
			conf.Decline()
			return false
		}
	}
	return conf.Confirmed()
}

func workspaceFlag(dst *string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "workspace",
		Aliases:     []string{"w"},
		Usage:       "Workspace folder name",
		Required:    true,
		Destination: dst,
		Sources:     cli.EnvVars("ATTENDCTL_WORKSPACE"),
	}
}

func yesFlag(dst *bool) *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "yes",
		Aliases:     []string{"y"},
		Usage:       "Answer yes to every confirmation prompt",
		Destination: dst,
	}
}
