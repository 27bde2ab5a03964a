package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/classroom-tools/attendctl/pkg/cli/config"
	"github.com/classroom-tools/attendctl/pkg/controller/view"
	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/classroom-tools/attendctl/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// MsgCancelled is printed when a confirmation prompt is declined
const MsgCancelled = "취소되었습니다."

func cmdWorkspace(a *app) *cli.Command {
	return &cli.Command{
		Name:    "workspace",
		Aliases: []string{"ws"},
		Usage:   "List, register and remove workspaces",
		Commands: []*cli.Command{
			cmdWorkspaceList(a),
			cmdWorkspaceAdd(a),
			cmdWorkspaceDelete(a),
		},
	}
}

func cmdWorkspaceList(a *app) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Show the registered workspaces",
		Action: func(ctx context.Context, c *cli.Command) error {
			console, err := a.newConsole(oneShot...)
			if err != nil {
				return err
			}
			defer console.Close()

			if err := console.LoadWorkspaces(ctx); err != nil {
				return a.fail(console, err)
			}
			a.printer.Title("워크스페이스")
			a.printer.Block(view.RenderWorkspaces(console.View().Workspaces, ""))
			return nil
		},
	}
}

func cmdWorkspaceAdd(a *app) *cli.Command {
	var (
		verifyCfg  config.Verify
		folderName string
		name       string
		token      string
		tokenFile  string
		channelID  string
		sheetID    string
		sheetName  string
		nameColumn string
		startRow   int
		credsFile  string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "folder",
			Usage:       "Folder name of the workspace (unique id)",
			Required:    true,
			Destination: &folderName,
		},
		&cli.StringFlag{
			Name:        "name",
			Usage:       "Display name (defaults to the folder name)",
			Destination: &name,
		},
		&cli.StringFlag{
			Name:        "token",
			Usage:       "Slack bot token (xoxb-...)",
			Destination: &token,
			Sources:     cli.EnvVars("ATTENDCTL_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "token-file",
			Usage:       "File holding the bot token as text or JSON (slack_bot_token, bot_token or token)",
			Destination: &tokenFile,
		},
		&cli.StringFlag{
			Name:        "channel",
			Usage:       "Slack channel id (C...)",
			Destination: &channelID,
		},
		&cli.StringFlag{
			Name:        "spreadsheet",
			Usage:       "Google spreadsheet id",
			Destination: &sheetID,
		},
		&cli.StringFlag{
			Name:        "sheet",
			Usage:       "Sheet (tab) name",
			Destination: &sheetName,
		},
		&cli.StringFlag{
			Name:        "name-column",
			Usage:       "Column holding the student names",
			Value:       model.DefaultNameColumn.String(),
			Destination: &nameColumn,
		},
		&cli.IntFlag{
			Name:        "start-row",
			Usage:       "First row of the roster",
			Value:       model.DefaultStartRow,
			Destination: &startRow,
		},
		&cli.StringFlag{
			Name:        "credentials-file",
			Usage:       "Google service account key (JSON)",
			Destination: &credsFile,
			Sources:     cli.EnvVars("ATTENDCTL_GOOGLE_CREDENTIALS_FILE"),
		},
	}
	flags = append(flags, verifyCfg.Flags()...)

	return &cli.Command{
		Name:  "add",
		Usage: "Register a new workspace",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			reg := model.NewWorkspaceRegistration()
			reg.FolderName = folderName
			reg.DisplayName = name
			reg.BotToken = token
			reg.ChannelID = channelID
			reg.SpreadsheetID = sheetID
			reg.SheetName = sheetName
			reg.NameColumn = types.Column(nameColumn)
			reg.StartRow = startRow

			if tokenFile != "" {
				imported, err := a.importFile(tokenFile, func(name string, data []byte) (string, error) {
					t, err := usecase.ImportToken(name, data)
					if err != nil {
						return "", err
					}
					if t.Warning != "" {
						a.printer.Warning("%s", t.Warning)
					}
					return t.Token, nil
				})
				if err != nil {
					return err
				}
				reg.BotToken = imported
			}

			if credsFile != "" {
				imported, err := a.importFile(credsFile, usecase.ImportCredentials)
				if err != nil {
					return err
				}
				reg.CredentialsJSON = imported
			}

			opts := append(verifyCfg.Configure(), oneShot...)
			console, err := a.newConsole(opts...)
			if err != nil {
				return err
			}
			defer console.Close()

			if err := console.AddWorkspace(ctx, reg); err != nil {
				return a.fail(console, err)
			}

			v := console.View()
			a.printer.Messages("", v.Warning, v.Notice)
			a.printer.Block(view.RenderWorkspaces(v.Workspaces, reg.FolderName))
			return nil
		},
	}
}

// importFile reads path and hands it to an importer, printing the
// operator message of a rejected file
func (a *app) importFile(path string, importer func(name string, data []byte) (string, error)) (string, error) {
	// #nosec G304 - path is provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read file", goerr.V("path", path))
	}

	v, err := importer(filepath.Base(path), data)
	if err != nil {
		a.printer.Error("%s", usecase.ImportMessage(err))
		return "", goerr.Wrap(err, "failed to import file", goerr.V("path", path))
	}
	return v, nil
}

func cmdWorkspaceDelete(a *app) *cli.Command {
	var assumeYes bool

	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Remove a workspace and its schedule",
		ArgsUsage: "<folder>",
		Flags:     []cli.Flag{yesFlag(&assumeYes)},
		Action: func(ctx context.Context, c *cli.Command) error {
			workspaceID := c.Args().First()
			if workspaceID == "" {
				return goerr.New("workspace folder name is required")
			}

			console, err := a.newConsole(oneShot...)
			if err != nil {
				return err
			}
			defer console.Close()

			if err := a.openWorkspace(ctx, console, workspaceID); err != nil {
				return err
			}

			conf, err := console.RequestDeleteWorkspace(workspaceID)
			if err != nil {
				return a.fail(console, err)
			}
			if !a.confirm(conf, assumeYes) {
				console.CancelConfirmation()
				a.printer.Faint(MsgCancelled)
				return nil
			}

			if err := console.DeleteWorkspace(ctx, conf); err != nil {
				return a.fail(console, err)
			}
			v := console.View()
			a.printer.Messages("", v.Warning, v.Notice)
			return nil
		},
	}
}
