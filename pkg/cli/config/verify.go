package config

import (
	"log/slog"

	"github.com/classroom-tools/attendctl/pkg/service/sheets"
	"github.com/classroom-tools/attendctl/pkg/service/slack"
	"github.com/classroom-tools/attendctl/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Verify holds the flags of the Slack and spreadsheet preflight
type Verify struct {
	enabled     bool
	slackAPIURL string
}

func (x *Verify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "verify",
			Usage:       "Check Slack and spreadsheet access before writing workspace settings",
			Category:    "Preflight",
			Destination: &x.enabled,
			Sources:     cli.EnvVars("ATTENDCTL_VERIFY"),
		},
		&cli.StringFlag{
			Name:        "slack-api-url",
			Usage:       "Slack Web API base URL used by the preflight",
			Category:    "Preflight",
			Destination: &x.slackAPIURL,
			Sources:     cli.EnvVars("ATTENDCTL_SLACK_API_URL"),
		},
	}
}

func (x Verify) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", x.enabled),
		slog.String("slack_api_url", x.slackAPIURL),
	)
}

// Configure returns the console options installing the verifiers, or
// nothing when the preflight is off
func (x *Verify) Configure() []usecase.Option {
	if !x.enabled {
		return nil
	}

	var slackOpts []slack.Option
	if x.slackAPIURL != "" {
		slackOpts = append(slackOpts, slack.WithAPIURL(x.slackAPIURL))
	}
	return []usecase.Option{
		usecase.WithSlackVerifier(slack.New(slackOpts...)),
		usecase.WithSheetVerifier(sheets.New()),
	}
}
