package interfaces

import "context"

// SlackVerifier checks Slack credentials before a workspace is provisioned
type SlackVerifier interface {
	// VerifyBot checks the bot token and that the channel is visible to it.
	// It returns the team name the token belongs to.
	VerifyBot(ctx context.Context, token, channelID string) (string, error)

	// LookupUser returns the display name of a notification recipient
	LookupUser(ctx context.Context, token, userID string) (string, error)
}

// SheetVerifier checks spreadsheet access with a service account key
type SheetVerifier interface {
	// VerifySheet checks that the spreadsheet exists and has the named tab.
	// It returns the spreadsheet title.
	VerifySheet(ctx context.Context, credentialsJSON []byte, spreadsheetID, sheetName string) (string, error)
}
