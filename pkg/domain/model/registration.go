package model

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// BotTokenPrefix is the literal prefix of a Slack bot token
	BotTokenPrefix = "xoxb-"
	// ChannelIDPrefix is the literal prefix of a public Slack channel id
	ChannelIDPrefix = "C"
	// UnsafeFolderChars cannot appear in a workspace folder name
	UnsafeFolderChars = `<>:"/\|?*`

	// DefaultNameColumn is the roster column holding student names
	DefaultNameColumn types.Column = "B"
	// DefaultStartRow is the first roster row below the sheet header
	DefaultStartRow = 5
)

// Registration errors
var (
	ErrMissingField       = goerr.New("required field is missing")
	ErrUnsafeFolderName   = goerr.New("folder name contains a forbidden character")
	ErrInvalidBotToken    = goerr.New("bot token must start with " + BotTokenPrefix)
	ErrInvalidChannelID   = goerr.New("channel id must start with " + ChannelIDPrefix)
	ErrInvalidCredentials = goerr.New("credentials are not valid JSON")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// WorkspaceRegistration is the add-workspace form
type WorkspaceRegistration struct {
	FolderName      string `validate:"required"`
	DisplayName     string
	BotToken        string `validate:"required" masq:"secret"`
	ChannelID       string `validate:"required"`
	SpreadsheetID   string `validate:"required"`
	SheetName       string `validate:"required"`
	NameColumn      types.Column
	StartRow        int    `validate:"gte=1"`
	CredentialsJSON string `validate:"required" masq:"secret"`
}

// NewWorkspaceRegistration returns a form filled with defaults
func NewWorkspaceRegistration() *WorkspaceRegistration {
	return &WorkspaceRegistration{
		NameColumn: DefaultNameColumn,
		StartRow:   DefaultStartRow,
	}
}

// Normalize trims input and fills the display name and name column
func (r *WorkspaceRegistration) Normalize() {
	r.FolderName = strings.TrimSpace(r.FolderName)
	r.DisplayName = strings.TrimSpace(r.DisplayName)
	r.BotToken = strings.TrimSpace(r.BotToken)
	r.ChannelID = strings.TrimSpace(r.ChannelID)
	r.SpreadsheetID = strings.TrimSpace(r.SpreadsheetID)
	r.SheetName = strings.TrimSpace(r.SheetName)
	r.NameColumn = types.NormalizeColumn(string(r.NameColumn))
	r.CredentialsJSON = strings.TrimSpace(r.CredentialsJSON)

	if r.DisplayName == "" {
		r.DisplayName = r.FolderName
	}
	if !r.NameColumn.IsSet() {
		r.NameColumn = DefaultNameColumn
	}
}

// Validate runs the client side checks in the order the form reports them
func (r *WorkspaceRegistration) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return goerr.Wrap(ErrMissingField, "registration field failed validation",
				goerr.V(FieldKey, verrs[0].Field()),
				goerr.V("rule", verrs[0].Tag()),
			)
		}
		return goerr.Wrap(err, "failed to validate registration")
	}

	if i := strings.IndexAny(r.FolderName, UnsafeFolderChars); i >= 0 {
		return goerr.Wrap(ErrUnsafeFolderName, "invalid folder name",
			goerr.V(ValueKey, r.FolderName),
			goerr.V("char", string(r.FolderName[i])),
		)
	}
	if !strings.HasPrefix(r.BotToken, BotTokenPrefix) {
		return goerr.Wrap(ErrInvalidBotToken, "invalid bot token")
	}
	if !strings.HasPrefix(r.ChannelID, ChannelIDPrefix) {
		return goerr.Wrap(ErrInvalidChannelID, "invalid channel id", goerr.V(ValueKey, r.ChannelID))
	}
	if err := r.NameColumn.Validate(); err != nil {
		return goerr.Wrap(err, "invalid name column", goerr.V(FieldKey, "NameColumn"))
	}
	if err := ValidateCredentialsJSON(r.CredentialsJSON); err != nil {
		return err
	}
	return nil
}

// ValidateCredentialsJSON checks that the service account key parses as
// JSON. The parser's message is kept so the operator can locate the error.
func ValidateCredentialsJSON(data string) error {
	var v map[string]any
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return goerr.Wrap(ErrInvalidCredentials, err.Error(), goerr.V("parse_error", err.Error()))
	}
	return nil
}
