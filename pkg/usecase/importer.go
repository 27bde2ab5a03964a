package usecase

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// tokenKeys are tried in order when a token file is JSON
var tokenKeys = []string{"slack_bot_token", "bot_token", "token"}

// TokenImport is the outcome of reading a token file. Warning is set when
// the token does not look like a bot token; it does not block the import.
type TokenImport struct {
	Token   string
	Warning string
}

// ImportToken extracts a Slack bot token from a dropped file. JSON objects
// are searched for the known token keys; anything else is used as trimmed
// raw text.
func ImportToken(name string, data []byte) (*TokenImport, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, goerr.Wrap(ErrEmptyToken, "token file is empty", goerr.V(FileNameKey, name))
	}

	token := text
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		token = ""
		for _, key := range tokenKeys {
			if v, ok := obj[key].(string); ok && strings.TrimSpace(v) != "" {
				token = strings.TrimSpace(v)
				break
			}
		}
		if token == "" {
			return nil, goerr.Wrap(ErrTokenKeyNotFound, "no token key in JSON",
				goerr.V(FileNameKey, name), goerr.V("keys", tokenKeys))
		}
	}

	result := &TokenImport{Token: token}
	if !strings.HasPrefix(token, model.BotTokenPrefix) {
		result.Warning = MsgTokenPrefixWarn
	}
	return result, nil
}

// ImportCredentials accepts a service account key file. The file name must
// end in .json and the contents must parse.
func ImportCredentials(name string, data []byte) (string, error) {
	if !strings.EqualFold(filepath.Ext(name), ".json") {
		return "", goerr.Wrap(ErrNotJSONFile, "credentials must be a .json file", goerr.V(FileNameKey, name))
	}
	text := strings.TrimSpace(string(data))
	if err := model.ValidateCredentialsJSON(text); err != nil {
		return "", goerr.Wrap(err, "invalid credentials file", goerr.V(FileNameKey, name))
	}
	return text, nil
}

// ImportMessage renders an import error for the form
func ImportMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotJSONFile):
		return MsgNotJSONFile
	case errors.Is(err, ErrEmptyToken), errors.Is(err, ErrTokenKeyNotFound):
		return MsgEmptyToken
	default:
		return registrationMessage(err)
	}
}
