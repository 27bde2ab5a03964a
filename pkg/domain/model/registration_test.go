package model_test

import (
	"testing"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func validRegistration() *model.WorkspaceRegistration {
	reg := model.NewWorkspaceRegistration()
	reg.FolderName = "class-a"
	reg.DisplayName = "A반"
	reg.BotToken = "xoxb-123-456"
	reg.ChannelID = "C0123456"
	reg.SpreadsheetID = "1AbCdEf"
	reg.SheetName = "출석현황"
	reg.CredentialsJSON = `{"type":"service_account","client_email":"bot@example.iam.gserviceaccount.com"}`
	return reg
}

func TestWorkspaceRegistration_Validate(t *testing.T) {
	t.Run("valid registration", func(t *testing.T) {
		reg := validRegistration()
		reg.Normalize()
		gt.NoError(t, reg.Validate())
	})

	for _, ch := range []string{"<", ">", ":", `"`, "/", `\`, "|", "?", "*"} {
		t.Run("rejects folder name with "+ch, func(t *testing.T) {
			reg := validRegistration()
			reg.FolderName = "class" + ch + "a"
			gt.Error(t, reg.Validate()).Is(model.ErrUnsafeFolderName)
		})
	}

	t.Run("rejects token without prefix", func(t *testing.T) {
		reg := validRegistration()
		reg.BotToken = "xoxp-123"
		gt.Error(t, reg.Validate()).Is(model.ErrInvalidBotToken)
	})

	t.Run("rejects channel without prefix", func(t *testing.T) {
		reg := validRegistration()
		reg.ChannelID = "G0123"
		gt.Error(t, reg.Validate()).Is(model.ErrInvalidChannelID)
	})

	t.Run("rejects malformed credentials with parse error", func(t *testing.T) {
		reg := validRegistration()
		reg.CredentialsJSON = `{"type": "service_account",}`
		err := reg.Validate()
		gt.Error(t, err).Is(model.ErrInvalidCredentials)
		gt.String(t, err.Error()).Contains("invalid character")
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		reg := validRegistration()
		reg.SpreadsheetID = ""
		gt.Error(t, reg.Validate()).Is(model.ErrMissingField)
	})

	t.Run("rejects start row below one", func(t *testing.T) {
		reg := validRegistration()
		reg.StartRow = 0
		gt.Error(t, reg.Validate()).Is(model.ErrMissingField)
	})
}

func TestWorkspaceRegistration_Normalize(t *testing.T) {
	reg := validRegistration()
	reg.DisplayName = ""
	reg.NameColumn = " c "
	reg.Normalize()
	gt.Value(t, reg.DisplayName).Equal("class-a")
	gt.Value(t, reg.NameColumn.String()).Equal("C")
}
