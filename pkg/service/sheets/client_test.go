package sheets_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/service/sheets"
	"github.com/m-mizutani/gt"
	"google.golang.org/api/option"
)

const creds = `{"type":"service_account"}`

func newClient(t *testing.T) *sheets.Client {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/spreadsheets/sheet-1") {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": 404, "message": "Requested entity was not found."},
			})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"spreadsheetId": "sheet-1",
			"properties":    map[string]any{"title": "출석부 2026"},
			"sheets": []any{
				map[string]any{"properties": map[string]any{"title": "공지"}},
				map[string]any{"properties": map[string]any{"title": "출석부"}},
			},
		})
	}))
	t.Cleanup(ts.Close)

	return sheets.New(
		sheets.WithoutCredentials(),
		sheets.WithClientOptions(option.WithEndpoint(ts.URL+"/")),
	)
}

func TestClient_VerifySheet(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	t.Run("tab exists", func(t *testing.T) {
		title, err := c.VerifySheet(ctx, []byte(creds), "sheet-1", "출석부")
		gt.NoError(t, err).Required()
		gt.Value(t, title).Equal("출석부 2026")
	})

	t.Run("tab missing", func(t *testing.T) {
		_, err := c.VerifySheet(ctx, []byte(creds), "sheet-1", "명단")
		gt.Error(t, err).Is(sheets.ErrSheetNotFound)
	})

	t.Run("unknown spreadsheet", func(t *testing.T) {
		_, err := c.VerifySheet(ctx, []byte(creds), "sheet-2", "출석부")
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("failed to open spreadsheet")
	})

	t.Run("broken credentials", func(t *testing.T) {
		_, err := c.VerifySheet(ctx, []byte("{"), "sheet-1", "출석부")
		gt.Error(t, err).Is(model.ErrInvalidCredentials)
	})
}

func TestIntegration(t *testing.T) {
	path := os.Getenv("TEST_SHEETS_CREDENTIALS_FILE")
	spreadsheetID := os.Getenv("TEST_SHEETS_SPREADSHEET_ID")
	sheetName := os.Getenv("TEST_SHEETS_SHEET_NAME")
	if path == "" || spreadsheetID == "" || sheetName == "" {
		t.Skip("TEST_SHEETS_* is not set")
	}

	data, err := os.ReadFile(path)
	gt.NoError(t, err).Required()

	title, err := sheets.New().VerifySheet(context.Background(), data, spreadsheetID, sheetName)
	gt.NoError(t, err).Required()
	t.Logf("verified spreadsheet %q", title)
}
