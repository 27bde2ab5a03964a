package sheets

import (
	"context"

	"github.com/classroom-tools/attendctl/pkg/domain/interfaces"
	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var (
	ErrSheetNotFound = goerr.New("sheet tab not found in spreadsheet")
)

// Context keys for error values
const (
	SpreadsheetIDKey = "spreadsheet_id"
	SheetNameKey     = "sheet_name"
)

// Client checks that a service account can open the roster spreadsheet
type Client struct {
	opts        []option.ClientOption
	credentials func(data []byte) option.ClientOption
}

var _ interfaces.SheetVerifier = &Client{}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithClientOptions appends Google API client options, such as an endpoint
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(c *Client) {
		c.opts = append(c.opts, opts...)
	}
}

// New creates a spreadsheet verifier
func New(opts ...Option) *Client {
	c := &Client{
		credentials: func(data []byte) option.ClientOption {
			return option.WithCredentialsJSON(data)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VerifySheet opens the spreadsheet with the supplied service account key
// and checks that the roster tab exists. It returns the spreadsheet title.
func (c *Client) VerifySheet(ctx context.Context, credentialsJSON []byte, spreadsheetID, sheetName string) (string, error) {
	if err := model.ValidateCredentialsJSON(string(credentialsJSON)); err != nil {
		return "", err
	}

	opts := append([]option.ClientOption{
		c.credentials(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	}, c.opts...)

	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create sheets client")
	}

	doc, err := srv.Spreadsheets.Get(spreadsheetID).
		Fields("properties.title", "sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return "", goerr.Wrap(err, "failed to open spreadsheet", goerr.V(SpreadsheetIDKey, spreadsheetID))
	}

	tabs := make([]string, 0, len(doc.Sheets))
	for _, s := range doc.Sheets {
		if s.Properties == nil {
			continue
		}
		if s.Properties.Title == sheetName {
			title := ""
			if doc.Properties != nil {
				title = doc.Properties.Title
			}
			logging.From(ctx).Debug("spreadsheet verified", "title", title, "sheet", sheetName)
			return title, nil
		}
		tabs = append(tabs, s.Properties.Title)
	}

	return "", goerr.Wrap(ErrSheetNotFound, "sheet tab is missing",
		goerr.V(SpreadsheetIDKey, spreadsheetID),
		goerr.V(SheetNameKey, sheetName),
		goerr.V("tabs", tabs),
	)
}
