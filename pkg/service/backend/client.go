package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/classroom-tools/attendctl/pkg/domain/interfaces"
	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/utils/logging"
	"github.com/classroom-tools/attendctl/pkg/utils/safe"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultBaseURL is where the attendance backend listens by default
const DefaultBaseURL = "http://127.0.0.1:5000"

// RequestIDHeader carries the per request id generated by the client
const RequestIDHeader = "X-Request-ID"

const maxResponseBytes = 8 << 20

// Client talks to the attendance backend REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	newID      func() string
}

var _ interfaces.Backend = (*Client)(nil)

// Option is a functional option for Client configuration
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func withRequestIDFunc(f func() string) Option {
	return func(c *Client) {
		c.newID = f
	}
}

// New creates a backend client. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, goerr.New("invalid backend URL", goerr.V("url", baseURL))
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		newID:      func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized backend URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListWorkspaces calls GET /api/workspaces
func (c *Client) ListWorkspaces(ctx context.Context) (model.Workspaces, error) {
	var resp listWorkspacesResponse
	if err := c.do(ctx, http.MethodGet, "/api/workspaces", nil, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// FindThread calls POST /api/find-thread
func (c *Client) FindThread(ctx context.Context, workspaceID string) (*model.DiscoveredThread, error) {
	var resp findThreadResponse
	req := &findThreadRequest{Workspace: workspaceID}
	if err := c.do(ctx, http.MethodPost, "/api/find-thread", req, &resp); err != nil {
		return nil, err
	}
	if resp.ThreadTS == "" {
		return nil, goerr.Wrap(ErrDecode, "thread_ts is missing",
			goerr.V(model.WorkspaceIDKey, workspaceID))
	}
	return resp.toModel(), nil
}

// RunAttendance calls POST /api/run-attendance
func (c *Client) RunAttendance(ctx context.Context, settings *model.RunSettings) (*model.AttendanceResult, error) {
	var resp runAttendanceResponse
	if err := c.do(ctx, http.MethodPost, "/api/run-attendance", newRunAttendanceRequest(settings), &resp); err != nil {
		return nil, err
	}
	if resp.Result == nil {
		return nil, goerr.Wrap(ErrDecode, "result is missing",
			goerr.V(model.WorkspaceIDKey, settings.WorkspaceID))
	}

	result := resp.Result.toModel()
	if !result.Column.IsSet() {
		result.Column = settings.Column
	}
	return result, nil
}

// GetSchedule calls GET /api/schedule/{workspace}
func (c *Client) GetSchedule(ctx context.Context, workspaceID string) (*model.ScheduleConfig, error) {
	var resp getScheduleResponse
	path := "/api/schedule/" + url.PathEscape(workspaceID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	return &model.ScheduleConfig{
		WorkspaceID:        workspaceID,
		Schedule:           resp.Schedule.toModel(),
		NotificationUserID: deref(resp.NotificationUserID, ""),
		Configured:         resp.Schedule != nil,
	}, nil
}

// SaveSchedule calls POST /api/schedule
func (c *Client) SaveSchedule(ctx context.Context, cfg *model.ScheduleConfig) error {
	req := &saveScheduleRequest{
		Workspace:          cfg.WorkspaceID,
		Schedule:           newScheduleDTO(&cfg.Schedule),
		NotificationUserID: cfg.NotificationUserID,
	}
	var resp envelope
	return c.do(ctx, http.MethodPost, "/api/schedule", req, &resp)
}

// ListSchedules calls GET /api/schedules/all
func (c *Client) ListSchedules(ctx context.Context) (*model.ScheduleStatus, error) {
	var resp listSchedulesResponse
	if err := c.do(ctx, http.MethodGet, "/api/schedules/all", nil, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// AddWorkspace calls POST /api/workspaces/add
func (c *Client) AddWorkspace(ctx context.Context, reg *model.WorkspaceRegistration) error {
	var resp envelope
	return c.do(ctx, http.MethodPost, "/api/workspaces/add", newAddWorkspaceRequest(reg), &resp)
}

// DeleteWorkspace calls POST /api/workspaces/delete
func (c *Client) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	var resp envelope
	req := &deleteWorkspaceRequest{WorkspaceName: workspaceID}
	return c.do(ctx, http.MethodPost, "/api/workspaces/delete", req, &resp)
}

// do sends one JSON request and decodes the envelope into out. A
// {"success": false} answer becomes *APIError whatever the status code.
func (c *Client) do(ctx context.Context, method, path string, in any, out responseEnvelope) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reqID := c.newID()
	logger := logging.From(ctx).With("request_id", reqID, "method", method, "path", path)

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return goerr.Wrap(err, "failed to encode request", goerr.V(PathKey, path))
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V(PathKey, path))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("backend request failed", "error", err)
		return goerr.Wrap(ErrTransport, err.Error(),
			goerr.V(PathKey, path),
			goerr.V(RequestIDKey, reqID),
		)
	}
	defer func() {
		safe.Drain(ctx, resp.Body)
		safe.Close(ctx, resp.Body)
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return goerr.Wrap(ErrTransport, err.Error(),
			goerr.V(PathKey, path),
			goerr.V(StatusKey, resp.StatusCode),
			goerr.V(RequestIDKey, reqID),
		)
	}
	logger.Debug("backend responded",
		"status", resp.StatusCode,
		"bytes", len(raw),
		"duration", time.Since(started),
	)

	if err := json.Unmarshal(raw, out); err != nil {
		return goerr.Wrap(ErrDecode, "response is not JSON",
			goerr.V(PathKey, path),
			goerr.V(StatusKey, resp.StatusCode),
			goerr.V(RequestIDKey, reqID),
			goerr.V("body", truncate(string(raw), 256)),
		)
	}

	env := out.result()
	if !env.Success {
		return goerr.Wrap(&APIError{
			Message:    env.Error,
			Traceback:  env.Traceback,
			StatusCode: resp.StatusCode,
		}, "backend rejected request",
			goerr.V(PathKey, path),
			goerr.V(StatusKey, resp.StatusCode),
			goerr.V(RequestIDKey, reqID),
		)
	}
	return nil
}

// AsAPIError extracts the backend failure from err
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
