package slack_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/classroom-tools/attendctl/pkg/service/slack"
	"github.com/m-mizutani/gt"
)

type fakeSlack struct {
	authOK    bool
	isMember  bool
	userCalls atomic.Int32
}

func (f *fakeSlack) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		gt.NoError(t, json.NewEncoder(w).Encode(v))
	}

	mux.HandleFunc("/auth.test", func(w http.ResponseWriter, r *http.Request) {
		if !f.authOK {
			write(w, map[string]any{"ok": false, "error": "invalid_auth"})
			return
		}
		write(w, map[string]any{"ok": true, "team": "데모 학교", "user": "attendbot", "team_id": "T1", "user_id": "U0BOT"})
	})
	mux.HandleFunc("/conversations.info", func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, r.ParseForm())
		if r.Form.Get("channel") != "C0DEMO" {
			write(w, map[string]any{"ok": false, "error": "channel_not_found"})
			return
		}
		write(w, map[string]any{"ok": true, "channel": map[string]any{
			"id":        "C0DEMO",
			"name":      "출석",
			"is_member": f.isMember,
		}})
	})
	mux.HandleFunc("/users.info", func(w http.ResponseWriter, r *http.Request) {
		f.userCalls.Add(1)
		write(w, map[string]any{"ok": true, "user": map[string]any{
			"id":        "U001",
			"name":      "kim",
			"real_name": "김철수",
			"profile":   map[string]any{"display_name": ""},
		}})
	})
	return mux
}

func newClient(t *testing.T, f *fakeSlack) *slack.Client {
	t.Helper()
	ts := httptest.NewServer(f.handler(t))
	t.Cleanup(ts.Close)
	return slack.New(slack.WithAPIURL(ts.URL+"/"), slack.WithHTTPClient(ts.Client()))
}

func TestClient_VerifyBot(t *testing.T) {
	ctx := context.Background()

	t.Run("member of channel", func(t *testing.T) {
		c := newClient(t, &fakeSlack{authOK: true, isMember: true})
		team, err := c.VerifyBot(ctx, "xoxb-test", "C0DEMO")
		gt.NoError(t, err).Required()
		gt.Value(t, team).Equal("데모 학교")
	})

	t.Run("not invited", func(t *testing.T) {
		c := newClient(t, &fakeSlack{authOK: true})
		_, err := c.VerifyBot(ctx, "xoxb-test", "C0DEMO")
		gt.Error(t, err).Is(slack.ErrBotNotInChannel)
	})

	t.Run("unknown channel", func(t *testing.T) {
		c := newClient(t, &fakeSlack{authOK: true, isMember: true})
		_, err := c.VerifyBot(ctx, "xoxb-test", "C0OTHER")
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("channel_not_found")
	})

	t.Run("bad token", func(t *testing.T) {
		c := newClient(t, &fakeSlack{})
		_, err := c.VerifyBot(ctx, "xoxb-bad", "C0DEMO")
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("invalid_auth")
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := slack.New().VerifyBot(ctx, "", "C0DEMO")
		gt.Error(t, err).Is(slack.ErrEmptyToken)
	})
}

func TestClient_LookupUser(t *testing.T) {
	ctx := context.Background()
	f := &fakeSlack{authOK: true}
	c := newClient(t, f)

	name, err := c.LookupUser(ctx, "xoxb-test", "U001")
	gt.NoError(t, err).Required()
	gt.Value(t, name).Equal("김철수")

	name, err = c.LookupUser(ctx, "xoxb-test", "U001")
	gt.NoError(t, err).Required()
	gt.Value(t, name).Equal("김철수")
	gt.Value(t, f.userCalls.Load()).Equal(int32(1))
}

func TestIntegration(t *testing.T) {
	token := os.Getenv("TEST_SLACK_BOT_TOKEN")
	channelID := os.Getenv("TEST_SLACK_CHANNEL_ID")
	if token == "" || channelID == "" {
		t.Skip("TEST_SLACK_BOT_TOKEN or TEST_SLACK_CHANNEL_ID is not set")
	}

	team, err := slack.New().VerifyBot(context.Background(), token, channelID)
	gt.NoError(t, err).Required()
	gt.String(t, team).NotEqual("")
	t.Logf("verified bot in team %s", team)
}
