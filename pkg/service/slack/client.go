package slack

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/classroom-tools/attendctl/pkg/domain/interfaces"
	"github.com/classroom-tools/attendctl/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// DefaultCacheTTL is the default TTL of the user name cache
const DefaultCacheTTL = 5 * time.Minute

// cacheEntry holds a cached user name with expiration
type cacheEntry struct {
	name      string
	expiresAt time.Time
}

// Client checks Slack credentials before a workspace is provisioned. The
// token is supplied per call because it belongs to the workspace being
// registered, not to this process.
type Client struct {
	apiURL     string
	httpClient *http.Client
	cacheTTL   time.Duration

	mu    sync.RWMutex
	users map[string]cacheEntry
}

var _ interfaces.SlackVerifier = &Client{}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithAPIURL points the client at another Slack API endpoint
func WithAPIURL(url string) Option {
	return func(c *Client) {
		c.apiURL = url
	}
}

// WithHTTPClient sets the HTTP client used for API calls
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCacheTTL sets the TTL of the user name cache
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheTTL = ttl
	}
}

// New creates a Slack verifier
func New(opts ...Option) *Client {
	c := &Client{
		cacheTTL: DefaultCacheTTL,
		users:    make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) api(token string) *slack.Client {
	var opts []slack.Option
	if c.apiURL != "" {
		opts = append(opts, slack.OptionAPIURL(c.apiURL))
	}
	if c.httpClient != nil {
		opts = append(opts, slack.OptionHTTPClient(c.httpClient))
	}
	return slack.New(token, opts...)
}

// VerifyBot checks that the token authenticates and that the bot has
// joined the attendance channel. It returns the team name.
func (c *Client) VerifyBot(ctx context.Context, token, channelID string) (string, error) {
	if token == "" {
		return "", goerr.Wrap(ErrEmptyToken, "cannot verify bot")
	}
	api := c.api(token)

	auth, err := api.AuthTestContext(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "auth.test failed")
	}

	ch, err := api.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{ChannelID: channelID})
	if err != nil {
		return "", goerr.Wrap(err, "conversations.info failed", goerr.V(ChannelIDKey, channelID))
	}
	if !ch.IsMember {
		return "", goerr.Wrap(ErrBotNotInChannel, "invite the bot to the channel first",
			goerr.V(ChannelIDKey, channelID),
			goerr.V("channel_name", ch.Name),
		)
	}

	logging.From(ctx).Debug("slack bot verified",
		"team", auth.Team,
		"bot_user", auth.User,
		"channel", ch.Name,
	)
	return auth.Team, nil
}

// LookupUser resolves a user id to the name shown in Slack. Results are
// cached for the configured TTL.
func (c *Client) LookupUser(ctx context.Context, token, userID string) (string, error) {
	if token == "" {
		return "", goerr.Wrap(ErrEmptyToken, "cannot look up user")
	}

	now := time.Now()
	c.mu.RLock()
	entry, ok := c.users[userID]
	c.mu.RUnlock()
	if ok && entry.expiresAt.After(now) {
		return entry.name, nil
	}

	user, err := c.api(token).GetUserInfoContext(ctx, userID)
	if err != nil {
		return "", goerr.Wrap(err, "users.info failed", goerr.V(UserIDKey, userID))
	}

	name := displayName(user)
	c.mu.Lock()
	c.users[userID] = cacheEntry{name: name, expiresAt: now.Add(c.cacheTTL)}
	c.mu.Unlock()
	return name, nil
}

func displayName(u *slack.User) string {
	switch {
	case u.Profile.DisplayName != "":
		return u.Profile.DisplayName
	case u.RealName != "":
		return u.RealName
	default:
		return u.Name
	}
}
