package slack

import "github.com/m-mizutani/goerr/v2"

var (
	ErrEmptyToken      = goerr.New("slack bot token is empty")
	ErrBotNotInChannel = goerr.New("bot is not a member of the channel")
)

// Context keys for error values
const (
	ChannelIDKey = "channel_id"
	UserIDKey    = "user_id"
)
