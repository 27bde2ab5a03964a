package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// threadPreviewRunes bounds the thread text returned by FindThread
const threadPreviewRunes = 100

// threadKeyword marks a message as an attendance thread
const threadKeyword = "출석"

// Reply is one message posted under a thread
type Reply struct {
	UserID      string
	DisplayName string
	Text        string
}

// Thread is a channel message and its replies
type Thread struct {
	TS       string
	User     string
	Text     string
	PostedAt time.Time
	Replies  []Reply

	// BotReplies are messages the backend itself posted to the thread
	BotReplies []string
}

// PostThread posts a new top level message and returns its timestamp
func (m *Memory) PostThread(ctx context.Context, workspaceID, user, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws, err := m.lookup(workspaceID)
	if err != nil {
		return "", err
	}

	now := m.now()
	ts := formatTS(now)
	for ws.thread(ts) != nil {
		now = now.Add(time.Microsecond)
		ts = formatTS(now)
	}

	ws.threads = append(ws.threads, &Thread{
		TS:       ts,
		User:     user,
		Text:     text,
		PostedAt: now,
	})
	return ts, nil
}

// AddReply appends a reply to an existing thread
func (m *Memory) AddReply(ctx context.Context, workspaceID, threadTS string, reply Reply) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws, err := m.lookup(workspaceID)
	if err != nil {
		return err
	}
	th := ws.thread(threadTS)
	if th == nil {
		return goerr.Wrap(ErrThreadNotFound, "thread not found",
			goerr.V(model.WorkspaceIDKey, workspaceID), goerr.V("thread_ts", threadTS))
	}
	th.Replies = append(th.Replies, reply)
	return nil
}

// FindThread returns the most recent message that looks like an
// attendance thread
func (m *Memory) FindThread(ctx context.Context, workspaceID string) (*model.DiscoveredThread, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ws, err := m.lookup(workspaceID)
	if err != nil {
		return nil, err
	}

	var latest *Thread
	for _, th := range ws.threads {
		if !strings.Contains(th.Text, threadKeyword) {
			continue
		}
		if latest == nil || th.PostedAt.After(latest.PostedAt) {
			latest = th
		}
	}
	if latest == nil {
		return nil, goerr.Wrap(ErrThreadNotFound, "no attendance thread in channel",
			goerr.V(model.WorkspaceIDKey, workspaceID))
	}

	return &model.DiscoveredThread{
		Ref:  model.ThreadRef{TS: latest.TS, User: latest.User},
		Text: preview(latest.Text),
	}, nil
}

// Thread returns a copy of a stored thread
func (m *Memory) Thread(ctx context.Context, workspaceID, threadTS string) (*Thread, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ws, err := m.lookup(workspaceID)
	if err != nil {
		return nil, err
	}
	th := ws.thread(threadTS)
	if th == nil {
		return nil, goerr.Wrap(ErrThreadNotFound, "thread not found",
			goerr.V(model.WorkspaceIDKey, workspaceID), goerr.V("thread_ts", threadTS))
	}

	copied := *th
	copied.Replies = append([]Reply(nil), th.Replies...)
	copied.BotReplies = append([]string(nil), th.BotReplies...)
	return &copied, nil
}

func (w *workspaceData) thread(ts string) *Thread {
	for _, th := range w.threads {
		if th.TS == ts {
			return th
		}
	}
	return nil
}

func formatTS(t time.Time) string {
	return fmt.Sprintf("%d.%06d", t.Unix(), t.Nanosecond()/int(time.Microsecond))
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= threadPreviewRunes {
		return text
	}
	return string(runes[:threadPreviewRunes]) + "..."
}
