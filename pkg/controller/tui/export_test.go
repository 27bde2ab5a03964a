package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type senderFunc func(msg tea.Msg)

func (f senderFunc) Send(msg tea.Msg) { f(msg) }

// AttachForTest connects the notifier to send instead of a program
func AttachForTest(n *Notifier, ctx context.Context, send func(msg tea.Msg)) {
	n.attach(ctx, senderFunc(send))
}
