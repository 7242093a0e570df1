package command

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/internal/service/chat"
)

// NewSessionCommand restarts the conversation, the same as closing and reopening the chat.
type NewSessionCommand struct {
	sessions *chat.Sessions
}

func NewNewSessionCommand(sessions *chat.Sessions) core.Command {
	return &NewSessionCommand{sessions: sessions}
}

func (c *NewSessionCommand) Name() string {
	return "new"
}

func (c *NewSessionCommand) Description() string {
	return "Start a fresh conversation"
}

func (c *NewSessionCommand) Execute(ctx context.Context, scope string, _ []string) (string, error) {
	s := c.sessions.Reset(ctx, scope)
	return s.Messages()[0].Text, nil
}

type StatusCommand struct {
	sessions  *chat.Sessions
	formatter *ResponseFormatter
}

func NewStatusCommand(sessions *chat.Sessions) core.Command {
	return &StatusCommand{
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *StatusCommand) Name() string {
	return "status"
}

func (c *StatusCommand) Description() string {
	return "Show the current conversation"
}

func (c *StatusCommand) Execute(ctx context.Context, scope string, _ []string) (string, error) {
	s := c.sessions.Get(ctx, scope)

	return c.formatter.Combine(
		c.formatter.Info("Conversation"),
		c.formatter.Label("Session", s.ID()),
		c.formatter.Label("Started", s.StartedAt().Format(time.DateTime)),
		c.formatter.Label("Messages", fmt.Sprintf("%d", len(s.Messages()))),
		c.formatter.Label("Remembered", fmt.Sprintf("%d", len(s.Window()))),
	), nil
}
