package command

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/internal/service/chat"
	"github.com/sandevgo/campinnova/internal/service/escalation"
	"github.com/sandevgo/campinnova/internal/service/triage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRelay struct{}

func (staticRelay) Reply(context.Context, []core.Message) (string, bool) { return "ok", true }

func newSessions() *chat.Sessions {
	rules := triage.Default()
	return chat.NewSessions(chat.NewManager(chat.Config{}, chat.Deps{
		Classifier: rules,
		Escalation: escalation.NewController(rules, nil),
		Relay:      staticRelay{},
	}))
}

type failingCommand struct{}

func (failingCommand) Name() string        { return "boom" }
func (failingCommand) Description() string { return "always fails" }
func (failingCommand) Execute(context.Context, string, []string) (string, error) {
	return "", errors.New("exploded")
}

func TestRouter_Execute(t *testing.T) {
	ctx := context.Background()
	r := NewChatRouter(newSessions())
	r.Register(failingCommand{})

	tests := []struct {
		name     string
		input    string
		handled  bool
		contains string
	}{
		{name: "plain text", input: "hello", handled: false},
		{name: "unknown", input: "/dance now", handled: true, contains: "Unknown command: /dance"},
		{name: "helpline", input: "/helpline", handled: true, contains: "KIRAN"},
		{name: "bot suffix", input: "/helpline@campinnova_bot", handled: true, contains: "KIRAN"},
		{name: "help lists commands", input: "  /help", handled: true, contains: "/status"},
		{name: "error", input: "/boom", handled: true, contains: "Error: exploded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, handled := r.Execute(ctx, "cli", tt.input)
			assert.Equal(t, tt.handled, handled)
			if tt.contains != "" {
				assert.Contains(t, out, tt.contains)
			}
		})
	}
}

func TestRouter_ListCommandsSorted(t *testing.T) {
	r := NewChatRouter(newSessions())

	var names []string
	for _, cmd := range r.ListCommands() {
		names = append(names, cmd.Name())
	}
	assert.Equal(t, []string{"help", "helpline", "new", "status"}, names)
}

func TestNewSessionCommand_ResetsScope(t *testing.T) {
	ctx := context.Background()
	sessions := newSessions()
	r := NewChatRouter(sessions)

	before := sessions.Get(ctx, "tg-1")
	_, err := before.SendTurn(ctx, "hello")
	require.NoError(t, err)

	out, handled := r.Execute(ctx, "tg-1", "/new")
	require.True(t, handled)
	assert.Equal(t, chat.Greeting, out)

	after := sessions.Get(ctx, "tg-1")
	assert.NotEqual(t, before.ID(), after.ID())
	assert.Len(t, after.Messages(), 1)
}

func TestStatusCommand(t *testing.T) {
	ctx := context.Background()
	sessions := newSessions()
	s := sessions.Get(ctx, "cli")

	out, err := NewStatusCommand(sessions).Execute(ctx, "cli", nil)
	require.NoError(t, err)
	assert.Contains(t, out, s.ID())
	assert.Contains(t, out, "**Messages**  ›  `1`")
}
