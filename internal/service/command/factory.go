package command

import (
	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/internal/service/chat"
)

// NewChatRouter wires the in-chat commands available to every chat view.
func NewChatRouter(sessions *chat.Sessions) *Router {
	r := New([]core.Command{
		NewNewSessionCommand(sessions),
		NewStatusCommand(sessions),
		NewHelplineCommand(),
	})
	r.Register(NewHelpCommand(r))
	return r
}
