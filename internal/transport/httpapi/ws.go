package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/internal/service/chat"
	"github.com/sandevgo/campinnova/pkg/log"
)

const (
	frameHistory = "history"
	frameTurn    = "turn"
	frameCommand = "command"
	frameError   = "error"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type inboundFrame struct {
	Text string `json:"text"`
}

type outboundFrame struct {
	Type       string                 `json:"type"`
	SessionID  string                 `json:"session_id,omitempty"`
	Messages   []core.Message         `json:"messages,omitempty"`
	Text       string                 `json:"text,omitempty"`
	Escalation *core.EscalationRecord `json:"escalation,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

// handleWebSocket hosts one chat view per connection. Opening the socket
// opens a fresh session; closing it forgets the session.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	logger := log.FromCtx(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx := r.Context()
	scope := "web-" + uuid.NewString()
	session := s.deps.Sessions.Reset(ctx, scope)
	defer s.deps.Sessions.Drop(scope)

	if err := conn.WriteJSON(outboundFrame{Type: frameHistory, SessionID: session.ID(), Messages: session.Messages()}); err != nil {
		return
	}

	for {
		var in inboundFrame
		if err := conn.ReadJSON(&in); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug().Err(err).Msg("websocket closed")
			}
			return
		}

		out := s.wsReply(ctx, scope, in.Text)
		if err := conn.WriteJSON(out); err != nil {
			logger.Debug().Err(err).Msg("websocket write failed")
			return
		}
	}
}

func (s *Server) wsReply(ctx context.Context, scope, text string) outboundFrame {
	if s.deps.Router != nil {
		if out, handled := s.deps.Router.Execute(ctx, scope, text); handled {
			current := s.deps.Sessions.Get(ctx, scope)
			return outboundFrame{Type: frameCommand, SessionID: current.ID(), Text: out}
		}
	}

	session := s.deps.Sessions.Get(ctx, scope)
	turn, err := session.SendTurn(ctx, text)
	if err != nil {
		code := err.Error()
		if !errors.Is(err, chat.ErrEmptyMessage) && !errors.Is(err, chat.ErrTurnInProgress) {
			log.FromCtx(ctx).Error().Err(err).Msg("chat turn failed")
		}
		return outboundFrame{Type: frameError, SessionID: session.ID(), Error: code}
	}

	return outboundFrame{
		Type:       frameTurn,
		SessionID:  session.ID(),
		Messages:   []core.Message{turn.User, turn.Bot},
		Escalation: &turn.Escalation,
	}
}
