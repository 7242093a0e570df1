package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/sandevgo/campinnova/internal/service/relay"
	"github.com/sandevgo/campinnova/pkg/log"
)

const maxChatBody = 1 << 20

// handleChat is the relay endpoint: it forwards the conversation upstream and
// answers {response} on success or {error} with a 4xx/5xx status.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	logger := log.FromCtx(r.Context())

	var req relay.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBody)).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, relay.Response{Error: "invalid request body"})
		return
	}
	if len(req.Messages) == 0 {
		respondJSON(w, http.StatusBadRequest, relay.Response{Error: "No message provided"})
		return
	}

	reply, err := s.deps.Completer.Complete(r.Context(), req.Messages)
	if err != nil {
		logger.Error().Err(err).Msg("proxy error")
		msg := err.Error()
		if msg == "" {
			msg = "Proxy error"
		}
		respondJSON(w, http.StatusInternalServerError, relay.Response{Error: msg})
		return
	}

	respondJSON(w, http.StatusOK, relay.Response{Response: reply})
}
