package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/internal/service/memory"
	"github.com/sandevgo/campinnova/internal/service/persistence"
	"github.com/sandevgo/campinnova/pkg/log"
)

type Classifier interface {
	Classify(text string) core.RiskLevel
}

type Escalator interface {
	Decide(ctx context.Context, sessionID string, risk core.RiskLevel, text string) core.EscalationRecord
}

type Responder interface {
	Reply(ctx context.Context, window []core.Message) (text string, ok bool)
}

// Deps are the stateless collaborators shared by every session.
type Deps struct {
	Classifier Classifier
	Escalation Escalator
	Relay      Responder
	Store      core.KVStore
	Telemetry  core.TelemetryEmitter
}

type Config struct {
	WindowSize int
	Keys       persistence.Keys
}

// Manager opens sessions. Each Open starts a fresh conversation and resets
// whatever history was stored for that scope.
type Manager struct {
	cfg  Config
	deps Deps
	now  func() time.Time
}

func NewManager(cfg Config, deps Deps) *Manager {
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = memory.DefaultCapacity
	}
	return &Manager{
		cfg:  cfg,
		deps: deps,
		now:  time.Now,
	}
}

// Open creates a session seeded with the greeting. scope separates the stored
// history of concurrent chat views; an empty scope uses the bare keys.
func (m *Manager) Open(ctx context.Context, scope string) *Session {
	now := m.now()
	s := &Session{
		id:      uuid.NewString(),
		deps:    m.deps,
		window:  memory.NewWindow(m.cfg.WindowSize),
		now:     m.now,
		lastID:  1,
		started: now,
		messages: []core.Message{{
			ID:        1,
			Text:      Greeting,
			Sender:    core.SenderBot,
			Timestamp: now,
		}},
	}

	s.active.Store(now.UnixNano())

	if m.deps.Store != nil {
		s.store = persistence.NewAdapter(m.deps.Store, m.cfg.Keys.Scoped(scope))
		if err := s.store.Open(ctx, s.messages, now); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("scope", scope).Msg("failed to reset chat history")
		}
	}

	log.FromCtx(ctx).Debug().Str("session", s.id).Str("scope", scope).Msg("chat session opened")
	return s
}
