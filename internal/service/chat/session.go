package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/internal/service/escalation"
	"github.com/sandevgo/campinnova/internal/service/memory"
	"github.com/sandevgo/campinnova/internal/service/persistence"
	"github.com/sandevgo/campinnova/pkg/log"
)

const Greeting = "Hi — I’m Campinnova. I’m here to listen. What’s on your mind today?"

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrTurnInProgress = errors.New("a reply is still being prepared")
)

// Turn is the outcome of one accepted user message.
type Turn struct {
	User       core.Message
	Bot        core.Message
	Escalation core.EscalationRecord
	// Degraded is set when the relay failed and Bot carries the fallback text.
	Degraded bool
}

// Session is one open chat view. It owns the ordered message list and the
// context window; turns are serialised by a busy flag, not queued.
type Session struct {
	id      string
	deps    Deps
	store   *persistence.Adapter
	window  *memory.Window
	now     func() time.Time
	busy    atomic.Bool
	lastID  int64
	started time.Time
	active  atomic.Int64

	saveMu sync.Mutex
	closed bool

	mu       sync.RWMutex
	messages []core.Message
}

func (s *Session) ID() string {
	return s.id
}

// Messages returns a copy of the message list, oldest first.
func (s *Session) Messages() []core.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) StartedAt() time.Time {
	return s.started
}

// Window returns the current context window, oldest first.
func (s *Session) Window() []core.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window.Snapshot()
}

// Busy reports whether a turn is outstanding.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// LastActive is the time of the last accepted turn, or of the open.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.active.Load())
}

// Close detaches the session from storage. A turn still in flight completes
// in memory but no longer writes history. Close waits for a pending write.
func (s *Session) Close() {
	s.saveMu.Lock()
	s.closed = true
	s.saveMu.Unlock()
}

func (s *Session) touch() {
	s.active.Store(s.now().UnixNano())
}

// SendTurn runs the triage pipeline for one inbound message. Every accepted
// call appends exactly one user message and one bot message.
func (s *Session) SendTurn(ctx context.Context, text string) (Turn, error) {
	if strings.TrimSpace(text) == "" {
		return Turn{}, ErrEmptyMessage
	}
	if !s.busy.CompareAndSwap(false, true) {
		return Turn{}, ErrTurnInProgress
	}
	defer s.busy.Store(false)
	defer s.touch()

	logger := log.FromCtx(ctx).With().Str("session", s.id).Logger()
	ctx = logger.WithContext(ctx)

	user := s.append(ctx, text, core.SenderUser, time.Time{})

	risk := s.deps.Classifier.Classify(text)
	rec := s.deps.Escalation.Decide(ctx, s.id, risk, text)

	var turn Turn
	reply, canned := escalation.Reply(risk)
	if !canned {
		var ok bool
		reply, ok = s.deps.Relay.Reply(ctx, s.Window())
		turn.Degraded = !ok
	}

	bot := s.append(ctx, reply, core.SenderBot, user.Timestamp)

	logger.Debug().
		Str("risk", risk.String()).
		Bool("consent", rec.ConsentGiven).
		Bool("notified", rec.Notified).
		Bool("degraded", turn.Degraded).
		Msg("turn completed")

	s.emit(core.NewTelemetryEvent(rec, s.now()))

	turn.User = user
	turn.Bot = bot
	turn.Escalation = rec
	return turn, nil
}

// append records a message in the list and the window, then mirrors the list.
// The timestamp never goes below notBefore.
func (s *Session) append(ctx context.Context, text string, sender core.Sender, notBefore time.Time) core.Message {
	ts := s.now()
	if ts.Before(notBefore) {
		ts = notBefore
	}

	s.mu.Lock()
	s.lastID++
	msg := core.Message{
		ID:        s.lastID,
		Text:      text,
		Sender:    sender,
		Timestamp: ts,
	}
	s.messages = append(s.messages, msg)
	s.window.Append(msg)
	snapshot := make([]core.Message, len(s.messages))
	copy(snapshot, s.messages)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return msg
}

func (s *Session) persist(ctx context.Context, snapshot []core.Message) {
	if s.store == nil {
		return
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if s.closed {
		return
	}
	if err := s.store.Save(ctx, snapshot); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to persist chat history")
	}
}

func (s *Session) emit(ev core.TelemetryEvent) {
	if s.deps.Telemetry == nil {
		return
	}
	defer func() { _ = recover() }()
	s.deps.Telemetry.Emit(ev)
}
