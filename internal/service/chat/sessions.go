package chat

import (
	"context"
	"sync"
	"time"

	"github.com/sandevgo/campinnova/pkg/log"
)

// Sessions tracks the open session of every chat view hosted by one transport.
type Sessions struct {
	manager *Manager

	mu      sync.Mutex
	byScope map[string]*Session
}

func NewSessions(manager *Manager) *Sessions {
	return &Sessions{
		manager: manager,
		byScope: make(map[string]*Session),
	}
}

// Get returns the session for scope, opening one on first use.
func (r *Sessions) Get(ctx context.Context, scope string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.byScope[scope]; ok {
		return s
	}
	s := r.manager.Open(ctx, scope)
	r.byScope[scope] = s
	return s
}

// Reset replaces the session for scope with a freshly opened one. The old
// session is closed first so a turn still running on it cannot overwrite
// the new history.
func (r *Sessions) Reset(ctx context.Context, scope string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byScope[scope]; ok {
		old.Close()
	}
	s := r.manager.Open(ctx, scope)
	r.byScope[scope] = s
	return s
}

// Drop forgets the session for scope. Stored history is left as is.
func (r *Sessions) Drop(scope string) {
	r.mu.Lock()
	delete(r.byScope, scope)
	r.mu.Unlock()
}

func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byScope)
}

// Prune drops every idle session whose last turn is older than maxIdle and
// returns how many were dropped. Busy sessions are kept.
func (r *Sessions) Prune(now time.Time, maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for scope, s := range r.byScope {
		if s.Busy() || now.Sub(s.LastActive()) < maxIdle {
			continue
		}
		delete(r.byScope, scope)
		dropped++
	}
	return dropped
}

// Sweep prunes idle sessions every interval until ctx is done.
func (r *Sessions) Sweep(ctx context.Context, interval, maxIdle time.Duration) {
	if interval <= 0 || maxIdle <= 0 {
		return
	}
	logger := log.FromCtx(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.Prune(now, maxIdle); n > 0 {
				logger.Debug().Int("dropped", n).Int("open", r.Len()).Msg("pruned idle chat sessions")
			}
		}
	}
}
