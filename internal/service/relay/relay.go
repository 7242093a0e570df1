package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/pkg/log"
)

const fallbackFormat = "Sorry, I’m having trouble connecting right now. (%s)"

// Fallback renders the degraded reply for a failed completion.
func Fallback(reason string) string {
	return fmt.Sprintf(fallbackFormat, reason)
}

// Relay turns the context window into exactly one reply. Every failure is
// folded into the fallback text; nothing is retried.
type Relay struct {
	completer core.Completer
	timeout   time.Duration
}

// New creates a relay. A zero timeout leaves the call bounded only by ctx and
// the completer's own transport limits.
func New(completer core.Completer, timeout time.Duration) *Relay {
	return &Relay{
		completer: completer,
		timeout:   timeout,
	}
}

// Reply returns the completion text, or the fallback text when the call fails.
// ok is false when the fallback was used.
func (r *Relay) Reply(ctx context.Context, window []core.Message) (text string, ok bool) {
	logger := log.FromCtx(ctx)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := r.complete(ctx, core.TurnsFromMessages(window))
	if err != nil {
		logger.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("completion relay failed, using fallback")
		return Fallback(reason(err)), false
	}

	logger.Debug().Dur("elapsed", time.Since(start)).Int("turns", len(window)).Msg("completion relay replied")
	return reply, true
}

func (r *Relay) complete(ctx context.Context, turns []core.Turn) (reply string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("completer panic: %v", p)
		}
	}()
	return r.completer.Complete(ctx, turns)
}

func reason(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	return err.Error()
}
