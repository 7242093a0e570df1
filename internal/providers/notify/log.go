package notify

import (
	"context"

	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/pkg/log"
)

// LogNotifier records crisis alerts in the application log only.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(ctx context.Context, alert core.Alert) error {
	log.FromCtx(ctx).Warn().
		Str("session", alert.SessionID).
		Stringer("risk", alert.Risk).
		Time("raised_at", alert.RaisedAt).
		Msg("ALERT: campus crisis team notified (anonymized)")
	return nil
}

// Multi fans an alert out to every notifier and returns the first error.
type Multi []core.Notifier

func (m Multi) Notify(ctx context.Context, alert core.Alert) error {
	var first error
	for _, n := range m {
		if err := n.Notify(ctx, alert); err != nil && first == nil {
			first = err
		}
	}
	return first
}
