package core

import (
	"context"
	"time"
)

// Completer produces the assistant reply for an ordered conversation.
type Completer interface {
	Complete(ctx context.Context, turns []Turn) (string, error)
}

// Notifier raises a crisis-team alert. Implementations must not block the caller for long.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}

// Alert is the anonymized payload sent to the crisis team.
type Alert struct {
	SessionID string    `json:"session_id"`
	Risk      RiskLevel `json:"risk"`
	Consent   bool      `json:"consent"`
	RaisedAt  time.Time `json:"raised_at"`
}

type TelemetryEmitter interface {
	Emit(event TelemetryEvent)
}
