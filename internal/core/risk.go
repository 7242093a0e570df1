package core

import (
	"fmt"
	"strings"
	"time"
)

// RiskLevel is the coarse severity of a distress signal. Values are ordered by severity.
type RiskLevel int

const (
	RiskNone RiskLevel = iota
	RiskLow
	RiskModerate
	RiskHigh
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskModerate:
		return "moderate"
	case RiskHigh:
		return "high"
	default:
		return "none"
	}
}

// ParseRiskLevel accepts the lower-case names produced by String.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return RiskNone, nil
	case "low":
		return RiskLow, nil
	case "moderate":
		return RiskModerate, nil
	case "high":
		return RiskHigh, nil
	}
	return RiskNone, fmt.Errorf("unknown risk level %q", s)
}

func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *RiskLevel) UnmarshalText(b []byte) error {
	lvl, err := ParseRiskLevel(string(b))
	if err != nil {
		return err
	}
	*r = lvl
	return nil
}

// EscalationRecord is the per-turn escalation decision. It is telemetered, never persisted.
type EscalationRecord struct {
	Risk         RiskLevel `json:"risk"`
	ConsentGiven bool      `json:"consent_given"`
	Triggered    bool      `json:"triggered"`
	Notified     bool      `json:"notified"`
	Timestamp    time.Time `json:"timestamp"`
}

const EventUserMessage = "user_message"

// TelemetryEvent is the write-only record emitted once per completed turn.
type TelemetryEvent struct {
	EventType           string    `json:"event"`
	Sentiment           string    `json:"sentiment"`
	RiskFlag            RiskLevel `json:"risk_flag"`
	ConsentGiven        bool      `json:"consent_given"`
	EscalationTriggered bool      `json:"escalation_triggered"`
	Timestamp           time.Time `json:"timestamp"`
}

// SentimentBucket maps a risk level onto the coarse sentiment label used by analytics.
func SentimentBucket(r RiskLevel) string {
	switch r {
	case RiskHigh:
		return "high"
	case RiskModerate:
		return "med"
	default:
		return "low"
	}
}

// NewTelemetryEvent derives the turn event from its escalation record.
func NewTelemetryEvent(rec EscalationRecord, at time.Time) TelemetryEvent {
	return TelemetryEvent{
		EventType:           EventUserMessage,
		Sentiment:           SentimentBucket(rec.Risk),
		RiskFlag:            rec.Risk,
		ConsentGiven:        rec.ConsentGiven,
		EscalationTriggered: rec.Triggered,
		Timestamp:           at,
	}
}
