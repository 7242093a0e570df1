package telemetry

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/sandevgo/campinnova/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(risk core.RiskLevel, consent bool) core.TelemetryEvent {
	return core.NewTelemetryEvent(core.EscalationRecord{
		Risk:         risk,
		ConsentGiven: consent,
		Triggered:    risk == core.RiskHigh,
	}, time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC))
}

func TestLogEmitter_WritesOneJSONLine(t *testing.T) {
	var buf bytes.Buffer
	NewLogEmitter(zerolog.New(&buf)).Emit(event(core.RiskHigh, true))

	var line struct {
		Message   string         `json:"message"`
		Telemetry map[string]any `json:"telemetry"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, core.EventUserMessage, line.Message)
	assert.Equal(t, "high", line.Telemetry["sentiment"])
	assert.Equal(t, "high", line.Telemetry["risk_flag"])
	assert.Equal(t, true, line.Telemetry["consent_given"])
	assert.Equal(t, true, line.Telemetry["escalation_triggered"])
	assert.Equal(t, "2025-03-02T08:00:00Z", line.Telemetry["timestamp"])
}

type panicEmitter struct{}

func (panicEmitter) Emit(core.TelemetryEvent) { panic("boom") }

type countingEmitter struct{ n int }

func (c *countingEmitter) Emit(core.TelemetryEvent) { c.n++ }

func TestMulti_SwallowsPanics(t *testing.T) {
	counter := &countingEmitter{}
	m := Multi{panicEmitter{}, nil, counter}

	assert.NotPanics(t, func() { m.Emit(event(core.RiskNone, false)) })
	assert.Equal(t, 1, counter.n)
}

func TestMetrics_Emit(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.Emit(event(core.RiskNone, false))
	m.Emit(event(core.RiskModerate, false))
	m.Emit(event(core.RiskHigh, true))
	m.Emit(event(core.RiskHigh, false))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TurnsTotal.WithLabelValues("none", "low")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TurnsTotal.WithLabelValues("moderate", "med")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TurnsTotal.WithLabelValues("high", "high")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EscalationsTotal.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EscalationsTotal.WithLabelValues("false")))
}
