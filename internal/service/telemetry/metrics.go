package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sandevgo/campinnova/internal/core"
)

// Metrics counts turn events for scraping on /metrics. Only aggregate labels
// are recorded; nothing identifies a session.
type Metrics struct {
	TurnsTotal       *prometheus.CounterVec
	EscalationsTotal *prometheus.CounterVec
}

// NewMetrics registers the counters on reg. A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		TurnsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campinnova_turns_total",
				Help: "Total number of completed chat turns by risk flag and sentiment bucket",
			},
			[]string{"risk", "sentiment"},
		),
		EscalationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campinnova_escalations_total",
				Help: "Total number of escalated turns by consent",
			},
			[]string{"consent"},
		),
	}
}

func (m *Metrics) Emit(ev core.TelemetryEvent) {
	m.TurnsTotal.WithLabelValues(ev.RiskFlag.String(), ev.Sentiment).Inc()
	if ev.EscalationTriggered {
		m.EscalationsTotal.WithLabelValues(strconv.FormatBool(ev.ConsentGiven)).Inc()
	}
}
