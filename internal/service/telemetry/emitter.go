package telemetry

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/sandevgo/campinnova/internal/core"
)

// LogEmitter writes each event as one structured log line.
type LogEmitter struct {
	logger zerolog.Logger
}

func NewLogEmitter(logger zerolog.Logger) *LogEmitter {
	return &LogEmitter{logger: logger}
}

func (e *LogEmitter) Emit(ev core.TelemetryEvent) {
	defer func() { _ = recover() }()

	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	e.logger.Info().RawJSON("telemetry", data).Msg(ev.EventType)
}

// Multi fans an event out to every emitter. A panicking emitter does not stop the rest.
type Multi []core.TelemetryEmitter

func (m Multi) Emit(ev core.TelemetryEvent) {
	for _, e := range m {
		if e == nil {
			continue
		}
		emitSafe(e, ev)
	}
}

func emitSafe(e core.TelemetryEmitter, ev core.TelemetryEvent) {
	defer func() { _ = recover() }()
	e.Emit(ev)
}

// Discard drops every event.
type Discard struct{}

func (Discard) Emit(core.TelemetryEvent) {}
