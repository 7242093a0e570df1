package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sandevgo/campinnova/internal/core"
)

// TimeFormat is fixed-width UTC with millisecond precision, so stored
// timestamps sort lexically in chronological order.
const TimeFormat = "2006-01-02T15:04:05.000Z"

// Keys names the two entries a session is mirrored under.
type Keys struct {
	History   string
	StartedAt string
}

// Scoped suffixes both keys so several chat views can share one store.
func (k Keys) Scoped(scope string) Keys {
	if scope == "" {
		return k
	}
	return Keys{
		History:   k.History + ":" + scope,
		StartedAt: k.StartedAt + ":" + scope,
	}
}

// Record is the stored shape of one message.
type Record struct {
	ID        int64       `json:"id"`
	Text      string      `json:"text"`
	Sender    core.Sender `json:"sender"`
	Timestamp string      `json:"timestamp"`
}

// Adapter mirrors a session's message list into a key-value store. History is
// write-only: a chat that is opened again starts fresh and overwrites it.
type Adapter struct {
	kv   core.KVStore
	keys Keys
}

func NewAdapter(kv core.KVStore, keys Keys) *Adapter {
	return &Adapter{
		kv:   kv,
		keys: keys,
	}
}

func (a *Adapter) Keys() Keys {
	return a.keys
}

// Open records a freshly created session, replacing whatever was stored before.
func (a *Adapter) Open(ctx context.Context, msgs []core.Message, startedAt time.Time) error {
	if err := a.kv.Set(ctx, a.keys.StartedAt, FormatTime(startedAt)); err != nil {
		return fmt.Errorf("write session start: %w", err)
	}
	return a.writeHistory(ctx, msgs)
}

// Save mirrors the full message list. The start time is written only when the
// key is still unset; the first write wins.
func (a *Adapter) Save(ctx context.Context, msgs []core.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	if err := a.writeHistory(ctx, msgs); err != nil {
		return err
	}

	_, ok, err := a.kv.Get(ctx, a.keys.StartedAt)
	if err != nil {
		return fmt.Errorf("read session start: %w", err)
	}
	if !ok {
		if err := a.kv.Set(ctx, a.keys.StartedAt, FormatTime(msgs[0].Timestamp)); err != nil {
			return fmt.Errorf("write session start: %w", err)
		}
	}
	return nil
}

func (a *Adapter) writeHistory(ctx context.Context, msgs []core.Message) error {
	records := make([]Record, len(msgs))
	for i, m := range msgs {
		records[i] = Record{
			ID:        m.ID,
			Text:      m.Text,
			Sender:    m.Sender,
			Timestamp: FormatTime(m.Timestamp),
		}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := a.kv.Set(ctx, a.keys.History, string(data)); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}
