package memory

import "github.com/sandevgo/campinnova/internal/core"

const DefaultCapacity = 10

// Window keeps the most recent messages of a session in a fixed ring.
// It has a single owner and performs no locking.
type Window struct {
	buf   []core.Message
	head  int // next write position
	count int
}

func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Window{buf: make([]core.Message, capacity)}
}

// Append stores msg, evicting the oldest entry first when the window is full.
func (w *Window) Append(msg core.Message) {
	w.buf[w.head] = msg
	w.head = (w.head + 1) % len(w.buf)
	if w.count < len(w.buf) {
		w.count++
	}
}

// Snapshot returns a copy of the window, oldest first.
func (w *Window) Snapshot() []core.Message {
	out := make([]core.Message, 0, w.count)
	start := (w.head - w.count + len(w.buf)) % len(w.buf)
	for i := 0; i < w.count; i++ {
		out = append(out, w.buf[(start+i)%len(w.buf)])
	}
	return out
}

func (w *Window) Len() int { return w.count }

func (w *Window) Cap() int { return len(w.buf) }
