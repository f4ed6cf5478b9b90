package chat

import "sync"

// History is the append-only record of one session's ask attempts.
// Insertion order is chronological; newest-first display belongs to the
// presentation layer.
type History struct {
	mu      sync.Mutex
	entries []Entry
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Append adds one completed entry.
func (h *History) Append(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, e)
}

// Clear irrecoverably discards every entry.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}

// All returns a copy of the entries in insertion order.
func (h *History) All() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len reports how many entries the history holds.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
