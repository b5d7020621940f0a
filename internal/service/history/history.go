package history

import "sync"

// Entry — одно сообщение диалога.
type Entry struct {
	Role string // User | AI | System
	Text string
}

// History — потокобезопасный буфер фиксированной ёмкости для сообщений
// диалога. При переполнении вытесняется самое старое сообщение.
type History struct {
	cap     int
	mu      sync.Mutex
	entries []Entry
}

func New(capacity int) *History {
	if capacity <= 0 {
		capacity = 50
	}
	return &History{cap: capacity, entries: make([]Entry, 0, capacity)}
}

func (h *History) Add(role, text string) {
	if text == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == h.cap {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:h.cap-1]
	}
	h.entries = append(h.entries, Entry{Role: role, Text: text})
}

// All возвращает копию содержимого в порядке добавления.
func (h *History) All() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
