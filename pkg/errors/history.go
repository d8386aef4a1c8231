package errors

import (
	"sync"
	"time"
)

// DefaultHistorySize bounds the number of retained error records.
const DefaultHistorySize = 100

// Record is an immutable snapshot of a classified failure, retained
// for observability only.
type Record struct {
	Code              ErrorCode `json:"code"`
	Message           string    `json:"message"`
	Context           string    `json:"context"`
	Timestamp         time.Time `json:"timestamp"`
	Retryable         bool      `json:"retryable"`
	FallbackAvailable bool      `json:"fallback_available"`
}

// History is a bounded ring buffer of error records. Recording never
// fails and never blocks beyond the internal mutex.
type History struct {
	mu   sync.Mutex
	buf  []Record
	next int
	full bool
}

// NewHistory creates a history retaining the last size records.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{buf: make([]Record, size)}
}

// Record appends a classified error to the ring.
func (h *History) Record(err *AppError, operation string, fallbackAvailable bool) {
	if err == nil {
		return
	}

	rec := Record{
		Code:              err.Code,
		Message:           err.Message,
		Context:           operation,
		Timestamp:         time.Now(),
		Retryable:         err.Retryable(),
		FallbackAvailable: fallbackAvailable,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf[h.next] = rec
	h.next = (h.next + 1) % len(h.buf)
	if h.next == 0 {
		h.full = true
	}
}

// Len returns the number of retained records.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.full {
		return len(h.buf)
	}
	return h.next
}

// Snapshot returns the retained records, oldest first.
func (h *History) Snapshot() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.full {
		out := make([]Record, h.next)
		copy(out, h.buf[:h.next])
		return out
	}

	out := make([]Record, 0, len(h.buf))
	out = append(out, h.buf[h.next:]...)
	out = append(out, h.buf[:h.next]...)
	return out
}

// Recent returns up to n of the most recent records, newest first.
func (h *History) Recent(n int) []Record {
	all := h.Snapshot()
	if n > len(all) {
		n = len(all)
	}

	out := make([]Record, 0, n)
	for i := len(all) - 1; i >= len(all)-n; i-- {
		out = append(out, all[i])
	}
	return out
}
