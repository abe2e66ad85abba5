package log

import (
	"sync"
	"time"
)

// HTTP log buffer is separate from the main log output
var httpLogBuffer *RequestBuffer
var httpLogBufferOnce sync.Once

// HTTPLogEntry represents an HTTP request/response log entry
type HTTPLogEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Status     int       `json:"status"`
	DurationMS int64     `json:"duration_ms"`
	Size       int       `json:"size"`
	RemoteAddr string    `json:"remote_addr"`
	UserAgent  string    `json:"user_agent"`
}

// RequestBuffer keeps the most recent HTTP log entries in a fixed-size ring
type RequestBuffer struct {
	mu      sync.Mutex
	entries []HTTPLogEntry
	next    int
	full    bool
}

// NewRequestBuffer returns a buffer holding at most size entries
func NewRequestBuffer(size int) *RequestBuffer {
	if size < 1 {
		size = 1
	}
	return &RequestBuffer{entries: make([]HTTPLogEntry, size)}
}

// Add appends an entry, evicting the oldest once the buffer is full
func (b *RequestBuffer) Add(e HTTPLogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[b.next] = e
	b.next = (b.next + 1) % len(b.entries)
	if b.next == 0 {
		b.full = true
	}
}

// Entries returns the buffered entries, oldest first
func (b *RequestBuffer) Entries() []HTTPLogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.full {
		out := make([]HTTPLogEntry, b.next)
		copy(out, b.entries[:b.next])
		return out
	}

	out := make([]HTTPLogEntry, 0, len(b.entries))
	out = append(out, b.entries[b.next:]...)
	out = append(out, b.entries[:b.next]...)
	return out
}

// GetHTTPLogBuffer returns the HTTP log buffer instance, creating it if necessary
func GetHTTPLogBuffer() *RequestBuffer {
	httpLogBufferOnce.Do(func() {
		httpLogBuffer = NewRequestBuffer(1000) // Keep last 1000 HTTP log entries
	})
	return httpLogBuffer
}

// LogHTTPRequest records an HTTP request in the HTTP log buffer
func LogHTTPRequest(e HTTPLogEntry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	GetHTTPLogBuffer().Add(e)
}
