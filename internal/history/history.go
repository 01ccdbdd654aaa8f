// Package history keeps a bounded, append-only, in-memory record of every
// completed lookup: manual HTTP/CLI queries, scheduled runs, alert triggers,
// and agent answers. Content is lost on restart by design.
package history

import (
	"sync"
	"time"
)

// Kind tags the origin of a history entry.
type Kind string

const (
	KindWeather Kind = "weather"
	KindCrypto  Kind = "crypto"
	KindAgent   Kind = "agent"
)

// DefaultCapacity bounds the ring buffer; the oldest entries are dropped
// once the buffer exceeds it.
const DefaultCapacity = 200

// Entry is an immutable history record.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      Kind      `json:"kind"`
	Query     string    `json:"query"`
	Result    any       `json:"result"`
}

// Log is a mutex-guarded ring buffer of Entry values.
type Log struct {
	mu       sync.Mutex
	capacity int
	now      func() time.Time
	entries  []Entry
}

func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity, now: time.Now}
}

// Append records an entry. It never fails; once the buffer grows past the
// capacity the oldest entries are silently dropped.
func (l *Log) Append(kind Kind, query string, result any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, Entry{
		Timestamp: l.now().UTC(),
		Kind:      kind,
		Query:     query,
		Result:    result,
	})
	if overflow := len(l.entries) - l.capacity; overflow > 0 {
		l.entries = append(l.entries[:0], l.entries[overflow:]...)
	}
}

// Recent returns up to limit entries, newest first. A non-positive limit
// yields an empty slice.
func (l *Log) Recent(limit int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit <= 0 {
		return []Entry{}
	}
	if limit > len(l.entries) {
		limit = len(l.entries)
	}
	out := make([]Entry, 0, limit)
	for i := len(l.entries) - 1; i >= len(l.entries)-limit; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

// Len reports the current number of buffered entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
