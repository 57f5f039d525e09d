package syncprim

import (
	"fmt"
	"sync"
	"time"
)

// activityLog is an append-only, time-ordered record of synchronization
// attempts and their outcomes.
type activityLog struct {
	mu      sync.Mutex
	entries []string
}

// add appends a timestamped, formatted entry.
func (l *activityLog) add(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05.000"), fmt.Sprintf(format, args...))
	l.entries = append(l.entries, entry)
}

// tail returns the last k entries, oldest first. k <= 0 returns everything.
func (l *activityLog) tail(k int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := 0
	if k > 0 && len(l.entries) > k {
		start = len(l.entries) - k
	}
	out := make([]string, len(l.entries)-start)
	copy(out, l.entries[start:])
	return out
}
