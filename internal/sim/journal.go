package sim

import (
	"fmt"
	"sync"
	"time"
)

// journal is the append-only, time-ordered record of simulation events and
// administrative actions, mirrored from what the scheduler and facade do.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(format string, args ...interface{}) {
	j.mu.Lock()
	defer j.mu.Unlock()

	entry := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05.000"), fmt.Sprintf(format, args...))
	j.entries = append(j.entries, entry)
}

// tail returns the last k entries, oldest first. k <= 0 returns everything.
func (j *journal) tail(k int) []string {
	j.mu.Lock()
	defer j.mu.Unlock()

	start := 0
	if k > 0 && len(j.entries) > k {
		start = len(j.entries) - k
	}
	out := make([]string, len(j.entries)-start)
	copy(out, j.entries[start:])
	return out
}
