package process

import "time"

// Process is a process control block. Fields are mutated only through Table
// methods, which hold the table lock; callers outside this package observe
// processes through Snapshot copies.
type Process struct {
	PID            uint32
	State          State
	Priority       int // lower value = more urgent
	MemoryMB       int
	RemainingBurst int
	CreatedAt      time.Time

	// seq is the creation sequence number, used by scheduling policies to
	// break ties deterministically.
	seq uint64
}

// Seq returns the creation sequence number of the process.
func (p *Process) Seq() uint64 {
	return p.seq
}

// Snapshot is an immutable copy of a process record.
type Snapshot struct {
	PID            uint32    `json:"pid"`
	State          string    `json:"state"`
	Priority       int       `json:"priority"`
	MemoryMB       int       `json:"memory_mb"`
	RemainingBurst int       `json:"remaining_burst"`
	CreatedAt      time.Time `json:"created_at"`
}

// snapshot copies the record. Callers must hold the table lock.
func (p *Process) snapshot() Snapshot {
	return Snapshot{
		PID:            p.PID,
		State:          p.State.String(),
		Priority:       p.Priority,
		MemoryMB:       p.MemoryMB,
		RemainingBurst: p.RemainingBurst,
		CreatedAt:      p.CreatedAt,
	}
}
