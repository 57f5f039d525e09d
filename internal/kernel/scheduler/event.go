package scheduler

import "github.com/teachos/schedsim/internal/kernel/process"

// EventKind identifies the outcome of one scheduling cycle.
type EventKind string

const (
	EventStarted   EventKind = "process_started"
	EventRunning   EventKind = "process_running"
	EventCompleted EventKind = "process_completed"
	EventPreempted EventKind = "process_preempted"
	EventIdle      EventKind = "idle"
)

// Event describes what happened during one cycle. Process is nil for idle
// events and a snapshot taken after the cycle's mutations otherwise.
type Event struct {
	Kind    EventKind         `json:"kind"`
	Cycle   uint64            `json:"cycle"`
	Process *process.Snapshot `json:"process,omitempty"`
}
