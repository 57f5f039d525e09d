package scheduler

import (
	"fmt"

	"github.com/teachos/schedsim/internal/kernel/process"
)

// Algorithm names accepted by New. Selecting anything else fails
// construction; there is no silent default.
const (
	FCFS       = "fcfs"
	SJF        = "sjf"
	Priority   = "priority"
	RoundRobin = "round_robin"
)

// policy picks the next process to dispatch from the ready queue. The
// slice is ordered head to tail; implementations must be stable, breaking
// ties in favor of the earlier position.
type policy interface {
	displayName() string
	pick(ready []*process.Process) *process.Process
}

// fcfsPolicy dispatches the head of the ready queue.
type fcfsPolicy struct{}

func (fcfsPolicy) displayName() string { return "First-Come, First-Served (FCFS)" }

func (fcfsPolicy) pick(ready []*process.Process) *process.Process {
	return ready[0]
}

// sjfPolicy dispatches the process with the smallest remaining burst.
type sjfPolicy struct{}

func (sjfPolicy) displayName() string { return "Shortest Job First (SJF)" }

func (sjfPolicy) pick(ready []*process.Process) *process.Process {
	best := ready[0]
	for _, p := range ready[1:] {
		if p.RemainingBurst < best.RemainingBurst {
			best = p
		}
	}
	return best
}

// priorityPolicy dispatches the process with the lowest priority value.
type priorityPolicy struct{}

func (priorityPolicy) displayName() string { return "Priority Scheduler" }

func (priorityPolicy) pick(ready []*process.Process) *process.Process {
	best := ready[0]
	for _, p := range ready[1:] {
		if p.Priority < best.Priority {
			best = p
		}
	}
	return best
}

// rrPolicy dispatches the head of the ready queue. Quantum accounting and
// the preemption point live in the engine's cycle, not here, so the check
// cannot run twice.
type rrPolicy struct {
	quantum int
}

func (r rrPolicy) displayName() string { return fmt.Sprintf("Round Robin (Quantum: %d)", r.quantum) }

func (rrPolicy) pick(ready []*process.Process) *process.Process {
	return ready[0]
}

// newPolicy resolves an algorithm name.
func newPolicy(algorithm string, quantum int) (policy, error) {
	switch algorithm {
	case FCFS:
		return fcfsPolicy{}, nil
	case SJF:
		return sjfPolicy{}, nil
	case Priority:
		return priorityPolicy{}, nil
	case RoundRobin:
		if quantum <= 0 {
			return nil, fmt.Errorf("%w: round robin quantum must be positive, got %d", ErrInvalidQuantum, quantum)
		}
		return rrPolicy{quantum: quantum}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}
