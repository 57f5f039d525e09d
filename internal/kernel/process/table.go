package process

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrNotFound indicates the pid does not exist in the table.
	ErrNotFound = errors.New("process not found")
	// ErrInvalidTransition indicates the requested state change is not a
	// legal edge of the process state machine.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrInvalidAttributes indicates the creation parameters are out of range.
	ErrInvalidAttributes = errors.New("invalid process attributes")
)

const (
	// MinPriority and MaxPriority bound the accepted priority range.
	// Lower values are more urgent.
	MinPriority = 1
	MaxPriority = 5
)

// Table owns every process record and the ready queue. PIDs are assigned in
// ascending order and never reused; terminated processes stay in the table.
type Table struct {
	mu      sync.RWMutex
	procs   map[uint32]*Process
	order   []*Process // creation order, for listing
	ready   readyQueue
	nextPID uint32
	nextSeq uint64
}

// NewTable creates an empty process table.
func NewTable() *Table {
	return &Table{
		procs:   make(map[uint32]*Process),
		nextPID: 1,
	}
}

// Create allocates the next pid and registers a new process in state Ready
// at the tail of the ready queue. Memory accounting is the caller's
// responsibility; the table only validates attribute ranges.
func (t *Table) Create(priority, memoryMB, burst int) (Snapshot, error) {
	if priority < MinPriority || priority > MaxPriority {
		return Snapshot{}, fmt.Errorf("%w: priority %d outside [%d,%d]", ErrInvalidAttributes, priority, MinPriority, MaxPriority)
	}
	if memoryMB <= 0 {
		return Snapshot{}, fmt.Errorf("%w: memory %d MB", ErrInvalidAttributes, memoryMB)
	}
	if burst <= 0 {
		return Snapshot{}, fmt.Errorf("%w: burst %d", ErrInvalidAttributes, burst)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	p := &Process{
		PID:            t.nextPID,
		State:          StateReady,
		Priority:       priority,
		MemoryMB:       memoryMB,
		RemainingBurst: burst,
		CreatedAt:      time.Now(),
		seq:            t.nextSeq,
	}
	t.nextPID++
	t.nextSeq++

	t.procs[p.PID] = p
	t.order = append(t.order, p)
	t.ready.push(p)
	return p.snapshot(), nil
}

// Snapshot returns a copy of the record for pid.
func (t *Table) Snapshot(pid uint32) (Snapshot, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	p, ok := t.procs[pid]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: pid %d", ErrNotFound, pid)
	}
	return p.snapshot(), nil
}

// List returns snapshots of all processes in creation order.
func (t *Table) List() []Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Snapshot, 0, len(t.order))
	for _, p := range t.order {
		out = append(out, p.snapshot())
	}
	return out
}

// SelectReady runs pick over the ready queue, head to tail, under the table
// lock and returns the pid of the chosen process. The pick function must
// not retain the records it is given. ok is false when the queue holds no
// ready process or pick declines all of them.
func (t *Table) SelectReady(pick func(ready []*Process) *Process) (pid uint32, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ready := make([]*Process, 0, t.ready.len())
	for _, p := range t.ready.ordered() {
		if p.State == StateReady {
			ready = append(ready, p)
		}
	}
	if len(ready) == 0 {
		return 0, false
	}
	chosen := pick(ready)
	if chosen == nil {
		return 0, false
	}
	return chosen.PID, true
}

// Dispatch moves a Ready process onto the CPU: Ready -> Running, removed
// from the ready queue.
func (t *Table) Dispatch(pid uint32) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, err := t.transitionLocked(pid, StateRunning)
	if err != nil {
		return err
	}
	t.ready.remove(p.PID)
	return nil
}

// Preempt moves a Running process back to the tail of the ready queue:
// Running -> Ready.
func (t *Table) Preempt(pid uint32) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.procs[pid]
	if !ok {
		return fmt.Errorf("%w: pid %d", ErrNotFound, pid)
	}
	if p.State != StateRunning {
		return fmt.Errorf("%w: preempt from %s", ErrInvalidTransition, p.State)
	}
	p.State = StateReady
	t.ready.push(p)
	return nil
}

// ConsumeBurst decrements the remaining burst of a Running process by one
// tick and returns the remaining value.
func (t *Table) ConsumeBurst(pid uint32) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.procs[pid]
	if !ok {
		return 0, fmt.Errorf("%w: pid %d", ErrNotFound, pid)
	}
	if p.State != StateRunning {
		return 0, fmt.Errorf("%w: consume burst in state %s", ErrInvalidTransition, p.State)
	}
	p.RemainingBurst--
	return p.RemainingBurst, nil
}

// Complete terminates a Running process whose burst is exhausted:
// Running -> Terminated.
func (t *Table) Complete(pid uint32) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.procs[pid]
	if !ok {
		return fmt.Errorf("%w: pid %d", ErrNotFound, pid)
	}
	if p.State != StateRunning {
		return fmt.Errorf("%w: complete from %s", ErrInvalidTransition, p.State)
	}
	p.State = StateTerminated
	return nil
}

// Suspend moves a Running or Ready process to Waiting and reports whether
// it held the CPU, so the caller can release it.
func (t *Table) Suspend(pid uint32) (wasRunning bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.procs[pid]
	if !ok {
		return false, fmt.Errorf("%w: pid %d", ErrNotFound, pid)
	}
	if p.State != StateRunning && p.State != StateReady {
		return false, fmt.Errorf("%w: suspend from %s", ErrInvalidTransition, p.State)
	}
	wasRunning = p.State == StateRunning
	if p.State == StateReady {
		t.ready.remove(p.PID)
	}
	p.State = StateWaiting
	return wasRunning, nil
}

// Resume moves a Waiting process back to the tail of the ready queue:
// Waiting -> Ready.
func (t *Table) Resume(pid uint32) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.procs[pid]
	if !ok {
		return fmt.Errorf("%w: pid %d", ErrNotFound, pid)
	}
	if p.State != StateWaiting {
		return fmt.Errorf("%w: resume from %s", ErrInvalidTransition, p.State)
	}
	p.State = StateReady
	t.ready.push(p)
	return nil
}

// Terminate forces a process out of any non-terminal state and reports
// whether it held the CPU.
func (t *Table) Terminate(pid uint32) (wasRunning bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.procs[pid]
	if !ok {
		return false, fmt.Errorf("%w: pid %d", ErrNotFound, pid)
	}
	if p.State == StateTerminated {
		return false, fmt.Errorf("%w: already terminated", ErrInvalidTransition)
	}
	wasRunning = p.State == StateRunning
	if p.State == StateReady {
		t.ready.remove(p.PID)
	}
	p.State = StateTerminated
	return wasRunning, nil
}

// ReadyLen returns the number of processes currently queued as Ready.
func (t *Table) ReadyLen() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ready.len()
}

// Len returns the total number of processes ever created.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.order)
}

// transitionLocked applies a validated edge of the state machine. Callers
// must hold the write lock.
func (t *Table) transitionLocked(pid uint32, to State) (*Process, error) {
	p, ok := t.procs[pid]
	if !ok {
		return nil, fmt.Errorf("%w: pid %d", ErrNotFound, pid)
	}
	if !canTransition(p.State, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.State, to)
	}
	p.State = to
	return p, nil
}
