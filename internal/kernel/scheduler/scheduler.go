// Package scheduler implements the cycle-driven scheduling engine. One
// call to ExecuteCycle advances simulated time by exactly one tick and
// produces exactly one event. The selection algorithm is pluggable and
// fixed at construction.
package scheduler

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/teachos/schedsim/internal/kernel/process"
	"github.com/teachos/schedsim/internal/kernel/resource"
)

var (
	// ErrUnknownAlgorithm indicates the algorithm name is not one of
	// fcfs, sjf, priority, round_robin.
	ErrUnknownAlgorithm = errors.New("unknown scheduling algorithm")
	// ErrInvalidQuantum indicates a non-positive round robin quantum.
	ErrInvalidQuantum = errors.New("invalid quantum")
)

// Config selects the scheduling algorithm. Quantum is only meaningful for
// round robin.
type Config struct {
	Algorithm string
	Quantum   int
}

// Engine drives the scheduler state machine over a process table and a
// resource pool. ExecuteCycle is not reentrant: it must be invoked by
// exactly one coordinating driver; the internal mutex only protects the
// engine against misuse, it is not a license for concurrent stepping.
type Engine struct {
	mu     sync.Mutex
	table  *process.Table
	pool   *resource.Pool
	policy policy
	log    *zap.Logger

	clock       uint64
	currentPID  uint32
	hasCurrent  bool
	usedQuantum int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a structured logger to the engine.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an engine for the configured algorithm. Unknown algorithm
// names fail immediately.
func New(table *process.Table, pool *resource.Pool, cfg Config, opts ...Option) (*Engine, error) {
	pol, err := newPolicy(cfg.Algorithm, cfg.Quantum)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		table:  table,
		pool:   pool,
		policy: pol,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Name returns the human-readable name of the active algorithm.
func (e *Engine) Name() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.policy.displayName()
}

// Clock returns the number of cycles executed so far.
func (e *Engine) Clock() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock
}

// SetQuantum changes the round robin quantum and resets the consumed
// quantum of the current process. It has no effect on other algorithms.
func (e *Engine) SetQuantum(quantum int) error {
	if quantum <= 0 {
		return ErrInvalidQuantum
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if rr, ok := e.policy.(rrPolicy); ok {
		rr.quantum = quantum
		e.policy = rr
		e.usedQuantum = 0
	}
	return nil
}

// SelectNext returns a snapshot of the process the active algorithm would
// dispatch next, without mutating any state. ok is false when the ready
// queue is empty.
func (e *Engine) SelectNext() (process.Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pid, ok := e.table.SelectReady(e.policy.pick)
	if !ok {
		return process.Snapshot{}, false
	}
	snap, err := e.table.Snapshot(pid)
	if err != nil {
		return process.Snapshot{}, false
	}
	return snap, true
}

// ExecuteCycle advances the simulation by one tick:
//
//  1. time += 1
//  2. no process on the CPU: dispatch the algorithm's choice if the CPU
//     is free, otherwise report idle
//  3. the process on the CPU (including one dispatched this very cycle)
//     consumes one tick of burst; completion terminates it and releases
//     CPU and memory; under round robin, quantum exhaustion requeues it
//     at the tail
//
// The emitted event is the most significant outcome of the tick:
// process_completed and process_preempted win over process_started, which
// wins over process_running. A current process that was suspended or
// terminated out of band is observed at the top of the cycle and the CPU
// treated as free for this cycle's selection.
func (e *Engine) ExecuteCycle() Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clock++

	// Drop a stale current reference: an administrative suspend or
	// terminate already moved the process off the CPU.
	if e.hasCurrent {
		snap, err := e.table.Snapshot(e.currentPID)
		if err != nil || snap.State != process.StateRunning.String() {
			e.clearCurrent()
		}
	}

	started := false
	if !e.hasCurrent {
		pid, ok := e.table.SelectReady(e.policy.pick)
		if !ok {
			e.log.Debug("cycle idle: no ready process", zap.Uint64("cycle", e.clock))
			return Event{Kind: EventIdle, Cycle: e.clock}
		}
		if !e.pool.AcquireCPU() {
			e.log.Debug("cycle idle: cpu busy", zap.Uint64("cycle", e.clock))
			return Event{Kind: EventIdle, Cycle: e.clock}
		}
		if err := e.table.Dispatch(pid); err != nil {
			// Selection and dispatch run back to back under the engine
			// lock; a failure here means the table was mutated behind
			// our back.
			e.pool.ReleaseCPU()
			e.log.Warn("dispatch failed", zap.Uint32("pid", pid), zap.Error(err))
			return Event{Kind: EventIdle, Cycle: e.clock}
		}
		e.currentPID = pid
		e.hasCurrent = true
		e.usedQuantum = 0
		started = true
		e.log.Info("process started", zap.Uint32("pid", pid), zap.Uint64("cycle", e.clock))
	}

	return e.runTickLocked(started)
}

// runTickLocked burns one tick of the current process and resolves the
// cycle's event.
func (e *Engine) runTickLocked(started bool) Event {
	pid := e.currentPID

	remaining, err := e.table.ConsumeBurst(pid)
	if err != nil {
		e.clearCurrent()
		e.log.Warn("burst accounting failed", zap.Uint32("pid", pid), zap.Error(err))
		return Event{Kind: EventIdle, Cycle: e.clock}
	}

	if remaining <= 0 {
		if err := e.table.Complete(pid); err != nil {
			e.log.Warn("completion failed", zap.Uint32("pid", pid), zap.Error(err))
		}
		e.pool.ReleaseCPU()
		if err := e.pool.Release(pid); err != nil {
			e.log.Warn("memory release failed", zap.Uint32("pid", pid), zap.Error(err))
		}
		e.clearCurrent()

		snap, _ := e.table.Snapshot(pid)
		e.log.Info("process completed", zap.Uint32("pid", pid), zap.Uint64("cycle", e.clock))
		return Event{Kind: EventCompleted, Cycle: e.clock, Process: &snap}
	}

	// Single preemption point: quantum is checked here, at end of cycle,
	// and nowhere else.
	if rr, ok := e.policy.(rrPolicy); ok {
		e.usedQuantum++
		if e.usedQuantum >= rr.quantum {
			if err := e.table.Preempt(pid); err != nil {
				e.log.Warn("preemption failed", zap.Uint32("pid", pid), zap.Error(err))
				return Event{Kind: EventIdle, Cycle: e.clock}
			}
			e.pool.ReleaseCPU()
			e.clearCurrent()

			snap, _ := e.table.Snapshot(pid)
			e.log.Info("process preempted",
				zap.Uint32("pid", pid),
				zap.Uint64("cycle", e.clock),
				zap.Int("quantum", rr.quantum),
			)
			return Event{Kind: EventPreempted, Cycle: e.clock, Process: &snap}
		}
	}

	snap, _ := e.table.Snapshot(pid)
	if started {
		return Event{Kind: EventStarted, Cycle: e.clock, Process: &snap}
	}
	return Event{Kind: EventRunning, Cycle: e.clock, Process: &snap}
}

func (e *Engine) clearCurrent() {
	e.hasCurrent = false
	e.currentPID = 0
	e.usedQuantum = 0
}
